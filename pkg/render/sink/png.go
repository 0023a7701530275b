package sink

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/anchorflow/pkg/layout"
)

// RenderPNG rasterizes the layout. It draws the same picture as RenderSVG
// without shelling out to an SVG converter.
func RenderPNG(l layout.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	w := int(float64(l.Width+2*r.padding) * r.scale)
	h := int(float64(l.Height+2*r.padding) * r.scale)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("cannot rasterize a %dx%d layout", l.Width, l.Height)
	}

	dc := gg.NewContext(w, h)
	setColor(dc, background)
	dc.Clear()
	dc.Scale(r.scale, r.scale)
	dc.Translate(float64(r.padding), float64(r.padding))

	setColor(dc, stroke)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0, 0, float64(l.Width), float64(l.Height))
	dc.Stroke()

	dc.SetFontFace(basicfont.Face7x13)
	for _, b := range l.Boxes {
		if b.Visibility == "gone" {
			continue
		}
		drawBox(dc, b, r.labels)
	}
	if r.guidelines {
		for _, g := range l.Guidelines {
			drawGuideline(dc, l, g)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawBox(dc *gg.Context, b layout.Box, labels bool) {
	x, y, w, h := float64(b.X), float64(b.Y), float64(b.Width), float64(b.Height)
	dc.Push()
	defer dc.Pop()

	if b.Visibility == "invisible" {
		dc.SetDash(4, 3)
	} else {
		setColor(dc, fillFor(b.ID))
		dc.DrawRectangle(x, y, w, h)
		dc.Fill()
	}
	setColor(dc, stroke)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()

	if b.Baseline > 0 {
		dc.SetDash(2, 2)
		dc.DrawLine(x, y+float64(b.Baseline), x+w, y+float64(b.Baseline))
		dc.Stroke()
	}
	if labels && w > 0 && h > 0 {
		dc.DrawStringAnchored(b.ID, x+w/2, y+h/2, 0.5, 0.5)
	}
}

func drawGuideline(dc *gg.Context, l layout.Layout, g layout.Guideline) {
	dc.Push()
	defer dc.Pop()
	setColor(dc, guideColor)
	dc.SetDash(6, 4)
	p := float64(g.Position)
	if g.Axis == "vertical" {
		dc.DrawLine(0, p, float64(l.Width), p)
	} else {
		dc.DrawLine(p, 0, p, float64(l.Height))
	}
	dc.Stroke()
}

func setColor(dc *gg.Context, c color.RGBA) {
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
}
