package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/anchorflow/pkg/layout"
)

// Option configures SVG and PNG rendering.
type Option func(*renderer)

type renderer struct {
	labels     bool
	guidelines bool
	scale      float64
	padding    int
}

// WithLabels draws each box's ID inside it.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithGuidelines draws guidelines as red rules across the container.
func WithGuidelines() Option { return func(r *renderer) { r.guidelines = true } }

// WithScale sets the PNG scale factor (default 1). SVG output ignores it.
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPadding adds space around the container.
func WithPadding(px int) Option {
	return func(r *renderer) {
		if px >= 0 {
			r.padding = px
		}
	}
}

func newRenderer(opts ...Option) renderer {
	r := renderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders the layout as a standalone SVG document.
func RenderSVG(l layout.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)
	w, h := l.Width+2*r.padding, l.Height+2*r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n", w, h, hexColor(background))
	fmt.Fprintf(&buf, `  <g transform="translate(%d %d)">`+"\n", r.padding, r.padding)
	fmt.Fprintf(&buf, `    <rect class="container" x="0" y="0" width="%d" height="%d" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
		l.Width, l.Height, hexColor(stroke))

	for _, b := range l.Boxes {
		if b.Visibility == "gone" {
			continue
		}
		renderBox(&buf, b, r.labels)
	}
	if r.guidelines {
		for _, g := range l.Guidelines {
			renderGuideline(&buf, l, g)
		}
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderBox(buf *bytes.Buffer, b layout.Box, labels bool) {
	id := escape(b.ID)
	if b.Visibility == "invisible" {
		fmt.Fprintf(buf, `    <rect id="box-%s" class="box invisible" x="%d" y="%d" width="%d" height="%d" fill="none" stroke="%s" stroke-dasharray="4 3"/>`+"\n",
			id, b.X, b.Y, b.Width, b.Height, hexColor(stroke))
	} else {
		fmt.Fprintf(buf, `    <rect id="box-%s" class="box" x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			id, b.X, b.Y, b.Width, b.Height, hexColor(fillFor(b.ID)), hexColor(stroke))
	}
	if b.Baseline > 0 {
		fmt.Fprintf(buf, `    <line class="baseline" x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-dasharray="2 2"/>`+"\n",
			b.X, b.Y+b.Baseline, b.X+b.Width, b.Y+b.Baseline, hexColor(stroke))
	}
	if labels && b.Width > 0 && b.Height > 0 {
		fmt.Fprintf(buf, `    <text x="%d" y="%d" font-family="monospace" font-size="12" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			b.X+b.Width/2, b.Y+b.Height/2, id)
	}
}

func renderGuideline(buf *bytes.Buffer, l layout.Layout, g layout.Guideline) {
	x1, y1, x2, y2 := g.Position, 0, g.Position, l.Height
	if g.Axis == "vertical" {
		x1, y1, x2, y2 = 0, g.Position, l.Width, g.Position
	}
	fmt.Fprintf(buf, `    <line id="guide-%s" class="guideline" x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-dasharray="6 4"/>`+"\n",
		escape(g.ID), x1, y1, x2, y2, hexColor(guideColor))
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
