package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/anchorflow/pkg/direct"
	"github.com/matzehuels/anchorflow/pkg/widget"
)

// Options configures dependency-graph rendering.
type Options struct {
	// Values adds resolved values to the edge cells.
	Values bool
}

// ToDOT converts a dependency graph to Graphviz DOT format. Every box run is an
// HTML table with one cell per edge: green when resolved, the dimension cell grey
// when it came from a measurement and yellow when the box was measured but the
// dimension is still open. Chains become clusters.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(g *direct.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=none, fontsize=12];\n")
	buf.WriteString("\n")

	total := len(g.Groups())
	for _, id := range g.Runs() {
		switch r := g.Run(id).(type) {
		case *direct.ChainRun:
			writeChain(&buf, g, r, total, opts)
		case *direct.GuidelineRun:
			writeGuideline(&buf, g, r, opts)
		default:
			writeRun(&buf, g, id, total, opts)
		}
	}

	buf.WriteString("\n")
	for _, id := range g.Runs() {
		if c, ok := g.Run(id).(*direct.ChainRun); ok {
			for _, m := range c.Members() {
				writeEdges(&buf, g, m)
			}
			continue
		}
		writeEdges(&buf, g, id)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func runName(g *direct.Graph, id direct.RunID) string {
	r := g.Run(id)
	switch v := r.(type) {
	case *direct.HorizontalRun:
		return v.Box().ID + "_HORIZONTAL"
	case *direct.VerticalRun:
		return v.Box().ID + "_VERTICAL"
	case *direct.ChainRun:
		return v.Box().ID + "_CHAIN_" + v.Axis().String()
	case *direct.GuidelineRun:
		return v.Box().ID + "_GUIDELINE"
	}
	return "run" + strconv.Itoa(int(id))
}

func boxName(b *widget.Box) string {
	if b.ID == "" {
		return "box"
	}
	return b.ID
}

// cell renders one port of a run table.
func cell(g *direct.Graph, id direct.NodeID, port, label string, opts Options) string {
	n := g.Node(id)
	attrs := fmt.Sprintf(`PORT="%s" BORDER="1"`, port)
	if n.Resolved {
		attrs += ` BGCOLOR="green"`
		if opts.Values {
			label += "=" + strconv.Itoa(n.Value)
		}
	}
	return fmt.Sprintf("<TD %s>%s</TD>", attrs, label)
}

type axisRun interface {
	direct.Run
	Box() *widget.Box
	Start() direct.NodeID
	End() direct.NodeID
	Dimension() direct.NodeID
	Group() int
	Behavior() widget.DimensionBehavior
}

func writeRun(buf *bytes.Buffer, g *direct.Graph, id direct.RunID, groups int, opts Options) {
	r, ok := g.Run(id).(axisRun)
	if !ok {
		return
	}
	name := runName(g, id)
	dim := g.Node(r.Dimension())

	fmt.Fprintf(buf, "  %q [label=<", name)
	buf.WriteString(`<TABLE BORDER="0" CELLSPACING="0" CELLPADDING="2"><TR>`)
	_, vertical := r.(*direct.VerticalRun)
	if vertical {
		buf.WriteString(cell(g, r.Start(), "TOP", "T", opts))
	} else {
		buf.WriteString(cell(g, r.Start(), "LEFT", "L", opts))
	}

	var body []string
	switch {
	case dim.Resolved && len(dim.Targets()) > 0:
		body = append(body, `BGCOLOR="green"`)
	case dim.Resolved:
		body = append(body, `BGCOLOR="lightgray"`)
	}
	if r.Behavior() == widget.MatchConstraint {
		body = append(body, `STYLE="dashed"`)
	}
	label := boxName(r.Box())
	if opts.Values && dim.Resolved {
		label += " " + strconv.Itoa(dim.Value)
	}
	if gi := r.Group(); gi >= 0 {
		label += fmt.Sprintf(" [%d/%d]", gi+1, groups)
	}
	fmt.Fprintf(buf, `<TD BORDER="1" %s>%s</TD>`, strings.Join(body, " "), label)

	if v, ok := r.(*direct.VerticalRun); ok {
		buf.WriteString(cell(g, v.Baseline(), "BASELINE", "b", opts))
		buf.WriteString(cell(g, r.End(), "BOTTOM", "B", opts))
	} else {
		buf.WriteString(cell(g, r.End(), "RIGHT", "R", opts))
	}
	buf.WriteString("</TR></TABLE>>];\n")
}

func writeGuideline(buf *bytes.Buffer, g *direct.Graph, r *direct.GuidelineRun, opts Options) {
	label := "guide " + boxName(r.Box())
	n := g.Node(r.Start())
	color := "white"
	if n.Resolved {
		color = "green"
		if opts.Values {
			label += "=" + strconv.Itoa(n.Value)
		}
	}
	fmt.Fprintf(buf, "  %q [shape=box, style=\"filled,dashed\", fillcolor=%s, label=%q];\n",
		runName(g, r.ID()), color, label)
}

func writeChain(buf *bytes.Buffer, g *direct.Graph, c *direct.ChainRun, groups int, opts Options) {
	fmt.Fprintf(buf, "  subgraph %q {\n", "cluster_"+runName(g, c.ID()))
	fmt.Fprintf(buf, "    label=%q;\n", "chain "+c.Style().String())
	for _, m := range c.Members() {
		buf.WriteString("  ")
		writeRun(buf, g, m, groups, opts)
	}
	buf.WriteString("  }\n")
}

// port names the table cell an edge node is drawn in.
func port(g *direct.Graph, id direct.NodeID) string {
	n := g.Node(id)
	owner := strconv.Quote(runName(g, n.Owner()))
	switch g.Run(n.Owner()).(type) {
	case *direct.GuidelineRun:
		return owner
	case *direct.VerticalRun:
		switch n.Edge() {
		case direct.EdgeStart:
			return owner + ":TOP"
		case direct.EdgeEnd:
			return owner + ":BOTTOM"
		case direct.EdgeBaseline:
			return owner + ":BASELINE"
		}
	default:
		switch n.Edge() {
		case direct.EdgeStart:
			return owner + ":LEFT"
		case direct.EdgeEnd:
			return owner + ":RIGHT"
		}
	}
	return owner
}

func writeEdges(buf *bytes.Buffer, g *direct.Graph, id direct.RunID) {
	if gr, ok := g.Run(id).(*direct.GuidelineRun); ok {
		writeNodeEdges(buf, g, gr.Start(), false)
		return
	}
	r, ok := g.Run(id).(axisRun)
	if !ok {
		return
	}
	centered := len(g.Node(r.Start()).Targets()) == 0 && len(g.Node(r.End()).Targets()) == 0
	writeNodeEdges(buf, g, r.Start(), centered)
	writeNodeEdges(buf, g, r.End(), centered)
	if v, ok := r.(*direct.VerticalRun); ok {
		writeNodeEdges(buf, g, v.Baseline(), false)
	}
}

func writeNodeEdges(buf *bytes.Buffer, g *direct.Graph, id direct.NodeID, centered bool) {
	n := g.Node(id)
	for _, t := range n.Targets() {
		if g.Node(t).Edge().IsDimension() {
			continue
		}
		var attrs []string
		if n.Margin != 0 {
			attrs = append(attrs, fmt.Sprintf("label=\"%d\"", n.Margin))
		}
		if centered {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(buf, "  %s -> %s", port(g, id), port(g, t))
		if len(attrs) > 0 {
			fmt.Fprintf(buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
