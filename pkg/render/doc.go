// Package render groups the renderers for solved scenes and their dependency
// graphs.
//
// # Overview
//
//   - Layout output (in [sink] subpackage): SVG, PNG and JSON drawings of a
//     [layout.Layout]
//   - Dependency graphs (in [nodelink] subpackage): DOT and SVG diagrams of the
//     runs, nodes and edges the direct engine resolved
//
// # Layout Output
//
//	svg := sink.RenderSVG(l, sink.WithLabels(), sink.WithGuidelines())
//	png, err := sink.RenderPNG(l, sink.WithScale(2))
//
// # Dependency Graphs
//
// Graphs are rendered with Graphviz through goccy/go-graphviz, so no external
// binary is needed.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Values: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [sink]: github.com/matzehuels/anchorflow/pkg/render/sink
// [nodelink]: github.com/matzehuels/anchorflow/pkg/render/nodelink
// [layout.Layout]: github.com/matzehuels/anchorflow/pkg/layout
package render
