// Package nodelink renders the dependency graph of a [direct.Graph] as a
// Graphviz diagram.
//
// # Overview
//
// Each box run becomes a row of cells, one per edge (L/R horizontally, T/b/B
// vertically), and every target link becomes an arrow labelled with its margin.
// Cells turn green as nodes resolve, which makes it easy to see where propagation
// stopped when a measure returns false.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Values: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
//
// [direct.Graph]: github.com/matzehuels/anchorflow/pkg/direct
package nodelink
