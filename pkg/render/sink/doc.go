// Package sink renders a solved [layout.Layout] into output formats.
//
// # Overview
//
// A "sink" transforms a computed layout into bytes. This package provides:
//
//   - SVG: one rect per box, optional labels and guideline rules
//   - PNG: the same picture rasterized with fogleman/gg
//   - JSON: the layout itself
//
// Gone boxes are never drawn. Invisible boxes are drawn as dashed outlines
// so they stay visible while debugging a scene.
//
// # Usage
//
//	svg := sink.RenderSVG(l, sink.WithLabels(), sink.WithGuidelines())
//	png, err := sink.RenderPNG(l, sink.WithScale(2))
//
// [layout.Layout]: github.com/matzehuels/anchorflow/pkg/layout.Layout
package sink
