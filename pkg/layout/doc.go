// Package layout provides the serialization type for solved scenes.
//
// This package defines the canonical wire format for anchorflow's results, used
// for JSON output files, API responses, caching and the renderers.
//
// # Architecture
//
// The package sits at the boundary between the engine and everything that
// consumes its output:
//
//   - [Layout]: Serialization type (this package)
//   - pkg/direct.Graph: The engine that computed the positions
//   - pkg/render/sink: Renders a Layout as SVG or PNG
//
// Use [FromGraph] after a measure to capture the container's boxes.
//
// # Serialization
//
//	l := layout.FromGraph(g, "login", ok)
//	data, _ := layout.MarshalLayout(l)          // Layout → []byte
//	parsed, _ := layout.UnmarshalLayout(data)   // []byte → Layout
//	layout.WriteLayoutFile(l, "login.json")     // Layout → File
package layout
