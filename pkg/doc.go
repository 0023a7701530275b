// Package pkg provides the core libraries of anchorflow, a direct-resolution
// layout engine for anchor-constrained boxes.
//
// # Overview
//
// A scene is a container with child boxes whose edges are anchored to the
// container, to guidelines or to each other. anchorflow turns the anchors into a
// dependency graph of runs and resolves every box position in a single pass
// when the constraints allow it, without a general-purpose solver.
//
// # Architecture
//
// The typical data flow:
//
//	Scene file (TOML, YAML or JSON)
//	         ↓
//	    [scene] package (decode + validate + build boxes)
//	         ↓
//	    [widget] package (boxes, anchors, chains, guidelines)
//	         ↓
//	    [direct] package (dependency graph + resolution)
//	         ↓
//	    [layout] package (placed boxes)
//	         ↓
//	    [render] packages (SVG, PNG, JSON, DOT)
//
// # Quick Start
//
//	s, _ := scene.ReadFile("login.toml")
//	c, m, _ := s.Build()
//
//	g := direct.New(c, direct.Options{Measurer: m})
//	ok := g.DirectMeasure(false)
//
//	l := layout.FromGraph(g, s.Name, ok)
//	svg := sink.RenderSVG(l, sink.WithLabels())
//
// # Main Packages
//
// [widget] - The box and anchor model: six anchors per box, dimension
// behaviors, match constraints, chains and guidelines.
//
// [direct] - The engine. Builds one run per box and axis, groups chains, and
// resolves node values from a FIFO worklist. A scene it cannot place is
// reported as unresolved rather than an error.
//
// [scene] - Declarative scene files and their validation.
//
// [layout] - The serialization type for solved scenes.
//
// [render/sink] - Layout renderers (SVG, PNG, JSON).
//
// [render/nodelink] - Dependency graph diagrams via Graphviz.
//
// ## Infrastructure
//
// [pipeline] - The solve → render pipeline with caching, shared by the CLI and
// the HTTP server.
//
// [cache] - Cache backends (file, Redis, null) and key derivation.
//
// [server] - The HTTP API.
//
// [errors] - Structured error codes.
//
// [observability] - Hooks around solves, renders and cache access.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/direct/...             # Specific package
//
// [widget]: https://pkg.go.dev/github.com/matzehuels/anchorflow/pkg/widget
// [direct]: https://pkg.go.dev/github.com/matzehuels/anchorflow/pkg/direct
// [scene]: https://pkg.go.dev/github.com/matzehuels/anchorflow/pkg/scene
// [layout]: https://pkg.go.dev/github.com/matzehuels/anchorflow/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/anchorflow/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/anchorflow/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/anchorflow/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/anchorflow/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/anchorflow/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/anchorflow/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/anchorflow/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/anchorflow/pkg/observability
package pkg
