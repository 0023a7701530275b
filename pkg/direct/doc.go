// Package direct resolves box layouts by propagating known values through a
// dependency graph instead of running a linear solver.
//
// # Model
//
// Every box in a [widget.Container] gets one run per axis. A run owns three nodes:
// start, end and dimension (vertical runs add a baseline). Nodes are edges of the
// layout expressed as integers; they hold a value once resolved. Edges between
// nodes come from the box anchors: a node lists the nodes it is computed from
// (targets) and the nodes or runs to wake up when it resolves (dependents).
//
// Boxes chained on an axis are folded into a single [ChainRun] that distributes the
// space between the chain ends. Guideline boxes get a [GuidelineRun].
//
// # Resolution
//
// [Graph.DirectMeasure] measures what can be measured up front, resolves the
// container start edges and lets values flow. Resolving a node queues its
// dependents; a queued node recomputes itself once all its targets are known, a
// queued run recomputes its box. The queue is drained iteratively in FIFO order.
//
// A pass either resolves every run, in which case box geometry has been written
// back and DirectMeasure returns true, or it stalls and returns false. A stalled
// graph is not an error: the host is expected to fall back to a general solver.
//
// Nodes and runs live in slices owned by the [Graph] and are addressed by [NodeID]
// and [RunID]. A Graph is not safe for concurrent use.
//
// # Debugging
//
// The nodelink renderer draws the graph in Graphviz DOT format from the
// accessors [Graph.Runs], [Graph.Run] and [Graph.Node]. With [Options].Trace
// set, every resolution is recorded in order and returned by [Graph.Trace].
package direct
