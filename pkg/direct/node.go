package direct

import "github.com/matzehuels/anchorflow/pkg/widget"

// NodeID addresses a node in a Graph.
type NodeID int32

// RunID addresses a run in a Graph.
type RunID int32

const (
	// NoNode is the absent node.
	NoNode NodeID = -1
	// NoRun is the absent run.
	NoRun RunID = -1
)

// Edge says which value of its run a node holds.
type Edge uint8

const (
	// EdgeStart is the left or top position of the run's box.
	EdgeStart Edge = iota
	// EdgeEnd is the right or bottom position.
	EdgeEnd
	// EdgeDimension is the width or height.
	EdgeDimension
	// EdgeBaseline is the baseline position of a vertical run.
	EdgeBaseline
	// EdgeBaselineDimension is the baseline offset from the box top.
	EdgeBaselineDimension
)

var edgeNames = [...]string{"start", "end", "dimension", "baseline", "baseline_dimension"}

func (e Edge) String() string {
	if int(e) < len(edgeNames) {
		return edgeNames[e]
	}
	return "edge"
}

// IsDimension reports whether the node holds a size rather than a position.
func (e Edge) IsDimension() bool {
	return e == EdgeDimension || e == EdgeBaselineDimension
}

// Node is one integer of the layout. Value is meaningful once Resolved is set;
// a resolved node keeps its value until the graph is reset or rebuilt.
type Node struct {
	Value        int
	Resolved     bool
	ReadyToSolve bool
	Margin       int

	// WrapValue is the measured content size, kept on dimension nodes of
	// wrap-constrained boxes.
	WrapValue int

	edge            Edge
	owner           RunID
	marginFactor    int
	marginSource    NodeID
	delegateToOwner bool
	updateDelegate  RunID
	targets         []NodeID
	dependents      []dependent
}

// Edge returns which value of its run the node holds.
func (n Node) Edge() Edge { return n.edge }

// Owner returns the run the node belongs to.
func (n Node) Owner() RunID { return n.owner }

// Targets returns the nodes this node is computed from.
func (n Node) Targets() []NodeID { return n.targets }

// DelegatesToOwner reports whether the node hands its update to its run.
func (n Node) DelegatesToOwner() bool { return n.delegateToOwner }

// dependent is a node or a run to notify when a node resolves.
type dependent struct {
	id    int32
	isRun bool
}

func nodeDep(id NodeID) dependent { return dependent{id: int32(id)} }
func runDep(id RunID) dependent   { return dependent{id: int32(id), isRun: true} }

// TraceEvent records one node resolution.
type TraceEvent struct {
	Step  int
	Node  NodeID
	Run   RunID
	Box   string
	Axis  widget.Axis
	Edge  Edge
	Value int
}

func (g *Graph) newNode(owner RunID, edge Edge) NodeID {
	g.nodes = append(g.nodes, Node{
		edge:           edge,
		owner:          owner,
		marginFactor:   1,
		marginSource:   NoNode,
		updateDelegate: NoRun,
	})
	return NodeID(len(g.nodes) - 1)
}

// resolve sets the node's value and queues its dependents. It is a no-op on a
// resolved node. Outside a drain the queue is processed before resolve returns.
func (g *Graph) resolve(id NodeID, value int) {
	n := &g.nodes[id]
	if n.Resolved {
		return
	}
	n.Resolved = true
	n.Value = value
	if g.trace {
		r := g.runs[n.owner].base()
		g.events = append(g.events, TraceEvent{
			Step:  len(g.events),
			Node:  id,
			Run:   n.owner,
			Box:   r.box.ID,
			Axis:  r.axis,
			Edge:  n.edge,
			Value: value,
		})
	}
	g.queue = append(g.queue, n.dependents...)
	g.drain()
}

// addDependency registers d on node and catches it up when node is already resolved.
func (g *Graph) addDependency(node NodeID, d dependent) {
	g.nodes[node].dependents = append(g.nodes[node].dependents, d)
	if g.nodes[node].Resolved {
		g.queue = append(g.queue, d)
		g.drain()
	}
}

// addTarget makes node follow target at a fixed margin.
func (g *Graph) addTarget(node, target NodeID, margin int) {
	g.nodes[node].targets = append(g.nodes[node].targets, target)
	g.nodes[node].Margin = margin
	g.nodes[target].dependents = append(g.nodes[target].dependents, nodeDep(node))
}

// addSizedTarget makes node follow target at factor times the value of source.
// The run's own dimension is added as a target so the node waits for it.
func (g *Graph) addSizedTarget(node, target NodeID, factor int, source, runDimension NodeID) {
	n := &g.nodes[node]
	n.targets = append(n.targets, target, runDimension)
	n.marginFactor = factor
	n.marginSource = source
	g.nodes[target].dependents = append(g.nodes[target].dependents, nodeDep(node))
	g.nodes[source].dependents = append(g.nodes[source].dependents, nodeDep(node))
}

func (g *Graph) clearNode(id NodeID) {
	n := &g.nodes[id]
	n.targets = n.targets[:0]
	n.dependents = n.dependents[:0]
	n.Resolved = false
	n.ReadyToSolve = false
	n.Value = 0
	n.delegateToOwner = false
	n.updateDelegate = NoRun
	n.marginSource = NoNode
	n.marginFactor = 1
}

func (g *Graph) resetNode(id NodeID) {
	n := &g.nodes[id]
	n.Resolved = false
	n.ReadyToSolve = false
	n.Value = 0
}

// updateNode is the generic recomputation of a node from its targets. A node with a
// single positional target resolves to target + margin. Nodes with several
// positional targets wait for their run or update delegate to resolve them.
func (g *Graph) updateNode(id NodeID) {
	for _, t := range g.nodes[id].targets {
		if !g.nodes[t].Resolved {
			return
		}
	}
	g.nodes[id].ReadyToSolve = true
	if d := g.nodes[id].updateDelegate; d != NoRun {
		g.updateRun(d)
	}
	if g.nodes[id].delegateToOwner {
		g.updateRun(g.nodes[id].owner)
		return
	}

	n := &g.nodes[id]
	target, count := NoNode, 0
	for _, t := range n.targets {
		if g.nodes[t].edge.IsDimension() {
			continue
		}
		target = t
		count++
	}
	if target != NoNode && count == 1 && g.nodes[target].Resolved {
		if n.marginSource != NoNode {
			src := g.nodes[n.marginSource]
			if !src.Resolved {
				return
			}
			n.Margin = n.marginFactor * src.Value
		}
		g.resolve(id, g.nodes[target].Value+n.Margin)
	}
	if d := g.nodes[id].updateDelegate; d != NoRun {
		g.updateRun(d)
	}
}

// drain processes queued dependents until none are left. Nested calls return
// immediately so that propagation stays iterative.
func (g *Graph) drain() {
	if g.draining {
		return
	}
	g.draining = true
	for g.head < len(g.queue) {
		d := g.queue[g.head]
		g.head++
		if d.isRun {
			g.updateRun(RunID(d.id))
		} else {
			g.updateNode(NodeID(d.id))
		}
	}
	g.queue = g.queue[:0]
	g.head = 0
	g.draining = false
}
