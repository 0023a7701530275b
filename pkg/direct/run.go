package direct

import "github.com/matzehuels/anchorflow/pkg/widget"

// Run is the layout of one box, one chain or one guideline along one axis.
// The concrete types are [*HorizontalRun], [*VerticalRun], [*ChainRun] and
// [*GuidelineRun]; no other implementations exist.
type Run interface {
	base() *runBase
}

type runMode uint8

const (
	modeNone runMode = iota
	// modeCenter runs are anchored on both sides and recompute from both targets.
	modeCenter
)

// runBase is the state every run has.
type runBase struct {
	id        RunID
	axis      widget.Axis
	box       *widget.Box
	start     NodeID
	end       NodeID
	dimension NodeID
	behavior  widget.DimensionBehavior
	match     widget.MatchKind
	mode      runMode
	group     int
}

func (r *runBase) base() *runBase { return r }

// ID returns the run's address in its graph.
func (r *runBase) ID() RunID { return r.id }

// Axis returns the axis the run lays out.
func (r *runBase) Axis() widget.Axis { return r.axis }

// Box returns the box the run belongs to. For chains this is the head box.
func (r *runBase) Box() *widget.Box { return r.box }

// Start returns the start node.
func (r *runBase) Start() NodeID { return r.start }

// End returns the end node.
func (r *runBase) End() NodeID { return r.end }

// Dimension returns the dimension node.
func (r *runBase) Dimension() NodeID { return r.dimension }

// Group returns the index of the run's group, or -1.
func (r *runBase) Group() int { return r.group }

// Behavior returns the dimension behavior in effect for the run.
func (r *runBase) Behavior() widget.DimensionBehavior { return r.behavior }

// axisRun is the shared part of horizontal and vertical box runs.
type axisRun struct {
	runBase
	baseline          NodeID
	baselineDimension NodeID
}

// HorizontalRun lays out a box along the horizontal axis.
type HorizontalRun struct{ axisRun }

// VerticalRun lays out a box along the vertical axis, including its baseline.
type VerticalRun struct{ axisRun }

// Baseline returns the baseline node.
func (r *VerticalRun) Baseline() NodeID { return r.baseline }

// ChainRun distributes the space between its ends among its member runs.
type ChainRun struct {
	runBase
	members []RunID
	style   widget.ChainStyle
}

// Members returns the member runs from head to tail.
func (r *ChainRun) Members() []RunID { return r.members }

// Style returns the chain style read from the head box.
func (r *ChainRun) Style() widget.ChainStyle { return r.style }

// GuidelineRun positions a guideline. Only its start node is meaningful.
type GuidelineRun struct {
	runBase
	guide widget.Guide
}

func (g *Graph) newAxisRun(box *widget.Box, axis widget.Axis) RunID {
	id := RunID(len(g.runs))
	var a axisRun
	a.runBase = g.newBase(id, box, axis)
	a.baseline, a.baselineDimension = NoNode, NoNode
	if axis == widget.Vertical {
		a.baseline = g.newNode(id, EdgeBaseline)
		if box.HasBaseline {
			a.baselineDimension = g.newNode(id, EdgeBaselineDimension)
		}
		g.runs = append(g.runs, &VerticalRun{a})
	} else {
		g.runs = append(g.runs, &HorizontalRun{a})
	}
	return id
}

func (g *Graph) newBase(id RunID, box *widget.Box, axis widget.Axis) runBase {
	return runBase{
		id:        id,
		axis:      axis,
		box:       box,
		start:     g.newNode(id, EdgeStart),
		end:       g.newNode(id, EdgeEnd),
		dimension: g.newNode(id, EdgeDimension),
		group:     -1,
	}
}

func (g *Graph) axisRunOf(id RunID) *axisRun {
	switch r := g.runs[id].(type) {
	case *HorizontalRun:
		return &r.axisRun
	case *VerticalRun:
		return &r.axisRun
	}
	return nil
}

// updateRun dispatches to the run's update.
func (g *Graph) updateRun(id RunID) {
	switch r := g.runs[id].(type) {
	case *HorizontalRun:
		g.updateAxis(&r.axisRun)
	case *VerticalRun:
		g.updateAxis(&r.axisRun)
	case *ChainRun:
		g.updateChain(r)
	case *GuidelineRun:
		g.updateGuideline(r)
	}
}

// applyRun wires the run's edges.
func (g *Graph) applyRun(id RunID) {
	switch r := g.runs[id].(type) {
	case *HorizontalRun:
		g.applyAxis(&r.axisRun)
	case *VerticalRun:
		g.applyAxis(&r.axisRun)
	case *ChainRun:
		g.applyChain(r)
	case *GuidelineRun:
		g.applyGuideline(r)
	}
}

// clearRun drops the run's edges and resolution state.
func (g *Graph) clearRun(id RunID) {
	r := g.runs[id].base()
	r.group = -1
	switch r := g.runs[id].(type) {
	case *ChainRun:
		for _, m := range r.members {
			g.clearRun(m)
		}
	case *GuidelineRun:
		g.clearNode(r.start)
		return
	case *VerticalRun:
		g.clearNode(r.baseline)
		if r.baselineDimension != NoNode {
			g.clearNode(r.baselineDimension)
		}
	}
	g.clearNode(r.start)
	g.clearNode(r.end)
	g.clearNode(r.dimension)
	r.mode = modeNone
}

// resetRun drops resolution state but keeps edges. Chain members are runs of
// their own and are reset separately.
func (g *Graph) resetRun(id RunID) {
	r := g.runs[id].base()
	if v, ok := g.runs[id].(*VerticalRun); ok {
		g.resetNode(v.baseline)
		if v.baselineDimension != NoNode {
			g.resetNode(v.baselineDimension)
		}
	}
	g.resetNode(r.start)
	g.resetNode(r.end)
	g.resetNode(r.dimension)
}

// applyToBox writes resolved positions and sizes back to the box.
func (g *Graph) applyToBox(id RunID) {
	switch r := g.runs[id].(type) {
	case *HorizontalRun:
		g.applyAxisToBox(&r.axisRun)
	case *VerticalRun:
		g.applyAxisToBox(&r.axisRun)
	case *ChainRun:
		for _, m := range r.members {
			g.applyToBox(m)
		}
	case *GuidelineRun:
		if g.nodes[r.start].Resolved {
			r.box.SetPos(r.guide.Axis, g.nodes[r.start].Value)
		}
	}
}

func (g *Graph) applyAxisToBox(r *axisRun) {
	if n := g.nodes[r.start]; n.Resolved {
		r.box.SetPos(r.axis, n.Value)
	}
	if n := g.nodes[r.dimension]; n.Resolved {
		r.box.SetSize(r.axis, n.Value)
	}
}

// supportsWrap reports whether the run can take part in direct wrap computation.
func (g *Graph) supportsWrap(id RunID) bool {
	switch r := g.runs[id].(type) {
	case *ChainRun:
		for _, m := range r.members {
			if !g.supportsWrap(m) {
				return false
			}
		}
		return true
	case *GuidelineRun:
		return false
	}
	r := g.runs[id].base()
	if r.behavior == widget.MatchConstraint {
		return r.match == widget.MatchSpread
	}
	return true
}

// wrapDimension is the size the run contributes to a wrap computation.
func (g *Graph) wrapDimension(id RunID) int {
	if c, ok := g.runs[id].(*ChainRun); ok {
		size := 0
		for _, m := range c.members {
			mr := g.runs[m].base()
			size += g.nodes[mr.start].Margin + g.wrapDimension(m) - g.nodes[mr.end].Margin
		}
		return size
	}
	if d := g.nodes[g.runs[id].base().dimension]; d.Resolved {
		return d.Value
	}
	return 0
}
