package direct

import (
	"math"

	"github.com/matzehuels/anchorflow/pkg/widget"
)

// applyAxis wires a box run to its anchor targets.
//
// A box anchored on both sides recomputes from both targets (center mode); a box
// anchored on one side derives the other edge from its size; an unanchored box is
// placed at its literal coordinate from the container start.
func (g *Graph) applyAxis(r *axisRun) {
	box, axis := r.box, r.axis
	startA, endA := box.StartOf(axis), box.EndOf(axis)
	root := g.rootRun(axis)

	g.seedDimension(r)
	if r.behavior == widget.MatchParent && g.rootFixed(axis) && g.nodes[r.dimension].Resolved {
		g.addTarget(r.start, root.start, startA.EffectiveMargin())
		g.addTarget(r.end, root.end, -endA.EffectiveMargin())
		return
	}

	if g.nodes[r.dimension].Resolved && g.state[box].measured {
		g.applyMeasured(r)
		return
	}
	g.applyUnmeasured(r)
}

// seedDimension resolves the run's dimension when the box's size doesn't depend on
// its anchors.
func (g *Graph) seedDimension(r *axisRun) {
	box, axis := r.box, r.axis
	st := g.state[box]
	if st.measured {
		g.resolve(r.dimension, box.Size(axis))
		return
	}
	r.behavior = st.behavior[axis]
	switch {
	case r.behavior == widget.MatchParent && g.rootFixed(axis):
		margins := box.StartOf(axis).EffectiveMargin() + box.EndOf(axis).EffectiveMargin()
		g.resolve(r.dimension, g.container.Size(axis)-margins)
	case r.behavior == widget.Fixed:
		g.resolve(r.dimension, box.Size(axis))
	}
}

func (g *Graph) applyMeasured(r *axisRun) {
	box, axis := r.box, r.axis
	startA, endA := box.StartOf(axis), box.EndOf(axis)
	size := g.nodes[r.dimension].Value
	withBaseline := r.baseline != NoNode && box.HasBaseline

	switch {
	case startA.IsConnected() && endA.IsConnected():
		if box.InChain(axis) {
			g.nodes[r.start].Margin = startA.EffectiveMargin()
			g.nodes[r.end].Margin = -endA.EffectiveMargin()
		} else {
			if t := g.targetOf(startA); t != NoNode {
				g.addTarget(r.start, t, startA.EffectiveMargin())
			}
			if t := g.targetOf(endA); t != NoNode {
				g.addTarget(r.end, t, -endA.EffectiveMargin())
			}
			g.nodes[r.start].delegateToOwner = true
			g.nodes[r.end].delegateToOwner = true
		}
		if withBaseline {
			g.addTarget(r.baseline, r.start, box.Baseline)
		}
	case startA.IsConnected():
		if t := g.targetOf(startA); t != NoNode {
			g.addTarget(r.start, t, startA.EffectiveMargin())
			g.addTarget(r.end, r.start, size)
			if withBaseline {
				g.addTarget(r.baseline, r.start, box.Baseline)
			}
		}
	case endA.IsConnected():
		if t := g.targetOf(endA); t != NoNode {
			g.addTarget(r.end, t, -endA.EffectiveMargin())
			g.addTarget(r.start, r.end, -size)
		}
		if withBaseline {
			g.addTarget(r.baseline, r.start, box.Baseline)
		}
	case r.baseline != NoNode && box.Anchor(widget.Baseline).IsConnected():
		if t := g.targetOf(box.Anchor(widget.Baseline)); t != NoNode {
			g.addTarget(r.baseline, t, 0)
			g.addTarget(r.start, r.baseline, -box.Baseline)
			g.addTarget(r.end, r.start, size)
		}
	default:
		if !box.Anchor(widget.Center).IsConnected() {
			g.addTarget(r.start, g.rootRun(axis).start, box.Pos(axis))
			g.addTarget(r.end, r.start, size)
			if withBaseline {
				g.addTarget(r.baseline, r.start, box.Baseline)
			}
		}
	}
}

func (g *Graph) applyUnmeasured(r *axisRun) {
	box, axis := r.box, r.axis
	startA, endA := box.StartOf(axis), box.EndOf(axis)

	if r.behavior == widget.MatchConstraint && !g.nodes[r.dimension].Resolved {
		switch r.match {
		case widget.MatchRatio:
			if !g.ratioPair(box) {
				other := g.boxRun(box, axis.Other())
				g.followDimension(r, other.dimension)
				g.nodes[r.start].targets = append(g.nodes[r.start].targets, r.dimension)
				g.nodes[r.end].targets = append(g.nodes[r.end].targets, r.dimension)
			}
		case widget.MatchPercent:
			g.followDimension(r, g.rootRun(axis).dimension)
		}
	} else {
		g.addDependency(r.dimension, runDep(r.id))
	}

	withBaseline := r.baselineDimension != NoNode
	switch {
	case startA.IsConnected() && endA.IsConnected():
		if box.InChain(axis) {
			g.nodes[r.start].Margin = startA.EffectiveMargin()
			g.nodes[r.end].Margin = -endA.EffectiveMargin()
		} else {
			r.mode = modeCenter
			if t := g.targetOf(startA); t != NoNode {
				g.addDependency(t, runDep(r.id))
			}
			if t := g.targetOf(endA); t != NoNode {
				g.addDependency(t, runDep(r.id))
			}
		}
		if withBaseline {
			g.addSizedTarget(r.baseline, r.start, 1, r.baselineDimension, r.dimension)
		}
	case startA.IsConnected():
		if t := g.targetOf(startA); t != NoNode {
			g.addTarget(r.start, t, startA.EffectiveMargin())
			g.addSizedTarget(r.end, r.start, 1, r.dimension, r.dimension)
			if withBaseline {
				g.addSizedTarget(r.baseline, r.start, 1, r.baselineDimension, r.dimension)
			}
		}
	case endA.IsConnected():
		if t := g.targetOf(endA); t != NoNode {
			g.addTarget(r.end, t, -endA.EffectiveMargin())
			g.addSizedTarget(r.start, r.end, -1, r.dimension, r.dimension)
			if withBaseline {
				g.addSizedTarget(r.baseline, r.start, 1, r.baselineDimension, r.dimension)
			}
		}
	case r.baseline != NoNode && box.Anchor(widget.Baseline).IsConnected():
		if t := g.targetOf(box.Anchor(widget.Baseline)); t != NoNode {
			g.addTarget(r.baseline, t, 0)
			if withBaseline {
				g.addSizedTarget(r.start, r.baseline, -1, r.baselineDimension, r.dimension)
			} else {
				g.addTarget(r.start, r.baseline, 0)
			}
			g.addSizedTarget(r.end, r.start, 1, r.dimension, r.dimension)
		}
	default:
		g.addTarget(r.start, g.rootRun(axis).start, box.Pos(axis))
		g.addSizedTarget(r.end, r.start, 1, r.dimension, r.dimension)
		if withBaseline {
			g.addSizedTarget(r.baseline, r.start, 1, r.baselineDimension, r.dimension)
		}
	}

	if len(g.nodes[r.dimension].targets) == 0 {
		g.nodes[r.dimension].ReadyToSolve = true
	}
}

// followDimension makes the run's dimension wait for src and hand its computation
// to the run; start and end are woken once the dimension resolves.
func (g *Graph) followDimension(r *axisRun, src NodeID) {
	g.nodes[r.dimension].targets = append(g.nodes[r.dimension].targets, src)
	g.nodes[src].dependents = append(g.nodes[src].dependents, nodeDep(r.dimension))
	g.nodes[r.dimension].delegateToOwner = true
	g.nodes[r.dimension].dependents = append(g.nodes[r.dimension].dependents, nodeDep(r.start), nodeDep(r.end))
}

// updateAxis recomputes a box run after one of its inputs changed.
func (g *Graph) updateAxis(r *axisRun) {
	box := r.box
	if g.ratioPair(box) {
		g.resolveRatioPair(box)
	}
	if r.mode == modeCenter {
		g.updateCenter(r)
		return
	}

	if !g.nodes[r.dimension].Resolved && r.behavior == widget.MatchConstraint {
		switch r.match {
		case widget.MatchRatio:
			if !g.ratioPair(box) {
				if other := g.nodes[g.boxRun(box, r.axis.Other()).dimension]; other.Resolved {
					g.resolve(r.dimension, ratioSize(box, r.axis, other.Value))
				}
			}
		case widget.MatchPercent:
			if root := g.nodes[g.rootRun(r.axis).dimension]; root.Resolved {
				g.resolve(r.dimension, round(float64(root.Value)*box.MatchPercent[r.axis]))
			}
		}
	}

	start, end := g.nodes[r.start], g.nodes[r.end]
	if !start.ReadyToSolve || !end.ReadyToSolve {
		return
	}
	dim := g.nodes[r.dimension]
	if start.Resolved && end.Resolved && dim.Resolved {
		return
	}
	startT, endT := g.positionalTarget(start), g.positionalTarget(end)
	if startT == NoNode || endT == NoNode {
		return
	}
	startPos := g.nodes[startT].Value + start.Margin
	endPos := g.nodes[endT].Value + end.Margin

	if !dim.Resolved && r.behavior == widget.MatchConstraint {
		switch r.match {
		case widget.MatchSpread:
			if !box.InChain(r.axis) {
				g.resolve(r.start, startPos)
				g.resolve(r.end, endPos)
				g.resolve(r.dimension, endPos-startPos)
				return
			}
		case widget.MatchWrap:
			g.resolve(r.dimension, limited(box, r.axis, min(endPos-startPos, dim.WrapValue)))
		}
	}

	dim = g.nodes[r.dimension]
	if !dim.Resolved {
		return
	}
	bias := box.Bias[r.axis]
	if startT == endT {
		startPos, endPos = g.nodes[startT].Value, g.nodes[endT].Value
		bias = 0.5
	}
	avail := endPos - startPos - dim.Value
	g.resolve(r.start, round(float64(startPos)+float64(avail)*bias))
	g.resolve(r.end, g.nodes[r.start].Value+dim.Value)
}

// updateCenter positions a box anchored on both sides between its two targets.
func (g *Graph) updateCenter(r *axisRun) {
	box, axis := r.box, r.axis
	startA, endA := box.StartOf(axis), box.EndOf(axis)
	startT, endT := g.targetOf(startA), g.targetOf(endA)
	if startT == NoNode || endT == NoNode {
		return
	}
	if !g.nodes[startT].Resolved || !g.nodes[endT].Resolved {
		return
	}
	startPos := g.nodes[startT].Value + startA.EffectiveMargin()
	endPos := g.nodes[endT].Value - endA.EffectiveMargin()
	distance := endPos - startPos

	if !g.nodes[r.dimension].Resolved && r.behavior == widget.MatchConstraint {
		g.resolveDimension(r, distance)
	}
	dim := g.nodes[r.dimension]
	if !dim.Resolved {
		return
	}
	if dim.Value == distance {
		g.resolve(r.start, startPos)
		g.resolve(r.end, endPos)
		return
	}
	bias := box.Bias[axis]
	if startT == endT {
		startPos, endPos = g.nodes[startT].Value, g.nodes[endT].Value
		bias = 0.5
	}
	avail := endPos - startPos - dim.Value
	g.resolve(r.start, round(float64(startPos)+float64(avail)*bias))
	g.resolve(r.end, g.nodes[r.start].Value+dim.Value)
}

// resolveDimension sizes a match-constraint run once the space between its
// anchors is known.
func (g *Graph) resolveDimension(r *axisRun, distance int) {
	box, axis := r.box, r.axis
	switch r.match {
	case widget.MatchSpread:
		g.resolve(r.dimension, limited(box, axis, distance))
	case widget.MatchPercent:
		if root := g.nodes[g.rootRun(axis).dimension]; root.Resolved {
			size := round(float64(root.Value) * box.MatchPercent[axis])
			g.resolve(r.dimension, limited(box, axis, size))
		}
	case widget.MatchWrap:
		wrap := limited(box, axis, g.nodes[r.dimension].WrapValue)
		g.resolve(r.dimension, min(wrap, distance))
	case widget.MatchRatio:
		if g.ratioPair(box) {
			return
		}
		if other := g.nodes[g.boxRun(box, axis.Other()).dimension]; other.Resolved {
			g.resolve(r.dimension, ratioSize(box, axis, other.Value))
		}
	}
}

// ratioPair reports whether both dimensions of box follow its ratio, so they have
// to be computed together from the available rectangle.
func (g *Graph) ratioPair(box *widget.Box) bool {
	if box.Ratio <= 0 || box.InChain(widget.Horizontal) || box.InChain(widget.Vertical) {
		return false
	}
	h, v := g.boxRun(box, widget.Horizontal), g.boxRun(box, widget.Vertical)
	return h.behavior == widget.MatchConstraint && h.match == widget.MatchRatio &&
		v.behavior == widget.MatchConstraint && v.match == widget.MatchRatio
}

// resolveRatioPair sizes a box whose width and height both follow its ratio. With
// all four anchors the box is fitted inside the rectangle; with one anchored pair
// the other dimension follows the constrained one.
func (g *Graph) resolveRatioPair(box *widget.Box) {
	h, v := g.boxRun(box, widget.Horizontal), g.boxRun(box, widget.Vertical)
	if g.nodes[h.dimension].Resolved && g.nodes[v.dimension].Resolved {
		return
	}
	x1, x2, hok := g.span(box, widget.Horizontal)
	y1, y2, vok := g.span(box, widget.Vertical)
	ratio := box.Ratio

	var w, ht int
	switch {
	case hok == spanResolved && vok == spanResolved:
		w, ht = insetRatio(x2-x1, y2-y1, ratio, box.RatioSide)
	case hok == spanResolved && vok == spanMissing:
		w = limited(box, widget.Horizontal, x2-x1)
		ht = round(float64(w) / ratio)
		if l := limited(box, widget.Vertical, ht); l != ht {
			ht = l
			w = round(float64(ht) * ratio)
		}
	case vok == spanResolved && hok == spanMissing:
		ht = limited(box, widget.Vertical, y2-y1)
		w = round(float64(ht) * ratio)
		if l := limited(box, widget.Horizontal, w); l != w {
			w = l
			ht = round(float64(w) / ratio)
		}
	default:
		return
	}
	g.resolve(h.dimension, w)
	g.resolve(v.dimension, ht)
	g.queue = append(g.queue, runDep(h.id), runDep(v.id))
	g.drain()
}

type spanState uint8

const (
	spanMissing spanState = iota
	spanPending
	spanResolved
)

// span returns the space between the box's anchor targets on axis, margins
// removed.
func (g *Graph) span(box *widget.Box, axis widget.Axis) (int, int, spanState) {
	startA, endA := box.StartOf(axis), box.EndOf(axis)
	s, e := g.targetOf(startA), g.targetOf(endA)
	if s == NoNode || e == NoNode {
		return 0, 0, spanMissing
	}
	if !g.nodes[s].Resolved || !g.nodes[e].Resolved {
		return 0, 0, spanPending
	}
	return g.nodes[s].Value + startA.EffectiveMargin(), g.nodes[e].Value - endA.EffectiveMargin(), spanResolved
}

// insetRatio fits a rectangle of the given width/height ratio into dx × dy.
func insetRatio(dx, dy int, ratio float64, side widget.RatioSide) (int, int) {
	switch side {
	case widget.RatioWidth:
		return round(float64(dy) * ratio), dy
	case widget.RatioHeight:
		return dx, round(float64(dx) / ratio)
	}
	if w := round(float64(dy) * ratio); w <= dx {
		return w, dy
	}
	return dx, round(float64(dx) / ratio)
}

// ratioSize derives the size on axis from the size on the other axis.
func ratioSize(box *widget.Box, axis widget.Axis, other int) int {
	if axis == widget.Horizontal {
		return round(float64(other) * box.Ratio)
	}
	return round(float64(other) / box.Ratio)
}

// limited clamps a match-constraint size to the box's min and max. A max of zero
// means unbounded.
func limited(box *widget.Box, axis widget.Axis, v int) int {
	value := max(box.MatchMin[axis], v)
	if m := box.MatchMax[axis]; m > 0 {
		value = min(m, value)
	}
	return value
}

// positionalTarget returns the first target of n holding a position.
func (g *Graph) positionalTarget(n Node) NodeID {
	for _, t := range n.targets {
		if !g.nodes[t].edge.IsDimension() {
			return t
		}
	}
	return NoNode
}

func round(x float64) int {
	return int(math.Floor(x + 0.5))
}
