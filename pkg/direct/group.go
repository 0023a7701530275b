package direct

import (
	"slices"

	"github.com/matzehuels/anchorflow/pkg/widget"
)

// GroupDirection says through which edge a group was entered from the container.
type GroupDirection uint8

const (
	ViaStart GroupDirection = iota
	ViaEnd
	ViaBaseline
)

// RunGroup is a set of runs connected to each other, reached from one container
// edge. Groups are used to compute wrap sizes without the solver.
type RunGroup struct {
	Index     int
	Direction GroupDirection
	// Dual is set when the group also reaches the opposite container edge.
	Dual bool

	first RunID
	runs  []RunID
}

// First returns the run the group was entered through.
func (rg *RunGroup) First() RunID { return rg.first }

// Runs returns the group's runs in discovery order.
func (rg *RunGroup) Runs() []RunID { return rg.runs }

// findGroups collects the groups hanging off the horizontal container run, then
// the vertical one.
func (g *Graph) findGroups() {
	for _, axis := range widget.Axes {
		g.findGroup(g.rootRun(axis))
	}
}

func (g *Graph) findGroup(root *axisRun) {
	for _, d := range g.nodes[root.start].dependents {
		if d.isRun {
			g.applyGroup(g.runs[d.id].base().start, ViaStart, root.end, nil)
		} else {
			g.applyGroup(NodeID(d.id), ViaStart, root.end, nil)
		}
	}
	for _, d := range g.nodes[root.end].dependents {
		if d.isRun {
			g.applyGroup(g.runs[d.id].base().end, ViaEnd, root.start, nil)
		} else {
			g.applyGroup(NodeID(d.id), ViaEnd, root.start, nil)
		}
	}
	if root.baseline != NoNode {
		for _, d := range g.nodes[root.baseline].dependents {
			if !d.isRun {
				g.applyGroup(NodeID(d.id), ViaBaseline, NoNode, nil)
			}
		}
	}
}

// applyGroup adds the run owning node to group, creating the group if needed, and
// spreads over every node connected to the run's edges.
func (g *Graph) applyGroup(node NodeID, dir GroupDirection, end NodeID, group *RunGroup) {
	id := g.nodes[node].owner
	r := g.runs[id].base()
	if r.group >= 0 || g.isRoot(id) {
		return
	}
	if group == nil {
		group = &RunGroup{Index: len(g.groups), Direction: dir, first: id}
		g.groups = append(g.groups, group)
	}
	r.group = group.Index
	group.runs = append(group.runs, id)

	var baseline NodeID = NoNode
	if a := g.axisRunOf(id); a != nil {
		baseline = a.baseline
	}
	spread := func(n NodeID, dir GroupDirection) {
		for _, d := range g.nodes[n].dependents {
			if !d.isRun {
				g.applyGroup(NodeID(d.id), dir, end, group)
			}
		}
	}
	spread(r.start, ViaStart)
	spread(r.end, ViaEnd)
	if baseline != NoNode {
		spread(baseline, ViaBaseline)
	}
	follow := func(n NodeID, dir GroupDirection) {
		for _, t := range g.nodes[n].targets {
			if t == end {
				group.Dual = true
			}
			g.applyGroup(t, dir, end, group)
		}
	}
	follow(r.start, ViaStart)
	follow(r.end, ViaEnd)
	if baseline != NoNode {
		follow(baseline, ViaBaseline)
	}
}

// computeWrap returns the smallest container size on axis that holds every group.
func (g *Graph) computeWrap(axis widget.Axis) int {
	size := 0
	for _, rg := range g.groups {
		size = max(size, g.computeWrapSize(rg, axis))
	}
	return size
}

// computeWrapSize measures the extent of one group on axis. A group whose first run
// is bound to both container edges keeps its bias: the gaps on either side are
// scaled so that the run stays at the same relative position.
func (g *Graph) computeWrapSize(rg *RunGroup, axis widget.Axis) int {
	first := g.runs[rg.first].base()
	if first.axis != axis {
		return 0
	}
	root := g.rootRun(axis)
	start, end := g.nodes[first.start], g.nodes[first.end]
	withStart := slices.Contains(start.targets, root.start)
	withEnd := slices.Contains(end.targets, root.end)
	dimension := g.wrapDimension(rg.first)

	switch {
	case withStart && withEnd:
		maxPos := g.traverseStart(first.start, 0, map[NodeID]bool{})
		minPos := g.traverseEnd(first.end, 0, map[NodeID]bool{})

		endGap := maxPos - dimension
		if endGap >= -end.Margin {
			endGap += end.Margin
		}
		startGap := -minPos - dimension - start.Margin
		if startGap >= start.Margin {
			startGap -= start.Margin
		}
		bias := first.box.Bias[axis]
		gap := 0.0
		switch {
		case bias >= 1:
			gap = float64(startGap)
		case bias > 0:
			gap = float64(startGap)/bias + float64(endGap)/(1-bias)
		}
		startGap = int(0.5 + gap*bias)
		endGap = int(0.5 + gap*(1-bias))
		return start.Margin + startGap + dimension + endGap - end.Margin
	case withStart:
		maxPos := g.traverseStart(first.start, start.Margin, map[NodeID]bool{})
		return max(maxPos, start.Margin+dimension)
	case withEnd:
		minPos := g.traverseEnd(first.end, end.Margin, map[NodeID]bool{})
		return max(-minPos, -end.Margin+dimension)
	}
	return start.Margin + dimension - end.Margin
}

// traverseStart returns the furthest position reached by following dependents
// forward from node placed at pos.
func (g *Graph) traverseStart(node NodeID, pos int, path map[NodeID]bool) int {
	if path[node] {
		return pos
	}
	path[node] = true
	defer delete(path, node)

	n := g.nodes[node]
	r := g.runs[n.owner].base()
	position := pos
	for _, d := range n.dependents {
		if d.isRun {
			continue
		}
		next := g.nodes[d.id]
		if next.owner == n.owner {
			continue
		}
		position = max(position, g.traverseStart(NodeID(d.id), pos+next.Margin, path))
	}
	if node == r.start {
		dimension := g.wrapDimension(n.owner)
		position = max(position, g.traverseStart(r.end, pos+dimension, path))
		position = max(position, pos+dimension-g.nodes[r.end].Margin)
	}
	return position
}

// traverseEnd is traverseStart walking backward, returning the smallest position.
func (g *Graph) traverseEnd(node NodeID, pos int, path map[NodeID]bool) int {
	if path[node] {
		return pos
	}
	path[node] = true
	defer delete(path, node)

	n := g.nodes[node]
	r := g.runs[n.owner].base()
	position := pos
	for _, d := range n.dependents {
		if d.isRun {
			continue
		}
		next := g.nodes[d.id]
		if next.owner == n.owner {
			continue
		}
		position = min(position, g.traverseEnd(NodeID(d.id), pos+next.Margin, path))
	}
	if node == r.end {
		dimension := g.wrapDimension(n.owner)
		position = min(position, g.traverseEnd(r.start, pos-dimension, path))
		position = min(position, pos-dimension-g.nodes[r.start].Margin)
	}
	return position
}
