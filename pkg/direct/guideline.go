package direct

import "github.com/matzehuels/anchorflow/pkg/widget"

func (g *Graph) newGuidelineRun(box *widget.Box) RunID {
	id := RunID(len(g.runs))
	r := &GuidelineRun{runBase: g.newBase(id, box, box.Guide.Axis), guide: *box.Guide}
	r.behavior = widget.Fixed
	g.runs = append(g.runs, r)
	return id
}

// applyGuideline binds the guideline to the container edge it is measured from and
// makes the guideline box's own edges follow it, so boxes anchored to the
// guideline see its position.
func (g *Graph) applyGuideline(r *GuidelineRun) {
	root := g.rootRun(r.axis)
	start := &g.nodes[r.start]
	switch r.guide.Mode {
	case widget.GuideBegin:
		start.targets = append(start.targets, root.start)
		start.Margin = r.guide.Offset
		g.nodes[root.start].dependents = append(g.nodes[root.start].dependents, nodeDep(r.start))
	case widget.GuideEnd:
		start.targets = append(start.targets, root.end)
		start.Margin = -r.guide.Offset
		g.nodes[root.end].dependents = append(g.nodes[root.end].dependents, nodeDep(r.start))
	default:
		start.delegateToOwner = true
		start.targets = append(start.targets, root.end)
		g.nodes[root.end].dependents = append(g.nodes[root.end].dependents, nodeDep(r.start))
	}

	own := g.boxRun(r.box, r.axis)
	for _, n := range [...]NodeID{own.start, own.end} {
		g.nodes[r.start].dependents = append(g.nodes[r.start].dependents, nodeDep(n))
		g.nodes[n].targets = append(g.nodes[n].targets, r.start)
	}
}

// updateGuideline places a percent guideline once the container end is known.
func (g *Graph) updateGuideline(r *GuidelineRun) {
	start := g.nodes[r.start]
	if !start.ReadyToSolve || start.Resolved || len(start.targets) == 0 {
		return
	}
	target := g.nodes[start.targets[0]]
	g.resolve(r.start, round(float64(target.Value)*r.guide.Percent))
}
