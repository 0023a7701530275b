package direct

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorflow/pkg/widget"
)

// Options configures a Graph.
type Options struct {
	// Measurer measures box content. Defaults to echoing the box's current size.
	Measurer widget.Measurer

	// Logger receives debug output. Defaults to log.Default().
	Logger *log.Logger

	// Trace records every node resolution, see [Graph.Trace].
	Trace bool
}

// Graph is the direct-resolution engine for one container. It is not safe for
// concurrent use.
type Graph struct {
	container *widget.Container
	measurer  widget.Measurer
	logger    *log.Logger
	trace     bool

	nodes  []Node
	runs   []Run
	active []RunID
	groups []*RunGroup
	chains map[chainKey]RunID
	state  map[*widget.Box]*boxState
	root   [2]RunID

	queue    []dependent
	head     int
	draining bool
	events   []TraceEvent

	needBuild        bool
	needRedoMeasures bool
	rootBehavior     [2]widget.DimensionBehavior
}

type chainKey struct {
	box  *widget.Box
	axis widget.Axis
}

// boxState is what the engine knows about a box between passes: the normalized
// sizing kinds from the measurement pass and the measured wrap sizes.
type boxState struct {
	measured bool
	behavior [2]widget.DimensionBehavior
	match    [2]widget.MatchKind
	wrap     [2]int
	runs     [2]RunID
}

// Stats summarizes the graph.
type Stats struct {
	Nodes    int
	Runs     int
	Chains   int
	Groups   int
	Resolved int
}

// New returns a graph for c. The graph is built lazily on the first measure.
func New(c *widget.Container, opts Options) *Graph {
	g := &Graph{
		container:        c,
		measurer:         opts.Measurer,
		logger:           opts.Logger,
		trace:            opts.Trace,
		needBuild:        true,
		needRedoMeasures: true,
		root:             [2]RunID{NoRun, NoRun},
	}
	if g.measurer == nil {
		g.measurer = widget.MeasurerFunc(echoMeasure)
	}
	if g.logger == nil {
		g.logger = log.Default()
	}
	return g
}

func echoMeasure(b *widget.Box, spec widget.MeasureSpec) widget.MeasureResult {
	res := widget.MeasureResult{Width: b.Width, Height: b.Height, Baseline: b.Baseline, HasBaseline: b.HasBaseline}
	if spec.Horizontal == widget.Fixed {
		res.Width = spec.Width
	}
	if spec.Vertical == widget.Fixed {
		res.Height = spec.Height
	}
	return res
}

// InvalidateGraph marks the topology as changed; the next measure rebuilds it.
func (g *Graph) InvalidateGraph() { g.needBuild = true }

// InvalidateMeasures marks box content as changed; the next measure re-measures
// every box and resolves again on the existing graph. Resizing the container has
// the same effect.
func (g *Graph) InvalidateMeasures() { g.needRedoMeasures = true }

func (g *Graph) stateOf(b *widget.Box) *boxState {
	st, ok := g.state[b]
	if !ok {
		st = &boxState{
			behavior: b.Behavior,
			match:    b.Match,
			runs:     [2]RunID{NoRun, NoRun},
		}
		g.state[b] = st
	}
	return st
}

// resetState forgets measurements and normalized kinds.
func (g *Graph) resetState() {
	g.state = make(map[*widget.Box]*boxState, len(g.container.Children())+1)
	g.stateOf(&g.container.Box)
	for _, b := range g.container.Children() {
		g.stateOf(b)
	}
}

// BuildGraph creates the runs for the container and its children and wires their
// nodes. Previously resolved values are dropped.
func (g *Graph) BuildGraph() {
	if g.state == nil {
		g.resetState()
	}
	g.nodes = g.nodes[:0]
	g.runs = g.runs[:0]
	g.active = g.active[:0]
	g.groups = g.groups[:0]
	g.chains = make(map[chainKey]RunID)
	g.events = g.events[:0]

	root := &g.container.Box
	rst := g.stateOf(root)
	for _, axis := range widget.Axes {
		id := g.newAxisRun(root, axis)
		g.root[axis] = id
		rst.runs[axis] = id
		g.active = append(g.active, id)
	}

	children := g.container.Children()
	for _, b := range children {
		st := g.stateOf(b)
		for _, axis := range widget.Axes {
			id := g.newAxisRun(b, axis)
			st.runs[axis] = id
			r := g.runs[id].base()
			r.behavior = st.behavior[axis]
			r.match = st.match[axis]
			g.nodes[r.dimension].WrapValue = st.wrap[axis]
		}
	}

	var chainRuns []RunID
	for _, b := range children {
		if b.IsGuideline() {
			g.active = append(g.active, g.newGuidelineRun(b))
			continue
		}
		for _, axis := range widget.Axes {
			if !b.InChain(axis) {
				g.active = append(g.active, g.state[b].runs[axis])
				continue
			}
			if _, ok := g.chains[chainKey{b, axis}]; !ok {
				chainRuns = append(chainRuns, g.newChainRun(b, axis).id)
			}
		}
	}
	g.active = append(g.active, chainRuns...)

	for _, id := range g.active {
		g.clearRun(id)
	}
	for _, id := range g.active {
		if g.isRoot(id) {
			continue
		}
		g.applyRun(id)
	}

	g.findGroups()
	g.needBuild = false
	g.logger.Debug("built dependency graph",
		"nodes", len(g.nodes),
		"runs", len(g.active),
		"chains", len(chainRuns),
		"groups", len(g.groups))
}

func (g *Graph) isRoot(id RunID) bool {
	return id == g.root[widget.Horizontal] || id == g.root[widget.Vertical]
}

// DirectMeasure lays out the container's children. It returns true when every
// run resolved; false means the layout needs a general solver. Boxes receive
// whatever was resolved either way.
func (g *Graph) DirectMeasure(optimizeWrap bool) bool {
	g.prepare()

	hb, vb := g.rootBehavior[widget.Horizontal], g.rootBehavior[widget.Vertical]
	if hb == widget.WrapContent || vb == widget.WrapContent {
		if optimizeWrap {
			for _, id := range g.active {
				if !g.supportsWrap(id) {
					optimizeWrap = false
					break
				}
			}
		}
		if optimizeWrap && hb == widget.WrapContent {
			g.resolveWrap(widget.Horizontal)
			hb = widget.Fixed
		}
		if optimizeWrap && vb == widget.WrapContent {
			g.resolveWrap(widget.Vertical)
			vb = widget.Fixed
		}
	}

	checkRoot := false
	if hb == widget.Fixed || hb == widget.MatchParent {
		g.resolveRootEnd(widget.Horizontal)
		g.measureBoxes()
		if vb == widget.Fixed || vb == widget.MatchParent {
			g.resolveRootEnd(widget.Vertical)
		}
		g.measureBoxes()
		checkRoot = true
	}

	for _, id := range g.active {
		if g.isRoot(id) && !g.Resolved(id) {
			continue
		}
		g.applyToBox(id)
	}
	ok := g.allResolved(checkRoot, func(RunID) bool { return true })
	g.logger.Debug("direct measure", "resolved", ok, "trace", len(g.events))
	return ok
}

// DirectMeasureSetup prepares a two-phase measure: boxes are measured, the graph is
// built and the container origin resolved. Follow with [Graph.DirectMeasureWithAxis]
// for each axis.
func (g *Graph) DirectMeasureSetup() bool {
	g.prepare()
	return true
}

// DirectMeasureWithAxis solves one axis after [Graph.DirectMeasureSetup].
func (g *Graph) DirectMeasureWithAxis(optimizeWrap bool, axis widget.Axis) bool {
	g.checkContainer()
	if g.needBuild || g.needRedoMeasures {
		g.prepare()
	}
	behavior := g.rootBehavior[axis]
	onAxis := func(id RunID) bool { return g.runs[id].base().axis == axis }

	if optimizeWrap && behavior == widget.WrapContent {
		for _, id := range g.active {
			if onAxis(id) && !g.supportsWrap(id) {
				optimizeWrap = false
				break
			}
		}
		if optimizeWrap {
			g.resolveWrap(axis)
			behavior = widget.Fixed
		}
	}

	checkRoot := false
	if behavior == widget.Fixed || behavior == widget.MatchParent {
		g.resolveRootEnd(axis)
		checkRoot = true
	}
	g.measureBoxes()

	for _, id := range g.active {
		if !onAxis(id) || (g.isRoot(id) && !g.Resolved(id)) {
			continue
		}
		g.applyToBox(id)
	}
	return g.allResolved(checkRoot, onAxis)
}

// prepare re-measures and rebuilds when needed, then resolves the container origin.
func (g *Graph) prepare() {
	g.checkContainer()
	switch {
	case g.needBuild:
		g.rebuild()
	case g.needRedoMeasures:
		if !g.remeasure() {
			g.rebuild()
		}
	}
	g.resolve(g.rootRun(widget.Horizontal).start, g.container.X)
	g.resolve(g.rootRun(widget.Vertical).start, g.container.Y)
	g.measureBoxes()
}

func (g *Graph) rebuild() {
	g.resetState()
	g.rootBehavior = g.container.Behavior
	g.basicMeasure()
	g.container.X, g.container.Y = 0, 0
	g.BuildGraph()
	g.needRedoMeasures = false
}

// checkContainer invalidates the graph when the container changed since the last
// measure: a new sizing behavior needs a rebuild, a new size only new measures.
func (g *Graph) checkContainer() {
	if g.needBuild || g.root[widget.Horizontal] == NoRun {
		return
	}
	if g.container.Behavior != g.rootBehavior {
		g.needBuild = true
		return
	}
	for _, axis := range widget.Axes {
		dim := g.nodes[g.rootRun(axis).dimension]
		if dim.Resolved && dim.Value != g.container.Size(axis) {
			g.needRedoMeasures = true
		}
	}
}

// remeasure keeps the graph's edges and forgets every resolved value, then measures
// the boxes again and seeds the sizes known up front. It reports false when a box
// is new to the graph or changed between measured and unmeasured, which changes how
// its run is wired.
func (g *Graph) remeasure() bool {
	prev := make(map[*widget.Box]bool, len(g.state))
	for b, st := range g.state {
		prev[b] = st.measured
		st.measured = false
		st.wrap = [2]int{}
	}
	g.basicMeasure()
	for b, st := range g.state {
		if measured, known := prev[b]; !known || measured != st.measured {
			return false
		}
	}

	for id := range g.runs {
		g.resetRun(RunID(id))
	}
	g.events = g.events[:0]
	g.container.X, g.container.Y = 0, 0
	for _, b := range g.container.Children() {
		if b.IsGuideline() {
			continue
		}
		st := g.state[b]
		for _, axis := range widget.Axes {
			r := g.boxRun(b, axis)
			g.nodes[r.dimension].WrapValue = st.wrap[axis]
			g.seedDimension(r)
		}
	}
	g.needRedoMeasures = false
	g.logger.Debug("reset dependency graph", "nodes", len(g.nodes), "runs", len(g.active))
	return true
}

func (g *Graph) resolveWrap(axis widget.Axis) {
	size := g.computeWrap(axis)
	g.container.SetSize(axis, size)
	g.resolve(g.rootRun(axis).dimension, size)
}

func (g *Graph) resolveRootEnd(axis widget.Axis) {
	root := g.rootRun(axis)
	start := g.nodes[root.start].Value
	end := start + g.container.Size(axis)
	g.resolve(root.end, end)
	g.resolve(root.dimension, end-start)
}

func (g *Graph) allResolved(checkRoot bool, include func(RunID) bool) bool {
	for _, id := range g.active {
		if !include(id) || (!checkRoot && g.isRoot(id)) {
			continue
		}
		if !g.Resolved(id) {
			return false
		}
	}
	return true
}

// Resolved reports whether the run is fully resolved. Chains need every member
// resolved; guidelines only need their position.
func (g *Graph) Resolved(id RunID) bool {
	r := g.runs[id].base()
	switch c := g.runs[id].(type) {
	case *GuidelineRun:
		return g.nodes[r.start].Resolved
	case *ChainRun:
		if !g.nodes[r.start].Resolved || !g.nodes[r.end].Resolved {
			return false
		}
		for _, m := range c.members {
			if !g.Resolved(m) {
				return false
			}
		}
		return true
	}
	return g.nodes[r.start].Resolved && g.nodes[r.end].Resolved && g.nodes[r.dimension].Resolved
}

// Runs returns the top-level runs: the container runs, box runs not in a chain,
// guideline runs and chains, in that order.
func (g *Graph) Runs() []RunID { return g.active }

// Run returns the run with the given ID.
func (g *Graph) Run(id RunID) Run { return g.runs[id] }

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id NodeID) Node { return g.nodes[id] }

// Container returns the container the graph lays out.
func (g *Graph) Container() *widget.Container { return g.container }

// BoxRun returns the run of b on axis, or NoRun when the graph doesn't know b.
func (g *Graph) BoxRun(b *widget.Box, axis widget.Axis) RunID {
	if st, ok := g.state[b]; ok {
		return st.runs[axis]
	}
	return NoRun
}

// ChainOf returns the chain b belongs to on axis.
func (g *Graph) ChainOf(b *widget.Box, axis widget.Axis) (*ChainRun, bool) {
	id, ok := g.chains[chainKey{b, axis}]
	if !ok {
		return nil, false
	}
	return g.runs[id].(*ChainRun), true
}

// Groups returns the run groups found at build time.
func (g *Graph) Groups() []*RunGroup { return g.groups }

// Trace returns the resolutions recorded since the last measure, in order. It is
// empty unless [Options.Trace] was set.
func (g *Graph) Trace() []TraceEvent { return g.events }

// Stats counts the graph's parts.
func (g *Graph) Stats() Stats {
	s := Stats{Nodes: len(g.nodes), Runs: len(g.active), Groups: len(g.groups)}
	for _, id := range g.active {
		if _, ok := g.runs[id].(*ChainRun); ok {
			s.Chains++
		}
		if g.Resolved(id) {
			s.Resolved++
		}
	}
	return s
}

func (g *Graph) rootRun(axis widget.Axis) *axisRun { return g.axisRunOf(g.root[axis]) }

// rootFixed reports whether the container's size on axis is known up front.
func (g *Graph) rootFixed(axis widget.Axis) bool {
	b := g.rootBehavior[axis]
	return b == widget.Fixed || b == widget.MatchParent
}

func (g *Graph) boxRun(b *widget.Box, axis widget.Axis) *axisRun {
	return g.axisRunOf(g.state[b].runs[axis])
}

// targetOf returns the node an anchor's connection points at, or NoNode when the
// anchor is free or targets a box outside the graph.
func (g *Graph) targetOf(a *widget.Anchor) NodeID {
	t := a.Target()
	if t == nil {
		return NoNode
	}
	st, ok := g.state[t.Owner()]
	if !ok {
		return NoNode
	}
	switch t.Type {
	case widget.Left:
		return g.axisRunOf(st.runs[widget.Horizontal]).start
	case widget.Right:
		return g.axisRunOf(st.runs[widget.Horizontal]).end
	case widget.Top:
		return g.axisRunOf(st.runs[widget.Vertical]).start
	case widget.Bottom:
		return g.axisRunOf(st.runs[widget.Vertical]).end
	case widget.Baseline:
		return g.axisRunOf(st.runs[widget.Vertical]).baseline
	}
	return NoNode
}
