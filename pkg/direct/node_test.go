package direct

import "testing"

func bareGraph() *Graph {
	return &Graph{root: [2]RunID{NoRun, NoRun}}
}

func TestResolveOnce(t *testing.T) {
	g := bareGraph()
	a := g.newNode(NoRun, EdgeStart)
	b := g.newNode(NoRun, EdgeStart)
	g.addTarget(b, a, 8)

	g.resolve(a, 10)
	g.resolve(a, 99)
	if got := g.nodes[a].Value; got != 10 {
		t.Errorf("a = %d, want 10", got)
	}
	if got := g.nodes[b].Value; !g.nodes[b].Resolved || got != 18 {
		t.Errorf("b = %d (resolved %v), want 18", got, g.nodes[b].Resolved)
	}
}

func TestAddDependencyCatchesUp(t *testing.T) {
	g := bareGraph()
	a := g.newNode(NoRun, EdgeStart)
	b := g.newNode(NoRun, EdgeStart)
	g.resolve(a, 4)

	g.nodes[b].targets = append(g.nodes[b].targets, a)
	g.nodes[b].Margin = 3
	g.addDependency(a, nodeDep(b))
	if !g.nodes[b].Resolved || g.nodes[b].Value != 7 {
		t.Errorf("b = %d (resolved %v), want 7", g.nodes[b].Value, g.nodes[b].Resolved)
	}
}

func TestSeveralPositionalTargetsStayUnresolved(t *testing.T) {
	g := bareGraph()
	a := g.newNode(NoRun, EdgeStart)
	b := g.newNode(NoRun, EdgeEnd)
	n := g.newNode(NoRun, EdgeStart)
	g.addTarget(n, a, 0)
	g.addTarget(n, b, 0)

	g.resolve(a, 0)
	g.resolve(b, 100)
	if g.nodes[n].Resolved {
		t.Errorf("node with two positional targets resolved to %d", g.nodes[n].Value)
	}
	if !g.nodes[n].ReadyToSolve {
		t.Error("node should be ready to solve once its targets resolve")
	}
}

func TestMarginSourceDefers(t *testing.T) {
	g := bareGraph()
	target := g.newNode(NoRun, EdgeStart)
	source := g.newNode(NoRun, EdgeDimension)
	dim := g.newNode(NoRun, EdgeDimension)
	n := g.newNode(NoRun, EdgeStart)
	g.addSizedTarget(n, target, -1, source, dim)

	g.resolve(target, 50)
	g.resolve(dim, 20)
	if g.nodes[n].Resolved {
		t.Fatal("resolved before the margin source")
	}
	g.resolve(source, 20)
	if got := g.nodes[n].Value; !g.nodes[n].Resolved || got != 30 {
		t.Errorf("n = %d (resolved %v), want 30", got, g.nodes[n].Resolved)
	}
}

func TestResetKeepsEdges(t *testing.T) {
	g := bareGraph()
	a := g.newNode(NoRun, EdgeStart)
	b := g.newNode(NoRun, EdgeStart)
	g.addTarget(b, a, 8)
	g.resolve(a, 10)

	g.resetNode(a)
	g.resetNode(b)
	if g.nodes[a].Resolved || g.nodes[b].Resolved || g.nodes[b].ReadyToSolve {
		t.Fatal("reset should drop resolution")
	}
	g.resolve(a, 20)
	if got := g.nodes[b].Value; !g.nodes[b].Resolved || got != 28 {
		t.Errorf("b = %d (resolved %v), want 28 through the kept edge", got, g.nodes[b].Resolved)
	}
}
