package direct

import (
	"testing"

	"github.com/matzehuels/anchorflow/pkg/widget"
)

type rect struct{ x, y, w, h int }

func geometry(b *widget.Box) rect { return rect{b.X, b.Y, b.Width, b.Height} }

func mustConnect(t *testing.T, from, to *widget.Anchor, margin int) {
	t.Helper()
	if err := from.Connect(to, margin); err != nil {
		t.Fatalf("connect %s.%s: %v", from.Owner().ID, from.Type, err)
	}
}

func solve(t *testing.T, c *widget.Container, m widget.Measurer, optimizeWrap bool) (*Graph, bool) {
	t.Helper()
	g := New(c, Options{Measurer: m, Trace: true})
	return g, g.DirectMeasure(optimizeWrap)
}

func TestAnchoredBoxes(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, c *widget.Container) *widget.Box
		want  rect
	}{
		{
			name: "start anchored",
			setup: func(t *testing.T, c *widget.Container) *widget.Box {
				b := widget.NewBox("b", 100, 50)
				c.Add(b)
				mustConnect(t, b.Anchor(widget.Left), c.Anchor(widget.Left), 10)
				mustConnect(t, b.Anchor(widget.Top), c.Anchor(widget.Top), 20)
				return b
			},
			want: rect{10, 20, 100, 50},
		},
		{
			name: "end anchored",
			setup: func(t *testing.T, c *widget.Container) *widget.Box {
				b := widget.NewBox("b", 100, 50)
				c.Add(b)
				mustConnect(t, b.Anchor(widget.Right), c.Anchor(widget.Right), 10)
				mustConnect(t, b.Anchor(widget.Bottom), c.Anchor(widget.Bottom), 0)
				return b
			},
			want: rect{490, 350, 100, 50},
		},
		{
			name: "centered",
			setup: func(t *testing.T, c *widget.Container) *widget.Box {
				b := widget.NewBox("b", 100, 50)
				c.Add(b)
				mustConnect(t, b.Anchor(widget.Left), c.Anchor(widget.Left), 0)
				mustConnect(t, b.Anchor(widget.Right), c.Anchor(widget.Right), 0)
				mustConnect(t, b.Anchor(widget.Top), c.Anchor(widget.Top), 0)
				mustConnect(t, b.Anchor(widget.Bottom), c.Anchor(widget.Bottom), 0)
				return b
			},
			want: rect{250, 175, 100, 50},
		},
		{
			name: "biased",
			setup: func(t *testing.T, c *widget.Container) *widget.Box {
				b := widget.NewBox("b", 100, 50)
				b.Bias[widget.Horizontal] = 0.3
				c.Add(b)
				mustConnect(t, b.Anchor(widget.Left), c.Anchor(widget.Left), 0)
				mustConnect(t, b.Anchor(widget.Right), c.Anchor(widget.Right), 0)
				return b
			},
			want: rect{150, 0, 100, 50},
		},
		{
			name: "unanchored keeps literal position",
			setup: func(t *testing.T, c *widget.Container) *widget.Box {
				b := widget.NewBox("b", 30, 30)
				b.X, b.Y = 42, 7
				c.Add(b)
				return b
			},
			want: rect{42, 7, 30, 30},
		},
		{
			name: "match constraint spread",
			setup: func(t *testing.T, c *widget.Container) *widget.Box {
				icon := widget.NewBox("icon", 100, 50)
				title := widget.NewBox("title", 0, 50)
				title.Behavior[widget.Horizontal] = widget.MatchConstraint
				c.Add(icon, title)
				mustConnect(t, icon.Anchor(widget.Left), c.Anchor(widget.Left), 10)
				mustConnect(t, icon.Anchor(widget.Top), c.Anchor(widget.Top), 10)
				mustConnect(t, title.Anchor(widget.Left), icon.Anchor(widget.Right), 10)
				mustConnect(t, title.Anchor(widget.Right), c.Anchor(widget.Right), 10)
				mustConnect(t, title.Anchor(widget.Top), icon.Anchor(widget.Top), 0)
				return title
			},
			want: rect{120, 10, 470, 50},
		},
		{
			name: "match parent",
			setup: func(t *testing.T, c *widget.Container) *widget.Box {
				b := widget.NewBox("b", 0, 50)
				b.Behavior[widget.Horizontal] = widget.MatchParent
				c.Add(b)
				mustConnect(t, b.Anchor(widget.Left), c.Anchor(widget.Left), 20)
				mustConnect(t, b.Anchor(widget.Right), c.Anchor(widget.Right), 30)
				return b
			},
			want: rect{20, 0, 550, 50},
		},
		{
			name: "percent",
			setup: func(t *testing.T, c *widget.Container) *widget.Box {
				b := widget.NewBox("b", 0, 50)
				b.Behavior[widget.Horizontal] = widget.MatchConstraint
				b.MatchPercent[widget.Horizontal] = 0.5
				c.Add(b)
				mustConnect(t, b.Anchor(widget.Left), c.Anchor(widget.Left), 0)
				return b
			},
			want: rect{0, 0, 300, 50},
		},
		{
			name: "ratio from height",
			setup: func(t *testing.T, c *widget.Container) *widget.Box {
				b := widget.NewBox("b", 0, 100)
				b.Behavior[widget.Horizontal] = widget.MatchConstraint
				b.Ratio = 2
				c.Add(b)
				mustConnect(t, b.Anchor(widget.Left), c.Anchor(widget.Left), 0)
				return b
			},
			want: rect{0, 0, 200, 100},
		},
		{
			name: "ratio from width",
			setup: func(t *testing.T, c *widget.Container) *widget.Box {
				b := widget.NewBox("b", 250, 0)
				b.Behavior[widget.Vertical] = widget.MatchConstraint
				b.Ratio = 1.5
				c.Add(b)
				mustConnect(t, b.Anchor(widget.Top), c.Anchor(widget.Top), 0)
				return b
			},
			want: rect{0, 0, 250, 167},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := widget.NewContainer("root", 600, 400)
			b := tt.setup(t, c)
			if _, ok := solve(t, c, nil, false); !ok {
				t.Fatal("DirectMeasure() = false, want resolved")
			}
			if got := geometry(b); got != tt.want {
				t.Errorf("geometry = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWrapContentMeasured(t *testing.T) {
	c := widget.NewContainer("root", 600, 400)
	label := widget.NewBox("label", 0, 0)
	label.Behavior = [2]widget.DimensionBehavior{widget.WrapContent, widget.WrapContent}
	c.Add(label)
	mustConnect(t, label.Anchor(widget.Left), c.Anchor(widget.Left), 5)
	mustConnect(t, label.Anchor(widget.Top), c.Anchor(widget.Top), 5)

	m := widget.StaticMeasurer{"label": {Width: 80, Height: 20}}
	if _, ok := solve(t, c, m, false); !ok {
		t.Fatal("DirectMeasure() = false")
	}
	if got, want := geometry(label), (rect{5, 5, 80, 20}); got != want {
		t.Errorf("label = %+v, want %+v", got, want)
	}
}

func TestMatchWrapBoundedAndCentered(t *testing.T) {
	c := widget.NewContainer("root", 600, 400)
	b := widget.NewBox("b", 0, 40)
	b.Behavior[widget.Horizontal] = widget.MatchConstraint
	b.Match[widget.Horizontal] = widget.MatchWrap
	c.Add(b)
	mustConnect(t, b.Anchor(widget.Left), c.Anchor(widget.Left), 0)
	mustConnect(t, b.Anchor(widget.Right), c.Anchor(widget.Right), 0)
	mustConnect(t, b.Anchor(widget.Top), c.Anchor(widget.Top), 0)

	m := widget.StaticMeasurer{"b": {Width: 80, Height: 40}}
	if _, ok := solve(t, c, m, false); !ok {
		t.Fatal("DirectMeasure() = false")
	}
	if got, want := geometry(b), (rect{260, 0, 80, 40}); got != want {
		t.Errorf("b = %+v, want %+v", got, want)
	}
}

func TestBaseline(t *testing.T) {
	c := widget.NewContainer("root", 600, 400)
	a := widget.NewBox("a", 100, 40)
	a.Baseline, a.HasBaseline = 30, true
	b := widget.NewBox("b", 50, 20)
	b.Baseline, b.HasBaseline = 15, true
	c.Add(a, b)
	mustConnect(t, a.Anchor(widget.Top), c.Anchor(widget.Top), 10)
	mustConnect(t, b.Anchor(widget.Baseline), a.Anchor(widget.Baseline), 0)

	if _, ok := solve(t, c, nil, false); !ok {
		t.Fatal("DirectMeasure() = false")
	}
	if b.Y != 25 {
		t.Errorf("b.Y = %d, want 25 (baseline at 40)", b.Y)
	}
}

func TestGoneBox(t *testing.T) {
	for _, tt := range []struct {
		name       string
		goneMargin *int
		want       int
	}{
		{"margin collapses", nil, 10},
		{"gone margin", ptr(24), 24},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c := widget.NewContainer("root", 600, 400)
			a := widget.NewBox("a", 100, 50)
			a.Visibility = widget.Gone
			b := widget.NewBox("b", 100, 50)
			c.Add(a, b)
			mustConnect(t, a.Anchor(widget.Left), c.Anchor(widget.Left), 20)
			if tt.goneMargin != nil {
				if err := b.Anchor(widget.Left).ConnectGone(a.Anchor(widget.Right), 10, *tt.goneMargin); err != nil {
					t.Fatal(err)
				}
			} else {
				mustConnect(t, b.Anchor(widget.Left), a.Anchor(widget.Right), 10)
			}

			if _, ok := solve(t, c, nil, false); !ok {
				t.Fatal("DirectMeasure() = false")
			}
			if a.X != 0 {
				t.Errorf("gone a.X = %d, want 0", a.X)
			}
			if b.X != tt.want {
				t.Errorf("b.X = %d, want %d", b.X, tt.want)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestGuidelines(t *testing.T) {
	tests := []struct {
		name  string
		guide widget.Guide
		want  int
	}{
		{"percent", widget.Guide{Axis: widget.Horizontal, Mode: widget.GuidePercent, Percent: 0.5}, 300},
		{"begin", widget.Guide{Axis: widget.Horizontal, Mode: widget.GuideBegin, Offset: 100}, 100},
		{"end", widget.Guide{Axis: widget.Horizontal, Mode: widget.GuideEnd, Offset: 100}, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := widget.NewContainer("root", 600, 400)
			guide := widget.NewGuideline("guide", tt.guide)
			b := widget.NewBox("b", 50, 50)
			c.Add(guide, b)
			mustConnect(t, b.Anchor(widget.Left), guide.Anchor(widget.Left), 16)

			if _, ok := solve(t, c, nil, false); !ok {
				t.Fatal("DirectMeasure() = false")
			}
			if guide.X != tt.want {
				t.Errorf("guideline at %d, want %d", guide.X, tt.want)
			}
			if b.X != tt.want+16 {
				t.Errorf("b.X = %d, want %d", b.X, tt.want+16)
			}
		})
	}
}

func chainOf(t *testing.T, c *widget.Container, style widget.ChainStyle, widths ...int) []*widget.Box {
	t.Helper()
	boxes := make([]*widget.Box, len(widths))
	for i, w := range widths {
		boxes[i] = widget.NewBox(string(rune('a'+i)), w, 40)
		if w == 0 {
			boxes[i].Behavior[widget.Horizontal] = widget.MatchConstraint
		}
		c.Add(boxes[i])
	}
	if err := widget.CreateChain(widget.Horizontal, style, boxes...); err != nil {
		t.Fatalf("CreateChain: %v", err)
	}
	return boxes
}

func xs(boxes []*widget.Box) []int {
	out := make([]int, len(boxes))
	for i, b := range boxes {
		out[i] = b.X
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestChains(t *testing.T) {
	tests := []struct {
		name       string
		style      widget.ChainStyle
		widths     []int
		weights    []float64
		maxes      []int
		rtl        bool
		wantX      []int
		wantWidths []int
	}{
		{name: "spread", style: widget.ChainSpread, widths: []int{100, 100, 100}, wantX: []int{75, 250, 425}},
		{name: "spread inside", style: widget.ChainSpreadInside, widths: []int{100, 100, 100}, wantX: []int{0, 250, 500}},
		{name: "packed", style: widget.ChainPacked, widths: []int{100, 100, 100}, wantX: []int{150, 250, 350}},
		{
			name: "match constraint members share space", style: widget.ChainSpread,
			widths: []int{0, 0, 0}, wantX: []int{0, 200, 400}, wantWidths: []int{200, 200, 200},
		},
		{
			name: "weights", style: widget.ChainSpread,
			widths: []int{0, 0, 0}, weights: []float64{1, 2, 1},
			wantX: []int{0, 150, 450}, wantWidths: []int{150, 300, 150},
		},
		{
			name: "clamped member leaves the rest in place", style: widget.ChainSpread,
			widths: []int{0, 0, 0}, maxes: []int{0, 100, 0},
			wantX: []int{0, 200, 300}, wantWidths: []int{200, 100, 200},
		},
		{
			// Every member clamped: the gaps come from the re-accumulated size.
			name: "all members clamped", style: widget.ChainSpread,
			widths: []int{0, 0, 0}, maxes: []int{100, 100, 100},
			wantX: []int{75, 250, 425}, wantWidths: []int{100, 100, 100},
		},
		{
			name: "spread inside with match constraint member", style: widget.ChainSpreadInside,
			widths: []int{100, 0, 100}, wantX: []int{0, 100, 500}, wantWidths: []int{100, 400, 100},
		},
		{
			name: "packed with match constraint member", style: widget.ChainPacked,
			widths: []int{100, 0, 100}, wantX: []int{0, 100, 500}, wantWidths: []int{100, 400, 100},
		},
		{
			name: "packed with clamped member", style: widget.ChainPacked,
			widths: []int{100, 0, 100}, maxes: []int{0, 200, 0},
			wantX: []int{100, 200, 400}, wantWidths: []int{100, 200, 100},
		},
		{
			// Right-to-left chains take their style from the tail.
			name: "rtl style from tail", style: widget.ChainPacked, rtl: true,
			widths: []int{100, 100, 100}, wantX: []int{75, 250, 425},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := widget.NewContainer("root", 600, 100)
			c.RTL = tt.rtl
			boxes := chainOf(t, c, tt.style, tt.widths...)
			for i, w := range tt.weights {
				boxes[i].Weight[widget.Horizontal] = w
			}
			for i, m := range tt.maxes {
				boxes[i].MatchMax[widget.Horizontal] = m
			}

			g, ok := solve(t, c, nil, false)
			if !ok {
				t.Fatal("DirectMeasure() = false")
			}
			if got := xs(boxes); !equalInts(got, tt.wantX) {
				t.Errorf("x = %v, want %v", got, tt.wantX)
			}
			if tt.wantWidths != nil {
				widths := make([]int, len(boxes))
				for i, b := range boxes {
					widths[i] = b.Width
				}
				if !equalInts(widths, tt.wantWidths) {
					t.Errorf("widths = %v, want %v", widths, tt.wantWidths)
				}
			}
			chain, ok := g.ChainOf(boxes[1], widget.Horizontal)
			if !ok || len(chain.Members()) != len(boxes) {
				t.Error("middle box should belong to the chain")
			}
		})
	}
}

func TestChainGoneMember(t *testing.T) {
	for _, tt := range []struct {
		name          string
		before, after int
	}{
		{"no margins", 0, 0},
		{"own margins dropped", 20, 30},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c := widget.NewContainer("root", 600, 100)
			boxes := chainOf(t, c, widget.ChainSpread, 100, 100, 100)
			gone := boxes[1]
			gone.Visibility = widget.Gone
			gone.Anchor(widget.Left).Margin = tt.before
			gone.Anchor(widget.Right).Margin = tt.after

			if _, ok := solve(t, c, nil, false); !ok {
				t.Fatal("DirectMeasure() = false")
			}
			// Two visible boxes share 400px of free space in three gaps.
			if got := xs(boxes); !equalInts(got, []int{133, 233, 366}) {
				t.Errorf("x = %v, want [133 233 366]", got)
			}
			if gone.Width != 0 || gone.Height != 0 {
				t.Errorf("gone size = %dx%d, want 0x0", gone.Width, gone.Height)
			}
		})
	}
}

func TestWrapContainer(t *testing.T) {
	newScene := func() (*widget.Container, *widget.Box) {
		c := widget.NewContainer("root", 0, 100)
		c.Behavior[widget.Horizontal] = widget.WrapContent
		b := widget.NewBox("b", 100, 40)
		c.Add(b)
		mustConnect(t, b.Anchor(widget.Left), c.Anchor(widget.Left), 10)
		mustConnect(t, b.Anchor(widget.Right), c.Anchor(widget.Right), 10)
		return c, b
	}

	t.Run("optimized", func(t *testing.T) {
		c, b := newScene()
		if _, ok := solve(t, c, nil, true); !ok {
			t.Fatal("DirectMeasure(true) = false")
		}
		if c.Width != 120 {
			t.Errorf("container width = %d, want 120", c.Width)
		}
		if b.X != 10 {
			t.Errorf("b.X = %d, want 10", b.X)
		}
	})

	t.Run("not optimized needs a solver", func(t *testing.T) {
		c, _ := newScene()
		if _, ok := solve(t, c, nil, false); ok {
			t.Error("DirectMeasure(false) = true, want unresolved")
		}
	})
}

func TestIdempotentAndRebuild(t *testing.T) {
	c := widget.NewContainer("root", 600, 100)
	boxes := chainOf(t, c, widget.ChainSpread, 100, 100, 100)
	g := New(c, Options{})

	if !g.DirectMeasure(false) {
		t.Fatal("first measure unresolved")
	}
	first := xs(boxes)
	if !g.DirectMeasure(false) {
		t.Fatal("second measure unresolved")
	}
	if got := xs(boxes); !equalInts(got, first) {
		t.Errorf("second measure moved boxes: %v -> %v", first, got)
	}

	c.Width = 300
	g.InvalidateGraph()
	if !g.DirectMeasure(false) {
		t.Fatal("measure after resize unresolved")
	}
	// 0 free space: spread gaps collapse.
	if got := xs(boxes); !equalInts(got, []int{0, 100, 200}) {
		t.Errorf("after resize x = %v, want [0 100 200]", got)
	}
}

func TestContainerResize(t *testing.T) {
	c := widget.NewContainer("root", 600, 100)
	boxes := chainOf(t, c, widget.ChainSpread, 100, 100)
	g := New(c, Options{})
	if !g.DirectMeasure(false) {
		t.Fatal("first measure unresolved")
	}
	if got := xs(boxes); !equalInts(got, []int{133, 366}) {
		t.Fatalf("x = %v, want [133 366]", got)
	}
	nodes := g.Stats().Nodes

	c.Width = 900
	if !g.DirectMeasure(false) {
		t.Fatal("measure after resize unresolved")
	}
	if c.Width != 900 {
		t.Errorf("container width = %d, want 900", c.Width)
	}
	if got := xs(boxes); !equalInts(got, []int{233, 566}) {
		t.Errorf("after resize x = %v, want [233 566]", got)
	}
	if got := g.Stats().Nodes; got != nodes {
		t.Errorf("nodes = %d after resize, want the graph kept with %d", got, nodes)
	}
}

func TestInvalidateMeasures(t *testing.T) {
	c := widget.NewContainer("root", 600, 100)
	label := widget.NewBox("label", 0, 0)
	label.Behavior = [2]widget.DimensionBehavior{widget.WrapContent, widget.WrapContent}
	c.Add(label)
	mustConnect(t, label.Anchor(widget.Right), c.Anchor(widget.Right), 0)

	width := 80
	m := widget.MeasurerFunc(func(b *widget.Box, spec widget.MeasureSpec) widget.MeasureResult {
		return widget.MeasureResult{Width: width, Height: 20}
	})
	g := New(c, Options{Measurer: m})
	if !g.DirectMeasure(false) {
		t.Fatal("first measure unresolved")
	}
	if label.X != 520 {
		t.Fatalf("label.X = %d, want 520", label.X)
	}

	width = 120
	g.DirectMeasure(false)
	if label.X != 520 {
		t.Errorf("label.X = %d without invalidation, want 520", label.X)
	}

	g.InvalidateMeasures()
	if !g.DirectMeasure(false) {
		t.Fatal("measure after invalidation unresolved")
	}
	if label.X != 480 || label.Width != 120 {
		t.Errorf("label = %+v, want x 480 width 120", geometry(label))
	}
}

func TestPerAxisMeasure(t *testing.T) {
	c := widget.NewContainer("root", 600, 400)
	b := widget.NewBox("b", 100, 50)
	c.Add(b)
	mustConnect(t, b.Anchor(widget.Right), c.Anchor(widget.Right), 0)
	mustConnect(t, b.Anchor(widget.Bottom), c.Anchor(widget.Bottom), 0)

	g := New(c, Options{})
	g.DirectMeasureSetup()
	if !g.DirectMeasureWithAxis(false, widget.Horizontal) {
		t.Fatal("horizontal unresolved")
	}
	if b.X != 500 {
		t.Errorf("b.X = %d, want 500", b.X)
	}
	if !g.DirectMeasureWithAxis(false, widget.Vertical) {
		t.Fatal("vertical unresolved")
	}
	if b.Y != 350 {
		t.Errorf("b.Y = %d, want 350", b.Y)
	}
}

func TestTraceOrder(t *testing.T) {
	c := widget.NewContainer("root", 600, 100)
	icon := widget.NewBox("icon", 100, 50)
	title := widget.NewBox("title", 0, 50)
	title.Behavior[widget.Horizontal] = widget.MatchConstraint
	c.Add(icon, title)
	mustConnect(t, icon.Anchor(widget.Left), c.Anchor(widget.Left), 10)
	mustConnect(t, title.Anchor(widget.Left), icon.Anchor(widget.Right), 10)
	mustConnect(t, title.Anchor(widget.Right), c.Anchor(widget.Right), 10)

	g, ok := solve(t, c, nil, false)
	if !ok {
		t.Fatal("DirectMeasure() = false")
	}

	events := g.Trace()
	if len(events) == 0 {
		t.Fatal("trace is empty")
	}
	index := func(box string, axis widget.Axis, edge Edge) int {
		for i, ev := range events {
			if ev.Box == box && ev.Axis == axis && ev.Edge == edge {
				return i
			}
		}
		return -1
	}
	for i, ev := range events {
		if ev.Step != i {
			t.Fatalf("event %d has step %d", i, ev.Step)
		}
	}
	iconEnd := index("icon", widget.Horizontal, EdgeEnd)
	titleStart := index("title", widget.Horizontal, EdgeStart)
	if iconEnd < 0 || titleStart < 0 || iconEnd > titleStart {
		t.Errorf("icon end at step %d should precede title start at step %d", iconEnd, titleStart)
	}
	if got := events[titleStart].Value; got != 120 {
		t.Errorf("title start = %d, want 120", got)
	}

	untraced := New(c, Options{})
	untraced.DirectMeasure(false)
	if len(untraced.Trace()) != 0 {
		t.Error("trace should be empty unless enabled")
	}
}

func TestGraphAccessors(t *testing.T) {
	c := widget.NewContainer("root", 600, 100)
	boxes := chainOf(t, c, widget.ChainPacked, 100, 100)
	lone := widget.NewBox("lone", 10, 10)
	c.Add(lone)
	mustConnect(t, lone.Anchor(widget.Top), c.Anchor(widget.Top), 0)

	g, _ := solve(t, c, nil, false)

	st := g.Stats()
	if st.Chains != 1 {
		t.Errorf("chains = %d, want 1", st.Chains)
	}
	if st.Resolved != st.Runs {
		t.Errorf("resolved runs = %d of %d", st.Resolved, st.Runs)
	}
	if st.Groups == 0 {
		t.Error("expected at least one run group")
	}

	id := g.BoxRun(lone, widget.Horizontal)
	if id == NoRun {
		t.Fatal("lone box has no run")
	}
	run, ok := g.Run(id).(*HorizontalRun)
	if !ok {
		t.Fatalf("run is %T, want *HorizontalRun", g.Run(id))
	}
	if run.Box() != lone || run.Axis() != widget.Horizontal {
		t.Errorf("run = %s/%s", run.Box().ID, run.Axis())
	}
	if n := g.Node(run.Dimension()); !n.Resolved || n.Value != 10 {
		t.Errorf("dimension node = %+v", n)
	}
	if _, ok := g.Run(g.BoxRun(lone, widget.Vertical)).(*VerticalRun); !ok {
		t.Error("vertical run should be a *VerticalRun")
	}
	if g.BoxRun(widget.NewBox("stranger", 1, 1), widget.Horizontal) != NoRun {
		t.Error("unknown boxes have no run")
	}
	if _, ok := g.ChainOf(boxes[0], widget.Vertical); ok {
		t.Error("chain is horizontal only")
	}
	if g.Container() != c {
		t.Error("Container() mismatch")
	}
}
