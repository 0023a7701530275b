package widget

import (
	"errors"
	"math"
	"testing"
)

func TestParseNames(t *testing.T) {
	if a, err := ParseAxis("V"); err != nil || a != Vertical {
		t.Errorf("ParseAxis(V) = %v, %v", a, err)
	}
	if _, err := ParseAxis("diagonal"); err == nil {
		t.Error("ParseAxis(diagonal) should fail")
	}

	anchors := map[string]AnchorType{
		"left": Left, "TOP": Top, " right ": Right, "bottom": Bottom,
		"baseline": Baseline, "center": Center, "start": Left, "end": Right,
	}
	for in, want := range anchors {
		if got, err := ParseAnchorType(in); err != nil || got != want {
			t.Errorf("ParseAnchorType(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseAnchorType("middle"); err == nil {
		t.Error("ParseAnchorType(middle) should fail")
	}

	behaviors := map[string]DimensionBehavior{
		"": Fixed, "wrap": WrapContent, "wrap-content": WrapContent,
		"match_parent": MatchParent, "constraint": MatchConstraint,
	}
	for in, want := range behaviors {
		if got, err := ParseDimensionBehavior(in); err != nil || got != want {
			t.Errorf("ParseDimensionBehavior(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if got, err := ParseChainStyle("spread-inside"); err != nil || got != ChainSpreadInside {
		t.Errorf("ParseChainStyle = %v, %v", got, err)
	}
	if got, err := ParseMatchKind("percent"); err != nil || got != MatchPercent {
		t.Errorf("ParseMatchKind = %v, %v", got, err)
	}
	if got, err := ParseVisibility("gone"); err != nil || got != Gone {
		t.Errorf("ParseVisibility = %v, %v", got, err)
	}
	if _, err := ParseVisibility("hidden"); err == nil {
		t.Error("ParseVisibility(hidden) should fail")
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{Horizontal.String(), "horizontal"},
		{Baseline.String(), "baseline"},
		{MatchConstraint.String(), "match_constraint"},
		{ChainPacked.String(), "packed"},
		{MatchRatio.String(), "ratio"},
		{Invisible.String(), "invisible"},
		{AnchorType(9).String(), "anchor(9)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestAxisHelpers(t *testing.T) {
	if Horizontal.Other() != Vertical || Vertical.Other() != Horizontal {
		t.Error("Other() should swap axes")
	}
	if StartAnchor(Vertical) != Top || EndAnchor(Horizontal) != Right {
		t.Error("unexpected start/end anchors")
	}
}

func TestConnect(t *testing.T) {
	c := NewContainer("root", 100, 100)
	a, b := NewBox("a", 10, 10), NewBox("b", 10, 10)
	c.Add(a, b)

	tests := []struct {
		name    string
		from    *Anchor
		to      *Anchor
		wantErr bool
	}{
		{"left to right", a.Anchor(Left), b.Anchor(Right), false},
		{"left to parent left", a.Anchor(Left), c.Anchor(Left), false},
		{"top to bottom", a.Anchor(Top), b.Anchor(Bottom), false},
		{"baseline to baseline", a.Anchor(Baseline), b.Anchor(Baseline), false},
		{"left to top", a.Anchor(Left), b.Anchor(Top), true},
		{"baseline to top", a.Anchor(Baseline), b.Anchor(Top), true},
		{"self", a.Anchor(Left), a.Anchor(Right), true},
		{"nil", a.Anchor(Left), nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.from.Connect(tt.to, 5)
			if tt.wantErr {
				if !errors.Is(err, ErrIncompatibleAnchor) {
					t.Errorf("Connect() error = %v, want ErrIncompatibleAnchor", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Connect() error = %v", err)
			}
			if tt.from.Target() != tt.to || tt.from.Margin != 5 {
				t.Error("target or margin not set")
			}
		})
	}
}

func TestEffectiveMargin(t *testing.T) {
	c := NewContainer("root", 100, 100)
	a, b := NewBox("a", 10, 10), NewBox("b", 10, 10)
	c.Add(a, b)
	if err := b.Anchor(Left).ConnectGone(a.Anchor(Right), 8, 24); err != nil {
		t.Fatal(err)
	}

	if got := b.Anchor(Left).EffectiveMargin(); got != 8 {
		t.Errorf("margin = %d, want 8", got)
	}
	a.Visibility = Gone
	if got := b.Anchor(Left).EffectiveMargin(); got != 24 {
		t.Errorf("gone margin = %d, want 24", got)
	}
	a.Visibility = Visible
	b.Visibility = Gone
	if got := b.Anchor(Left).EffectiveMargin(); got != 0 {
		t.Errorf("margin of gone owner = %d, want 0", got)
	}

	b.Anchor(Left).Reset()
	if b.Anchor(Left).IsConnected() || b.Anchor(Left).HasGoneMargin {
		t.Error("Reset should clear the connection")
	}
}

func TestCreateChain(t *testing.T) {
	c := NewContainer("root", 300, 100)
	a, b, d := NewBox("a", 10, 10), NewBox("b", 10, 10), NewBox("d", 10, 10)
	c.Add(a, b, d)

	if err := CreateChain(Horizontal, ChainPacked, a, b, d); err != nil {
		t.Fatalf("CreateChain: %v", err)
	}
	if a.Anchor(Left).Target() != c.Anchor(Left) || d.Anchor(Right).Target() != c.Anchor(Right) {
		t.Error("chain ends should bind to the container")
	}
	if a.NextInChain(Horizontal) != b || b.NextInChain(Horizontal) != d || d.NextInChain(Horizontal) != nil {
		t.Error("next links are wrong")
	}
	if b.PrevInChain(Horizontal) != a || a.PrevInChain(Horizontal) != nil {
		t.Error("prev links are wrong")
	}
	if !b.InChain(Horizontal) || b.InChain(Vertical) {
		t.Error("InChain reports the wrong axis")
	}
	if a.ChainStyle[Horizontal] != ChainPacked {
		t.Error("head should carry the chain style")
	}

	orphan := NewBox("orphan", 1, 1)
	if err := CreateChain(Horizontal, ChainSpread, orphan); err == nil {
		t.Error("chain of a box without container should fail")
	}
	other := NewContainer("other", 10, 10)
	stray := NewBox("stray", 1, 1)
	other.Add(stray)
	if err := CreateChain(Vertical, ChainSpread, a, stray); err == nil {
		t.Error("chain across containers should fail")
	}
}

func TestContainer(t *testing.T) {
	c := NewContainer("root", 100, 50)
	if c.Anchor(Left).Owner() != &c.Box {
		t.Fatal("container anchors should be owned by the embedded box")
	}
	a := NewBox("a", 1, 1)
	c.Add(a, a)
	if len(c.Children()) != 1 || c.Child("a") != a || a.Parent() != c {
		t.Error("Add should be idempotent and index by ID")
	}

	other := NewContainer("other", 1, 1)
	other.Add(a)
	if c.Child("a") != nil || len(c.Children()) != 0 || a.Parent() != other {
		t.Error("Add should move a box between containers")
	}
}

func TestBoxGeometry(t *testing.T) {
	b := NewBox("a", 30, 20)
	b.SetPos(Horizontal, 5)
	b.SetPos(Vertical, 7)
	if b.Pos(Horizontal) != 5 || b.Pos(Vertical) != 7 {
		t.Error("SetPos/Pos mismatch")
	}
	b.SetSize(Vertical, 40)
	if b.Size(Vertical) != 40 || b.Size(Horizontal) != 30 {
		t.Error("SetSize/Size mismatch")
	}
	b.Visibility = Gone
	if b.Size(Horizontal) != 0 {
		t.Error("gone boxes have zero size")
	}

	g := NewGuideline("g", Guide{Axis: Vertical, Mode: GuidePercent, Percent: 0.5})
	if !g.IsGuideline() || b.IsGuideline() {
		t.Error("IsGuideline mismatch")
	}
}

func TestParseRatio(t *testing.T) {
	tests := []struct {
		in       string
		want     float64
		wantSide RatioSide
		wantErr  bool
	}{
		{"16:9", 16.0 / 9.0, RatioUnknown, false},
		{"1.5", 1.5, RatioUnknown, false},
		{"W,16:9", 16.0 / 9.0, RatioWidth, false},
		{"h,2:1", 2, RatioHeight, false},
		{"X,2:1", 0, RatioUnknown, true},
		{"0:1", 0, RatioUnknown, true},
		{"abc", 0, RatioUnknown, true},
		{"-1", 0, RatioUnknown, true},
	}
	for _, tt := range tests {
		got, side, err := ParseRatio(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRatio(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 || side != tt.wantSide {
			t.Errorf("ParseRatio(%q) = %v, %v; want %v, %v", tt.in, got, side, tt.want, tt.wantSide)
		}
	}
}

func TestStaticMeasurer(t *testing.T) {
	m := StaticMeasurer{"label": {Width: 42, Height: 13, Baseline: 10, HasBaseline: true}}
	label := NewBox("label", 0, 0)

	res := m.Measure(label, MeasureSpec{Horizontal: WrapContent, Vertical: WrapContent})
	if res.Width != 42 || res.Height != 13 || !res.HasBaseline || res.Baseline != 10 {
		t.Errorf("wrap measure = %+v", res)
	}

	res = m.Measure(label, MeasureSpec{Horizontal: Fixed, Width: 100, Vertical: WrapContent})
	if res.Width != 100 || res.Height != 13 {
		t.Errorf("fixed width measure = %+v", res)
	}

	unknown := NewBox("unknown", 7, 9)
	res = m.Measure(unknown, MeasureSpec{Horizontal: WrapContent, Vertical: WrapContent})
	if res.Width != 7 || res.Height != 9 {
		t.Errorf("unknown box should wrap to its size, got %+v", res)
	}

	var f Measurer = MeasurerFunc(func(b *Box, spec MeasureSpec) MeasureResult {
		return MeasureResult{Width: spec.Width * 2}
	})
	if got := f.Measure(label, MeasureSpec{Width: 4}); got.Width != 8 {
		t.Errorf("MeasurerFunc = %+v", got)
	}
}
