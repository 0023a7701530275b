package layout

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/anchorflow/pkg/direct"
	"github.com/matzehuels/anchorflow/pkg/widget"
)

func solvedGraph(t *testing.T, trace bool) (*direct.Graph, bool) {
	t.Helper()
	c := widget.NewContainer("parent", 400, 200)
	half := widget.NewGuideline("half", widget.Guide{Axis: widget.Horizontal, Mode: widget.GuidePercent, Percent: 0.5})
	c.Add(half)

	icon := widget.NewBox("icon", 40, 40)
	icon.Baseline, icon.HasBaseline = 30, true
	c.Add(icon)
	hidden := widget.NewBox("hidden", 50, 20)
	hidden.Visibility = widget.Gone
	c.Add(hidden)

	for _, err := range []error{
		icon.Anchor(widget.Left).Connect(half.Anchor(widget.Left), 8),
		icon.Anchor(widget.Top).Connect(c.Anchor(widget.Top), 12),
		hidden.Anchor(widget.Left).Connect(c.Anchor(widget.Left), 0),
		hidden.Anchor(widget.Top).Connect(c.Anchor(widget.Top), 0),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}

	g := direct.New(c, direct.Options{Trace: trace})
	return g, g.DirectMeasure(false)
}

func TestFromGraph(t *testing.T) {
	g, ok := solvedGraph(t, true)
	if !ok {
		t.Fatal("graph should resolve")
	}
	l := FromGraph(g, "demo", ok)

	if l.Scene != "demo" || l.Width != 400 || l.Height != 200 || !l.Resolved {
		t.Errorf("header = %q %dx%d resolved=%v", l.Scene, l.Width, l.Height, l.Resolved)
	}
	if want := []Guideline{{ID: "half", Axis: "horizontal", Position: 200}}; !reflect.DeepEqual(l.Guidelines, want) {
		t.Errorf("Guidelines = %+v, want %+v", l.Guidelines, want)
	}

	icon, ok := l.Lookup("icon")
	if !ok {
		t.Fatal("icon missing")
	}
	if want := (Box{ID: "icon", X: 208, Y: 12, Width: 40, Height: 40, Baseline: 30}); icon != want {
		t.Errorf("icon = %+v, want %+v", icon, want)
	}

	hidden, _ := l.Lookup("hidden")
	if hidden.Visibility != "gone" || hidden.Width != 0 || hidden.Height != 0 {
		t.Errorf("gone box = %+v, want zero size", hidden)
	}

	if len(l.Trace) == 0 {
		t.Fatal("expected trace steps")
	}
	for i, s := range l.Trace {
		if s.Step != i {
			t.Errorf("Trace[%d].Step = %d", i, s.Step)
		}
	}
	if l.Stats.Runs == 0 || l.Stats.Nodes == 0 {
		t.Errorf("Stats = %+v, want non-zero counts", l.Stats)
	}
}

func TestFromGraphWithoutTrace(t *testing.T) {
	g, ok := solvedGraph(t, false)
	if l := FromGraph(g, "demo", ok); l.Trace != nil {
		t.Errorf("Trace = %v, want nil", l.Trace)
	}
}

func TestLookupMissing(t *testing.T) {
	l := Layout{Boxes: []Box{{ID: "a"}}}
	if _, ok := l.Lookup("b"); ok {
		t.Error("Lookup(b) should miss")
	}
}

func TestUnmarshalLayoutValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad json", `{`, "unmarshal layout"},
		{"negative size", `{"width": -1, "height": 10, "boxes": []}`, "negative size"},
		{"missing id", `{"width": 10, "height": 10, "boxes": [{"x": 1}]}`, "without id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("UnmarshalLayout() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLayoutFile(t *testing.T) {
	g, ok := solvedGraph(t, true)
	l := FromGraph(g, "demo", ok)

	path := filepath.Join(t.TempDir(), "demo.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Errorf("file round trip:\n got %+v\nwant %+v", got, l)
	}

	if _, err := ReadLayoutFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadLayoutFile(missing) should fail")
	}
}
