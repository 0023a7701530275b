package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/anchorflow/pkg/direct"
	"github.com/matzehuels/anchorflow/pkg/widget"
)

// =============================================================================
// Layout - Solve Result
// =============================================================================

// Layout is the serialization format of a solved scene.
//
// Resolved is false when the direct engine could not place every box; the
// positions present are still the ones it did resolve.
type Layout struct {
	Scene    string `json:"scene,omitempty"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Resolved bool   `json:"resolved"`
	RTL      bool   `json:"rtl,omitempty"`

	Boxes      []Box       `json:"boxes"`
	Guidelines []Guideline `json:"guidelines,omitempty"`
	Stats      Stats       `json:"stats"`
	Trace      []Step      `json:"trace,omitempty"`
}

// Box is a placed box. Coordinates are relative to the container.
type Box struct {
	ID         string `json:"id"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Baseline   int    `json:"baseline,omitempty"`
	Visibility string `json:"visibility,omitempty"`
}

// Guideline is a placed guideline. Axis is the axis its position is measured
// on: a "horizontal" guideline is a vertical line at X = Position.
type Guideline struct {
	ID       string `json:"id"`
	Axis     string `json:"axis"`
	Position int    `json:"position"`
}

// Stats summarizes the dependency graph that produced the layout.
type Stats struct {
	Nodes    int `json:"nodes"`
	Runs     int `json:"runs"`
	Chains   int `json:"chains"`
	Groups   int `json:"groups"`
	Resolved int `json:"resolved_runs"`
}

// Step is one recorded node resolution.
type Step struct {
	Step  int    `json:"step"`
	Box   string `json:"box"`
	Axis  string `json:"axis"`
	Edge  string `json:"edge"`
	Value int    `json:"value"`
}

// Lookup returns the box with the given ID.
func (l *Layout) Lookup(id string) (Box, bool) {
	i := slices.IndexFunc(l.Boxes, func(b Box) bool { return b.ID == id })
	if i < 0 {
		return Box{}, false
	}
	return l.Boxes[i], true
}

// FromGraph captures the container's boxes after a measure.
func FromGraph(g *direct.Graph, scene string, resolved bool) Layout {
	c := g.Container()
	l := Layout{
		Scene:    scene,
		Width:    c.Width,
		Height:   c.Height,
		Resolved: resolved,
		RTL:      c.RTL,
	}
	for _, b := range c.Children() {
		if b.IsGuideline() {
			l.Guidelines = append(l.Guidelines, Guideline{
				ID:       b.ID,
				Axis:     b.Guide.Axis.String(),
				Position: b.Pos(b.Guide.Axis),
			})
			continue
		}
		box := Box{ID: b.ID, X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
		if b.HasBaseline {
			box.Baseline = b.Baseline
		}
		if b.Visibility != widget.Visible {
			box.Visibility = b.Visibility.String()
		}
		if b.IsGone() {
			box.Width, box.Height = 0, 0
		}
		l.Boxes = append(l.Boxes, box)
	}

	s := g.Stats()
	l.Stats = Stats{Nodes: s.Nodes, Runs: s.Runs, Chains: s.Chains, Groups: s.Groups, Resolved: s.Resolved}

	for _, ev := range g.Trace() {
		l.Trace = append(l.Trace, Step{
			Step:  ev.Step,
			Box:   ev.Box,
			Axis:  ev.Axis.String(),
			Edge:  ev.Edge.String(),
			Value: ev.Value,
		})
	}
	return l
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width < 0 || l.Height < 0 {
		return Layout{}, fmt.Errorf("layout has negative size %dx%d", l.Width, l.Height)
	}
	for _, b := range l.Boxes {
		if strings.TrimSpace(b.ID) == "" {
			return Layout{}, fmt.Errorf("layout box without id")
		}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
