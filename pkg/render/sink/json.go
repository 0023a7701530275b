package sink

import "github.com/matzehuels/anchorflow/pkg/layout"

// RenderJSON returns the layout as indented JSON. Options are accepted for
// symmetry with the other sinks and ignored.
func RenderJSON(l layout.Layout, _ ...Option) ([]byte, error) {
	return layout.MarshalLayout(l)
}
