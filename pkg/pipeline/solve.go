package pipeline

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorflow/pkg/direct"
	"github.com/matzehuels/anchorflow/pkg/errors"
	"github.com/matzehuels/anchorflow/pkg/layout"
	"github.com/matzehuels/anchorflow/pkg/scene"
)

// Solve builds the scene and runs one direct measure. The graph is returned
// so callers can inspect or render it.
//
// An unresolved scene is not an error: the layout carries Resolved = false.
func Solve(ctx context.Context, s *scene.Scene, opts Options) (layout.Layout, *direct.Graph, error) {
	if err := ctx.Err(); err != nil {
		return layout.Layout{}, nil, errors.Wrap(errors.ErrCodeTimeout, err, "solve %s", s.Name)
	}
	g, err := NewGraph(s, opts.Trace, opts.Logger)
	if err != nil {
		return layout.Layout{}, nil, err
	}
	resolved := g.DirectMeasure(opts.OptimizeWrap)
	return layout.FromGraph(g, s.Name, resolved), g, nil
}

// NewGraph builds the scene's container and wraps it in an engine graph
// without measuring.
func NewGraph(s *scene.Scene, trace bool, logger *log.Logger) (*direct.Graph, error) {
	c, measurer, err := s.Build()
	if err != nil {
		return nil, err
	}
	return direct.New(c, direct.Options{
		Measurer: measurer,
		Logger:   logger,
		Trace:    trace,
	}), nil
}
