package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/anchorflow/pkg/direct"
	"github.com/matzehuels/anchorflow/pkg/layout"
	"github.com/matzehuels/anchorflow/pkg/render/nodelink"
	"github.com/matzehuels/anchorflow/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(l layout.Layout, opts Options) (map[string][]byte, error) {
	sinkOpts := []sink.Option{sink.WithScale(opts.Scale)}
	if opts.Labels {
		sinkOpts = append(sinkOpts, sink.WithLabels())
	}
	if opts.Guidelines {
		sinkOpts = append(sinkOpts, sink.WithGuidelines())
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		case FormatSVG:
			data = sink.RenderSVG(l, sinkOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, sinkOpts...)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderGraph renders the engine's dependency graph as DOT or SVG.
func RenderGraph(ctx context.Context, g *direct.Graph, format string, opts Options) ([]byte, error) {
	if err := ValidateGraphFormat(format); err != nil {
		return nil, err
	}
	dot := nodelink.ToDOT(g, nodelink.Options{Values: opts.Values})
	if format == FormatDOT {
		return []byte(dot), nil
	}
	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, fmt.Errorf("render graph svg: %w", err)
	}
	return svg, nil
}
