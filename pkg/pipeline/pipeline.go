// Package pipeline provides the solve pipeline shared by the CLI and the HTTP
// service.
//
// The pipeline consists of two stages:
//
//  1. Solve: build the scene's container, run the direct engine and capture the
//     result as a [layout.Layout]
//  2. Render: turn the layout into output formats (JSON, SVG, PNG)
//
// A third, independent entry point renders the engine's dependency graph
// (DOT or SVG) for debugging. Each stage is cached through the [Runner].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Scene:   s,
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Layout.Resolved {
//	    // hand the scene to a general solver
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorflow/pkg/cache"
	"github.com/matzehuels/anchorflow/pkg/errors"
	"github.com/matzehuels/anchorflow/pkg/layout"
	"github.com/matzehuels/anchorflow/pkg/scene"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported layout output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// ValidGraphFormats is the set of supported dependency-graph formats.
var ValidGraphFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// DefaultScale is the default PNG scale factor.
const DefaultScale = 1.0

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the solve pipeline.
type Options struct {
	// Scene is the scene to solve. Required.
	Scene *scene.Scene `json:"-"`

	// Solve options
	OptimizeWrap bool `json:"optimize_wrap,omitempty"`
	Trace        bool `json:"trace,omitempty"`
	Width        int  `json:"width,omitempty"`  // Overrides the container width when > 0
	Height       int  `json:"height,omitempty"` // Overrides the container height when > 0
	Refresh      bool `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Labels     bool     `json:"labels,omitempty"`
	Guidelines bool     `json:"guidelines,omitempty"`
	Scale      float64  `json:"scale,omitempty"`

	// Graph options
	Values bool `json:"values,omitempty"` // Show node values in the dependency graph

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// SceneHash is the content hash of the scene, after size overrides.
	SceneHash string

	// Layout is the solve result.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BoxCount   int
	RunCount   int
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a layout format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGraphFormat checks that a dependency-graph format is valid.
func ValidateGraphFormat(format string) error {
	if !ValidGraphFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid graph format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForSolve checks required fields for solving.
func (o *Options) ValidateForSolve() error {
	if o.Scene == nil {
		return errors.New(errors.ErrCodeInvalidInput, "scene is required")
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "size override %dx%d is negative", o.Width, o.Height)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// EffectiveScene returns the scene with the size overrides applied. The
// caller's scene is not modified.
func (o *Options) EffectiveScene() *scene.Scene {
	s := *o.Scene
	if o.Width > 0 {
		s.Container.Width = o.Width
	}
	if o.Height > 0 {
		s.Container.Height = o.Height
	}
	return &s
}

// SceneHash returns the content hash of the effective scene.
func (o *Options) SceneHash() (string, error) {
	data, err := scene.Marshal(o.EffectiveScene(), scene.FormatJSON)
	if err != nil {
		return "", fmt.Errorf("serialize scene for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

// SolveKeyOpts returns cache key options for solving.
func (o *Options) SolveKeyOpts() cache.SolveKeyOpts {
	return cache.SolveKeyOpts{
		OptimizeWrap: o.OptimizeWrap,
		Trace:        o.Trace,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	ko := cache.ArtifactKeyOpts{Format: format, Labels: o.Labels, Guidelines: o.Guidelines}
	if format == FormatPNG {
		ko.Scale = o.Scale
	}
	return ko
}

// GraphKeyOpts returns cache key options for a dependency-graph rendering.
func (o *Options) GraphKeyOpts(format string) cache.GraphKeyOpts {
	return cache.GraphKeyOpts{Format: format, Values: o.Values, OptimizeWrap: o.OptimizeWrap}
}
