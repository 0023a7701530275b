package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorflow/pkg/pipeline"
	"github.com/matzehuels/anchorflow/pkg/scene"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	output       string // output file (single format) or base path (multiple)
	formats      string // comma-separated output formats
	optimizeWrap bool   // grow wrap containers to fit their content
	trace        bool   // record node resolution order in the layout
	labels       bool   // draw box IDs in image outputs
	guidelines   bool   // draw guidelines in image outputs
	width        int    // container width override
	height       int    // container height override
	scale        float64
	noCache      bool
	refresh      bool
	watch        bool // re-solve whenever the scene file changes
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{labels: true, scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "solve [scene]",
		Short: "Solve a scene and write the layout",
		Long: `Solve a scene file (toml, yaml or json) with the direct resolution engine.

Outputs are written next to the scene unless -o is given. With several formats,
-o is a base path and each format gets its own extension.`,
		Example: `  anchorflow solve dialog.toml
  anchorflow solve dialog.toml -f json,svg -o out/dialog
  anchorflow solve dialog.yaml -f png --scale 2 --guidelines
  anchorflow solve dialog.toml --width 320 --watch`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScene,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			ctx := log.WithContext(cmd.Context(), c.Logger)
			solve := func() error {
				return runSolve(ctx, runner, args[0], formats, opts, c.Config.OptimizeWrap)
			}
			if err := solve(); err != nil && !opts.watch {
				return err
			} else if err != nil {
				printError("%v", err)
			}
			if !opts.watch {
				return nil
			}

			printInfo("Watching %s (Ctrl+C to stop)", args[0])
			return watchFile(ctx, args[0], c.Logger, solve)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.optimizeWrap, "optimize-wrap", false, "grow wrap_content containers to fit their content")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "record the node resolution order in json output")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "draw box IDs in svg and png output")
	cmd.Flags().BoolVar(&opts.guidelines, "guidelines", false, "draw guidelines in svg and png output")
	cmd.Flags().IntVar(&opts.width, "width", 0, "override the container width")
	cmd.Flags().IntVar(&opts.height, "height", 0, "override the container height")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "pixel scale for png output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached layouts and solve again")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "solve again whenever the scene file changes")

	return cmd
}

// runSolve loads the scene, runs the pipeline and writes every artifact.
// optimizeWrap is the configured default for --optimize-wrap.
func runSolve(ctx context.Context, runner *pipeline.Runner, input string, formats []string, opts solveOpts, optimizeWrap bool) error {
	logger := log.FromContext(ctx)
	s, err := scene.ReadFile(input)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Scene:        s,
		OptimizeWrap: opts.optimizeWrap || optimizeWrap,
		Trace:        opts.trace,
		Width:        opts.width,
		Height:       opts.height,
		Refresh:      opts.refresh,
		Formats:      formats,
		Labels:       opts.labels,
		Guidelines:   opts.guidelines,
		Scale:        opts.scale,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	prog.done("Solved "+displayName(s, input), "resolved", result.Layout.Resolved, "boxes", result.Stats.BoxCount)

	paths, err := writeArtifacts(result.Artifacts, formats, opts.output, input)
	if err != nil {
		return err
	}

	if result.Layout.Resolved {
		printSuccess("Solved %s", StyleHighlight.Render(displayName(s, input)))
	} else {
		printWarning("%s could not be resolved directly", displayName(s, input))
	}
	printStats(result.Stats, result.CacheInfo.SolveHit)
	for _, p := range paths {
		printFile(p)
	}
	if !result.Layout.Resolved {
		printNextStep("Inspect the dependency graph", appName+" graph "+input)
	}
	return nil
}

// writeArtifacts writes one file per format and returns the paths in format
// order. A single format honors output as the exact file name; "-" writes it
// to stdout.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	if len(formats) == 1 && output == "-" {
		_, err := stdout.Write(artifacts[formats[0]])
		return nil, err
	}

	base := basePath(output, input)
	var paths []string
	for _, f := range formats {
		path := base + "." + f
		if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
			path = output
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// displayName is the scene's name, or the input file name for unnamed scenes.
func displayName(s *scene.Scene, input string) string {
	if s.Name != "" {
		return s.Name
	}
	return filepath.Base(input)
}
