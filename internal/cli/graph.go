package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorflow/pkg/pipeline"
	"github.com/matzehuels/anchorflow/pkg/scene"
)

// graphCommand creates the graph command, which exports the dependency graph
// the engine resolves for a scene.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output       string
		format       string
		values       bool
		optimizeWrap bool
		noCache      bool
	)

	cmd := &cobra.Command{
		Use:   "graph [scene]",
		Short: "Export the resolution dependency graph",
		Long: `Export the dependency graph built for a scene as Graphviz DOT or SVG.

Nodes are box edges per axis, grouped by run. Edges point from the node a
value is derived from to the node it resolves.`,
		Example: `  anchorflow graph dialog.toml
  anchorflow graph dialog.toml -f svg --values -o dialog.graph.svg`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScene,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateGraphFormat(format); err != nil {
				return err
			}
			s, err := scene.ReadFile(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			spin := newSpinnerWithContext(cmd.Context(), "Building dependency graph...")
			spin.Start()
			data, hit, err := runner.GraphWithCacheInfo(cmd.Context(), format, pipeline.Options{
				Scene:        s,
				OptimizeWrap: optimizeWrap || c.Config.OptimizeWrap,
				Values:       values,
				Logger:       c.Logger,
			})
			elapsed := spin.Stop()
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err := stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Exported graph of %s", StyleHighlight.Render(displayName(s, args[0])))
			printStats(pipeline.Stats{SolveTime: elapsed}, hit)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatDOT, "graph format: dot, svg")
	cmd.Flags().BoolVar(&values, "values", false, "label resolved nodes with their values")
	cmd.Flags().BoolVar(&optimizeWrap, "optimize-wrap", false, "grow wrap_content containers to fit their content")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
