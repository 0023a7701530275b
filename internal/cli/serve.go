package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorflow/internal/config"
	"github.com/matzehuels/anchorflow/pkg/observability"
	"github.com/matzehuels/anchorflow/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Example: `  anchorflow serve --addr :8080
  curl -X POST --data-binary @dialog.json localhost:8080/v1/solve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			counters := observability.NewCounters()
			counters.Register()
			defer observability.Reset()

			srv := server.New(server.Config{
				Runner:   runner,
				Logger:   c.Logger,
				Timeout:  c.Config.Server.Timeout.Duration,
				Counters: counters,
			})
			printInfo("Listening on %s", StyleHighlight.Render(addr))
			printKeyValue("cache", cacheLabel(c.Config.Cache.Backend, noCache))
			printKeyValue("timeout", c.Config.Server.Timeout.Duration.String())
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func cacheLabel(backend string, disabled bool) string {
	if disabled {
		return config.BackendNone
	}
	return backend
}
