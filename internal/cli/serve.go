package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/paraphraser/pkg/api"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve paraphrases over HTTP",
		Long: `Serve paraphrases over HTTP until interrupted.

  GET  /paraphrase?tree=...&limit=N
  POST /paraphrase   {"tree": "...", "limit": N, "methods": [...], "seed": S}
  GET  /methods
  GET  /healthz

Settings come from the [server], [cache] and [transform] sections of the
config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", `listen address (default from config, ":8080")`)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, store, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer store.Close()

	cfg := c.Config
	srv := api.New(api.Config{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		RequestTimeout:  cfg.Server.RequestTimeout,
		MaxCombinations: cfg.CombinationCap(),
		Nested:          cfg.NestedPolicy(),
	}, runner, logger)

	printInfo("Serving on %s", StyleHighlight.Render(cfg.Server.Addr))
	printDetail("cache: %s", cfg.Cache.Backend)
	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	printSuccess("Server stopped")
	return nil
}
