package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dagcheck/internal/metrics"
	"github.com/matzehuels/dagcheck/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the validation HTTP API",
		Long: `Serve starts the HTTP API the editor calls to validate graphs and to keep
editing sessions. Results are cached in the configured backend (file,
memory, redis or none). Stops gracefully on SIGINT or SIGTERM.`,
		Example: `  dagcheck serve
  dagcheck serve --addr :9090
  DAGCHECK_CACHE=redis DAGCHECK_REDIS_ADDR=redis:6379 dagcheck serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			c.Logger.Debug("configuration", "backend", cfg.Cache.Backend, "addr", cfg.Server.Addr)

			runner, closeCache, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer closeCache()

			opts := server.Options{
				Addr:            cfg.Server.Addr,
				ReadTimeout:     cfg.Server.ReadTimeout.Duration,
				WriteTimeout:    cfg.Server.WriteTimeout.Duration,
				ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
				MaxBodyBytes:    cfg.Server.MaxBodyBytes,
				MaxSessions:     cfg.Server.MaxSessions,
				SessionTTL:      cfg.Server.SessionTTL.Duration,
				Strict:          cfg.Validation.Strict,
				CacheTTL:        cfg.Cache.TTL.Duration,
			}
			if cfg.Server.Metrics {
				// Replaces the debug log hooks installed by --verbose.
				m := metrics.New()
				m.Register()
				opts.Metrics = m.Handler()
			}
			return server.New(runner, c.Logger, opts).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
