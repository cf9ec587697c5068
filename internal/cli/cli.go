// Package cli implements the dagcheck command-line interface.
//
// # Commands
//
//   - validate: check a graph export and report the first failing rule
//   - serve: run the HTTP API used by the editor
//   - cache: manage the local result cache
//   - completion: generate shell completion scripts
//
// All commands support --verbose (-v) for debug-level logging and
// --config (-c) to point at a TOML config file. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dagcheck/pkg/buildinfo"
	"github.com/matzehuels/dagcheck/pkg/cache"
	"github.com/matzehuels/dagcheck/pkg/config"
	"github.com/matzehuels/dagcheck/pkg/observability"
	"github.com/matzehuels/dagcheck/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dagcheck",
		Short:         "dagcheck validates graphs drawn in the DAG editor",
		Long:          `dagcheck checks editor graph exports for the structural rules of a directed acyclic graph and serves the same check over HTTP for the editing canvas.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				registerLogHooks(c.Logger)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/dagcheck/config.toml)")

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves the config file and applies its log level unless
// --verbose already forced debug output.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if !c.verbose {
		if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
			c.SetLogLevel(lvl)
		}
	}
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
// The returned close function releases the cache.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, func() error, error) {
	if noCache {
		cfg.Cache.Backend = config.BackendNone
	}
	cc, keyer, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), cc.Close, nil
}

func (c *CLI) newCache(ctx context.Context, cfg config.Config) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewDefaultKeyer()
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), keyer, nil
	case config.BackendMemory:
		return cache.NewMemoryCache(cfg.Cache.MaxEntries), keyer, nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Debug("using redis cache", "addr", cfg.Cache.Redis.Addr, "prefix", cfg.Cache.Redis.Prefix)
		return rc, cache.NewScopedKeyer(keyer, cfg.Cache.Redis.Prefix), nil
	default:
		dir, err := cacheDir(cfg)
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), keyer, nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, nil, err
		}
		return fc, keyer, nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to the XDG
// default (~/.cache/dagcheck/).
func cacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return config.DefaultCacheDir()
}

// registerLogHooks routes observability events to the debug log.
func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetValidationHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}
