// Package config loads dagcheck settings from TOML.
//
// Settings are resolved in three layers: built-in defaults, an optional
// config file, then environment overrides. A minimal file looks like:
//
//	log_level = "debug"
//
//	[server]
//	addr = ":9090"
//
//	[cache]
//	backend = "redis"
//	ttl = "1h"
//
//	[cache.redis]
//	addr = "redis:6379"
//
// Without an explicit path, Load reads $XDG_CONFIG_HOME/dagcheck/config.toml
// (or ~/.config/dagcheck/config.toml) if it exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dagcheck/pkg/errors"
)

const appName = "dagcheck"

// Cache backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

var backends = []string{BackendNone, BackendMemory, BackendFile, BackendRedis}

var logLevels = []string{"debug", "info", "warn", "error"}

// Environment variables that override file settings.
const (
	EnvAddr      = "DAGCHECK_ADDR"
	EnvRedisAddr = "DAGCHECK_REDIS_ADDR"
	EnvCache     = "DAGCHECK_CACHE"
	EnvLogLevel  = "DAGCHECK_LOG_LEVEL"
)

// Duration is a time.Duration that decodes from TOML strings like "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the complete dagcheck configuration.
type Config struct {
	LogLevel   string     `toml:"log_level"`
	Server     Server     `toml:"server"`
	Cache      Cache      `toml:"cache"`
	Validation Validation `toml:"validation"`
}

// Server configures the HTTP API.
type Server struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
	SessionTTL      Duration `toml:"session_ttl"` // idle editor sessions expire after this
	MaxSessions     int      `toml:"max_sessions"`
	Metrics         bool     `toml:"metrics"` // expose /metrics
}

// Cache selects and configures the result cache.
type Cache struct {
	Backend    string   `toml:"backend"`
	Dir        string   `toml:"dir"`
	TTL        Duration `toml:"ttl"`
	MaxEntries int      `toml:"max_entries"`
	Redis      Redis    `toml:"redis"`
}

// Redis configures the Redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Validation holds validator defaults.
type Validation struct {
	Strict bool `toml:"strict"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     Duration{5 * time.Second},
			WriteTimeout:    Duration{10 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
			MaxBodyBytes:    1 << 20,
			SessionTTL:      Duration{time.Hour},
			MaxSessions:     1000,
			Metrics:         true,
		},
		Cache: Cache{
			Backend:    BackendFile,
			TTL:        Duration{24 * time.Hour},
			MaxEntries: 10_000,
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "dagcheck:",
			},
		},
	}
}

// Load resolves the configuration. An explicit path must exist; with an
// empty path the default location is used when present.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				return Config{}, errors.New(errors.ErrCodeInvalidConfig,
					"%s: unknown keys: %s", path, strings.Join(keys, ", "))
			}
		case os.IsNotExist(err) && !explicit:
			// No user config; defaults apply.
		case os.IsNotExist(err):
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		default:
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	}

	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultPath returns the per-user config file location, or "" when no
// home directory can be determined.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// DefaultCacheDir returns the XDG cache directory (~/.cache/dagcheck/).
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := getenv(EnvCache); v != "" {
		c.Cache.Backend = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if !slices.Contains(logLevels, c.LogLevel) {
		return errors.New(errors.ErrCodeInvalidConfig, "log_level %q: want one of %v", c.LogLevel, logLevels)
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	for name, d := range map[string]Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"server.session_ttl":      c.Server.SessionTTL,
		"cache.ttl":               c.Cache.TTL,
	} {
		if d.Duration < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative", name)
		}
	}
	if c.Server.MaxSessions < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_sessions must not be negative")
	}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q: want one of %v", c.Cache.Backend, backends)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.redis.addr is required for the redis backend")
	}
	return nil
}

// String renders the config as TOML with the Redis password masked.
func (c Config) String() string {
	masked := c
	if masked.Cache.Redis.Password != "" {
		masked.Cache.Redis.Password = "***"
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(masked); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
