package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dagcheck/pkg/cache"
	"github.com/matzehuels/dagcheck/pkg/dagcheck"
	"github.com/matzehuels/dagcheck/pkg/graph"
	"github.com/matzehuels/dagcheck/pkg/observability"
)

const keyTypeValidation = "validation"

// Runner encapsulates validation with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Validate checks g, consulting the cache first unless opts.Refresh is set.
// An error is returned only for strict-mode input errors; cache failures
// are logged and otherwise ignored.
func (r *Runner) Validate(ctx context.Context, g graph.Graph, opts Options) (*Outcome, error) {
	start := time.Now()
	out := &Outcome{
		GraphKey:  graph.Key(g),
		NodeCount: len(g.Nodes),
		EdgeCount: len(g.Edges),
	}
	key := r.Keyer.ValidationKey(out.GraphKey, cache.ValidationKeyOpts{Strict: opts.Strict})

	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key); ok {
			out.Result = res
			out.Cached = true
			out.Duration = time.Since(start)
			r.Logger.Debug("validation cache hit", "key", out.GraphKey[:12], "valid", res.Valid)
			return out, nil
		}
	}

	res, err := r.run(g, opts)
	if err != nil {
		observability.Validation().OnInputError(ctx, err)
		return nil, err
	}
	out.Result = res
	out.Duration = time.Since(start)
	observability.Validation().OnValidate(ctx, out.NodeCount, out.EdgeCount, res.Valid, string(res.Reason), out.Duration)

	r.store(ctx, key, res, opts.ttl())
	r.Logger.Debug("validated graph",
		"nodes", out.NodeCount,
		"edges", out.EdgeCount,
		"reason", res.Reason,
		"duration", out.Duration)
	return out, nil
}

func (r *Runner) run(g graph.Graph, opts Options) (dagcheck.Result, error) {
	if opts.Strict {
		return dagcheck.ValidateStrict(g.Nodes, g.Edges)
	}
	return dagcheck.Check(g), nil
}

func (r *Runner) lookup(ctx context.Context, key string) (dagcheck.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return dagcheck.Result{}, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeValidation)
		return dagcheck.Result{}, false
	}

	var res dagcheck.Result
	if err := json.Unmarshal(data, &res); err != nil || res.Reason == "" {
		// Corrupt entry: recompute and overwrite.
		observability.Cache().OnCacheMiss(ctx, keyTypeValidation)
		return dagcheck.Result{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeValidation)
	return res, true
}

func (r *Runner) store(ctx context.Context, key string, res dagcheck.Result, ttl time.Duration) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeValidation, len(data))
}
