// Package pipeline runs graph validation with result caching.
//
// Both the CLI and the API go through [Runner] so that cache keys, hook
// events and logging stay identical across entry points.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	out, err := runner.Validate(ctx, g, pipeline.Options{Strict: true})
//	if err != nil {
//	    // strict-mode input error (dangling edge, duplicate id)
//	}
//	fmt.Println(out.Result.Message, out.Cached)
package pipeline

import (
	"time"

	"github.com/matzehuels/dagcheck/pkg/cache"
	"github.com/matzehuels/dagcheck/pkg/dagcheck"
)

// Options control a single validation run.
type Options struct {
	// Strict rejects dangling edges and duplicate node ids with an error
	// instead of ignoring them.
	Strict bool

	// Refresh skips the cache lookup but still stores the fresh result.
	Refresh bool

	// TTL overrides cache.TTLValidation when positive.
	TTL time.Duration
}

func (o Options) ttl() time.Duration {
	if o.TTL > 0 {
		return o.TTL
	}
	return cache.TTLValidation
}

// Outcome is the result of a validation run plus bookkeeping for callers
// that display or log it.
type Outcome struct {
	Result    dagcheck.Result `json:"result"`
	GraphKey  string          `json:"graphKey"`
	Cached    bool            `json:"cached"`
	NodeCount int             `json:"nodeCount"`
	EdgeCount int             `json:"edgeCount"`
	Duration  time.Duration   `json:"-"`
}
