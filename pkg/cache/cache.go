// Package cache stores validation results keyed by graph structure.
//
// Validation is linear in the size of the graph, but the editor re-submits
// the same snapshot many times (every drag or relabel triggers a request).
// Caching by structural key lets the API answer those repeats without
// decoding adjacency again.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [MemoryCache]: process-local map with expiry, the server default
//   - [FileCache]: sharded JSON files under the XDG cache dir, for the CLI
//   - [RedisCache]: shared cache for multi-instance API deployments
//
// # Keys
//
// A [Keyer] turns a graph key (see graph.Key) plus validation options into a
// cache key. [ScopedKeyer] prefixes every key, which isolates deployments
// that share one Redis database.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the interface implemented by every backend.
// Get reports a miss with (nil, false, nil); errors are reserved for
// backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLValidation is the default lifetime of a cached validation result.
const TTLValidation = 24 * time.Hour

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
