package cache

import (
	"encoding/json"
	"fmt"
)

// Keyer generates cache keys.
type Keyer interface {
	// ValidationKey returns the key for a validation result of the graph
	// identified by graphKey.
	ValidationKey(graphKey string, opts ValidationKeyOpts) string
}

// ValidationKeyOpts holds the options that change a validation outcome.
type ValidationKeyOpts struct {
	Strict bool `json:"strict"`
}

// DefaultKeyer produces unscoped keys of the form "validation:<hash>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ValidationKey implements Keyer.
func (DefaultKeyer) ValidationKey(graphKey string, opts ValidationKeyOpts) string {
	return hashKey("validation", graphKey, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}
