package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments (or
// a staging and a production API) can share one Redis database.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "dagcheck:prod:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ValidationKey generates a prefixed key for a validation result.
func (k *ScopedKeyer) ValidationKey(graphKey string, opts ValidationKeyOpts) string {
	return k.prefix + k.inner.ValidationKey(graphKey, opts)
}
