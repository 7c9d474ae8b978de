package cache

// ScopedKeyer wraps a Keyer with a prefix, giving callers that share one
// backend separate namespaces:
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
//	cliKeyer := NewScopedKeyer(NewDefaultKeyer(), "cli:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer defaults to DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ResultKey returns the inner key with the prefix prepended.
func (k *ScopedKeyer) ResultKey(config, datasetHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(config, datasetHash, opts)
}
