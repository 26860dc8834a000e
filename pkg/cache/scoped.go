package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The server uses it to keep per-client cache entries apart while sharing
// one backend.
//
// Example usage:
//
//	// Namespace-specific keys
//	nsKeyer := NewScopedKeyer(NewDefaultKeyer(), "ns:abc123:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
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

// TreeKey generates a prefixed key for built-tree caching.
func (k *ScopedKeyer) TreeKey(input string, opts TreeKeyOpts) string {
	return k.prefix + k.inner.TreeKey(input, opts)
}

// ArtKey generates a prefixed key for text-art caching.
func (k *ScopedKeyer) ArtKey(treeHash string, opts ArtKeyOpts) string {
	return k.prefix + k.inner.ArtKey(treeHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(treeHash, opts)
}
