package cache

import "github.com/pkessler/flowgrid/pkg/flow/layout"

// ScopedKeyer wraps a Keyer with a prefix so that independent deployments
// sharing one backend (for example several flowgrid servers behind one
// Redis) keep separate cache namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every generated
// key. A nil inner keyer falls back to the default derivation.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(graphHash string, cfg layout.Config) string {
	return k.prefix + k.inner.LayoutKey(graphHash, cfg)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
