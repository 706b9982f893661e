// Package cache provides byte-level caching for computed layouts and
// rendered artifacts, with interchangeable backends: an on-disk cache for
// CLI usage, Redis and MongoDB for server deployments, and a no-op cache
// for tests and --refresh runs.
package cache

import (
	"context"
	"time"

	"github.com/pkessler/flowgrid/pkg/flow/layout"
)

// Default TTLs per entry class. Layouts are cheap to recompute, artifacts
// less so; both are pure functions of their key, so long TTLs are safe.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero on Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys for the cacheable pipeline stages. Keys embed a
// hash of every input that affects the output, so a change to the flow
// graph or to any layout knob naturally misses the cache.
type Keyer interface {
	// LayoutKey identifies a computed layout by the canonical hash of its
	// input graph and the full layout configuration.
	LayoutKey(graphHash string, cfg layout.Config) string

	// ArtifactKey identifies a rendered artifact derived from a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render parameters that distinguish artifacts
// produced from the same layout.
type ArtifactKeyOpts struct {
	Format   string `json:"format"` // json, dot, svg, png
	Detailed bool   `json:"detailed,omitempty"`
}

// DefaultKeyer is the standard key derivation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, cfg layout.Config) string {
	return hashKey("layout", graphHash, cfg)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
