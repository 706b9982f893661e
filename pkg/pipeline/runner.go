package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pkessler/flowgrid/pkg/cache"
	"github.com/pkessler/flowgrid/pkg/flow"
	"github.com/pkessler/flowgrid/pkg/flow/layout"
	"github.com/pkessler/flowgrid/pkg/observability"
)

// Runner encapsulates pipeline execution with caching. Both the CLI and
// the HTTP server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it does not
// store run results, so multiple goroutines can safely share one Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer falls back to the default derivation; a nil cache disables
// caching; a nil logger falls back to the package default.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete layout and render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g *flow.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Graph: g,
		Stats: Stats{
			NodeCount:    g.NodeCount(),
			EdgeCount:    g.EdgeCount(),
			SkippedEdges: g.SkippedEdges(),
		},
	}

	if data, err := flow.MarshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, result.GraphHash, g.NodeCount())
	res, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, g, opts)
	observability.Pipeline().OnLayoutComplete(ctx, result.GraphHash, time.Since(layoutStart), err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", g.NodeCount(),
		"lanes", len(res.FaultLanes),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, res, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and reports
// whether the result came from the cache.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, g *flow.Graph, opts Options) (layout.Result, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	graphData, err := flow.MarshalGraph(g)
	if err != nil {
		return layout.Result{}, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(graphData), opts.Layout)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := layout.UnmarshalResult(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Undecodable entry, fall through and recompute.
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	res := layout.Compute(g, opts.Layout)

	if data, err := layout.MarshalResult(res); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return res, false, nil
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, g *flow.Graph, opts Options) (layout.Result, error) {
	res, _, err := r.ComputeLayoutWithCacheInfo(ctx, g, opts)
	return res, err
}

// RenderWithCacheInfo produces artifacts with caching and reports whether
// all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *flow.Graph, res layout.Result, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := layout.MarshalResult(res)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		allCached := true
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := renderFromLayout(ctx, g, res, layoutData, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *flow.Graph, res layout.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, res, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// ArtifactKeyOpts returns cache key options for one artifact format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Detailed: o.Detailed}
}
