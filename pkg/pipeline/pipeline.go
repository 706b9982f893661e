// Package pipeline provides the core load, layout and render pipeline for
// flowgrid.
//
// The pipeline is the shared execution path behind the CLI and the HTTP
// server: both hand a flow graph and an Options struct to a [Runner] and
// get back positioned nodes plus any requested artifacts. Centralizing it
// keeps caching and defaulting behavior identical across entry points.
//
// # Stages
//
//  1. Load: decode a flow definition into an indexed graph
//  2. Layout: compute node positions and fault lanes
//  3. Render: produce output artifacts (JSON, DOT, SVG, PNG)
//
// Layout and render results are cached by content hash, so repeated runs
// over an unchanged flow are near-instant.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	g, err := pipeline.LoadFile("order.flow.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Formats: []string{"json", "svg"},
//	})
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pkessler/flowgrid/pkg/flow"
	"github.com/pkessler/flowgrid/pkg/flow/layout"
)

// Format constants for output artifacts.
const (
	FormatJSON = "json" // positioned nodes and fault lanes
	FormatDOT  = "dot"  // Graphviz source
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// Options contains all configuration for one pipeline run.
// The struct supports JSON serialization for API requests.
type Options struct {
	// Layout options. Zero values take engine defaults; Layout.Entry
	// overrides entry-node resolution.
	Layout layout.Config `json:"layout"`

	// Refresh bypasses cached results and overwrites them.
	Refresh bool `json:"refresh,omitempty"`

	// Render options.
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // verbose DOT labels

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded flow graph.
	Graph *flow.Graph

	// GraphHash is the content hash of the graph's canonical bytes.
	GraphHash string

	// Layout contains the positioned nodes, fault lanes and bounding box.
	Layout layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	SkippedEdges int
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // whether the layout came from cache
	RenderHit bool // whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. The method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills unset layout knobs with engine defaults.
func (o *Options) SetLayoutDefaults() {
	o.Layout = o.Layout.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// NeedsGraphviz reports whether any requested format requires an
// in-process Graphviz render.
func (o *Options) NeedsGraphviz() bool {
	for _, f := range o.Formats {
		if f == FormatSVG || f == FormatPNG {
			return true
		}
	}
	return false
}
