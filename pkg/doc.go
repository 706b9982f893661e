// Package pkg provides the core libraries for flowgrid flow-diagram layout.
//
// # Overview
//
// Flowgrid positions the nodes of a flow diagram on a deterministic grid:
// the entry node anchors the first column, branches spread symmetrically
// around their decision, merge points re-center between the branches they
// join, and fault connectors route through dedicated lanes to the right of
// main content. The pkg directory is organized into five areas:
//
//  1. [flow] - Graph model and JSON serialization
//  2. [flow/layout] - The layout engine (merge finding, branch metrics, fault lanes)
//  3. [flow/dot] - Graphviz DOT export and SVG/PNG rendering
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//  5. [cache], [errors], [observability], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	flow.json
//	     ↓
//	[flow] package (index nodes and edges, resolve the entry)
//	     ↓
//	[flow/layout] package (grid positions, fault lanes, bounds)
//	     ↓
//	[pipeline] package (caching, artifact rendering)
//	     ↓
//	layout.json / DOT / SVG / PNG output
//
// # Quick Start
//
// Load a flow and compute its layout:
//
//	import (
//	    "github.com/pkessler/flowgrid/pkg/flow"
//	    "github.com/pkessler/flowgrid/pkg/flow/layout"
//	)
//
//	g, _ := flow.ReadGraphFile("checkout.json")
//	res := layout.Compute(g, layout.Config{})
//	for _, n := range res.Nodes {
//	    fmt.Printf("%s at (%.0f, %.0f)\n", n.ID, *n.X, *n.Y)
//	}
//
// Or run the full pipeline with caching:
//
//	import "github.com/pkessler/flowgrid/pkg/pipeline"
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, _ := runner.Execute(ctx, g, pipeline.Options{
//	    Formats: []string{pipeline.FormatJSON, pipeline.FormatSVG},
//	})
//
// # Main Packages
//
// [flow] - The flow graph: typed nodes (start, decision, loop, wait, end,
// and the linear action kinds), regular/fault/goto edges, adjacency indexes,
// and entry-node resolution. Dangling edges are dropped at construction and
// surfaced as diagnostics.
//
// [flow/layout] - Deterministic tree layout. Subpieces: reachability index,
// merge-point finder (where branches rejoin), branch metrics (subtree column
// widths), fault-lane allocator (interval scheduling with lane reuse), and
// the recursive placement engine.
//
// [flow/dot] - Graphviz export for debugging: node shapes per type, dashed
// red fault edges, dotted goto edges, with optional pinned positions.
//
// [pipeline] - Load, layout, render as cached stages. Layout results are
// cached by graph hash and geometry; artifacts by layout hash and format.
//
// [cache] - Cache interface with file, Redis, MongoDB, and null backends,
// plus key derivation and retry helpers.
//
// [errors] - Structured error codes shared by the CLI and the HTTP API.
//
// [observability] - Optional hooks for metrics and tracing backends.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/flow/layout/... # The layout engine only
//
// [flow]: https://pkg.go.dev/github.com/pkessler/flowgrid/pkg/flow
// [flow/layout]: https://pkg.go.dev/github.com/pkessler/flowgrid/pkg/flow/layout
// [flow/dot]: https://pkg.go.dev/github.com/pkessler/flowgrid/pkg/flow/dot
// [pipeline]: https://pkg.go.dev/github.com/pkessler/flowgrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/pkessler/flowgrid/pkg/cache
// [errors]: https://pkg.go.dev/github.com/pkessler/flowgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/pkessler/flowgrid/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/pkessler/flowgrid/pkg/buildinfo
package pkg
