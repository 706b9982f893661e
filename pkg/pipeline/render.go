package pipeline

import (
	"context"
	"fmt"

	"github.com/pkessler/flowgrid/pkg/flow"
	"github.com/pkessler/flowgrid/pkg/flow/dot"
	"github.com/pkessler/flowgrid/pkg/flow/layout"
)

// renderFromLayout produces every requested artifact from a computed
// layout. layoutData carries the result's canonical JSON so the json
// format reuses the bytes already produced for the cache key. The DOT
// source is built at most once and shared by the dot, svg and png formats.
func renderFromLayout(ctx context.Context, g *flow.Graph, res layout.Result, layoutData []byte, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dotSrc string
	needDOT := func() string {
		if dotSrc == "" {
			dotSrc = dot.ToDOT(g, &res, dot.Options{Detailed: opts.Detailed})
		}
		return dotSrc
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			artifacts[format] = layoutData

		case FormatDOT:
			artifacts[format] = []byte(needDOT())

		case FormatSVG:
			data, err := dot.RenderSVG(ctx, needDOT())
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[format] = data

		case FormatPNG:
			data, err := dot.RenderPNG(ctx, needDOT())
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = data

		default:
			return nil, fmt.Errorf("invalid format: %q", format)
		}
	}

	return artifacts, nil
}
