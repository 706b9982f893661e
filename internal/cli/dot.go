package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkessler/flowgrid/pkg/flow"
	"github.com/pkessler/flowgrid/pkg/flow/dot"
	"github.com/pkessler/flowgrid/pkg/flow/layout"
	"github.com/pkessler/flowgrid/pkg/pipeline"
)

// dotCommand creates the dot command for raw-graph Graphviz export.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
		withPos  bool
	)

	cmd := &cobra.Command{
		Use:   "dot [flow.json]",
		Short: "Export a flow graph as Graphviz DOT",
		Long: `Export a flow graph as Graphviz DOT for quick inspection.

By default the export carries only topology; with --positions the layout
engine runs first and the computed coordinates are pinned into the DOT
source. The svg and png formats render through Graphviz directly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runDot(ctx, args[0], output, format, detailed, withPos)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatDOT, "output format: dot (default), svg, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "verbose node labels (type and id)")
	cmd.Flags().BoolVar(&withPos, "positions", false, "compute the layout and pin node positions")

	return cmd
}

func (c *CLI) runDot(ctx context.Context, input, output, format string, detailed, withPos bool) error {
	logger := loggerFromContext(ctx)

	if format != pipeline.FormatDOT && format != pipeline.FormatSVG && format != pipeline.FormatPNG {
		return fmt.Errorf("invalid format: %q (must be 'dot', 'svg', or 'png')", format)
	}

	g, err := flow.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load flow %s: %w", input, err)
	}
	logger.Infof("Loaded flow: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	var res *layout.Result
	if withPos {
		computed := layout.Compute(g, mergeLayout(c.Config.Layout, layout.Config{}))
		res = &computed
	}

	src := dot.ToDOT(g, res, dot.Options{Detailed: detailed})

	var data []byte
	switch format {
	case pipeline.FormatDOT:
		data = []byte(src)
	case pipeline.FormatSVG:
		logger.Info("Rendering SVG")
		data, err = dot.RenderSVG(ctx, src)
	case pipeline.FormatPNG:
		logger.Info("Rendering PNG")
		data, err = dot.RenderPNG(ctx, src)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	path := output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Export complete")
	printFile(path)
	return nil
}
