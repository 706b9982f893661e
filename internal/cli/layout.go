package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkessler/flowgrid/pkg/flow"
	"github.com/pkessler/flowgrid/pkg/pipeline"
)

// layoutCommand creates the layout command for computing flow layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		noCache    bool
		formatsStr string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [flow.json|dir]",
		Short: "Compute node positions for a flow graph",
		Long: `Compute node positions for a flow graph.

The layout command takes a flow.json file and positions every node on the
grid: the entry node anchors the first column, branches spread around their
decision node, merge points re-center, and fault connectors route through
dedicated lanes on the right. The output is a layout.json file with absolute
coordinates, fault-lane geometry, and the overall bounding box.

When given a directory (or no argument), an interactive picker lists the
flow files found there.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "."
			if len(args) == 1 {
				input = args[0]
			}
			opts.Formats = parseFormats(formatsStr)
			return c.runLayout(cmd.Context(), input, opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute and overwrite cached results")

	// Layout flags
	cmd.Flags().StringVar(&opts.Layout.Entry, "entry", "", "entry node id (default: resolved from the graph)")
	cmd.Flags().Float64Var(&opts.Layout.NodeWidth, "node-width", 0, "fallback node width")
	cmd.Flags().Float64Var(&opts.Layout.NodeHeight, "node-height", 0, "fallback node height")
	cmd.Flags().Float64Var(&opts.Layout.GapX, "gap-x", 0, "horizontal gap between grid columns")
	cmd.Flags().Float64Var(&opts.Layout.GapY, "gap-y", 0, "vertical gap between grid rows")
	cmd.Flags().Float64Var(&opts.Layout.FaultGapX, "fault-gap", 0, "gap between main content and the fault-lane region")
	cmd.Flags().Float64Var(&opts.Layout.FaultLaneGap, "lane-gap", 0, "gap between adjacent fault lanes")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "verbose node labels in DOT output")

	return cmd
}

// runLayout loads the graph, runs the pipeline, and writes output artifacts.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	input, err := resolveInput(input)
	if err != nil {
		return err
	}

	g, err := flow.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load flow %s: %w", input, err)
	}
	pipeline.WarnSkipped(c.Logger, g)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Layout = mergeLayout(c.Config.Layout, opts.Layout)

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Positioned %d nodes", result.Stats.NodeCount))

	paths, err := writeArtifacts(result.Artifacts, input, output)
	if err != nil {
		return err
	}

	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.SkippedEdges, result.CacheInfo.LayoutHit)
	if len(result.Layout.FaultLanes) > 0 {
		printDetail("%d fault lanes", len(result.Layout.FaultLanes))
	}
	printNewline()
	printNextStep("Inspect", "flowgrid dot "+input)

	return nil
}

// resolveInput turns a file-or-directory argument into a concrete flow file,
// prompting with the interactive picker for directories.
func resolveInput(input string) (string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", input, err)
	}
	if !info.IsDir() {
		return input, nil
	}
	return pickFlowFile(input)
}

// artifactExt maps a pipeline format to the output file suffix.
func artifactExt(format string) string {
	if format == pipeline.FormatJSON {
		return "layout.json"
	}
	return format
}

// writeArtifacts writes every rendered artifact next to the input file.
// With a single format, the --output path is used verbatim; with several,
// it acts as the base path.
func writeArtifacts(artifacts map[string][]byte, input, output string) ([]string, error) {
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if len(artifacts) > 1 {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	var paths []string
	for _, format := range []string{pipeline.FormatJSON, pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG} {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + artifactExt(format)
		if output != "" && len(artifacts) == 1 {
			path = output
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
