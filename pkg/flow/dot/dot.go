// Package dot exports flow graphs to Graphviz DOT, primarily as a debug
// view of the layout engine's input and output. Shapes follow flow-builder
// conventions: diamonds for decisions, circles for start and end markers,
// boxes for everything else. Fault edges render dashed in red, goto edges
// dotted.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pkessler/flowgrid/pkg/flow"
	"github.com/pkessler/flowgrid/pkg/flow/layout"
)

// Options configures DOT export.
type Options struct {
	// Detailed includes the node type and computed position in labels.
	// When false, only the display label is shown.
	Detailed bool
}

// ToDOT converts a flow graph to Graphviz DOT format. When a layout result
// is given, each positioned node carries a pos attribute (in points,
// y-flipped to Graphviz's upward axis) so `neato -n` reproduces the
// engine's geometry; pass nil to let Graphviz lay the graph out itself.
func ToDOT(g *flow.Graph, res *layout.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph flow {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	positions := indexPositions(res)
	for _, n := range g.Nodes() {
		attrs := nodeAttrs(n, positions[n.ID], opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// indexPositions maps node IDs to their placed copies, or nil when no
// layout is given.
func indexPositions(res *layout.Result) map[string]*flow.Node {
	if res == nil {
		return nil
	}
	out := make(map[string]*flow.Node, len(res.Nodes))
	for i := range res.Nodes {
		out[res.Nodes[i].ID] = &res.Nodes[i]
	}
	return out
}

func nodeAttrs(n *flow.Node, placed *flow.Node, detailed bool) []string {
	label := n.DisplayLabel()
	if detailed {
		parts := []string{string(n.Type)}
		if placed != nil && placed.X != nil && placed.Y != nil {
			parts = append(parts, fmt.Sprintf("(%.0f, %.0f)", *placed.X, *placed.Y))
		}
		label = label + "\n" + strings.Join(parts, "\n")
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}

	switch n.Type {
	case flow.NodeDecision, flow.NodeWait:
		attrs = append(attrs, "shape=diamond")
	case flow.NodeStart, flow.NodeEnd:
		attrs = append(attrs, "shape=circle")
	case flow.NodeLoop:
		attrs = append(attrs, "shape=box", "peripheries=2")
	}

	if placed != nil && placed.X != nil && placed.Y != nil {
		// Graphviz pos is the node center with y growing upward.
		attrs = append(attrs, fmt.Sprintf("pos=\"%.0f,%.0f!\"", *placed.X+placed.Width/2, -*placed.Y))
	}
	return attrs
}

func edgeAttrs(e flow.Edge) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	switch {
	case e.Type.Fault():
		attrs = append(attrs, "style=dashed", "color=red")
	case e.Type == flow.EdgeGoTo:
		attrs = append(attrs, "style=dotted")
	case e.Type == flow.EdgeLoopNext, e.Type == flow.EdgeLoopEnd:
		attrs = append(attrs, fmt.Sprintf("taillabel=%q", string(e.Type)))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz in process.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz in process.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
