package dot

import (
	"strings"
	"testing"

	"github.com/pkessler/flowgrid/pkg/flow"
	"github.com/pkessler/flowgrid/pkg/flow/layout"
)

func testGraph() *flow.Graph {
	return flow.New(
		[]flow.Node{
			{ID: "start", Type: flow.NodeStart},
			{ID: "check", Type: flow.NodeDecision, Label: "Has account?"},
			{ID: "end", Type: flow.NodeEnd},
			{ID: "err", Type: flow.NodeEnd},
		},
		[]flow.Edge{
			{ID: "e1", Source: "start", Target: "check"},
			{ID: "e2", Source: "check", Target: "end", Label: "Yes"},
			{ID: "f1", Source: "check", Target: "err", Type: flow.EdgeFault},
		},
	)
}

func TestToDOT(t *testing.T) {
	out := ToDOT(testGraph(), nil, Options{})

	for _, want := range []string{
		"digraph flow {",
		`"check" [label="Has account?", shape=diamond];`,
		`"start" -> "check";`,
		`"check" -> "end" [label="Yes"];`,
		`"check" -> "err" [style=dashed, color=red];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
}

func TestToDOT_Positions(t *testing.T) {
	g := testGraph()
	res := layout.Compute(g, layout.Config{})
	out := ToDOT(g, &res, Options{})

	if !strings.Contains(out, "pos=\"") {
		t.Errorf("DOT output missing pos attributes:\n%s", out)
	}
}

func TestToDOT_PositionIsCenter(t *testing.T) {
	g := flow.New(
		[]flow.Node{
			{ID: "start", Type: flow.NodeStart},
			{ID: "a", Type: flow.NodeAction},
		},
		[]flow.Edge{{ID: "e1", Source: "start", Target: "a"}},
	)
	res := layout.Compute(g, layout.Config{
		NodeWidth:  100,
		NodeHeight: 50,
		GapX:       20,
		GapY:       30,
	})
	out := ToDOT(g, &res, Options{})

	// a sits at top-left (10, 80) with the fallback width applied, so its
	// Graphviz pos is the center (60, -80), not the corner.
	if !strings.Contains(out, `pos="60,-80!"`) {
		t.Errorf("DOT output missing centered pos for a:\n%s", out)
	}
}

func TestToDOT_GotoDotted(t *testing.T) {
	g := flow.New(
		[]flow.Node{
			{ID: "start", Type: flow.NodeStart},
			{ID: "a", Type: flow.NodeAction},
		},
		[]flow.Edge{
			{ID: "e1", Source: "start", Target: "a"},
			{ID: "g1", Source: "a", Target: "start", Type: flow.EdgeGoTo},
		},
	)
	out := ToDOT(g, nil, Options{})
	if !strings.Contains(out, `"a" -> "start" [style=dotted];`) {
		t.Errorf("goto edge not dotted:\n%s", out)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	out := ToDOT(testGraph(), nil, Options{Detailed: true})
	if !strings.Contains(out, "decision") {
		t.Errorf("detailed output missing node type:\n%s", out)
	}
}
