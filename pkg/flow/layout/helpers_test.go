package layout

import (
	"testing"

	"github.com/pkessler/flowgrid/pkg/flow"
)

// testCfg uses round numbers so expected positions are easy to derive by
// hand: column pitch 120, row pitch 80.
var testCfg = Config{
	NodeWidth:    100,
	NodeHeight:   50,
	GapX:         20,
	GapY:         30,
	FaultGapX:    80,
	FaultLaneGap: 40,
	StartFanGap:  24,
}

func node(id string, t flow.NodeType) flow.Node {
	return flow.Node{ID: id, Type: t}
}

func edge(id, source, target string, t flow.EdgeType) flow.Edge {
	return flow.Edge{ID: id, Source: source, Target: target, Type: t}
}

func labeled(id, source, target, label string) flow.Edge {
	return flow.Edge{ID: id, Source: source, Target: target, Type: flow.EdgeNormal, Label: label}
}

// placed returns the top-left position assigned to the node, failing the
// test if the node is missing or unpositioned.
func placed(t *testing.T, r Result, id string) (x, y float64) {
	t.Helper()
	for _, n := range r.Nodes {
		if n.ID != id {
			continue
		}
		if n.X == nil || n.Y == nil {
			t.Fatalf("node %s has no position", id)
		}
		return *n.X, *n.Y
	}
	t.Fatalf("node %s not in result", id)
	return 0, 0
}

// centerX returns the horizontal center of a default-sized node.
func centerX(t *testing.T, r Result, id string) float64 {
	t.Helper()
	x, _ := placed(t, r, id)
	return x + testCfg.NodeWidth/2
}
