package layout

import (
	"slices"

	"github.com/pkessler/flowgrid/pkg/flow"
)

// isBranching reports whether the node spreads its non-fault edges into
// parallel branches: decisions and waits always do, start nodes only when
// they fan into more than one path.
func isBranching(n *flow.Node, out []flow.Edge) bool {
	if n.Type.Branching() {
		return len(out) >= 2
	}
	return n.Type == flow.NodeStart && len(out) >= 2
}

// sortBranches orders a branching node's outgoing edges for left-to-right
// placement. Named rule branches keep their authoring order and precede the
// unlabeled default/otherwise branch; for start nodes the relation flips,
// because the unlabeled edge is the immediate path and labeled edges are
// scheduled paths that belong to its right. The sort is stable, so edge
// insertion order is the final tie-break.
func sortBranches(n *flow.Node, edges []flow.Edge) []flow.Edge {
	out := slices.Clone(edges)
	labeledFirst := n.Type != flow.NodeStart
	slices.SortStableFunc(out, func(a, b flow.Edge) int {
		return branchRank(a, labeledFirst) - branchRank(b, labeledFirst)
	})
	return out
}

func branchRank(e flow.Edge, labeledFirst bool) int {
	labeled := e.Label != ""
	if labeled == labeledFirst {
		return 0
	}
	return 1
}

// branchTargets extracts the non-empty targets of the given edges,
// preserving order.
func branchTargets(edges []flow.Edge) []string {
	targets := make([]string, 0, len(edges))
	for _, e := range edges {
		if e.Target != "" {
			targets = append(targets, e.Target)
		}
	}
	return targets
}

// loopTargets splits a loop node's non-fault edges into the body entry
// (loopNext) and the post-loop continuation (loopEnd). A well-formed loop
// has at most one of each; extras are ignored, first wins.
func loopTargets(edges []flow.Edge) (body, after string) {
	for _, e := range edges {
		switch e.Type {
		case flow.EdgeLoopNext:
			if body == "" {
				body = e.Target
			}
		case flow.EdgeLoopEnd:
			if after == "" {
				after = e.Target
			}
		}
	}
	return body, after
}

// copyVisited clones a visited set so sibling branches traverse
// independently. Each branch may pass through the same downstream node
// without falsely reporting a cycle, while a single branch still terminates
// on revisiting its own ancestry.
func copyVisited(visited map[string]bool) map[string]bool {
	out := make(map[string]bool, len(visited)+1)
	for id := range visited {
		out[id] = true
	}
	return out
}
