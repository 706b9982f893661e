package layout

import "github.com/pkessler/flowgrid/pkg/flow"

// Depth returns the number of grid rows occupied by the subtree rooted at
// start, bounded by the optional stop node (exclusive). A stopAt of ""
// means the subtree extends to its natural ends.
//
// Branching nodes contribute one row, plus the deepest branch bounded by
// the branches' merge point, plus whatever follows the merge. Loop nodes
// contribute one row, plus the loop body (which reconverges at the loop
// node itself and always occupies at least one row), plus the post-loop
// continuation. Linear nodes contribute one row each.
//
// Traversal is bounded by a per-branch visited set, so cyclic input (loop
// back-edges, malformed gotos) terminates instead of recursing forever.
func Depth(g *flow.Graph, start, stopAt string) int {
	return subtreeDepth(g, start, stopAt, nil)
}

func subtreeDepth(g *flow.Graph, start, stopAt string, visited map[string]bool) int {
	visited = copyVisited(visited)
	total := 0

	// Linear chains iterate rather than recurse so that very long flows
	// cannot exhaust the stack.
	for {
		if start == "" || start == stopAt || visited[start] {
			return total
		}
		n, ok := g.Node(start)
		if !ok {
			return total
		}
		visited[start] = true

		out := g.NonFaultOutgoing(start)
		if len(out) == 0 {
			return total + 1
		}

		switch {
		case isBranching(n, out):
			targets := branchTargets(out)
			merge := FindMerge(g, targets)
			branchStop := merge
			if branchStop == "" {
				branchStop = stopAt
			}
			deepest := 0
			for _, t := range targets {
				if d := subtreeDepth(g, t, branchStop, visited); d > deepest {
					deepest = d
				}
			}
			total += 1 + deepest
			if merge == "" {
				return total
			}
			start = merge

		case n.Type == flow.NodeLoop:
			body, after := loopTargets(out)
			bodyDepth := subtreeDepth(g, body, start, visited)
			if bodyDepth < 1 {
				bodyDepth = 1
			}
			total += 1 + bodyDepth
			start = after

		default:
			total++
			start = out[0].Target
		}
	}
}

// Width returns the number of grid columns occupied by the subtree rooted
// at start, bounded by the optional stop node (exclusive).
//
// Branches lay out side by side, so a branching node's width is the sum of
// its branch widths (bounded by their merge point), floored by whatever
// follows the merge and by one column for the node itself. A loop reserves
// one extra column for its body lane and never collapses below two columns,
// since a loop always shows two visual lanes. A subtree that contains any
// node at all occupies at least one column, even when its chain runs
// straight into stopAt; only a call whose start is already the boundary
// (or empty) reports zero.
func Width(g *flow.Graph, start, stopAt string) int {
	return subtreeWidth(g, start, stopAt, nil)
}

func subtreeWidth(g *flow.Graph, start, stopAt string, visited map[string]bool) int {
	visited = copyVisited(visited)
	entered := false

	for {
		if start == "" || start == stopAt || visited[start] {
			if entered {
				return 1
			}
			return 0
		}
		n, ok := g.Node(start)
		if !ok {
			if entered {
				return 1
			}
			return 0
		}
		visited[start] = true
		entered = true

		out := g.NonFaultOutgoing(start)
		if len(out) == 0 {
			return 1
		}

		switch {
		case isBranching(n, out):
			targets := branchTargets(out)
			merge := FindMerge(g, targets)
			branchStop := merge
			if branchStop == "" {
				branchStop = stopAt
			}
			sum := 0
			for _, t := range targets {
				sum += subtreeWidth(g, t, branchStop, visited)
			}
			after := 0
			if merge != "" {
				after = subtreeWidth(g, merge, stopAt, visited)
			}
			return max(sum, after, 1)

		case n.Type == flow.NodeLoop:
			body, after := loopTargets(out)
			bodyWidth := subtreeWidth(g, body, start, visited)
			afterWidth := 0
			if after != "" {
				afterWidth = subtreeWidth(g, after, stopAt, visited)
			}
			return max(bodyWidth+1, afterWidth, 2)

		default:
			start = out[0].Target
		}
	}
}
