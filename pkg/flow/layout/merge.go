package layout

import "github.com/pkessler/flowgrid/pkg/flow"

// FindMerge locates the point where divergent branches recombine: the
// closest node reachable from every branch target via non-fault edges.
//
// A breadth-first search runs independently from each target, recording the
// depth at which every node is first reached (edges are unweighted, so
// first-visit order equals shortest distance). A node reached from all
// targets is a merge candidate; among candidates FindMerge picks the one
// with the minimal sum of depths across all branches. Summing, rather than
// taking the shallowest depth from any single branch, centers the merge
// point relative to all branches instead of biasing toward the first one.
//
// Candidates with equal sums are broken deterministically by the first
// branch's BFS discovery order. That rule is an implementation choice, not
// a semantic one, but it is stable across runs and inputs, which is what
// reproducible re-layout requires.
//
// Returns "" when fewer than two targets are supplied or when the branches
// never reconverge (each ends independently); neither case is an error.
// Complexity is O(B·(V+E)) for B branch targets.
func FindMerge(g *flow.Graph, targets []string) string {
	if len(targets) < 2 {
		return ""
	}

	depths := make([]map[string]int, len(targets))
	var firstOrder []string

	for i, target := range targets {
		seen := make(map[string]int)
		var order []string

		type item struct {
			id    string
			depth int
		}
		queue := []item{{target, 0}}
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]

			if curr.id == "" {
				continue
			}
			if _, ok := seen[curr.id]; ok {
				continue
			}
			if _, ok := g.Node(curr.id); !ok {
				continue
			}
			seen[curr.id] = curr.depth
			order = append(order, curr.id)

			for _, e := range g.Outgoing(curr.id) {
				if e.Type.Fault() {
					continue
				}
				queue = append(queue, item{e.Target, curr.depth + 1})
			}
		}

		depths[i] = seen
		if i == 0 {
			firstOrder = order
		}
	}

	best := ""
	bestSum := -1
	for _, id := range firstOrder {
		sum := 0
		common := true
		for _, seen := range depths {
			d, ok := seen[id]
			if !ok {
				common = false
				break
			}
			sum += d
		}
		if !common {
			continue
		}
		if bestSum < 0 || sum < bestSum {
			best, bestSum = id, sum
		}
	}
	return best
}
