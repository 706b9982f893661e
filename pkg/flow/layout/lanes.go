package layout

import (
	"math"
	"slices"

	"github.com/pkessler/flowgrid/pkg/flow"
)

// FaultLane describes where one fault edge is routed.
type FaultLane struct {
	// Lane is the zero-based lane number, counted outward from the main
	// content.
	Lane int `json:"lane"`
	// X is the lane's horizontal position.
	X float64 `json:"x"`
	// Index is the edge's position in main-flow traversal order, across
	// all fault edges.
	Index int `json:"index"`
}

// laneWalker replays the engine's visit order over the primary (non-fault)
// graph, assigning a strictly increasing traversal index to each node on
// first visit and collecting fault edges in the order encountered.
//
// The walk must mirror layoutNode's dispatch exactly - branch order,
// merge bounds, loop body before continuation - because lane priority is
// defined in terms of where a fault occurs in the rendered flow.
type laneWalker struct {
	g      *flow.Graph
	index  map[string]int
	next   int
	faults []flow.Edge
}

func (w *laneWalker) walk(id, stopAt string, visited map[string]bool) {
	for {
		if id == "" || id == stopAt || visited[id] {
			return
		}
		if _, seen := w.index[id]; seen {
			return
		}
		n, ok := w.g.Node(id)
		if !ok {
			return
		}
		visited[id] = true
		w.index[id] = w.next
		w.next++
		w.faults = append(w.faults, w.g.FaultOutgoing(id)...)

		out := w.g.NonFaultOutgoing(id)
		if len(out) == 0 {
			return
		}

		switch {
		case isBranching(n, out):
			ordered := sortBranches(n, out)
			targets := branchTargets(ordered)
			merge := FindMerge(w.g, targets)
			branchStop := merge
			if branchStop == "" {
				branchStop = stopAt
			}
			for _, t := range targets {
				w.walk(t, branchStop, copyVisited(visited))
			}
			if merge == "" {
				return
			}
			id = merge

		case n.Type == flow.NodeLoop:
			body, after := loopTargets(out)
			w.walk(body, id, copyVisited(visited))
			id = after

		default:
			id = out[0].Target
		}
	}
}

// AllocateFaultLanes assigns each fault edge reachable from entry a
// conflict-free lane so that parallel error paths never visually cross.
//
// Each fault edge spans a traversal-index interval [min, max] taken over
// its source and target; a target outside the main traversal (a fault-only
// subtree) extends the interval to infinity, since that path runs downward
// with no rejoin. Edges are sorted by source index (flow order) and packed
// greedily: scanning lanes left to right, an edge takes the first lane
// whose last occupant ends strictly before the edge begins, otherwise a new
// lane opens. This is interval-graph coloring, so the greedy scan is
// optimal in lane count, and lanes nearer the main content go to faults
// that occur earlier in the flow.
//
// Lane X positions start at baseX and advance by spacing per lane.
func AllocateFaultLanes(g *flow.Graph, entry string, baseX, spacing float64) map[string]FaultLane {
	lanes, _ := allocateFaultLanes(g, entry, baseX, spacing)
	return lanes
}

// allocateFaultLanes additionally returns the main-flow traversal index,
// which the engine uses to tell fault-only targets (it must place them)
// from recovery nodes that the primary traversal will reach on its own.
func allocateFaultLanes(g *flow.Graph, entry string, baseX, spacing float64) (map[string]FaultLane, map[string]int) {
	w := &laneWalker{g: g, index: make(map[string]int)}
	w.walk(entry, "", make(map[string]bool))

	type interval struct {
		edge     flow.Edge
		min, max int
	}

	intervals := make([]interval, 0, len(w.faults))
	for _, e := range w.faults {
		src, ok := w.index[e.Source]
		if !ok {
			continue
		}
		tgt, ok := w.index[e.Target]
		if !ok {
			tgt = math.MaxInt
		}
		intervals = append(intervals, interval{edge: e, min: min(src, tgt), max: max(src, tgt)})
	}

	slices.SortStableFunc(intervals, func(a, b interval) int {
		return w.index[a.edge.Source] - w.index[b.edge.Source]
	})

	lanes := make(map[string]FaultLane, len(intervals))
	var laneEnds []int // per lane, the max index of its last occupant
	for i, iv := range intervals {
		lane := -1
		for li, end := range laneEnds {
			if end < iv.min {
				lane = li
				break
			}
		}
		if lane < 0 {
			laneEnds = append(laneEnds, iv.max)
			lane = len(laneEnds) - 1
		} else {
			laneEnds[lane] = iv.max
		}
		lanes[iv.edge.ID] = FaultLane{
			Lane:  lane,
			X:     baseX + float64(lane)*spacing,
			Index: i,
		}
	}
	return lanes, w.index
}
