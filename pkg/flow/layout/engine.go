package layout

import "github.com/pkessler/flowgrid/pkg/flow"

// point is a node's center-x / top-y position on the canvas. The final
// result converts center-x to the top-left convention.
type point struct {
	x, y float64
}

// engine carries the mutable state of one layout call: the position map,
// the running right edge of main content, the running right edge of the
// fault lanes, and the set of fault targets already placed (several error
// edges may target the same recovery node). An engine instance is used for
// exactly one call and never shared.
type engine struct {
	g   *flow.Graph
	cfg Config

	pos             map[string]point
	contentMaxRight float64
	maxFaultX       float64
	placedFaults    map[string]bool
	lanes           map[string]FaultLane
	mainIndex       map[string]int

	// inFault is set while a fault subtree is being laid out. The subtree
	// stops at any node the primary traversal reaches, so a recovery chain
	// that rejoins the flow never drags main nodes into its lane.
	inFault bool
}

func (e *engine) nodeSize(n *flow.Node) (w, h float64) {
	w, h = n.Width, n.Height
	if w == 0 {
		w = e.cfg.NodeWidth
	}
	if h == 0 {
		h = e.cfg.NodeHeight
	}
	return w, h
}

// layoutNode places the node at (centerX, y) and recurses into its
// successors. It returns without effect when the id is empty, equals the
// traversal boundary stopAt, was already visited in this call's branch, or
// already holds a position from an earlier, higher-priority path (first
// assignment wins).
func (e *engine) layoutNode(id string, centerX, y float64, stopAt string, visited map[string]bool) {
	// Linear chains iterate in place; branching and loops recurse.
	for {
		if id == "" || id == stopAt || visited[id] {
			return
		}
		if _, main := e.mainIndex[id]; e.inFault && main {
			return
		}
		n, ok := e.g.Node(id)
		if !ok {
			return
		}
		if _, placed := e.pos[id]; placed {
			return
		}
		visited[id] = true

		e.pos[id] = point{centerX, y}
		w, h := e.nodeSize(n)
		if right := centerX + w/2; right > e.contentMaxRight {
			e.contentMaxRight = right
		}

		out := e.g.NonFaultOutgoing(id)
		nextY := y + h + e.cfg.GapY
		if n.Type == flow.NodeStart && len(out) > 1 {
			// Extra room under a start node fanning into scheduled paths.
			nextY += e.cfg.StartFanGap
		}

		e.routeFaults(id, y, h, visited)

		if len(out) == 0 {
			return
		}

		switch {
		case isBranching(n, out):
			e.layoutBranches(n, out, centerX, nextY, stopAt, visited)
			return

		case n.Type == flow.NodeLoop:
			e.layoutLoop(id, out, centerX, nextY, stopAt, visited)
			return

		default:
			id = out[0].Target
			y = nextY
		}
	}
}

// layoutBranches spreads a branching node's subtrees symmetrically around
// the parent's center. Each branch is bounded by the branches' merge point
// and advances the cursor by its own width, so sibling subtrees never
// overlap; the merge point itself continues below the deepest branch,
// centered between the first and last branch.
func (e *engine) layoutBranches(n *flow.Node, out []flow.Edge, centerX, nextY float64, stopAt string, visited map[string]bool) {
	ordered := sortBranches(n, out)
	targets := branchTargets(ordered)
	if len(targets) == 0 {
		return
	}

	merge := FindMerge(e.g, targets)
	branchStop := merge
	if branchStop == "" {
		branchStop = stopAt
	}

	col := e.cfg.ColWidth()
	widths := make([]float64, len(targets))
	total := 0.0
	deepest := 0
	for i, t := range targets {
		w := Width(e.g, t, branchStop)
		if w < 1 {
			w = 1
		}
		widths[i] = float64(w)
		total += float64(w)
		if d := subtreeDepth(e.g, t, branchStop, visited); d > deepest {
			deepest = d
		}
	}

	cursor := centerX - total*col/2 + col/2
	var first, last float64
	for i, t := range targets {
		branchCenter := cursor + (widths[i]-1)*col/2
		if i == 0 {
			first = branchCenter
		}
		last = branchCenter
		e.layoutNode(t, branchCenter, nextY, branchStop, copyVisited(visited))
		cursor += widths[i] * col
	}

	if merge != "" {
		mergeY := nextY + float64(deepest)*e.cfg.RowHeight()
		e.layoutNode(merge, (first+last)/2, mergeY, stopAt, visited)
	}
}

// layoutLoop places the loop body in its own lane to the left of the loop
// node's column, bounded by the loop node itself (the body reconverges
// there, not at an external merge point), and the post-loop continuation
// below, offset by the body's depth.
func (e *engine) layoutLoop(id string, out []flow.Edge, centerX, nextY float64, stopAt string, visited map[string]bool) {
	body, after := loopTargets(out)
	col := e.cfg.ColWidth()

	if body != "" {
		bw := Width(e.g, body, id)
		if bw < 1 {
			bw = 1
		}
		// The body span's right edge clears the main column by half a
		// column regardless of the body's width.
		bodyX := centerX - col*float64(bw+1)/2
		e.layoutNode(body, bodyX, nextY, id, copyVisited(visited))
	}

	if after != "" {
		bodyDepth := Depth(e.g, body, id)
		if bodyDepth < 1 {
			bodyDepth = 1
		}
		e.layoutNode(after, centerX, nextY+float64(bodyDepth)*e.cfg.RowHeight(), stopAt, visited)
	}
}

// routeFaults places the targets of the node's fault edges. Targets that
// belong to the main flow keep their main-flow position; fault-only targets
// are placed at their lane's X, either inline with the source row (faultEnd,
// so the connector is a straight horizontal line) or one row below with the
// rest of their subtree (fault). The subtree is bounded by the main flow:
// it stops wherever the recovery chain rejoins it.
func (e *engine) routeFaults(id string, srcY, srcH float64, visited map[string]bool) {
	for _, ed := range e.g.FaultOutgoing(id) {
		lane, ok := e.lanes[ed.ID]
		if !ok {
			continue
		}
		if lane.X > e.maxFaultX {
			e.maxFaultX = lane.X
		}
		if e.placedFaults[ed.Target] {
			continue
		}
		if _, inMain := e.mainIndex[ed.Target]; inMain {
			// The primary traversal reaches this recovery node itself.
			continue
		}
		if _, placed := e.pos[ed.Target]; placed {
			continue
		}
		if _, ok := e.g.Node(ed.Target); !ok {
			continue
		}
		e.placedFaults[ed.Target] = true

		if ed.Type == flow.EdgeFaultEnd {
			e.pos[ed.Target] = point{lane.X, srcY}
			continue
		}
		prev := e.inFault
		e.inFault = true
		e.layoutNode(ed.Target, lane.X, srcY+srcH+e.cfg.GapY, "", copyVisited(visited))
		e.inFault = prev
	}
}

// placeOrphans appends every node the traversal never reached below the
// lowest placed row, in discovery (insertion) order, in the first column.
// This guarantees total coverage without crashing on malformed graphs.
func (e *engine) placeOrphans() {
	lowest := e.cfg.OriginY
	for _, p := range e.pos {
		if p.y > lowest {
			lowest = p.y
		}
	}

	x := e.cfg.OriginX + e.cfg.ColWidth()/2
	y := lowest + e.cfg.RowHeight()
	if len(e.pos) == 0 {
		y = e.cfg.OriginY
	}
	for _, n := range e.g.Nodes() {
		if _, ok := e.pos[n.ID]; ok {
			continue
		}
		e.pos[n.ID] = point{x, y}
		w, h := e.nodeSize(n)
		if right := x + w/2; right > e.contentMaxRight {
			e.contentMaxRight = right
		}
		y += h + e.cfg.GapY
	}
}
