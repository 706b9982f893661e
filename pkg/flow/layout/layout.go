package layout

import "github.com/pkessler/flowgrid/pkg/flow"

// Result is the derived output of one layout call.
//
// Nodes contains a copy of every input node, in input order, with X and Y
// populated (top-left corner) and Width and Height resolved to the
// effective dimensions the engine placed the node with, so consumers can
// compute centers without knowing the config defaults. FaultLanes maps
// fault-edge IDs to their lane
// routing metadata for edge rendering. Width and Height describe the
// bounding box of the placed content, fault lanes included.
type Result struct {
	Nodes      []flow.Node          `json:"nodes"`
	FaultLanes map[string]FaultLane `json:"fault_lanes,omitempty"`
	Width      float64              `json:"width"`
	Height     float64              `json:"height"`
}

// Compute assigns a position to every node of the graph.
//
// The graph is treated as a tree rooted at the entry node: branching nodes
// spread their subtrees symmetrically, loops put their body in a side lane
// with the continuation below, fault edges are routed into conflict-free
// lanes right of the main content, and nodes unreachable from the entry
// are appended below everything else. The input graph is never mutated;
// positions land on the returned copies only.
//
// Compute is deterministic: identical (graph, config) inputs produce
// byte-identical results. It never fails; malformed input (dangling edges,
// cycles without a loop boundary, branches that never reconverge) degrades
// to a partial but renderable layout. A graph with no resolvable entry
// node is returned unmodified.
func Compute(g *flow.Graph, cfg Config) Result {
	cfg = cfg.WithDefaults()

	entry, ok := g.Entry(cfg.Entry)
	if !ok {
		return Result{
			Nodes:      cloneNodes(g),
			FaultLanes: map[string]FaultLane{},
		}
	}

	e := &engine{
		g:            g,
		cfg:          cfg,
		pos:          make(map[string]point, g.NodeCount()),
		placedFaults: make(map[string]bool),
	}

	cols := Width(g, entry, "")
	if cols < 1 {
		cols = 1
	}
	treeWidth := float64(cols) * cfg.ColWidth()
	baseFaultX := cfg.OriginX + treeWidth + cfg.FaultGapX
	e.lanes, e.mainIndex = allocateFaultLanes(g, entry, baseFaultX, cfg.FaultLaneGap)

	e.layoutNode(entry, cfg.OriginX+treeWidth/2, cfg.OriginY, "", make(map[string]bool))
	e.placeOrphans()

	return e.result()
}

// ComputeNodes is a convenience wrapper that indexes raw node and edge
// lists and lays them out in one call.
func ComputeNodes(nodes []flow.Node, edges []flow.Edge, cfg Config) Result {
	return Compute(flow.New(nodes, edges), cfg)
}

// result converts the engine's center-x positions into the final top-left
// convention and measures the bounding box.
func (e *engine) result() Result {
	nodes := make([]flow.Node, 0, e.g.NodeCount())
	maxBottom := e.cfg.OriginY
	for _, n := range e.g.Nodes() {
		c := *n
		if p, ok := e.pos[n.ID]; ok {
			w, h := e.nodeSize(n)
			x := p.x - w/2
			y := p.y
			c.X, c.Y = &x, &y
			c.Width, c.Height = w, h
			if bottom := p.y + h; bottom > maxBottom {
				maxBottom = bottom
			}
		}
		nodes = append(nodes, c)
	}

	maxRight := e.contentMaxRight
	if e.maxFaultX > 0 {
		if right := e.maxFaultX + e.cfg.NodeWidth/2; right > maxRight {
			maxRight = right
		}
	}

	return Result{
		Nodes:      nodes,
		FaultLanes: e.lanes,
		Width:      maxRight - e.cfg.OriginX,
		Height:     maxBottom - e.cfg.OriginY,
	}
}

func cloneNodes(g *flow.Graph) []flow.Node {
	nodes := make([]flow.Node, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		nodes = append(nodes, *n)
	}
	return nodes
}
