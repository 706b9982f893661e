package flow

import (
	"github.com/google/uuid"
)

// Graph is an indexed view over a node list and an edge list.
//
// Construction builds three lookup structures in one O(V+E) pass: node by
// ID, outgoing edges by source, and incoming edges by target. The outgoing
// and incoming slices preserve edge insertion order; that order later drives
// deterministic tie-breaks in layout, so it must never depend on map
// iteration.
//
// Graph tolerates malformed input by design. An edge whose source or target
// does not resolve to a known node is dropped during construction and
// counted in SkippedEdges; a diagram viewer has to render something even
// for partial flow definitions, so a dangling reference is never an error.
//
// Graph is read-only after construction and safe for concurrent readers.
type Graph struct {
	nodes    map[string]*Node
	order    []string // node IDs in insertion order
	edges    []Edge
	outgoing map[string][]Edge
	incoming map[string][]Edge
	skipped  int
}

// New builds a Graph from caller-owned node and edge lists.
//
// Nodes are copied, so later mutation of the input slices does not affect
// the graph. A node with an empty ID or a duplicate ID is skipped (first
// definition wins). Edges with an empty ID receive a generated UUID so that
// fault-lane metadata, which is keyed by edge ID, is always addressable.
func New(nodes []Node, edges []Edge) *Graph {
	g := &Graph{
		nodes:    make(map[string]*Node, len(nodes)),
		order:    make([]string, 0, len(nodes)),
		outgoing: make(map[string][]Edge, len(nodes)),
		incoming: make(map[string][]Edge, len(nodes)),
	}

	for i := range nodes {
		n := nodes[i]
		if n.ID == "" {
			continue
		}
		if _, exists := g.nodes[n.ID]; exists {
			continue
		}
		g.nodes[n.ID] = &n
		g.order = append(g.order, n.ID)
	}

	for _, e := range edges {
		if _, ok := g.nodes[e.Source]; !ok {
			g.skipped++
			continue
		}
		if _, ok := g.nodes[e.Target]; !ok {
			g.skipped++
			continue
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.Type == "" {
			e.Type = EdgeNormal
		}
		if e.Type == EdgeGoTo {
			e.GoTo = true
		}
		g.edges = append(g.edges, e)
		g.outgoing[e.Source] = append(g.outgoing[e.Source], e)
		g.incoming[e.Target] = append(g.incoming[e.Target], e)
	}

	return g
}

// Node returns the node with the given ID and true, or nil and false.
// The returned pointer refers to the graph's copy of the node.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
// The slice is rebuilt on each call; the node pointers are shared.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Edges returns all retained edges in insertion order.
func (g *Graph) Edges() []Edge { return g.edges }

// Outgoing returns the edges leaving the node, in insertion order.
// The returned slice is a read-only view.
func (g *Graph) Outgoing(id string) []Edge { return g.outgoing[id] }

// Incoming returns the edges entering the node, in insertion order.
// The returned slice is a read-only view.
func (g *Graph) Incoming(id string) []Edge { return g.incoming[id] }

// NonFaultOutgoing returns the node's outgoing edges that participate in
// the primary tree: everything except fault and faultEnd transitions.
func (g *Graph) NonFaultOutgoing(id string) []Edge {
	var out []Edge
	for _, e := range g.outgoing[id] {
		if !e.Type.Fault() {
			out = append(out, e)
		}
	}
	return out
}

// FaultOutgoing returns the node's fault and faultEnd edges, in insertion
// order.
func (g *Graph) FaultOutgoing(id string) []Edge {
	var out []Edge
	for _, e := range g.outgoing[id] {
		if e.Type.Fault() {
			out = append(out, e)
		}
	}
	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of retained edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// SkippedEdges returns how many edges were dropped during construction
// because an endpoint did not resolve.
func (g *Graph) SkippedEdges() int { return g.skipped }

// DefaultEntryID is the conventional ID of the entry marker used when no
// explicit entry and no start-typed node identifies the flow's root.
const DefaultEntryID = "start"

// Entry resolves the layout entry node.
//
// Resolution order: the explicit override if it names a known node, then
// the first node (in insertion order) whose type is NodeStart, then the
// node with ID DefaultEntryID. Returns "" and false when none applies;
// layout treats that as the empty-graph short circuit.
func (g *Graph) Entry(explicit string) (string, bool) {
	if explicit != "" {
		if _, ok := g.nodes[explicit]; ok {
			return explicit, true
		}
	}
	for _, id := range g.order {
		if g.nodes[id].Type == NodeStart {
			return id, true
		}
	}
	if _, ok := g.nodes[DefaultEntryID]; ok {
		return DefaultEntryID, true
	}
	return "", false
}
