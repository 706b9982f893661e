package flow

// NodeType identifies the shape-relevant kind of a flow step.
//
// Only a handful of types influence layout structure: NodeStart anchors the
// tree, NodeDecision and NodeWait fan out into branches, NodeLoop owns a
// body lane and a continuation, and NodeEnd terminates a path. Every other
// type is a linear action: it occupies one row and hands control to its
// single successor. Unknown types behave as linear actions so that new step
// kinds never break positioning.
type NodeType string

// Structural node types.
const (
	NodeStart    NodeType = "start"
	NodeDecision NodeType = "decision"
	NodeLoop     NodeType = "loop"
	NodeWait     NodeType = "wait"
	NodeEnd      NodeType = "end"
)

// Linear action types. These all lay out identically; the closed set exists
// so callers can size and style steps per kind.
const (
	NodeAssignment   NodeType = "assignment"
	NodeCreateRecord NodeType = "createRecord"
	NodeUpdateRecord NodeType = "updateRecord"
	NodeDeleteRecord NodeType = "deleteRecord"
	NodeGetRecords   NodeType = "getRecords"
	NodeAction       NodeType = "action"
	NodeApex         NodeType = "apex"
	NodeEmail        NodeType = "email"
	NodeScreen       NodeType = "screen"
	NodeSubflow      NodeType = "subflow"
	NodeTransform    NodeType = "transform"
	NodeFilter       NodeType = "filter"
	NodeSort         NodeType = "sort"
	NodeRollback     NodeType = "rollback"
	NodeNotification NodeType = "notification"
	NodePublishEvent NodeType = "publishEvent"
	NodeScript       NodeType = "script"
	NodeStage        NodeType = "stage"
	NodeLog          NodeType = "log"
	NodeCustom       NodeType = "custom"
)

// Branching reports whether the type fans its non-fault edges out as
// parallel branches. Start nodes branch only when they actually carry more
// than one non-fault edge, which is a per-node property, so they are not
// included here.
func (t NodeType) Branching() bool {
	return t == NodeDecision || t == NodeWait
}

// EdgeType identifies how a transition participates in layout.
type EdgeType string

const (
	// EdgeNormal is a structural transition to the next step.
	EdgeNormal EdgeType = "normal"
	// EdgeFault is an error-path transition, routed into a side lane.
	EdgeFault EdgeType = "fault"
	// EdgeFaultEnd is an error-path transition whose target terminates the
	// fault path; the connector is drawn as a straight horizontal line.
	EdgeFaultEnd EdgeType = "faultEnd"
	// EdgeLoopNext enters the loop body.
	EdgeLoopNext EdgeType = "loopNext"
	// EdgeLoopEnd continues past the loop once iteration finishes.
	EdgeLoopEnd EdgeType = "loopEnd"
	// EdgeGoTo is an explicit jump to an arbitrary step.
	EdgeGoTo EdgeType = "goto"
)

// Fault reports whether the edge belongs to the secondary error-path
// structure. Fault edges never participate in merge-point search or branch
// metrics; they are routed laterally into lanes instead.
func (t EdgeType) Fault() bool {
	return t == EdgeFault || t == EdgeFaultEnd
}

// Node is one step of a process flow.
//
// The node list is owned by the caller: layout reads every field but only
// ever writes X and Y. X and Y are nil until a layout assigns them; after
// layout they hold the top-left corner of the node's bounding box.
type Node struct {
	ID    string   `json:"id"`
	Type  NodeType `json:"type"`
	Label string   `json:"label,omitempty"`

	// X and Y are assigned by layout. Width and Height are supplied by the
	// caller and may vary by type; zero falls back to the layout defaults.
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`

	// Relational fields mirrored from the flow definition. Layout derives
	// structure from edges, not from these, but they round-trip through
	// serialization for the viewer's benefit. Children preserves slot
	// order and may contain empty strings for unconnected slots.
	Next     string   `json:"next,omitempty"`
	Prev     string   `json:"prev,omitempty"`
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children,omitempty"`
	Fault    string   `json:"fault,omitempty"`

	// Terminal marks steps that end their path regardless of edges.
	Terminal bool `json:"terminal,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed control-flow transition between two steps.
type Edge struct {
	ID     string   `json:"id,omitempty"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type,omitempty"`
	Label  string   `json:"label,omitempty"`

	// GoTo marks a jump rendered differently from a structural edge. It is
	// set implicitly for EdgeGoTo edges during graph construction.
	GoTo bool `json:"goto,omitempty"`
}
