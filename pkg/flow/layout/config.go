package layout

// Default grid geometry, in user units (pixels for SVG rendering).
const (
	DefaultNodeWidth  = 160.0
	DefaultNodeHeight = 64.0
	DefaultGapX       = 48.0
	DefaultGapY       = 48.0

	// DefaultFaultGapX separates the fault-lane region from the right edge
	// of main content.
	DefaultFaultGapX = 80.0

	// DefaultFaultLaneGap is the horizontal spacing between adjacent fault
	// lanes.
	DefaultFaultLaneGap = 40.0

	// DefaultStartFanGap is extra vertical room under a start node that
	// fans out into multiple scheduled paths, so the fan-out reads as a
	// distinct region.
	DefaultStartFanGap = 24.0
)

// Config carries the grid geometry and entry selection for one layout call.
// The zero value is usable: every zero field falls back to its default.
type Config struct {
	// Entry overrides entry-node resolution. Empty means resolve via
	// [flow.Graph.Entry] conventions.
	Entry string `json:"entry,omitempty"`

	// NodeWidth and NodeHeight are fallback dimensions for nodes that do
	// not carry their own.
	NodeWidth  float64 `json:"node_width,omitempty"`
	NodeHeight float64 `json:"node_height,omitempty"`

	// GapX and GapY are the horizontal and vertical grid gaps between
	// adjacent node slots.
	GapX float64 `json:"gap_x,omitempty"`
	GapY float64 `json:"gap_y,omitempty"`

	// OriginX and OriginY anchor the canvas origin (top-left of the grid).
	OriginX float64 `json:"origin_x,omitempty"`
	OriginY float64 `json:"origin_y,omitempty"`

	FaultGapX    float64 `json:"fault_gap_x,omitempty"`
	FaultLaneGap float64 `json:"fault_lane_gap,omitempty"`
	StartFanGap  float64 `json:"start_fan_gap,omitempty"`
}

// WithDefaults returns a copy of the config with zero fields replaced by
// package defaults.
func (c Config) WithDefaults() Config {
	if c.NodeWidth == 0 {
		c.NodeWidth = DefaultNodeWidth
	}
	if c.NodeHeight == 0 {
		c.NodeHeight = DefaultNodeHeight
	}
	if c.GapX == 0 {
		c.GapX = DefaultGapX
	}
	if c.GapY == 0 {
		c.GapY = DefaultGapY
	}
	if c.FaultGapX == 0 {
		c.FaultGapX = DefaultFaultGapX
	}
	if c.FaultLaneGap == 0 {
		c.FaultLaneGap = DefaultFaultLaneGap
	}
	if c.StartFanGap == 0 {
		c.StartFanGap = DefaultStartFanGap
	}
	return c
}

// ColWidth returns the horizontal pitch of one grid column.
func (c Config) ColWidth() float64 { return c.NodeWidth + c.GapX }

// RowHeight returns the vertical pitch of one grid row.
func (c Config) RowHeight() float64 { return c.NodeHeight + c.GapY }
