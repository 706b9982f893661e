package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/pkessler/flowgrid/pkg/flow"
)

// Load decodes a flow definition from r into an indexed graph.
func Load(r io.Reader) (*flow.Graph, error) {
	return flow.ReadGraph(r)
}

// LoadFile reads a flow definition from the file at path.
func LoadFile(path string) (*flow.Graph, error) {
	return flow.ReadGraphFile(path)
}

// WarnSkipped logs a warning when graph construction dropped edges with
// unresolved endpoints. Flow exports from live orgs routinely reference
// elements that were deleted without cleanup, so this is diagnostic, not
// fatal.
func WarnSkipped(logger *log.Logger, g *flow.Graph) {
	if logger == nil || g.SkippedEdges() == 0 {
		return
	}
	logger.Warn("dropped edges with unresolved endpoints",
		"skipped", g.SkippedEdges(),
		"kept", g.EdgeCount())
}
