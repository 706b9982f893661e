// Package flow defines the process-flow graph model consumed by the layout
// engine.
//
// A flow is a directed, typed graph: nodes are steps (start, decisions,
// loops, waits, ends, and a closed set of linear actions) and edges are
// control-flow transitions, including branch, loop-back, error/fault, and
// goto transitions. The [Graph] type indexes a node list and an edge list
// for O(1) lookup while preserving insertion order everywhere, which keeps
// downstream layout deterministic.
//
// Parsing flow definitions into nodes and edges happens upstream; this
// package only consumes the result. Graph construction is deliberately
// forgiving: edges with dangling endpoints are dropped and counted rather
// than rejected, because the viewer must render whatever part of a flow is
// well-formed.
//
// # Serialization
//
// Flows round-trip through a JSON format with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "start", "type": "start"}, {"id": "a", "type": "assignment"}],
//	  "edges": [{"source": "start", "target": "a"}]
//	}
//
// Use [ReadGraph]/[WriteGraph] for streams and [ReadGraphFile] for files.
package flow
