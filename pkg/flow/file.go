package flow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// File is the JSON serialization envelope for a flow graph.
type File struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// ReadGraph decodes a JSON flow graph from r.
//
// Malformed JSON is an error; a structurally incomplete graph is not.
// Edges referencing unknown nodes are dropped silently (see [Graph]); use
// [Graph.SkippedEdges] to surface a diagnostic.
func ReadGraph(r io.Reader) (*Graph, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return New(f.Nodes, f.Edges), nil
}

// ReadGraphFile reads and decodes a flow graph from the file at path.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// WriteGraph encodes the graph as indented JSON to w.
// Nodes and edges are written in insertion order so output is stable.
func WriteGraph(g *Graph, w io.Writer) error {
	out := File{
		Nodes: make([]Node, 0, g.NodeCount()),
		Edges: g.Edges(),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, *n)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalGraph returns the graph's canonical JSON bytes.
// The output is deterministic for a given graph, which makes it suitable
// for content hashing and cache keys.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes the graph as JSON to the file at path.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}
