package flow

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

const sampleFlow = `{
  "nodes": [
    {"id": "start", "type": "start"},
    {"id": "check", "type": "decision", "label": "Has account?"},
    {"id": "end", "type": "end"}
  ],
  "edges": [
    {"id": "e1", "source": "start", "target": "check"},
    {"id": "e2", "source": "check", "target": "end", "label": "Yes"}
  ]
}`

func TestReadGraph(t *testing.T) {
	g, err := ReadGraph(strings.NewReader(sampleFlow))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Errorf("got %d nodes / %d edges, want 3 / 2", g.NodeCount(), g.EdgeCount())
	}
	n, ok := g.Node("check")
	if !ok || n.Label != "Has account?" {
		t.Errorf("check = %v, %v", n, ok)
	}
}

func TestReadGraph_BadJSON(t *testing.T) {
	if _, err := ReadGraph(strings.NewReader("{nope")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestMarshalGraph_Stable(t *testing.T) {
	g, err := ReadGraph(strings.NewReader(sampleFlow))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}

	first, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	second, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeated marshal produced different bytes")
	}
}

func TestWriteReadGraphFile_RoundTrip(t *testing.T) {
	g, err := ReadGraph(strings.NewReader(sampleFlow))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}

	path := filepath.Join(t.TempDir(), "flow.json")
	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}

	back, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if back.NodeCount() != g.NodeCount() || back.EdgeCount() != g.EdgeCount() {
		t.Errorf("round trip lost content: %d/%d nodes, %d/%d edges",
			back.NodeCount(), g.NodeCount(), back.EdgeCount(), g.EdgeCount())
	}
	want, _ := MarshalGraph(g)
	got, _ := MarshalGraph(back)
	if !bytes.Equal(got, want) {
		t.Error("round trip changed canonical bytes")
	}
}

func TestReadGraphFile_Missing(t *testing.T) {
	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDisplayLabel(t *testing.T) {
	n := Node{ID: "n1", Label: "Create order"}
	if got := n.DisplayLabel(); got != "Create order" {
		t.Errorf("DisplayLabel = %q", got)
	}
	n.Label = ""
	if got := n.DisplayLabel(); got != "n1" {
		t.Errorf("DisplayLabel fallback = %q", got)
	}
}
