package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkessler/flowgrid/pkg/cache"
	"github.com/pkessler/flowgrid/pkg/flow"
)

const testFlow = `{
  "nodes": [
    {"id": "start", "type": "start"},
    {"id": "check", "type": "decision", "label": "Has account?"},
    {"id": "create", "type": "createRecord"},
    {"id": "send", "type": "email"},
    {"id": "end", "type": "end"}
  ],
  "edges": [
    {"id": "e1", "source": "start", "target": "check"},
    {"id": "e2", "source": "check", "target": "send", "label": "Yes"},
    {"id": "e3", "source": "check", "target": "create", "label": "No"},
    {"id": "e4", "source": "create", "target": "send"},
    {"id": "e5", "source": "send", "target": "end"}
  ]
}`

func loadTestFlow(t *testing.T) *flow.Graph {
	t.Helper()
	g, err := Load(strings.NewReader(testFlow))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return g
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"json", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	if opts.Layout.NodeWidth == 0 {
		t.Error("layout defaults not applied")
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("default formats = %v, want [json]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("logger default not applied")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should succeed: %v", err)
	}
}

func TestOptionsInvalidFormat(t *testing.T) {
	opts := Options{Formats: []string{"bmp"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid format should fail validation")
	}
}

func TestNeedsGraphviz(t *testing.T) {
	if (&Options{Formats: []string{"json", "dot"}}).NeedsGraphviz() {
		t.Error("json and dot do not need graphviz")
	}
	if !(&Options{Formats: []string{"svg"}}).NeedsGraphviz() {
		t.Error("svg needs graphviz")
	}
}

func TestRunnerExecute(t *testing.T) {
	g := loadTestFlow(t)
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), g, Options{
		Formats: []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 5 || result.Stats.EdgeCount != 5 {
		t.Errorf("stats = %d nodes / %d edges, want 5 / 5", result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if result.GraphHash == "" {
		t.Error("graph hash not computed")
	}
	if len(result.Layout.Nodes) != 5 {
		t.Errorf("layout holds %d nodes, want 5", len(result.Layout.Nodes))
	}

	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("json artifact missing")
	}
	dotSrc, ok := result.Artifacts[FormatDOT]
	if !ok {
		t.Fatal("dot artifact missing")
	}
	if !bytes.Contains(dotSrc, []byte("digraph flow")) {
		t.Errorf("dot artifact malformed:\n%s", dotSrc)
	}
}

func TestRunnerLayoutCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	g := loadTestFlow(t)

	first, err := runner.Execute(ctx, g, Options{})
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit {
		t.Error("first run should miss the layout cache")
	}

	second, err := runner.Execute(ctx, g, Options{})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}

	if !bytes.Equal(first.Artifacts[FormatJSON], second.Artifacts[FormatJSON]) {
		t.Error("cached artifact differs from computed artifact")
	}

	// Refresh bypasses the cache
	third, err := runner.Execute(ctx, g, Options{Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should not report cache hits")
	}
}

func TestRunnerCacheKeySensitivity(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	g := loadTestFlow(t)

	if _, err := runner.Execute(ctx, g, Options{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// A changed layout knob must miss the cache
	opts := Options{}
	opts.Layout.NodeWidth = 200
	result, err := runner.Execute(ctx, g, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.CacheInfo.LayoutHit {
		t.Error("changed layout config should miss the cache")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/flow.json"); err == nil {
		t.Error("expected error for missing file")
	}
}
