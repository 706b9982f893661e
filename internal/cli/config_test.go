package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkessler/flowgrid/pkg/flow/layout"
)

func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Cache.Backend != "" {
		t.Errorf("missing file should yield zero config, got backend %q", cfg.Cache.Backend)
	}
}

func TestLoadConfig(t *testing.T) {
	writeConfigFile(t, `
[cache]
backend = "redis"
redis_url = "redis://localhost:6379/2"

[layout]
node_width = 200.0
gap_y = 64.0

[server]
addr = ":9090"
max_nodes = 100
`)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Cache.Backend != backendRedis {
		t.Errorf("Backend = %q, want %q", cfg.Cache.Backend, backendRedis)
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/2" {
		t.Errorf("RedisURL = %q", cfg.Cache.RedisURL)
	}
	if cfg.Layout.NodeWidth != 200 || cfg.Layout.GapY != 64 {
		t.Errorf("Layout = %+v, want node_width 200, gap_y 64", cfg.Layout)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.MaxNodes != 100 {
		t.Errorf("Server = %+v", cfg.Server)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	writeConfigFile(t, "cache = not toml [")

	if _, err := loadConfig(); err == nil {
		t.Error("expected parse error")
	}
}

func TestMongoDefaults(t *testing.T) {
	var cc CacheConfig
	if got := cc.mongoDatabase(); got != appName {
		t.Errorf("mongoDatabase() = %q, want %q", got, appName)
	}
	if got := cc.mongoCollection(); got != "layouts" {
		t.Errorf("mongoCollection() = %q, want %q", got, "layouts")
	}

	cc = CacheConfig{MongoDatabase: "viz", MongoCollection: "cached"}
	if cc.mongoDatabase() != "viz" || cc.mongoCollection() != "cached" {
		t.Errorf("explicit values not honored: %+v", cc)
	}
}

func TestMergeLayout(t *testing.T) {
	base := LayoutConfig{NodeWidth: 200, GapY: 64}

	t.Run("config fills zero flags", func(t *testing.T) {
		got := mergeLayout(base, layout.Config{})
		if got.NodeWidth != 200 || got.GapY != 64 {
			t.Errorf("got %+v, want config values applied", got)
		}
		if got.GapX != 0 {
			t.Errorf("GapX = %v, want 0 (engine default)", got.GapX)
		}
	})

	t.Run("flags win over config", func(t *testing.T) {
		got := mergeLayout(base, layout.Config{NodeWidth: 120, Entry: "begin"})
		if got.NodeWidth != 120 {
			t.Errorf("NodeWidth = %v, want flag value 120", got.NodeWidth)
		}
		if got.GapY != 64 {
			t.Errorf("GapY = %v, want config value 64", got.GapY)
		}
		if got.Entry != "begin" {
			t.Errorf("Entry = %q, want %q", got.Entry, "begin")
		}
	})
}
