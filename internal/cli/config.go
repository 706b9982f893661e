package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pkessler/flowgrid/pkg/flow/layout"
)

// Cache backends selectable via the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// Config is the on-disk configuration, read from
// $XDG_CONFIG_HOME/flowgrid/config.toml. All fields are optional; zero
// values fall back to built-in defaults.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Layout LayoutConfig `toml:"layout"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and parameterizes the cache backend.
type CacheConfig struct {
	// Backend is one of "file" (default), "redis", "mongo", "none".
	Backend string `toml:"backend"`

	// RedisURL is a redis connection URL, e.g. "redis://localhost:6379/0".
	RedisURL string `toml:"redis_url"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

func (c CacheConfig) mongoDatabase() string {
	if c.MongoDatabase == "" {
		return appName
	}
	return c.MongoDatabase
}

func (c CacheConfig) mongoCollection() string {
	if c.MongoCollection == "" {
		return "layouts"
	}
	return c.MongoCollection
}

// LayoutConfig carries grid-geometry defaults applied under command-line
// flags. A zero field defers to the engine default.
type LayoutConfig struct {
	NodeWidth    float64 `toml:"node_width"`
	NodeHeight   float64 `toml:"node_height"`
	GapX         float64 `toml:"gap_x"`
	GapY         float64 `toml:"gap_y"`
	FaultGapX    float64 `toml:"fault_gap_x"`
	FaultLaneGap float64 `toml:"fault_lane_gap"`
	StartFanGap  float64 `toml:"start_fan_gap"`
}

// ServerConfig carries defaults for the serve command.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
	MaxNodes     int    `toml:"max_nodes"`
}

// loadConfig reads the config file. A missing file is not an error and
// yields the zero config.
func loadConfig() (Config, error) {
	dir, err := configDir()
	if err != nil {
		return Config{}, nil
	}
	path := filepath.Join(dir, "config.toml")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// mergeLayout overlays geometry: command-line values win, then the config
// file, then the engine defaults (left as zero here).
func mergeLayout(base LayoutConfig, flags layout.Config) layout.Config {
	merged := flags
	if merged.NodeWidth == 0 {
		merged.NodeWidth = base.NodeWidth
	}
	if merged.NodeHeight == 0 {
		merged.NodeHeight = base.NodeHeight
	}
	if merged.GapX == 0 {
		merged.GapX = base.GapX
	}
	if merged.GapY == 0 {
		merged.GapY = base.GapY
	}
	if merged.FaultGapX == 0 {
		merged.FaultGapX = base.FaultGapX
	}
	if merged.FaultLaneGap == 0 {
		merged.FaultLaneGap = base.FaultLaneGap
	}
	if merged.StartFanGap == 0 {
		merged.StartFanGap = base.StartFanGap
	}
	return merged
}
