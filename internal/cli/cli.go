// Package cli implements the flowgrid command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pkessler/flowgrid/pkg/buildinfo"
	"github.com/pkessler/flowgrid/pkg/cache"
	"github.com/pkessler/flowgrid/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "flowgrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger. The config file is
// loaded eagerly; a broken file degrades to defaults with a warning rather
// than blocking every command.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}

	cfg, err := loadConfig()
	if err != nil {
		c.Logger.Warn("Ignoring config file", "err", err)
		cfg = Config{}
	}
	c.Config = cfg

	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "flowgrid",
		Short:        "Flowgrid computes deterministic layouts for flow diagrams",
		Long:         `Flowgrid is a CLI tool and HTTP service that positions the nodes of flow diagrams on a grid: branches spread around their decision, merge points re-center, and fault paths route through dedicated side lanes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache builds the cache backend selected in the config file. Remote
// backends retry the initial connection before giving up.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch c.Config.Cache.Backend {
	case "", backendFile:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case backendRedis:
		var store cache.Cache
		err := cache.RetryWithBackoff(ctx, func() error {
			var err error
			store, err = cache.NewRedisCache(ctx, c.Config.Cache.RedisURL)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return store, nil
	case backendMongo:
		mc := c.Config.Cache
		var store cache.Cache
		err := cache.RetryWithBackoff(ctx, func() error {
			var err error
			store, err = cache.NewMongoCache(ctx, mc.MongoURI, mc.mongoDatabase(), mc.mongoCollection())
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("connect mongo cache: %w", err)
		}
		return store, nil
	case backendNone:
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q (must be 'file', 'redis', 'mongo', or 'none')", c.Config.Cache.Backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/flowgrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/flowgrid/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	return strings.Split(s, ",")
}
