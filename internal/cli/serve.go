package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkessler/flowgrid/internal/server"
)

// defaultAddr is the listen address when neither flag nor config set one.
const defaultAddr = ":8080"

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the flowgrid HTTP API",
		Long: `Run the flowgrid HTTP API.

POST /api/v1/layout accepts a flow graph and returns positioned nodes,
fault lanes, and rendered artifacts. GET /healthz reports liveness and the
build version. The cache backend is taken from the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config or "+defaultAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	if addr == "" {
		addr = c.Config.Server.Addr
	}
	if addr == "" {
		addr = defaultAddr
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:         addr,
		MaxBodyBytes: c.Config.Server.MaxBodyBytes,
		MaxNodes:     c.Config.Server.MaxNodes,
	}, runner, c.Logger)

	c.Logger.Info("Starting server", "addr", addr)
	return srv.ListenAndServe(ctx)
}
