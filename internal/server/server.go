// Package server implements the flowgrid HTTP API.
//
// The API exposes the same pipeline the CLI uses: clients POST a flow
// definition and receive the computed layout, optionally together with
// rendered artifacts. The server is stateless; all caching happens in the
// pipeline runner's cache backend.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pkessler/flowgrid/pkg/pipeline"
)

// Config holds server settings.
type Config struct {
	// Addr is the listen address, for example ":8080".
	Addr string

	// MaxBodyBytes caps the request body size. Zero means the default of
	// 8 MiB, which fits flows far beyond what any builder produces.
	MaxBodyBytes int64

	// MaxNodes caps the number of nodes per request. Zero means the
	// default of 5000.
	MaxNodes int
}

const (
	defaultMaxBodyBytes = 8 << 20
	defaultMaxNodes     = 5000
)

// Server serves the flowgrid HTTP API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	http   *http.Server
}

// New creates a server around the given pipeline runner.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.MaxNodes == 0 {
		cfg.MaxNodes = defaultMaxNodes
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{cfg: cfg, runner: runner, logger: logger}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Routes builds the router. Exposed for tests.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
	})
	return r
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
