package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkessler/flowgrid/pkg/observability"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID returns the request's correlation ID, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID assigns each request a correlation ID, honoring an
// X-Request-ID supplied by an upstream proxy and generating a UUID
// otherwise. The ID is echoed in the response and attached to the request
// context for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the response status for access logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, rec.status, time.Since(start))
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", RequestID(r.Context()))
	})
}
