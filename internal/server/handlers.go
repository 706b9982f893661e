package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkessler/flowgrid/pkg/buildinfo"
	"github.com/pkessler/flowgrid/pkg/errors"
	"github.com/pkessler/flowgrid/pkg/flow"
	"github.com/pkessler/flowgrid/pkg/flow/layout"
	"github.com/pkessler/flowgrid/pkg/pipeline"
)

// layoutRequest is the POST /api/v1/layout body: a flow definition plus
// pipeline options.
type layoutRequest struct {
	Nodes   []flow.Node      `json:"nodes"`
	Edges   []flow.Edge      `json:"edges"`
	Options pipeline.Options `json:"options"`
}

// layoutResponse is the success envelope.
type layoutResponse struct {
	GraphHash string            `json:"graph_hash"`
	Layout    layout.Result     `json:"layout"`
	Artifacts map[string][]byte `json:"artifacts,omitempty"`
	Stats     layoutStats       `json:"stats"`
}

type layoutStats struct {
	NodeCount    int   `json:"node_count"`
	EdgeCount    int   `json:"edge_count"`
	SkippedEdges int   `json:"skipped_edges,omitempty"`
	LayoutMillis int64 `json:"layout_ms"`
	RenderMillis int64 `json:"render_ms"`
	LayoutCached bool  `json:"layout_cached"`
	RenderCached bool  `json:"render_cached"`
}

// errorResponse is the error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	if err := s.validateRequest(&req); err != nil {
		s.writeError(w, r, err)
		return
	}

	g := flow.New(req.Nodes, req.Edges)
	opts := req.Options
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))

	result, err := s.runner.Execute(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "run pipeline"))
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		GraphHash: result.GraphHash,
		Layout:    result.Layout,
		Artifacts: result.Artifacts,
		Stats: layoutStats{
			NodeCount:    result.Stats.NodeCount,
			EdgeCount:    result.Stats.EdgeCount,
			SkippedEdges: result.Stats.SkippedEdges,
			LayoutMillis: result.Stats.LayoutTime.Milliseconds(),
			RenderMillis: result.Stats.RenderTime.Milliseconds(),
			LayoutCached: result.CacheInfo.LayoutHit,
			RenderCached: result.CacheInfo.RenderHit,
		},
	})
}

func (s *Server) validateRequest(req *layoutRequest) error {
	if len(req.Nodes) == 0 {
		return errors.New(errors.ErrCodeInvalidFlow, "flow has no nodes")
	}
	if len(req.Nodes) > s.cfg.MaxNodes {
		return errors.New(errors.ErrCodeInvalidFlow, "flow exceeds %d nodes", s.cfg.MaxNodes)
	}
	for _, n := range req.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return err
		}
		if err := errors.ValidateLabel(n.Label); err != nil {
			return err
		}
	}
	if entry := req.Options.Layout.Entry; entry != "" {
		if err := errors.ValidateNodeID(entry); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidEntry, err, "entry override")
		}
	}
	return nil
}

// writeError maps structured error codes onto HTTP statuses and emits the
// error envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFlow,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidEntry,
		errors.ErrCodeInvalidNode:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	case "":
		code = errors.ErrCodeInternal
	}

	s.logger.Error("request failed",
		"code", code,
		"error", err,
		"request_id", RequestID(r.Context()))

	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
