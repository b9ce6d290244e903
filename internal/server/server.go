// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the validation pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/cite-check/internal/enrich"
	"github.com/pdiddy/cite-check/internal/pipeline"
	"github.com/pdiddy/cite-check/pkg/types"
)

const defaultMaxBodyBytes = 1 << 20

// Server handles validation requests.
type Server struct {
	// Enricher is optional; requests asking for enrichment without one
	// are processed unenriched.
	Enricher *enrich.Enricher
	Logger   *zap.Logger
	// MaxBodyBytes caps the request body; zero means 1 MiB.
	MaxBodyBytes int64
}

// validateRequest is the POST /v1/validate body.
type validateRequest struct {
	Text   string `json:"text"`
	Enrich bool   `json:"enrich"`
}

type validateResponse struct {
	Results []types.ValidationResult `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns the HTTP routing for the service.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/validate", s.handleValidate)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit := s.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := pipeline.Options{Enricher: s.Enricher}
	opts.Enrich = req.Enrich && s.Enricher != nil

	results, err := pipeline.Validate(r.Context(), req.Text, opts)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyInput) {
			s.writeError(w, http.StatusBadRequest, "no citation text provided")
			return
		}
		s.logger().Error("validation failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger().Info("validated",
		zap.Int("citations", len(results)),
		zap.Bool("enrich", opts.Enrich),
		zap.Duration("elapsed", time.Since(start)),
	)
	s.writeJSON(w, http.StatusOK, validateResponse{Results: results})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger().Warn("writing response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
