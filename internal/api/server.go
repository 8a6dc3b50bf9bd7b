// Package api implements the HTTP service around the packing pipeline.
//
// The API is a thin layer over pipeline.Runner: requests carry pipeline
// options as JSON, responses carry the packing outcome plus any requested
// artifacts. All heavy lifting (validation, caching, packing) lives in the
// pipeline so CLI and API behave identically.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vasudevanv/porespy/pkg/pipeline"
)

// Server serves the packing API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a server on top of the given runner.
// If logger is nil, the runner's logger is used.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(recoverer(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/formats", s.handleFormats)
		r.Get("/generators", s.handleGenerators)
		r.Post("/pack", s.handlePack)
	})
	return r
}

// ListenAndServe runs the server on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("serving packing API", "addr", addr)
	return http.ListenAndServe(addr, s.Router())
}
