package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/vasudevanv/porespy/pkg/errors"
	"github.com/vasudevanv/porespy/pkg/metrics"
	"github.com/vasudevanv/porespy/pkg/pipeline"
)

// packResponse is the body of a successful POST /v1/pack.
// Artifact bytes are base64-encoded by the JSON encoder.
type packResponse struct {
	RequestID string            `json:"request_id"`
	ImageHash string            `json:"image_hash"`
	Spheres   int               `json:"spheres"`
	Centers   [][]int           `json:"centers"`
	Summary   *metrics.Summary  `json:"summary,omitempty"`
	Artifacts map[string][]byte `json:"artifacts,omitempty"`
	Cached    bool              `json:"cached"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	formats := make([]string, 0, len(pipeline.ValidFormats))
	for f := range pipeline.ValidFormats {
		formats = append(formats, f)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"formats": formats})
}

func (s *Server) handleGenerators(w http.ResponseWriter, r *http.Request) {
	generators := make([]string, 0, len(pipeline.ValidGenerators))
	for g := range pipeline.ValidGenerators {
		generators = append(generators, g)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"generators": generators})
}

func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "malformed request body"))
		return
	}
	opts.Logger = s.logger

	// Request cancellation flows into the packing loop via the context.
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := packResponse{
		RequestID: RequestID(r.Context()),
		ImageHash: result.ImageHash,
		Spheres:   result.Pack.Spheres(),
		Centers:   result.Pack.Centers,
		Summary:   result.Summary,
		Artifacts: result.Artifacts,
		Cached:    result.CacheInfo.PackHit,
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeError classifies err and answers with the matching status and a
// structured body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	classified := apperrors.Classify(err)
	status := apperrors.HTTPStatus(classified.Code)

	s.logger.Warn("request failed",
		"id", RequestID(r.Context()),
		"code", classified.Code,
		"error", err)

	var resp errorResponse
	resp.Error.Code = string(classified.Code)
	resp.Error.Message = apperrors.UserMessage(classified)
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
