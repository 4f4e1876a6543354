package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
)

// extractRequest is the optional body for POST /v1/brds/{id}/extract.
type extractRequest struct {
	ProjectContext string `json:"project_context"`
	Actor          string `json:"actor"`
}

// handleExtractBRD handles POST /v1/brds/{id}/extract.
func (s *Server) handleExtractBRD(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if s.extractor == nil {
		writeError(w, http.StatusServiceUnavailable, "extraction service not configured")
		return
	}

	var req extractRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	brd, err := s.extractBRD(r.Context(), id, req.ProjectContext, req.Actor)
	if err != nil {
		var ie inputError
		if errors.As(err, &ie) {
			writeError(w, http.StatusBadRequest, ie.Error())
			return
		}
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "brd not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, brd)
}
