package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/chaitenyachand/ProjectIQ/internal/events"
	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

// handleCreateBRD handles POST /v1/brds.
func (s *Server) handleCreateBRD(w http.ResponseWriter, r *http.Request) {
	var in createBRDInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	brd, err := s.createBRD(r.Context(), in)
	if err != nil {
		var ie inputError
		if errors.As(err, &ie) {
			writeError(w, http.StatusBadRequest, ie.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, brd)
}

// handleListBRDs handles GET /v1/brds.
func (s *Server) handleListBRDs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.BRDFilter{
		ProjectID: q.Get("project_id"),
		Search:    q.Get("search"),
		Sort:      q.Get("sort"),
	}

	if v := q.Get("status"); v != "" {
		for _, st := range strings.Split(v, ",") {
			filter.Status = append(filter.Status, model.BRDStatus(st))
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	brds, total, err := s.store.ListBRDs(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list brds")
		return
	}

	// Ensure brds is never null in JSON output.
	if brds == nil {
		brds = []*model.BRD{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"brds":  brds,
		"total": total,
	})
}

// handleGetBRD handles GET /v1/brds/{id}.
func (s *Server) handleGetBRD(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	brd, err := s.store.GetBRD(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "brd not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get brd")
		return
	}

	writeJSON(w, http.StatusOK, brd)
}

// handleUpdateBRD handles PATCH /v1/brds/{id}.
func (s *Server) handleUpdateBRD(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updateBRDInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	brd, err := s.updateBRD(r.Context(), id, in)
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

// handleDeleteBRD handles DELETE /v1/brds/{id}.
func (s *Server) handleDeleteBRD(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.store.DeleteBRD(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "brd not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete brd")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicBRDDeleted, id, "", events.BRDDeleted{BRDID: id})

	w.WriteHeader(http.StatusNoContent)
}

// handleGetEvents handles GET /v1/brds/{id}/events.
func (s *Server) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	evts, err := s.store.GetEvents(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get events")
		return
	}

	if evts == nil {
		evts = []*model.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": evts})
}
