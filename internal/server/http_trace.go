package server

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/chaitenyachand/ProjectIQ/internal/events"
	"github.com/chaitenyachand/ProjectIQ/internal/model"
	"github.com/chaitenyachand/ProjectIQ/internal/trace"
)

// handleGetTrace handles GET /v1/brds/{id}/trace.
// The graph is rebuilt on every request from the BRD's current sections and
// tasks. With ?ambiguous=true, items that match no source are listed as
// ambiguous instead of falling back to the first source.
func (s *Server) handleGetTrace(w http.ResponseWriter, r *http.Request) {
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

	tasks, _, err := s.store.ListTasks(r.Context(), model.TaskFilter{BRDID: id, Sort: "created_at"})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	var opts []trace.Option
	if r.URL.Query().Get("ambiguous") == "true" {
		opts = append(opts, trace.MarkAmbiguous())
	}

	graph, err := trace.BuildGraph(brd, tasks, opts...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build trace graph")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicTraceRecomputed, id, "", events.TraceRecomputed{
		BRDID:   id,
		Summary: graph.Summary,
	})

	writeJSON(w, http.StatusOK, graph)
}
