package server

import (
	"encoding/json"
	"net/http"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *Server) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/brds", s.handleCreateBRD)
	mux.HandleFunc("GET /v1/brds", s.handleListBRDs)
	mux.HandleFunc("GET /v1/brds/{id}", s.handleGetBRD)
	mux.HandleFunc("PATCH /v1/brds/{id}", s.handleUpdateBRD)
	mux.HandleFunc("DELETE /v1/brds/{id}", s.handleDeleteBRD)
	mux.HandleFunc("POST /v1/brds/{id}/extract", s.handleExtractBRD)
	mux.HandleFunc("GET /v1/brds/{id}/trace", s.handleGetTrace)
	mux.HandleFunc("GET /v1/brds/{id}/events", s.handleGetEvents)
	mux.HandleFunc("GET /v1/brds/{id}/tasks", s.handleListBRDTasks)
	mux.HandleFunc("POST /v1/tasks", s.handleCreateTask)
	mux.HandleFunc("GET /v1/tasks", s.handleListTasks)
	mux.HandleFunc("GET /v1/tasks/{id}", s.handleGetTask)
	mux.HandleFunc("PATCH /v1/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /v1/tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, mux)
}

// handleHealth handles GET /v1/health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
