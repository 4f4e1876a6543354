package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

// testHandler captures the incoming request details and returns a canned response.
type testHandler struct {
	// captured from the request
	method      string
	path        string
	requestURI  string
	query       string
	body        string
	contentType string
	authHeader  string

	// canned response
	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.requestURI = r.RequestURI
	h.query = r.URL.RawQuery
	h.contentType = r.Header.Get("Content-Type")
	h.authHeader = r.Header.Get("Authorization")
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

// newTestClient creates an HTTPClient pointed at a test server with the given handler.
func newTestClient(h http.Handler) (*HTTPClient, *httptest.Server) {
	srv := httptest.NewServer(h)
	c := NewHTTPClient(srv.URL, "")
	return c, srv
}

// --- CreateBRD ---

func TestHTTPClient_CreateBRD(t *testing.T) {
	h := &testHandler{
		statusCode: http.StatusCreated,
		responseBody: `{
			"id": "brd-abc",
			"project_id": "proj-1",
			"title": "Checkout revamp",
			"status": "draft",
			"raw_sources": [{"type": "transcript", "content": "meeting notes"}],
			"created_by": "alice",
			"created_at": "2026-01-15T10:00:00Z",
			"updated_at": "2026-01-15T10:00:00Z"
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	req := &CreateBRDRequest{
		ProjectID: "proj-1",
		Title:     "Checkout revamp",
		Sources:   []model.RawSource{{Type: "transcript", Content: "meeting notes"}},
		CreatedBy: "alice",
	}

	brd, err := c.CreateBRD(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateBRD() error = %v", err)
	}

	// Verify request
	if h.method != http.MethodPost {
		t.Errorf("method = %q, want POST", h.method)
	}
	if h.path != "/v1/brds" {
		t.Errorf("path = %q, want /v1/brds", h.path)
	}
	if h.contentType != "application/json" {
		t.Errorf("content-type = %q, want application/json", h.contentType)
	}

	var reqBody map[string]interface{}
	if err := json.Unmarshal([]byte(h.body), &reqBody); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	if reqBody["title"] != "Checkout revamp" {
		t.Errorf("request body title = %v, want 'Checkout revamp'", reqBody["title"])
	}
	if reqBody["project_id"] != "proj-1" {
		t.Errorf("request body project_id = %v, want 'proj-1'", reqBody["project_id"])
	}

	// Verify response parsing
	if brd.ID != "brd-abc" {
		t.Errorf("brd.ID = %q, want 'brd-abc'", brd.ID)
	}
	if brd.Status != model.BRDStatusDraft {
		t.Errorf("brd.Status = %q, want 'draft'", brd.Status)
	}
	if len(brd.RawSources) != 1 {
		t.Errorf("len(brd.RawSources) = %d, want 1", len(brd.RawSources))
	}
}

func TestHTTPClient_CreateBRD_MinimalFields(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusCreated,
		responseBody: `{"id": "brd-min", "title": "Minimal", "status": "draft", "created_at": "2026-01-15T10:00:00Z", "updated_at": "2026-01-15T10:00:00Z"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	brd, err := c.CreateBRD(context.Background(), &CreateBRDRequest{Title: "Minimal"})
	if err != nil {
		t.Fatalf("CreateBRD() error = %v", err)
	}
	if brd.ID != "brd-min" {
		t.Errorf("brd.ID = %q, want 'brd-min'", brd.ID)
	}

	// Verify omitempty fields are absent from request body
	var reqBody map[string]interface{}
	if err := json.Unmarshal([]byte(h.body), &reqBody); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	if _, ok := reqBody["project_id"]; ok {
		t.Error("request body should not contain 'project_id' when empty")
	}
	if _, ok := reqBody["sources"]; ok {
		t.Error("request body should not contain 'sources' when nil")
	}
}

// --- GetBRD ---

func TestHTTPClient_GetBRD(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"id": "brd-123",
			"title": "Billing overhaul",
			"status": "ready",
			"executive_summary": "Rework billing.",
			"functional_requirements": [
				{"id": "FR-1", "title": "Nightly reconciliation", "priority": "must_have", "source": "email"}
			],
			"has_unverified_citations": true,
			"created_at": "2026-01-10T08:00:00Z",
			"updated_at": "2026-01-11T09:30:00Z"
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	brd, err := c.GetBRD(context.Background(), "brd-123")
	if err != nil {
		t.Fatalf("GetBRD() error = %v", err)
	}

	if h.method != http.MethodGet {
		t.Errorf("method = %q, want GET", h.method)
	}
	if h.path != "/v1/brds/brd-123" {
		t.Errorf("path = %q, want /v1/brds/brd-123", h.path)
	}
	if h.contentType != "" {
		t.Errorf("GET should not have Content-Type, got %q", h.contentType)
	}

	if brd.ID != "brd-123" {
		t.Errorf("brd.ID = %q, want 'brd-123'", brd.ID)
	}
	if brd.Status != model.BRDStatusReady {
		t.Errorf("brd.Status = %q, want 'ready'", brd.Status)
	}
	if len(brd.FunctionalRequirements) != 1 {
		t.Fatalf("len(brd.FunctionalRequirements) = %d, want 1", len(brd.FunctionalRequirements))
	}
	if brd.FunctionalRequirements[0].ID != "FR-1" {
		t.Errorf("requirement ID = %q, want 'FR-1'", brd.FunctionalRequirements[0].ID)
	}
	if !brd.HasUnverifiedCitations {
		t.Error("brd.HasUnverifiedCitations = false, want true")
	}
}

func TestHTTPClient_GetBRD_URLEscaping(t *testing.T) {
	h := &testHandler{
		responseBody: `{"id": "brd/special", "title": "Test", "status": "draft", "created_at": "2026-01-15T10:00:00Z", "updated_at": "2026-01-15T10:00:00Z"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.GetBRD(context.Background(), "brd/special")
	if err != nil {
		t.Fatalf("GetBRD() error = %v", err)
	}

	// The slash in the ID should be URL-escaped on the wire.
	// r.URL.Path is decoded by the Go HTTP server, so we check requestURI.
	wantURI := "/v1/brds/brd%2Fspecial"
	if h.requestURI != wantURI {
		t.Errorf("requestURI = %q, want %q", h.requestURI, wantURI)
	}
}

// --- ListBRDs ---

func TestHTTPClient_ListBRDs(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"brds": [
				{"id": "b1", "title": "First", "status": "draft", "created_at": "2026-01-01T00:00:00Z", "updated_at": "2026-01-01T00:00:00Z"},
				{"id": "b2", "title": "Second", "status": "ready", "created_at": "2026-01-02T00:00:00Z", "updated_at": "2026-01-02T00:00:00Z"}
			],
			"total": 42
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	resp, err := c.ListBRDs(context.Background(), &ListBRDsRequest{
		ProjectID: "proj-1",
		Status:    []string{"draft", "ready"},
		Search:    "checkout",
		Sort:      "-updated_at",
		Limit:     10,
		Offset:    20,
	})
	if err != nil {
		t.Fatalf("ListBRDs() error = %v", err)
	}

	if h.method != http.MethodGet {
		t.Errorf("method = %q, want GET", h.method)
	}
	if h.path != "/v1/brds" {
		t.Errorf("path = %q, want /v1/brds", h.path)
	}

	// Verify query params are present
	q := h.query
	for _, want := range []string{
		"project_id=proj-1",
		"status=draft%2Cready",
		"search=checkout",
		"sort=-updated_at",
		"limit=10",
		"offset=20",
	} {
		if !strings.Contains(q, want) {
			t.Errorf("query %q does not contain %q", q, want)
		}
	}

	// Verify response parsing
	if len(resp.BRDs) != 2 {
		t.Fatalf("len(brds) = %d, want 2", len(resp.BRDs))
	}
	if resp.Total != 42 {
		t.Errorf("total = %d, want 42", resp.Total)
	}
	if resp.BRDs[1].Status != model.BRDStatusReady {
		t.Errorf("brds[1].Status = %q, want 'ready'", resp.BRDs[1].Status)
	}
}

func TestHTTPClient_ListBRDs_NoFilters(t *testing.T) {
	h := &testHandler{
		responseBody: `{"brds": [], "total": 0}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	resp, err := c.ListBRDs(context.Background(), &ListBRDsRequest{})
	if err != nil {
		t.Fatalf("ListBRDs() error = %v", err)
	}

	// No query params should be set
	if h.query != "" {
		t.Errorf("query = %q, want empty", h.query)
	}
	if len(resp.BRDs) != 0 {
		t.Errorf("len(brds) = %d, want 0", len(resp.BRDs))
	}
}

// --- UpdateBRD ---

func TestHTTPClient_UpdateBRD(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"id": "brd-upd",
			"title": "Updated title",
			"status": "draft",
			"created_at": "2026-01-15T10:00:00Z",
			"updated_at": "2026-01-16T14:00:00Z"
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	title := "Updated title"
	brd, err := c.UpdateBRD(context.Background(), "brd-upd", &UpdateBRDRequest{
		Title: &title,
	})
	if err != nil {
		t.Fatalf("UpdateBRD() error = %v", err)
	}

	if h.method != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", h.method)
	}
	if h.path != "/v1/brds/brd-upd" {
		t.Errorf("path = %q, want /v1/brds/brd-upd", h.path)
	}

	// Verify request body has only the set fields
	var reqBody map[string]interface{}
	if err := json.Unmarshal([]byte(h.body), &reqBody); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	if reqBody["title"] != "Updated title" {
		t.Errorf("request body title = %v, want 'Updated title'", reqBody["title"])
	}
	if _, ok := reqBody["status"]; ok {
		t.Error("request body should not contain 'status' when nil")
	}
	if _, ok := reqBody["sources"]; ok {
		t.Error("request body should not contain 'sources' when nil")
	}

	if brd.Title != "Updated title" {
		t.Errorf("brd.Title = %q, want 'Updated title'", brd.Title)
	}
}

// --- DeleteBRD ---

func TestHTTPClient_DeleteBRD(t *testing.T) {
	h := &testHandler{
		statusCode: http.StatusNoContent,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	err := c.DeleteBRD(context.Background(), "brd-del")
	if err != nil {
		t.Fatalf("DeleteBRD() error = %v", err)
	}

	if h.method != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", h.method)
	}
	if h.path != "/v1/brds/brd-del" {
		t.Errorf("path = %q, want /v1/brds/brd-del", h.path)
	}
}

// --- ExtractBRD ---

func TestHTTPClient_ExtractBRD(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"id": "brd-ext",
			"title": "Extracted",
			"status": "ready",
			"executive_summary": "Summary.",
			"business_objectives": [{"id": "BO-1", "title": "Grow revenue"}],
			"created_at": "2026-01-15T10:00:00Z",
			"updated_at": "2026-01-15T10:05:00Z"
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	brd, err := c.ExtractBRD(context.Background(), "brd-ext", "B2B e-commerce platform", "alice")
	if err != nil {
		t.Fatalf("ExtractBRD() error = %v", err)
	}

	if h.method != http.MethodPost {
		t.Errorf("method = %q, want POST", h.method)
	}
	if h.path != "/v1/brds/brd-ext/extract" {
		t.Errorf("path = %q, want /v1/brds/brd-ext/extract", h.path)
	}

	var reqBody map[string]interface{}
	if err := json.Unmarshal([]byte(h.body), &reqBody); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	if reqBody["project_context"] != "B2B e-commerce platform" {
		t.Errorf("request body project_context = %v", reqBody["project_context"])
	}
	if reqBody["actor"] != "alice" {
		t.Errorf("request body actor = %v, want 'alice'", reqBody["actor"])
	}

	if brd.Status != model.BRDStatusReady {
		t.Errorf("brd.Status = %q, want 'ready'", brd.Status)
	}
	if len(brd.BusinessObjectives) != 1 {
		t.Errorf("len(brd.BusinessObjectives) = %d, want 1", len(brd.BusinessObjectives))
	}
}

func TestHTTPClient_ExtractBRD_EmptyContext(t *testing.T) {
	h := &testHandler{
		responseBody: `{"id": "brd-ext2", "title": "X", "status": "ready", "created_at": "2026-01-15T10:00:00Z", "updated_at": "2026-01-15T10:00:00Z"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.ExtractBRD(context.Background(), "brd-ext2", "", "")
	if err != nil {
		t.Fatalf("ExtractBRD() error = %v", err)
	}

	// When context and actor are empty, body should be an empty map.
	var reqBody map[string]interface{}
	if err := json.Unmarshal([]byte(h.body), &reqBody); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	if _, ok := reqBody["project_context"]; ok {
		t.Error("request body should not contain 'project_context' when empty")
	}
	if _, ok := reqBody["actor"]; ok {
		t.Error("request body should not contain 'actor' when empty")
	}
}

// --- GetTrace ---

func TestHTTPClient_GetTrace(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"sources": [{"identifier": "SRC-1", "origin_type": "transcript", "display_name": "Kickoff call"}],
			"nodes": [
				{"id": "SRC-1", "kind": "source", "label": "Kickoff call"},
				{"id": "FR-1", "kind": "requirement", "label": "Guest checkout"}
			],
			"links": [{"from": "SRC-1", "to": "FR-1"}],
			"summary": {"node_counts": {"source": 1, "requirement": 1}, "source_coverage": 1.0, "task_coverage": 0.5}
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	graph, err := c.GetTrace(context.Background(), "brd-tr", false)
	if err != nil {
		t.Fatalf("GetTrace() error = %v", err)
	}

	if h.method != http.MethodGet {
		t.Errorf("method = %q, want GET", h.method)
	}
	if h.path != "/v1/brds/brd-tr/trace" {
		t.Errorf("path = %q, want /v1/brds/brd-tr/trace", h.path)
	}
	if h.query != "" {
		t.Errorf("query = %q, want empty", h.query)
	}

	if len(graph.Sources) != 1 || graph.Sources[0].Identifier != "SRC-1" {
		t.Fatalf("unexpected sources: %+v", graph.Sources)
	}
	if len(graph.Nodes) != 2 {
		t.Errorf("len(nodes) = %d, want 2", len(graph.Nodes))
	}
	if len(graph.Links) != 1 {
		t.Errorf("len(links) = %d, want 1", len(graph.Links))
	}
	if graph.Summary == nil || graph.Summary.SourceCoverage != 1.0 {
		t.Errorf("unexpected summary: %+v", graph.Summary)
	}
}

func TestHTTPClient_GetTrace_MarkAmbiguous(t *testing.T) {
	h := &testHandler{
		responseBody: `{"nodes": [], "links": [], "summary": {}}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.GetTrace(context.Background(), "brd-tr", true)
	if err != nil {
		t.Fatalf("GetTrace() error = %v", err)
	}

	if h.query != "ambiguous=true" {
		t.Errorf("query = %q, want 'ambiguous=true'", h.query)
	}
}

// --- Tasks ---

func TestHTTPClient_CreateTask(t *testing.T) {
	h := &testHandler{
		statusCode: http.StatusCreated,
		responseBody: `{
			"id": "task-abc",
			"brd_id": "brd-1",
			"title": "Implement guest checkout",
			"status": "todo",
			"priority": "must_have",
			"requirement_id": "FR-1",
			"estimate_hours": 8,
			"created_at": "2026-01-15T10:00:00Z",
			"updated_at": "2026-01-15T10:00:00Z"
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	task, err := c.CreateTask(context.Background(), &CreateTaskRequest{
		BRDID:         "brd-1",
		Title:         "Implement guest checkout",
		Priority:      "must_have",
		RequirementID: "FR-1",
		EstimateHours: 8,
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	if h.method != http.MethodPost {
		t.Errorf("method = %q, want POST", h.method)
	}
	if h.path != "/v1/tasks" {
		t.Errorf("path = %q, want /v1/tasks", h.path)
	}

	var reqBody map[string]interface{}
	if err := json.Unmarshal([]byte(h.body), &reqBody); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	if reqBody["brd_id"] != "brd-1" {
		t.Errorf("request body brd_id = %v, want 'brd-1'", reqBody["brd_id"])
	}
	if reqBody["requirement_id"] != "FR-1" {
		t.Errorf("request body requirement_id = %v, want 'FR-1'", reqBody["requirement_id"])
	}

	if task.ID != "task-abc" {
		t.Errorf("task.ID = %q, want 'task-abc'", task.ID)
	}
	if task.Status != model.TaskStatusTodo {
		t.Errorf("task.Status = %q, want 'todo'", task.Status)
	}
}

func TestHTTPClient_ListTasks_ScopedToBRD(t *testing.T) {
	h := &testHandler{
		responseBody: `{"tasks": [{"id": "t1", "brd_id": "brd-1", "title": "T", "status": "todo", "created_at": "2026-01-01T00:00:00Z", "updated_at": "2026-01-01T00:00:00Z"}], "total": 1}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	resp, err := c.ListTasks(context.Background(), &ListTasksRequest{
		BRDID:  "brd-1",
		Status: []string{"todo", "in_progress"},
	})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}

	if h.path != "/v1/brds/brd-1/tasks" {
		t.Errorf("path = %q, want /v1/brds/brd-1/tasks", h.path)
	}
	if !strings.Contains(h.query, "status=todo%2Cin_progress") {
		t.Errorf("query %q missing status filter", h.query)
	}
	if len(resp.Tasks) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(resp.Tasks))
	}
	if resp.Tasks[0].BRDID != "brd-1" {
		t.Errorf("tasks[0].BRDID = %q, want 'brd-1'", resp.Tasks[0].BRDID)
	}
}

func TestHTTPClient_ListTasks_Global(t *testing.T) {
	h := &testHandler{
		responseBody: `{"tasks": [], "total": 0}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.ListTasks(context.Background(), &ListTasksRequest{Assignee: "carol"})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}

	if h.path != "/v1/tasks" {
		t.Errorf("path = %q, want /v1/tasks", h.path)
	}
	if !strings.Contains(h.query, "assignee=carol") {
		t.Errorf("query %q missing assignee=carol", h.query)
	}
}

func TestHTTPClient_UpdateTask(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"id": "task-upd",
			"brd_id": "brd-1",
			"title": "T",
			"status": "done",
			"completed_at": "2026-01-20T15:00:00Z",
			"created_at": "2026-01-15T10:00:00Z",
			"updated_at": "2026-01-20T15:00:00Z"
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	status := "done"
	task, err := c.UpdateTask(context.Background(), "task-upd", &UpdateTaskRequest{
		Status: &status,
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	if h.method != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", h.method)
	}
	if h.path != "/v1/tasks/task-upd" {
		t.Errorf("path = %q, want /v1/tasks/task-upd", h.path)
	}

	var reqBody map[string]interface{}
	if err := json.Unmarshal([]byte(h.body), &reqBody); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	if reqBody["status"] != "done" {
		t.Errorf("request body status = %v, want 'done'", reqBody["status"])
	}
	if _, ok := reqBody["title"]; ok {
		t.Error("request body should not contain 'title' when nil")
	}

	if task.Status != model.TaskStatusDone {
		t.Errorf("task.Status = %q, want 'done'", task.Status)
	}
	if task.CompletedAt == nil {
		t.Error("task.CompletedAt is nil, want non-nil")
	}
}

func TestHTTPClient_DeleteTask(t *testing.T) {
	h := &testHandler{
		statusCode: http.StatusNoContent,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	err := c.DeleteTask(context.Background(), "task-del")
	if err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}

	if h.method != http.MethodDelete {
		t.Errorf("method = %q, want DELETE", h.method)
	}
	if h.path != "/v1/tasks/task-del" {
		t.Errorf("path = %q, want /v1/tasks/task-del", h.path)
	}
}

// --- GetEvents ---

func TestHTTPClient_GetEvents(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"events": [
				{"id": 1, "topic": "projectiq.brd.created", "brd_id": "brd-evt", "actor": "alice", "payload": {"title": "New"}, "created_at": "2026-01-15T10:00:00Z"},
				{"id": 2, "topic": "projectiq.brd.extracted", "brd_id": "brd-evt", "actor": "bob", "payload": {}, "created_at": "2026-01-16T10:00:00Z"}
			]
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	events, err := c.GetEvents(context.Background(), "brd-evt")
	if err != nil {
		t.Fatalf("GetEvents() error = %v", err)
	}

	if h.path != "/v1/brds/brd-evt/events" {
		t.Errorf("path = %q, want /v1/brds/brd-evt/events", h.path)
	}

	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Topic != "projectiq.brd.created" {
		t.Errorf("events[0].Topic = %q, want 'projectiq.brd.created'", events[0].Topic)
	}
	if events[1].ID != 2 {
		t.Errorf("events[1].ID = %d, want 2", events[1].ID)
	}
}

// --- Health ---

func TestHTTPClient_Health(t *testing.T) {
	h := &testHandler{
		responseBody: `{"status": "ok"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	status, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}

	if h.path != "/v1/health" {
		t.Errorf("path = %q, want /v1/health", h.path)
	}
	if status != "ok" {
		t.Errorf("status = %q, want 'ok'", status)
	}
}

// --- Auth ---

func TestHTTPClient_AuthToken(t *testing.T) {
	h := &testHandler{
		responseBody: `{"status": "ok"}`,
	}
	srv := httptest.NewServer(h)
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "sekrit")
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health() error = %v", err)
	}

	if h.authHeader != "Bearer sekrit" {
		t.Errorf("Authorization = %q, want 'Bearer sekrit'", h.authHeader)
	}
}

func TestHTTPClient_NoAuthToken(t *testing.T) {
	h := &testHandler{
		responseBody: `{"status": "ok"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if h.authHeader != "" {
		t.Errorf("Authorization = %q, want empty", h.authHeader)
	}
}

// --- Error handling ---

func TestHTTPClient_Error_JSONBody(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusBadRequest,
		responseBody: `{"error": "title is required"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.CreateBRD(context.Background(), &CreateBRDRequest{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Message != "title is required" {
		t.Errorf("message = %q, want 'title is required'", apiErr.Message)
	}
}

func TestHTTPClient_Error_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal server error"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	_, err := c.GetBRD(context.Background(), "brd-123")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "internal server error" {
		t.Errorf("message = %q, want 'internal server error'", apiErr.Message)
	}
}

func TestHTTPClient_Error_404(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusNotFound,
		responseBody: `{"error": "brd not found"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.GetBRD(context.Background(), "nonexistent")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", apiErr.StatusCode)
	}
}

func TestHTTPClient_Error_FormatString(t *testing.T) {
	apiErr := &APIError{StatusCode: 403, Message: "forbidden"}
	want := "HTTP 403: forbidden"
	if apiErr.Error() != want {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), want)
	}
}

func TestHTTPClient_Error_CanceledContext(t *testing.T) {
	h := &testHandler{
		responseBody: `{"status": "ok"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	_, err := c.Health(ctx)
	if err == nil {
		t.Fatal("expected error for canceled context, got nil")
	}
	if !strings.Contains(err.Error(), "context canceled") {
		t.Errorf("error = %q, want to contain 'context canceled'", err.Error())
	}
}

// --- 204 No Content handling ---

func TestHTTPClient_204NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")

	if err := c.DeleteBRD(context.Background(), "brd-del"); err != nil {
		t.Fatalf("DeleteBRD() with 204 error = %v", err)
	}
	if err := c.DeleteTask(context.Background(), "task-del"); err != nil {
		t.Fatalf("DeleteTask() with 204 error = %v", err)
	}
}

// --- Close ---

func TestHTTPClient_Close(t *testing.T) {
	c := NewHTTPClient("http://localhost:9999", "")
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}

// --- NewHTTPClient base URL trimming ---

func TestNewHTTPClient_TrimsTrailingSlash(t *testing.T) {
	c := NewHTTPClient("http://localhost:8080/", "")
	if c.baseURL != "http://localhost:8080" {
		t.Errorf("baseURL = %q, want 'http://localhost:8080'", c.baseURL)
	}
}
