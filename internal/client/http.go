package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

// HTTPClient implements IQClient using the ProjectIQ HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- BRD CRUD ---

func (c *HTTPClient) CreateBRD(ctx context.Context, req *CreateBRDRequest) (*model.BRD, error) {
	var brd model.BRD
	if err := c.doJSON(ctx, http.MethodPost, "/v1/brds", req, &brd); err != nil {
		return nil, err
	}
	return &brd, nil
}

func (c *HTTPClient) GetBRD(ctx context.Context, id string) (*model.BRD, error) {
	var brd model.BRD
	if err := c.doJSON(ctx, http.MethodGet, "/v1/brds/"+url.PathEscape(id), nil, &brd); err != nil {
		return nil, err
	}
	return &brd, nil
}

func (c *HTTPClient) ListBRDs(ctx context.Context, req *ListBRDsRequest) (*ListBRDsResponse, error) {
	q := url.Values{}
	if req.ProjectID != "" {
		q.Set("project_id", req.ProjectID)
	}
	if len(req.Status) > 0 {
		q.Set("status", strings.Join(req.Status, ","))
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.Sort != "" {
		q.Set("sort", req.Sort)
	}
	if req.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", req.Limit))
	}
	if req.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", req.Offset))
	}

	path := "/v1/brds"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListBRDsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateBRD(ctx context.Context, id string, req *UpdateBRDRequest) (*model.BRD, error) {
	var brd model.BRD
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/brds/"+url.PathEscape(id), req, &brd); err != nil {
		return nil, err
	}
	return &brd, nil
}

func (c *HTTPClient) DeleteBRD(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/brds/"+url.PathEscape(id), nil, nil)
}

// --- Extraction ---

func (c *HTTPClient) ExtractBRD(ctx context.Context, id, projectContext, actor string) (*model.BRD, error) {
	body := map[string]string{}
	if projectContext != "" {
		body["project_context"] = projectContext
	}
	if actor != "" {
		body["actor"] = actor
	}
	var brd model.BRD
	if err := c.doJSON(ctx, http.MethodPost, "/v1/brds/"+url.PathEscape(id)+"/extract", body, &brd); err != nil {
		return nil, err
	}
	return &brd, nil
}

// --- Traceability ---

func (c *HTTPClient) GetTrace(ctx context.Context, brdID string, markAmbiguous bool) (*model.TraceGraph, error) {
	path := "/v1/brds/" + url.PathEscape(brdID) + "/trace"
	if markAmbiguous {
		path += "?ambiguous=true"
	}
	var graph model.TraceGraph
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &graph); err != nil {
		return nil, err
	}
	return &graph, nil
}

// --- Tasks ---

func (c *HTTPClient) CreateTask(ctx context.Context, req *CreateTaskRequest) (*model.Task, error) {
	var task model.Task
	if err := c.doJSON(ctx, http.MethodPost, "/v1/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *HTTPClient) GetTask(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := c.doJSON(ctx, http.MethodGet, "/v1/tasks/"+url.PathEscape(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *HTTPClient) ListTasks(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error) {
	q := url.Values{}
	if len(req.Status) > 0 {
		q.Set("status", strings.Join(req.Status, ","))
	}
	if req.RequirementID != "" {
		q.Set("requirement_id", req.RequirementID)
	}
	if req.Assignee != "" {
		q.Set("assignee", req.Assignee)
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.Sort != "" {
		q.Set("sort", req.Sort)
	}
	if req.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", req.Limit))
	}
	if req.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", req.Offset))
	}

	// Scoped listings go through the BRD subresource.
	path := "/v1/tasks"
	if req.BRDID != "" {
		path = "/v1/brds/" + url.PathEscape(req.BRDID) + "/tasks"
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListTasksResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, id string, req *UpdateTaskRequest) (*model.Task, error) {
	var task model.Task
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/tasks/"+url.PathEscape(id), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/tasks/"+url.PathEscape(id), nil, nil)
}

// --- Events ---

func (c *HTTPClient) GetEvents(ctx context.Context, brdID string) ([]*model.Event, error) {
	var resp struct {
		Events []*model.Event `json:"events"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/brds/"+url.PathEscape(brdID)+"/events", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

var _ IQClient = (*HTTPClient)(nil)
