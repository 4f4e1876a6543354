// Package extract is the boundary to the external extraction service: the
// collaborator that turns raw communications into structured BRD sections.
// The service itself (model choice, prompting, NLU quality) is opaque; this
// package only shapes requests, decodes responses, and applies the citation
// verification guard before results are persisted.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

// Client calls the extraction service over HTTP/JSON.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client targeting the extraction service at baseURL.
// When apiKey is non-empty, an Authorization header is set on every request.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Request is the extraction input: the BRD's raw sources plus optional
// project context for the extractor.
type Request struct {
	Sources        []model.RawSource `json:"sources"`
	ProjectContext string            `json:"project_context,omitempty"`
}

// wireItem is the service's representation of one extracted objective or
// requirement. The service reports sourcing as "source_doc"; internally we
// carry it as the item's free-text source reference.
type wireItem struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Priority    string `json:"priority,omitempty"`
	SourceDoc   string `json:"source_doc,omitempty"`
	SourceQuote string `json:"source_quote,omitempty"`
}

type wireResult struct {
	ExecutiveSummary          string     `json:"executive_summary"`
	BusinessObjectives        []wireItem `json:"business_objectives"`
	FunctionalRequirements    []wireItem `json:"functional_requirements"`
	NonFunctionalRequirements []wireItem `json:"non_functional_requirements"`
}

// Result holds the extracted BRD sections in domain form.
type Result struct {
	ExecutiveSummary          string
	BusinessObjectives        []model.Objective
	FunctionalRequirements    []model.Requirement
	NonFunctionalRequirements []model.Requirement
}

// Extract posts the raw sources to the service and decodes the structured
// sections. The caller is expected to run VerifyCitations on the result
// before persisting it.
func (c *Client) Extract(ctx context.Context, req *Request) (*Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal extraction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build extraction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call extraction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var wire wireResult
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode extraction response: %w", err)
	}

	return &Result{
		ExecutiveSummary:          wire.ExecutiveSummary,
		BusinessObjectives:        objectivesFromWire(wire.BusinessObjectives),
		FunctionalRequirements:    requirementsFromWire(wire.FunctionalRequirements),
		NonFunctionalRequirements: requirementsFromWire(wire.NonFunctionalRequirements),
	}, nil
}

func objectivesFromWire(items []wireItem) []model.Objective {
	if len(items) == 0 {
		return nil
	}
	objectives := make([]model.Objective, 0, len(items))
	for _, it := range items {
		objectives = append(objectives, model.Objective{
			ID:          it.ID,
			Description: it.Description,
			Priority:    model.Priority(it.Priority),
			Source:      it.SourceDoc,
			SourceQuote: it.SourceQuote,
		})
	}
	return objectives
}

func requirementsFromWire(items []wireItem) []model.Requirement {
	if len(items) == 0 {
		return nil
	}
	reqs := make([]model.Requirement, 0, len(items))
	for _, it := range items {
		reqs = append(reqs, model.Requirement{
			ID:          it.ID,
			Title:       it.Title,
			Description: it.Description,
			Category:    it.Category,
			Priority:    model.Priority(it.Priority),
			Source:      it.SourceDoc,
			SourceQuote: it.SourceQuote,
		})
	}
	return reqs
}
