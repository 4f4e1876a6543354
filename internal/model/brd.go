package model

import (
	"encoding/json"
	"time"
)

// BRDStatus represents the lifecycle state of a BRD.
type BRDStatus string

const (
	BRDStatusDraft      BRDStatus = "draft"
	BRDStatusGenerating BRDStatus = "generating"
	BRDStatusReady      BRDStatus = "ready"
	BRDStatusFailed     BRDStatus = "failed"
)

// String returns the string representation of the status.
func (s BRDStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s BRDStatus) IsValid() bool {
	switch s {
	case BRDStatusDraft, BRDStatusGenerating, BRDStatusReady, BRDStatusFailed:
		return true
	}
	return false
}

// Priority is the extraction-assigned importance of an objective or requirement.
// Priorities come from an external process and are extensible; well-known
// values are provided below but any non-empty string is accepted.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// RawSource is one raw communication or document contributed to a BRD:
// an email, chat export, meeting transcript, uploaded file, or pasted text.
// The type field is unvalidated free text from the upstream ingester.
type RawSource struct {
	Type     string          `json:"type"`
	Name     string          `json:"name,omitempty"`
	Content  string          `json:"content,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// Objective is a business objective extracted from the raw sources.
type Objective struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority,omitempty"`
	// Source is free text naming where the objective came from. It is not a
	// foreign key; resolution against the source registry is heuristic.
	Source           string `json:"source,omitempty"`
	SourceQuote      string `json:"source_quote,omitempty"`
	CitationVerified *bool  `json:"citation_verified,omitempty"`
}

// Requirement is a functional or non-functional requirement extracted from
// the raw sources.
type Requirement struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	// Source is free text naming where the requirement came from; see
	// Objective.Source.
	Source           string `json:"source,omitempty"`
	SourceQuote      string `json:"source_quote,omitempty"`
	CitationVerified *bool  `json:"citation_verified,omitempty"`
}

// BRD is a Business Requirements Document: the structured artifact derived
// from a set of raw sources by the extraction service.
type BRD struct {
	ID               string    `json:"id"`
	ProjectID        string    `json:"project_id,omitempty"`
	Title            string    `json:"title"`
	Status           BRDStatus `json:"status"`
	ExecutiveSummary string    `json:"executive_summary,omitempty"`

	RawSources                []RawSource   `json:"raw_sources,omitempty"`
	BusinessObjectives        []Objective   `json:"business_objectives,omitempty"`
	FunctionalRequirements    []Requirement `json:"functional_requirements,omitempty"`
	NonFunctionalRequirements []Requirement `json:"non_functional_requirements,omitempty"`

	HasUnverifiedCitations bool `json:"has_unverified_citations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Requirements returns the functional and non-functional requirements as a
// single flat list, functional first. The combined order is the order the
// traceability pipeline sees.
func (b *BRD) Requirements() []Requirement {
	if len(b.FunctionalRequirements) == 0 && len(b.NonFunctionalRequirements) == 0 {
		return nil
	}
	reqs := make([]Requirement, 0, len(b.FunctionalRequirements)+len(b.NonFunctionalRequirements))
	reqs = append(reqs, b.FunctionalRequirements...)
	reqs = append(reqs, b.NonFunctionalRequirements...)
	return reqs
}
