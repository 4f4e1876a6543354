package events

import (
	"context"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

// Event topic constants
const (
	TopicBRDCreated   = "projectiq.brd.created"
	TopicBRDUpdated   = "projectiq.brd.updated"
	TopicBRDExtracted = "projectiq.brd.extracted"
	TopicBRDDeleted   = "projectiq.brd.deleted"

	TopicTaskCreated = "projectiq.task.created"
	TopicTaskUpdated = "projectiq.task.updated"
	TopicTaskDeleted = "projectiq.task.deleted"

	// Emitted after the traceability graph is rebuilt on demand.
	TopicTraceRecomputed = "projectiq.trace.recomputed"
)

// Event types

type BRDCreated struct {
	BRD *model.BRD `json:"brd"`
}

type BRDUpdated struct {
	BRD     *model.BRD     `json:"brd"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

// BRDExtracted is published when the extraction service finishes populating
// a BRD's sections.
type BRDExtracted struct {
	BRD                 *model.BRD `json:"brd"`
	ObjectiveCount      int        `json:"objective_count"`
	RequirementCount    int        `json:"requirement_count"`
	UnverifiedCitations int        `json:"unverified_citations"`
}

type BRDDeleted struct {
	BRDID string `json:"brd_id"`
}

type TaskCreated struct {
	Task *model.Task `json:"task"`
}

type TaskUpdated struct {
	Task    *model.Task    `json:"task"`
	Changes map[string]any `json:"changes"`
}

type TaskDeleted struct {
	TaskID string `json:"task_id"`
	BRDID  string `json:"brd_id"`
}

// TraceRecomputed carries the coverage summary of a freshly built graph so
// downstream consumers (dashboards, alerting) can track coverage over time
// without recomputing.
type TraceRecomputed struct {
	BRDID   string                 `json:"brd_id"`
	Summary *model.CoverageSummary `json:"summary"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
