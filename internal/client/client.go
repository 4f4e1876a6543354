// Package client provides a transport-agnostic interface for the ProjectIQ
// service and an HTTP/JSON implementation that talks to the ProjectIQ REST API.
package client

import (
	"context"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

// IQClient is the interface that all piq CLI commands use to communicate with
// the ProjectIQ server. It is implemented by HTTPClient.
type IQClient interface {
	// BRD CRUD
	CreateBRD(ctx context.Context, req *CreateBRDRequest) (*model.BRD, error)
	GetBRD(ctx context.Context, id string) (*model.BRD, error)
	ListBRDs(ctx context.Context, req *ListBRDsRequest) (*ListBRDsResponse, error)
	UpdateBRD(ctx context.Context, id string, req *UpdateBRDRequest) (*model.BRD, error)
	DeleteBRD(ctx context.Context, id string) error

	// Extraction
	ExtractBRD(ctx context.Context, id, projectContext, actor string) (*model.BRD, error)

	// Traceability
	GetTrace(ctx context.Context, brdID string, markAmbiguous bool) (*model.TraceGraph, error)

	// Tasks
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*model.Task, error)
	GetTask(ctx context.Context, id string) (*model.Task, error)
	ListTasks(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error)
	UpdateTask(ctx context.Context, id string, req *UpdateTaskRequest) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Events
	GetEvents(ctx context.Context, brdID string) ([]*model.Event, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateBRDRequest holds parameters for creating a BRD.
type CreateBRDRequest struct {
	ProjectID string            `json:"project_id,omitempty"`
	Title     string            `json:"title"`
	Sources   []model.RawSource `json:"sources,omitempty"`
	CreatedBy string            `json:"created_by,omitempty"`
}

// ListBRDsRequest holds parameters for listing BRDs.
type ListBRDsRequest struct {
	ProjectID string   `json:"project_id,omitempty"`
	Status    []string `json:"status,omitempty"`
	Search    string   `json:"search,omitempty"`
	Sort      string   `json:"sort,omitempty"`
	Limit     int      `json:"limit,omitempty"`
	Offset    int      `json:"offset,omitempty"`
}

// ListBRDsResponse is the response from ListBRDs.
type ListBRDsResponse struct {
	BRDs  []*model.BRD `json:"brds"`
	Total int          `json:"total"`
}

// UpdateBRDRequest holds optional parameters for updating a BRD.
// Nil pointer fields mean "don't change".
type UpdateBRDRequest struct {
	ProjectID *string            `json:"project_id,omitempty"`
	Title     *string            `json:"title,omitempty"`
	Status    *string            `json:"status,omitempty"`
	Sources   *[]model.RawSource `json:"sources,omitempty"`
	Actor     string             `json:"actor,omitempty"`
}

// CreateTaskRequest holds parameters for creating a task.
type CreateTaskRequest struct {
	BRDID         string  `json:"brd_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	Priority      string  `json:"priority,omitempty"`
	RequirementID string  `json:"requirement_id,omitempty"`
	EstimateHours float64 `json:"estimate_hours,omitempty"`
	Assignee      string  `json:"assignee,omitempty"`
	CreatedBy     string  `json:"created_by,omitempty"`
}

// ListTasksRequest holds parameters for listing tasks.
type ListTasksRequest struct {
	BRDID         string   `json:"brd_id,omitempty"`
	Status        []string `json:"status,omitempty"`
	RequirementID string   `json:"requirement_id,omitempty"`
	Assignee      string   `json:"assignee,omitempty"`
	Search        string   `json:"search,omitempty"`
	Sort          string   `json:"sort,omitempty"`
	Limit         int      `json:"limit,omitempty"`
	Offset        int      `json:"offset,omitempty"`
}

// ListTasksResponse is the response from ListTasks.
type ListTasksResponse struct {
	Tasks []*model.Task `json:"tasks"`
	Total int           `json:"total"`
}

// UpdateTaskRequest holds optional parameters for updating a task.
// Nil pointer fields mean "don't change".
type UpdateTaskRequest struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Priority      *string  `json:"priority,omitempty"`
	RequirementID *string  `json:"requirement_id,omitempty"`
	EstimateHours *float64 `json:"estimate_hours,omitempty"`
	Assignee      *string  `json:"assignee,omitempty"`
	Actor         string   `json:"actor,omitempty"`
}
