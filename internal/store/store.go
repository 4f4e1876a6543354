package store

import (
	"context"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

// Store defines the persistence interface for BRDs and their derived tasks.
type Store interface {
	// BRD CRUD
	CreateBRD(ctx context.Context, brd *model.BRD) error
	GetBRD(ctx context.Context, id string) (*model.BRD, error)
	ListBRDs(ctx context.Context, filter model.BRDFilter) ([]*model.BRD, int, error) // returns BRDs, total count, error
	UpdateBRD(ctx context.Context, brd *model.BRD) error
	DeleteBRD(ctx context.Context, id string) error

	// Task CRUD
	CreateTask(ctx context.Context, task *model.Task) error
	GetTask(ctx context.Context, id string) (*model.Task, error)
	ListTasks(ctx context.Context, filter model.TaskFilter) ([]*model.Task, int, error)
	UpdateTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, id string) error

	// Events
	RecordEvent(ctx context.Context, event *model.Event) error
	GetEvents(ctx context.Context, brdID string) ([]*model.Event, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
