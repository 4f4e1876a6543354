package export

import (
	"context"
	"database/sql"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
	"github.com/chaitenyachand/ProjectIQ/internal/store"
)

// mockStore is a minimal in-memory store.Store for export tests.
type mockStore struct {
	brds   map[string]*model.BRD
	tasks  []*model.Task
	events []*model.Event
}

func newMockStore() *mockStore {
	return &mockStore{brds: make(map[string]*model.BRD)}
}

func (m *mockStore) CreateBRD(_ context.Context, brd *model.BRD) error {
	m.brds[brd.ID] = brd
	return nil
}

func (m *mockStore) GetBRD(_ context.Context, id string) (*model.BRD, error) {
	b, ok := m.brds[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return b, nil
}

func (m *mockStore) ListBRDs(_ context.Context, _ model.BRDFilter) ([]*model.BRD, int, error) {
	var result []*model.BRD
	for _, b := range m.brds {
		result = append(result, b)
	}
	return result, len(result), nil
}

func (m *mockStore) UpdateBRD(_ context.Context, brd *model.BRD) error {
	m.brds[brd.ID] = brd
	return nil
}

func (m *mockStore) DeleteBRD(_ context.Context, id string) error {
	delete(m.brds, id)
	return nil
}

func (m *mockStore) CreateTask(_ context.Context, task *model.Task) error {
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *mockStore) GetTask(_ context.Context, id string) (*model.Task, error) {
	for _, t := range m.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStore) ListTasks(_ context.Context, _ model.TaskFilter) ([]*model.Task, int, error) {
	return m.tasks, len(m.tasks), nil
}

func (m *mockStore) UpdateTask(_ context.Context, _ *model.Task) error { return nil }

func (m *mockStore) DeleteTask(_ context.Context, _ string) error { return nil }

func (m *mockStore) RecordEvent(_ context.Context, event *model.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockStore) GetEvents(_ context.Context, _ string) ([]*model.Event, error) {
	return m.events, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }
