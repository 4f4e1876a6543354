package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanBRD scans a single row into a model.BRD.
// The row must contain columns in the order defined by brdColumns.
func scanBRD(row scannable) (*model.BRD, error) {
	var b model.BRD
	var (
		projectID     sql.NullString
		summary       sql.NullString
		createdBy     sql.NullString
		rawSources    []byte
		objectives    []byte
		functional    []byte
		nonFunctional []byte
	)

	err := row.Scan(
		&b.ID,
		&projectID,
		&b.Title,
		&b.Status,
		&summary,
		&rawSources,
		&objectives,
		&functional,
		&nonFunctional,
		&b.HasUnverifiedCitations,
		&b.CreatedAt,
		&createdBy,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.ProjectID = projectID.String
	b.ExecutiveSummary = summary.String
	b.CreatedBy = createdBy.String

	if err := decodeSection(rawSources, &b.RawSources); err != nil {
		return nil, fmt.Errorf("decode raw sources: %w", err)
	}
	if err := decodeSection(objectives, &b.BusinessObjectives); err != nil {
		return nil, fmt.Errorf("decode business objectives: %w", err)
	}
	if err := decodeSection(functional, &b.FunctionalRequirements); err != nil {
		return nil, fmt.Errorf("decode functional requirements: %w", err)
	}
	if err := decodeSection(nonFunctional, &b.NonFunctionalRequirements); err != nil {
		return nil, fmt.Errorf("decode non-functional requirements: %w", err)
	}

	return &b, nil
}

// scanBRDWithTotal scans a row that has a leading total_count column
// followed by the standard BRD columns. Used by queryListBRDs with
// COUNT(*) OVER().
func scanBRDWithTotal(row scannable) (*model.BRD, int, error) {
	var total int
	var b model.BRD
	var (
		projectID     sql.NullString
		summary       sql.NullString
		createdBy     sql.NullString
		rawSources    []byte
		objectives    []byte
		functional    []byte
		nonFunctional []byte
	)

	err := row.Scan(
		&total,
		&b.ID,
		&projectID,
		&b.Title,
		&b.Status,
		&summary,
		&rawSources,
		&objectives,
		&functional,
		&nonFunctional,
		&b.HasUnverifiedCitations,
		&b.CreatedAt,
		&createdBy,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	b.ProjectID = projectID.String
	b.ExecutiveSummary = summary.String
	b.CreatedBy = createdBy.String

	if err := decodeSection(rawSources, &b.RawSources); err != nil {
		return nil, 0, fmt.Errorf("decode raw sources: %w", err)
	}
	if err := decodeSection(objectives, &b.BusinessObjectives); err != nil {
		return nil, 0, fmt.Errorf("decode business objectives: %w", err)
	}
	if err := decodeSection(functional, &b.FunctionalRequirements); err != nil {
		return nil, 0, fmt.Errorf("decode functional requirements: %w", err)
	}
	if err := decodeSection(nonFunctional, &b.NonFunctionalRequirements); err != nil {
		return nil, 0, fmt.Errorf("decode non-functional requirements: %w", err)
	}

	return &b, total, nil
}

// scanTask scans a single row into a model.Task.
func scanTask(row scannable) (*model.Task, error) {
	var t model.Task
	var (
		description   sql.NullString
		requirementID sql.NullString
		assignee      sql.NullString
		createdBy     sql.NullString
		completedAt   sql.NullTime
	)

	err := row.Scan(
		&t.ID,
		&t.BRDID,
		&t.Title,
		&description,
		&t.Status,
		&t.Priority,
		&requirementID,
		&t.EstimateHours,
		&assignee,
		&t.CreatedAt,
		&createdBy,
		&t.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Description = description.String
	t.RequirementID = requirementID.String
	t.Assignee = assignee.String
	t.CreatedBy = createdBy.String

	if completedAt.Valid {
		ts := completedAt.Time
		t.CompletedAt = &ts
	}

	return &t, nil
}

// scanTaskWithTotal scans a row that has a leading total_count column
// followed by the standard task columns.
func scanTaskWithTotal(row scannable) (*model.Task, int, error) {
	var total int
	var t model.Task
	var (
		description   sql.NullString
		requirementID sql.NullString
		assignee      sql.NullString
		createdBy     sql.NullString
		completedAt   sql.NullTime
	)

	err := row.Scan(
		&total,
		&t.ID,
		&t.BRDID,
		&t.Title,
		&description,
		&t.Status,
		&t.Priority,
		&requirementID,
		&t.EstimateHours,
		&assignee,
		&t.CreatedAt,
		&createdBy,
		&t.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	t.Description = description.String
	t.RequirementID = requirementID.String
	t.Assignee = assignee.String
	t.CreatedBy = createdBy.String

	if completedAt.Valid {
		ts := completedAt.Time
		t.CompletedAt = &ts
	}

	return &t, total, nil
}

// scanEvent scans a single row into a model.Event.
func scanEvent(row scannable) (*model.Event, error) {
	var e model.Event
	var (
		actor   sql.NullString
		payload []byte
	)
	err := row.Scan(&e.ID, &e.Topic, &e.BRDID, &actor, &payload, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Actor = actor.String
	if len(payload) > 0 {
		e.Payload = json.RawMessage(payload)
	}
	return &e, nil
}

// scanEvents scans multiple rows into a slice of model.Event pointers.
func scanEvents(rows *sql.Rows) ([]*model.Event, error) {
	var events []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// sectionJSON marshals a BRD section slice for a JSONB column.
// Empty sections are stored as NULL.
func sectionJSON[T any](items []T) ([]byte, error) {
	if len(items) == 0 {
		return nil, nil
	}
	return json.Marshal(items)
}

// decodeSection unmarshals a JSONB section column into dest.
// NULL columns leave dest as the zero slice.
func decodeSection[T any](data []byte, dest *[]T) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

// nullTimePtr converts a *time.Time to a sql.NullTime.
func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
