package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
)

// brdColumns is the column list used for SELECT statements on the brds table.
const brdColumns = `id, project_id, title, status, executive_summary,
	raw_sources, business_objectives, functional_requirements,
	non_functional_requirements, has_unverified_citations,
	created_at, created_by, updated_at`

// taskColumns is the column list used for SELECT statements on the tasks table.
const taskColumns = `id, brd_id, title, description, status, priority,
	requirement_id, estimate_hours, assignee,
	created_at, created_by, updated_at, completed_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateBRD(ctx context.Context, db executor, b *model.BRD) error {
	rawSources, err := sectionJSON(b.RawSources)
	if err != nil {
		return fmt.Errorf("encode raw sources: %w", err)
	}
	objectives, err := sectionJSON(b.BusinessObjectives)
	if err != nil {
		return fmt.Errorf("encode business objectives: %w", err)
	}
	functional, err := sectionJSON(b.FunctionalRequirements)
	if err != nil {
		return fmt.Errorf("encode functional requirements: %w", err)
	}
	nonFunctional, err := sectionJSON(b.NonFunctionalRequirements)
	if err != nil {
		return fmt.Errorf("encode non-functional requirements: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO brds (
			id, project_id, title, status, executive_summary,
			raw_sources, business_objectives, functional_requirements,
			non_functional_requirements, has_unverified_citations,
			created_at, created_by, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10,
			$11, $12, $13
		)`,
		b.ID,
		nullString(b.ProjectID),
		b.Title,
		string(b.Status),
		b.ExecutiveSummary,
		rawSources,
		objectives,
		functional,
		nonFunctional,
		b.HasUnverifiedCitations,
		b.CreatedAt,
		b.CreatedBy,
		b.UpdatedAt,
	)
	return err
}

func queryGetBRD(ctx context.Context, db executor, id string) (*model.BRD, error) {
	row := db.QueryRowContext(ctx, `SELECT `+brdColumns+` FROM brds WHERE id = $1`, id)
	return scanBRD(row)
}

func queryListBRDs(ctx context.Context, db executor, filter model.BRDFilter) ([]*model.BRD, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if filter.ProjectID != "" {
		whereClauses = append(whereClauses, "project_id = "+nextArg())
		args = append(args, filter.ProjectID)
	}

	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			placeholders[i] = nextArg()
			args = append(args, string(s))
		}
		whereClauses = append(whereClauses, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if filter.Search != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			fmt.Sprintf("(title ILIKE '%%' || %s || '%%' OR executive_summary ILIKE '%%' || %s || '%%')", p, p))
		args = append(args, filter.Search)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Single query with COUNT(*) OVER() to get total and rows atomically.
	dataQuery := "SELECT COUNT(*) OVER() AS total_count, " + brdColumns + " FROM brds" + whereSQL + " ORDER BY " + parseBRDSortClause(filter.Sort)

	if filter.Limit > 0 {
		dataQuery += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		dataQuery += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list brds: %w", err)
	}
	defer rows.Close()

	var brds []*model.BRD
	var total int
	for rows.Next() {
		b, t, err := scanBRDWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan brds: %w", err)
		}
		total = t
		brds = append(brds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan brds: %w", err)
	}

	return brds, total, nil
}

func queryUpdateBRD(ctx context.Context, db executor, b *model.BRD) error {
	rawSources, err := sectionJSON(b.RawSources)
	if err != nil {
		return fmt.Errorf("encode raw sources: %w", err)
	}
	objectives, err := sectionJSON(b.BusinessObjectives)
	if err != nil {
		return fmt.Errorf("encode business objectives: %w", err)
	}
	functional, err := sectionJSON(b.FunctionalRequirements)
	if err != nil {
		return fmt.Errorf("encode functional requirements: %w", err)
	}
	nonFunctional, err := sectionJSON(b.NonFunctionalRequirements)
	if err != nil {
		return fmt.Errorf("encode non-functional requirements: %w", err)
	}

	return db.QueryRowContext(ctx, `
		UPDATE brds SET
			project_id = $2,
			title = $3,
			status = $4,
			executive_summary = $5,
			raw_sources = $6,
			business_objectives = $7,
			functional_requirements = $8,
			non_functional_requirements = $9,
			has_unverified_citations = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		b.ID,
		nullString(b.ProjectID),
		b.Title,
		string(b.Status),
		b.ExecutiveSummary,
		rawSources,
		objectives,
		functional,
		nonFunctional,
		b.HasUnverifiedCitations,
	).Scan(&b.UpdatedAt)
}

func queryDeleteBRD(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM brds WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryCreateTask(ctx context.Context, db executor, t *model.Task) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, brd_id, title, description, status, priority,
			requirement_id, estimate_hours, assignee,
			created_at, created_by, updated_at, completed_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9,
			$10, $11, $12, $13
		)`,
		t.ID,
		t.BRDID,
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		nullString(t.RequirementID),
		t.EstimateHours,
		t.Assignee,
		t.CreatedAt,
		t.CreatedBy,
		t.UpdatedAt,
		nullTimePtr(t.CompletedAt),
	)
	return err
}

func queryGetTask(ctx context.Context, db executor, id string) (*model.Task, error) {
	row := db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

func queryListTasks(ctx context.Context, db executor, filter model.TaskFilter) ([]*model.Task, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if filter.BRDID != "" {
		whereClauses = append(whereClauses, "brd_id = "+nextArg())
		args = append(args, filter.BRDID)
	}

	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			placeholders[i] = nextArg()
			args = append(args, string(s))
		}
		whereClauses = append(whereClauses, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if filter.RequirementID != "" {
		whereClauses = append(whereClauses, "requirement_id = "+nextArg())
		args = append(args, filter.RequirementID)
	}

	if filter.Assignee != "" {
		whereClauses = append(whereClauses, "assignee = "+nextArg())
		args = append(args, filter.Assignee)
	}

	if filter.Search != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			fmt.Sprintf("(title ILIKE '%%' || %s || '%%' OR description ILIKE '%%' || %s || '%%')", p, p))
		args = append(args, filter.Search)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	dataQuery := "SELECT COUNT(*) OVER() AS total_count, " + taskColumns + " FROM tasks" + whereSQL + " ORDER BY " + parseTaskSortClause(filter.Sort)

	if filter.Limit > 0 {
		dataQuery += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		dataQuery += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*model.Task
	var total int
	for rows.Next() {
		t, n, err := scanTaskWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan tasks: %w", err)
		}
		total = n
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan tasks: %w", err)
	}

	return tasks, total, nil
}

func queryUpdateTask(ctx context.Context, db executor, t *model.Task) error {
	return db.QueryRowContext(ctx, `
		UPDATE tasks SET
			title = $2,
			description = $3,
			status = $4,
			priority = $5,
			requirement_id = $6,
			estimate_hours = $7,
			assignee = $8,
			updated_at = NOW(),
			completed_at = $9
		WHERE id = $1
		RETURNING updated_at`,
		t.ID,
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		nullString(t.RequirementID),
		t.EstimateHours,
		t.Assignee,
		nullTimePtr(t.CompletedAt),
	).Scan(&t.UpdatedAt)
}

func queryDeleteTask(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryRecordEvent(ctx context.Context, db executor, e *model.Event) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO events (topic, brd_id, actor, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		e.Topic, e.BRDID, e.Actor, []byte(e.Payload),
	).Scan(&e.ID, &e.CreatedAt)
}

func queryGetEvents(ctx context.Context, db executor, brdID string) ([]*model.Event, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, topic, brd_id, actor, payload, created_at
		FROM events
		WHERE brd_id = $1
		ORDER BY created_at ASC`,
		brdID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func parseBRDSortClause(sort string) string {
	if sort == "" {
		return "created_at DESC"
	}
	desc := strings.HasPrefix(sort, "-")
	col := strings.TrimPrefix(sort, "-")
	allowed := map[string]bool{
		"created_at": true, "updated_at": true, "title": true, "status": true,
	}
	if !allowed[col] {
		return "created_at DESC"
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

func parseTaskSortClause(sort string) string {
	if sort == "" {
		return "created_at DESC"
	}
	desc := strings.HasPrefix(sort, "-")
	col := strings.TrimPrefix(sort, "-")
	allowed := map[string]bool{
		"created_at": true, "updated_at": true, "title": true,
		"status": true, "priority": true, "requirement_id": true,
	}
	if !allowed[col] {
		return "created_at DESC"
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}
