// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/chaitenyachand/ProjectIQ/internal/model"
	"github.com/chaitenyachand/ProjectIQ/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateBRD(ctx context.Context, brd *model.BRD) error {
	return queryCreateBRD(ctx, s.db, brd)
}

func (s *PostgresStore) GetBRD(ctx context.Context, id string) (*model.BRD, error) {
	return queryGetBRD(ctx, s.db, id)
}

func (s *PostgresStore) ListBRDs(ctx context.Context, filter model.BRDFilter) ([]*model.BRD, int, error) {
	return queryListBRDs(ctx, s.db, filter)
}

func (s *PostgresStore) UpdateBRD(ctx context.Context, brd *model.BRD) error {
	return queryUpdateBRD(ctx, s.db, brd)
}

func (s *PostgresStore) DeleteBRD(ctx context.Context, id string) error {
	return queryDeleteBRD(ctx, s.db, id)
}

func (s *PostgresStore) CreateTask(ctx context.Context, task *model.Task) error {
	return queryCreateTask(ctx, s.db, task)
}

func (s *PostgresStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return queryGetTask(ctx, s.db, id)
}

func (s *PostgresStore) ListTasks(ctx context.Context, filter model.TaskFilter) ([]*model.Task, int, error) {
	return queryListTasks(ctx, s.db, filter)
}

func (s *PostgresStore) UpdateTask(ctx context.Context, task *model.Task) error {
	return queryUpdateTask(ctx, s.db, task)
}

func (s *PostgresStore) DeleteTask(ctx context.Context, id string) error {
	return queryDeleteTask(ctx, s.db, id)
}

func (s *PostgresStore) RecordEvent(ctx context.Context, event *model.Event) error {
	return queryRecordEvent(ctx, s.db, event)
}

func (s *PostgresStore) GetEvents(ctx context.Context, brdID string) ([]*model.Event, error) {
	return queryGetEvents(ctx, s.db, brdID)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreateBRD(ctx context.Context, brd *model.BRD) error {
	return queryCreateBRD(ctx, s.tx, brd)
}

func (s *txStore) GetBRD(ctx context.Context, id string) (*model.BRD, error) {
	return queryGetBRD(ctx, s.tx, id)
}

func (s *txStore) ListBRDs(ctx context.Context, filter model.BRDFilter) ([]*model.BRD, int, error) {
	return queryListBRDs(ctx, s.tx, filter)
}

func (s *txStore) UpdateBRD(ctx context.Context, brd *model.BRD) error {
	return queryUpdateBRD(ctx, s.tx, brd)
}

func (s *txStore) DeleteBRD(ctx context.Context, id string) error {
	return queryDeleteBRD(ctx, s.tx, id)
}

func (s *txStore) CreateTask(ctx context.Context, task *model.Task) error {
	return queryCreateTask(ctx, s.tx, task)
}

func (s *txStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return queryGetTask(ctx, s.tx, id)
}

func (s *txStore) ListTasks(ctx context.Context, filter model.TaskFilter) ([]*model.Task, int, error) {
	return queryListTasks(ctx, s.tx, filter)
}

func (s *txStore) UpdateTask(ctx context.Context, task *model.Task) error {
	return queryUpdateTask(ctx, s.tx, task)
}

func (s *txStore) DeleteTask(ctx context.Context, id string) error {
	return queryDeleteTask(ctx, s.tx, id)
}

func (s *txStore) RecordEvent(ctx context.Context, event *model.Event) error {
	return queryRecordEvent(ctx, s.tx, event)
}

func (s *txStore) GetEvents(ctx context.Context, brdID string) ([]*model.Event, error) {
	return queryGetEvents(ctx, s.tx, brdID)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
