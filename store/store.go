// Package store writes Toggl data into MySQL for reporting.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"github.com/s0up4200/togglr/toggl"
)

// ErrMissingDSN is returned by Open when no DSN is configured
var ErrMissingDSN = errors.New("mysql: DSN is required")

// Sink receives synced records. *Store implements it.
type Sink interface {
	UpsertWorkspaces(ctx context.Context, workspaces []*toggl.Workspace) error
	UpsertClients(ctx context.Context, clients []*toggl.Client) error
	UpsertProjects(ctx context.Context, projects []*toggl.Project) error
	UpsertTimeEntries(ctx context.Context, entries []*toggl.TimeEntry) error
}

// Store is a MySQL backed Sink
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open connects to MySQL and checks the connection.
// Example DSN: user:pass@tcp(host:3306)/dbname
func Open(ctx context.Context, dsn string, logger zerolog.Logger) (*Store, error) {
	normalized, err := NormalizeDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	return &Store{db: db, logger: logger.With().Str("component", "store").Logger()}, nil
}

// NormalizeDSN validates dsn and turns on the options the store relies on:
// parsed times in UTC and multi-statement migrations.
func NormalizeDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", ErrMissingDSN
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql DSN: %w", err)
	}
	cfg.ParseTime = true
	cfg.MultiStatements = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// Close closes the underlying DB
func (s *Store) Close() error { return s.db.Close() }

const upsertWorkspaces = `
INSERT INTO toggl_workspaces
  (id, name, premium, organization_id, default_currency, at)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name=VALUES(name),
  premium=VALUES(premium),
  organization_id=VALUES(organization_id),
  default_currency=VALUES(default_currency),
  at=VALUES(at);
`

// UpsertWorkspaces inserts or updates workspaces by id
func (s *Store) UpsertWorkspaces(ctx context.Context, workspaces []*toggl.Workspace) error {
	return upsert(ctx, s, "workspaces", upsertWorkspaces, workspaces, workspaceRow)
}

const upsertClients = `
INSERT INTO toggl_clients
  (id, workspace_id, name, archived, notes, at)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  workspace_id=VALUES(workspace_id),
  name=VALUES(name),
  archived=VALUES(archived),
  notes=VALUES(notes),
  at=VALUES(at);
`

// UpsertClients inserts or updates clients by id
func (s *Store) UpsertClients(ctx context.Context, clients []*toggl.Client) error {
	return upsert(ctx, s, "clients", upsertClients, clients, clientRow)
}

const upsertProjects = `
INSERT INTO toggl_projects
  (id, workspace_id, client_id, name, billable, active, is_private, color, at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  workspace_id=VALUES(workspace_id),
  client_id=VALUES(client_id),
  name=VALUES(name),
  billable=VALUES(billable),
  active=VALUES(active),
  is_private=VALUES(is_private),
  color=VALUES(color),
  at=VALUES(at);
`

// UpsertProjects inserts or updates projects by id
func (s *Store) UpsertProjects(ctx context.Context, projects []*toggl.Project) error {
	return upsert(ctx, s, "projects", upsertProjects, projects, projectRow)
}

const upsertTimeEntries = `
INSERT INTO toggl_time_entries
  (id, workspace_id, project_id, task_id, description, tags, billable, start, stop, duration_sec, at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  workspace_id=VALUES(workspace_id),
  project_id=VALUES(project_id),
  task_id=VALUES(task_id),
  description=VALUES(description),
  tags=VALUES(tags),
  billable=VALUES(billable),
  start=VALUES(start),
  stop=VALUES(stop),
  duration_sec=VALUES(duration_sec),
  at=VALUES(at);
`

// UpsertTimeEntries inserts or updates time entries by id. Running entries are
// stored with a NULL stop and their negative duration.
func (s *Store) UpsertTimeEntries(ctx context.Context, entries []*toggl.TimeEntry) error {
	return upsert(ctx, s, "time entries", upsertTimeEntries, entries, timeEntryRow)
}

// upsert runs query once per item inside a single transaction.
func upsert[T any](ctx context.Context, s *Store, kind, query string, items []*T, row func(*T) []any) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin %s upsert: %w", kind, err)
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare %s upsert: %w", kind, err)
	}
	defer stmt.Close()

	count := 0
	for _, item := range items {
		if item == nil {
			continue
		}
		if _, err := stmt.ExecContext(ctx, row(item)...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to upsert %s: %w", kind, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s upsert: %w", kind, err)
	}

	s.logger.Info().Str("kind", kind).Int("count", count).Msg("Upserted records")
	return nil
}

func workspaceRow(w *toggl.Workspace) []any {
	return []any{w.ID, w.Name, w.Premium, nullInt(w.OrganizationID), w.DefaultCurrency, nullTime(w.At)}
}

func clientRow(c *toggl.Client) []any {
	return []any{c.ID, c.WorkspaceID, c.Name, c.Archived, c.Notes, nullTime(c.At)}
}

func projectRow(p *toggl.Project) []any {
	return []any{
		p.ID,
		p.WorkspaceID,
		nullInt(p.ClientID),
		p.Name,
		p.Billable,
		p.Active,
		p.Private,
		p.Color,
		nullTime(p.At),
	}
}

func timeEntryRow(e *toggl.TimeEntry) []any {
	var stop any
	if e.Stop != nil {
		stop = e.Stop.UTC()
	}
	return []any{
		e.ID,
		e.WorkspaceID,
		nullInt(e.ProjectID),
		nullInt(e.TaskID),
		e.Description,
		tagsJSON(e.Tags),
		e.Billable,
		e.Start.UTC(),
		stop,
		e.Duration,
		nullTime(e.At),
	}
}

// tagsJSON stores tags as a JSON array, "[]" when there are none.
func tagsJSON(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func nullInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
