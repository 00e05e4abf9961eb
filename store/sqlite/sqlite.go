/*
Package sqlite provides the SQLite-backed report-run registry.

PURPOSE:
  Every export records a run: which report ran, how many rows it flagged,
  and the workbook key it produced. The registry exists for operator
  visibility only; workbooks are regenerable from the source upload, so
  nothing here is a system of record.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers do not block
  the single writer.

USAGE:
  store, err := sqlite.New("./data/reports.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ReportRun is one recorded report execution.
type ReportRun struct {
	ID          string
	Kind        string // "vip-validation", "overbooking", "exemption", ...
	FlaggedRows int
	FileKey     string // export key; empty when nothing was flagged
	CreatedAt   time.Time
}

// Store implements the report-run registry using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS report_runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		flagged_rows INTEGER NOT NULL,
		file_key TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_report_runs_kind
		ON report_runs(kind);
	CREATE INDEX IF NOT EXISTS idx_report_runs_created_at
		ON report_runs(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun records a report execution.
func (s *Store) SaveRun(ctx context.Context, run ReportRun) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO report_runs (id, kind, flagged_rows, file_key, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Kind, run.FlaggedRows, run.FileKey,
		run.CreatedAt.UTC().Format(time.RFC3339))
	return err
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]ReportRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, flagged_rows, file_key, created_at
		FROM report_runs
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []ReportRun
	for rows.Next() {
		var run ReportRun
		var createdAt string
		var fileKey sql.NullString
		if err := rows.Scan(&run.ID, &run.Kind, &run.FlaggedRows, &fileKey, &createdAt); err != nil {
			return nil, err
		}
		run.FileKey = fileKey.String
		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
