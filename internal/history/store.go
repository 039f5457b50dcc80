// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records completed conversion runs in a local SQLite
// database. The history is an audit log for inspection and export; it is
// never consulted to resume or skip work in a later batch.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docbatch/pkg/types"
)

const dbFile = "history.db"

// DefaultMaxResults bounds run listings when the config does not set one.
const DefaultMaxResults = 20

// Run describes one completed batch run and its per-file outcomes.
type Run struct {
	ID         int64             `json:"id" yaml:"id"`
	StartedAt  time.Time         `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time         `json:"finished_at" yaml:"finished_at"`
	Root       string            `json:"root" yaml:"root"`
	InputExt   string            `json:"input_ext" yaml:"input_ext"`
	OutputExt  string            `json:"output_ext" yaml:"output_ext"`
	Backend    string            `json:"backend" yaml:"backend"`
	Report     types.BatchReport `json:"report" yaml:"report"`
	Outcomes   []types.Outcome   `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
}

// Store manages the run-history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at stateDir/history.db,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	stateDir := cfg.StateDir
	if stateDir == "" {
		stateDir = ".docbatch"
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	dbPath := filepath.Join(stateDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			root TEXT NOT NULL,
			input_ext TEXT NOT NULL,
			output_ext TEXT NOT NULL,
			backend TEXT NOT NULL,
			attempted INTEGER NOT NULL,
			succeeded INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS outcomes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			input TEXT NOT NULL,
			output TEXT,
			status TEXT NOT NULL,
			reason TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_run_id ON outcomes(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun inserts a run and its outcomes in one transaction and returns
// the new run's ID.
func (s *Store) RecordRun(ctx context.Context, run Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, root, input_ext, output_ext, backend, attempted, succeeded, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Root, run.InputExt, run.OutputExt, run.Backend,
		run.Report.Attempted, run.Report.Succeeded, run.Report.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, o := range run.Outcomes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO outcomes (run_id, input, output, status, reason) VALUES (?, ?, ?, ?, ?)`,
			runID, o.Input, o.Output, string(o.Status), o.Reason,
		); err != nil {
			return 0, fmt.Errorf("inserting outcome for %s: %w", o.Input, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first, without their
// per-file outcomes. A non-positive limit uses the configured default.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, root, input_ext, output_ext, backend, attempted, succeeded, failed
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunOutcomes returns the per-file outcomes recorded for one run.
func (s *Store) RunOutcomes(ctx context.Context, runID int64) ([]types.Outcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT input, output, status, reason FROM outcomes WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes for run %d: %w", runID, err)
	}
	defer rows.Close()

	var outcomes []types.Outcome
	for rows.Next() {
		var o types.Outcome
		var status string
		if err := rows.Scan(&o.Input, &o.Output, &status, &o.Reason); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		o.Status = types.OutcomeStatus(status)
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var started, finished string
	if err := rows.Scan(&run.ID, &started, &finished, &run.Root, &run.InputExt,
		&run.OutputExt, &run.Backend,
		&run.Report.Attempted, &run.Report.Succeeded, &run.Report.Failed); err != nil {
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}

	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, fmt.Errorf("parsing started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return Run{}, fmt.Errorf("parsing finished_at: %w", err)
	}
	return run, nil
}
