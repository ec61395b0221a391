// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store archives completed query runs in a local SQLite database.
// The archive is write-only during a run: the pipeline never consults it,
// so saved history cannot leak into fresh results.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/caselaw-engine/pkg/types"
)

const dbFile = "caselaw.db"

// Run describes one archived query run.
type Run struct {
	ID        int64     `json:"id" yaml:"id"`
	Query     string    `json:"query" yaml:"query"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Cases     int       `json:"cases" yaml:"cases"`
}

// Store manages the run archive database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the archive at cfg.ArchiveDir/caselaw.db,
// creating the schema if needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.ArchiveDir
	if dir == "" {
		dir = "archive"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
			query TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS summaries (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			summary TEXT NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun archives the summaries of one completed run and returns the run
// ID. Position encodes search ranking order so replays stay ordered.
func (s *Store) SaveRun(ctx context.Context, query string, summaries []types.CaseSummary) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (query, created_at) VALUES (?, ?)`,
		query, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run ID: %w", err)
	}

	for i, cs := range summaries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO summaries (run_id, position, title, summary) VALUES (?, ?, ?, ?)`,
			runID, i, cs.Title, cs.Summary); err != nil {
			return 0, fmt.Errorf("inserting summary %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// ListRuns returns all archived runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.query, r.created_at, COUNT(sm.run_id)
		FROM runs r
		LEFT JOIN summaries sm ON sm.run_id = r.id
		GROUP BY r.id
		ORDER BY r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Query, &created, &r.Cases); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one archived run with its summaries in original order.
func (s *Store) GetRun(ctx context.Context, id int64) (Run, []types.CaseSummary, error) {
	var r Run
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, query, created_at FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.Query, &created)
	if err == sql.ErrNoRows {
		return Run{}, nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return Run{}, nil, fmt.Errorf("querying run %d: %w", id, err)
	}
	if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
		r.CreatedAt = t
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT title, summary FROM summaries WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return Run{}, nil, fmt.Errorf("querying summaries for run %d: %w", id, err)
	}
	defer rows.Close()

	var summaries []types.CaseSummary
	for rows.Next() {
		var cs types.CaseSummary
		if err := rows.Scan(&cs.Title, &cs.Summary); err != nil {
			return Run{}, nil, fmt.Errorf("scanning summary: %w", err)
		}
		summaries = append(summaries, cs)
	}
	r.Cases = len(summaries)
	return r, summaries, rows.Err()
}
