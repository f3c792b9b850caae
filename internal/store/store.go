// Package store persists a ledger of extraction runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/valpere/opusfetch/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS extraction_runs (
		id TEXT PRIMARY KEY,
		corpus TEXT NOT NULL,
		source_lang TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		lines_written INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		error TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_pair ON extraction_runs(source_lang, target_lang);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) SaveRun(ctx context.Context, run internal.ExtractionRun) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO extraction_runs (id, corpus, source_lang, target_lang, lines_written, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Corpus, run.SourceLang, run.TargetLang, run.LinesWritten, run.Status, run.Error, run.Timestamp)
	return err
}

// ListRuns returns all recorded runs, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]internal.ExtractionRun, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, corpus, source_lang, target_lang, lines_written, status, COALESCE(error, ''), created_at
		 FROM extraction_runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []internal.ExtractionRun
	for rows.Next() {
		var run internal.ExtractionRun
		if err := rows.Scan(&run.ID, &run.Corpus, &run.SourceLang, &run.TargetLang,
			&run.LinesWritten, &run.Status, &run.Error, &run.Timestamp); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) ClearRuns(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM extraction_runs`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
