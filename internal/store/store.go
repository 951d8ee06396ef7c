// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/krishnakanthb13/typer-tui/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed-width so recorded_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for test results.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			recorded_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			duration_s INTEGER NOT NULL,
			wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			raw_wpm REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_recorded_at ON results(recorded_at);`,
		`CREATE INDEX IF NOT EXISTS idx_results_mode ON results(mode);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record stores one finished test.
func (s *Store) Record(ctx context.Context, res model.Result) error {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (id, recorded_at, mode, duration_s, wpm, accuracy, raw_wpm)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.ID,
		res.RecordedAt.UTC().Format(timeLayout),
		res.Mode,
		res.DurationSeconds,
		res.WPM,
		res.Accuracy,
		res.RawWPM,
	)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

// ListResults returns results matching filter, oldest first.
func (s *Store) ListResults(ctx context.Context, filter model.ResultFilter) ([]model.Result, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Mode != "" {
		clauses = append(clauses, "mode = ? COLLATE NOCASE")
		args = append(args, filter.Mode)
	}
	if filter.Since != nil {
		clauses = append(clauses, "recorded_at >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, recorded_at, mode, duration_s, wpm, accuracy, raw_wpm
		FROM results
		WHERE %s
		ORDER BY recorded_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.Result
	for rows.Next() {
		var res model.Result
		var recordedAt string
		if err := rows.Scan(&res.ID, &recordedAt, &res.Mode, &res.DurationSeconds, &res.WPM, &res.Accuracy, &res.RawWPM); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, recordedAt)
		if err != nil {
			return nil, err
		}
		res.RecordedAt = parsed
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
