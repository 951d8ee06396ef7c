package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/krishnakanthb13/typer-tui/internal/model"
)

// pythonISO is the naive timestamp layout written by older history files.
const pythonISO = "2006-01-02T15:04:05.999999"

type entry struct {
	ID        string  `json:"id,omitempty"`
	Timestamp string  `json:"timestamp"`
	Mode      string  `json:"mode"`
	Duration  int     `json:"duration"`
	WPM       float64 `json:"wpm"`
	Accuracy  float64 `json:"accuracy"`
	RawWPM    float64 `json:"raw_wpm"`
}

// JSONLog stores results as a pretty-printed JSON array.
type JSONLog struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// OpenJSON creates the history file with an empty array if it is missing.
// logger may be nil.
func OpenJSON(path string, logger *slog.Logger) (*JSONLog, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history dir: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat history: %w", err)
		}
		if err := writeEntries(path, []entry{}); err != nil {
			return nil, err
		}
	}
	return &JSONLog{path: path, logger: logger}, nil
}

// Record appends res to the file. An unreadable file is moved aside to
// BackupPath before a fresh history is written.
func (l *JSONLog) Record(_ context.Context, res model.Result) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries, err := readEntries(l.path)
	if err != nil {
		backup := BackupPath(l.path)
		if rerr := os.Rename(l.path, backup); rerr != nil {
			return fmt.Errorf("failed to back up unreadable history: %w", rerr)
		}
		l.logger.Warn("history file unreadable, moved aside", "path", l.path, "backup", backup, "err", err)
		entries = nil
	}
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	entries = append(entries, entry{
		ID:        res.ID,
		Timestamp: res.RecordedAt.Format(time.RFC3339Nano),
		Mode:      res.Mode,
		Duration:  res.DurationSeconds,
		WPM:       res.WPM,
		Accuracy:  res.Accuracy,
		RawWPM:    res.RawWPM,
	})
	return writeEntries(l.path, entries)
}

// ListResults returns matching results oldest first. A missing or corrupt
// file yields no results.
func (l *JSONLog) ListResults(_ context.Context, filter model.ResultFilter) ([]model.Result, error) {
	l.mu.Lock()
	entries, err := readEntries(l.path)
	l.mu.Unlock()
	if err != nil {
		l.logger.Warn("history file unreadable", "path", l.path, "err", err)
	}

	results := make([]model.Result, 0, len(entries))
	for _, e := range entries {
		res := model.Result{
			ID:              e.ID,
			RecordedAt:      parseTimestamp(e.Timestamp),
			Mode:            e.Mode,
			DurationSeconds: e.Duration,
			WPM:             e.WPM,
			Accuracy:        e.Accuracy,
			RawWPM:          e.RawWPM,
		}
		if matches(res, filter) {
			results = append(results, res)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RecordedAt.Before(results[j].RecordedAt)
	})
	return results, nil
}

// Close is a no-op; the file is rewritten on every Record.
func (l *JSONLog) Close() error { return nil }

func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.ParseInLocation(pythonISO, s, time.Local); err == nil {
		return t
	}
	return time.Time{}
}

// BackupPath is where an unreadable history file is moved before rewriting.
func BackupPath(path string) string {
	return path + ".bak"
}

// readEntries returns no entries and no error for a missing file.
func readEntries(path string) ([]entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return entries, nil
}

func writeEntries(path string, entries []entry) error {
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "history-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp history: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close history: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace history: %w", err)
	}
	return nil
}
