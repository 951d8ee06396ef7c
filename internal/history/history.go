// Package history persists finished test results.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/krishnakanthb13/typer-tui/internal/model"
	"github.com/krishnakanthb13/typer-tui/internal/store"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Backend records and lists results.
type Backend interface {
	Record(ctx context.Context, res model.Result) error
	ListResults(ctx context.Context, filter model.ResultFilter) ([]model.Result, error)
	Close() error
}

// Open returns the named backend at path. logger may be nil.
func Open(backend, path string, logger *slog.Logger) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendJSON:
		return OpenJSON(path, logger)
	case BackendSQLite:
		return store.Open(path)
	default:
		return nil, fmt.Errorf("unknown history backend %q (want %s or %s)", backend, BackendJSON, BackendSQLite)
	}
}

// ValidBackend reports whether name is a known backend.
func ValidBackend(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendJSON, BackendSQLite:
		return true
	default:
		return false
	}
}

func matches(res model.Result, filter model.ResultFilter) bool {
	if filter.Mode != "" && !strings.EqualFold(res.Mode, filter.Mode) {
		return false
	}
	if filter.Since != nil && res.RecordedAt.Before(*filter.Since) {
		return false
	}
	return true
}
