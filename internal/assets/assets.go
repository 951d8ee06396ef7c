// Package assets resolves practice text pools and samples target text.
package assets

import (
	"bytes"
	"embed"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/krishnakanthb13/typer-tui/internal/generator"
	"github.com/krishnakanthb13/typer-tui/internal/model"
	"github.com/krishnakanthb13/typer-tui/internal/wordlist"
)

// Placeholder texts used when a pool is empty.
const (
	NoWordsText = "Error loading words."
	NoLinesText = "Error loading content."
)

//go:embed data/*.txt
var embedded embed.FS

// Library loads pools from an override directory, falling back to the
// files bundled with the binary. Load failures yield empty pools.
type Library struct {
	dir    string
	logger *slog.Logger
}

// NewLibrary returns a Library. dir may be empty.
func NewLibrary(dir string, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Library{dir: dir, logger: logger}
}

// LoadWordPool returns every word in the named pool.
func (l *Library) LoadWordPool(name string) []string {
	return l.load(name, wordlist.LoadWords, wordlist.ParseWords)
}

// LoadLinePool returns every non-blank line in the named pool.
func (l *Library) LoadLinePool(name string) []string {
	return l.load(name, wordlist.LoadLines, wordlist.ParseLines)
}

// Origin reports where the named pool would be read from.
func (l *Library) Origin(name string) string {
	if p, ok := l.override(name); ok {
		return p
	}
	if _, err := fs.Stat(embedded, path.Join("data", name)); err == nil {
		return "embedded"
	}
	return "missing"
}

// PoolSize returns the number of words or lines for mode.
func (l *Library) PoolSize(mode model.Mode) int {
	if mode.LineBased {
		return len(l.LoadLinePool(mode.Source))
	}
	return len(l.LoadWordPool(mode.Source))
}

func (l *Library) load(name string, fromFile func(string) ([]string, error), parse func(io.Reader) ([]string, error)) []string {
	if p, ok := l.override(name); ok {
		pool, err := fromFile(p)
		if err == nil {
			return pool
		}
		l.logger.Warn("failed to load pool override", "path", p, "err", err)
	}
	data, err := embedded.ReadFile(path.Join("data", name))
	if err != nil {
		l.logger.Warn("pool not found", "name", name, "err", err)
		return nil
	}
	pool, err := parse(bytes.NewReader(data))
	if err != nil {
		l.logger.Warn("failed to parse pool", "name", name, "err", err)
		return nil
	}
	return pool
}

func (l *Library) override(name string) (string, bool) {
	if l.dir == "" {
		return "", false
	}
	p := filepath.Join(l.dir, name)
	if _, err := os.Stat(p); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("failed to stat pool override", "path", p, "err", err)
		}
		return "", false
	}
	return p, true
}

// Sampler draws target text for one mode.
type Sampler struct {
	lib  *Library
	gen  *generator.Generator
	mode model.Mode
}

// NewSampler returns a Sampler for mode.
func NewSampler(lib *Library, gen *generator.Generator, mode model.Mode) *Sampler {
	return &Sampler{lib: lib, gen: gen, mode: mode}
}

// Sample returns fresh target text, or a placeholder when the pool is empty.
func (s *Sampler) Sample() string {
	if s.mode.LineBased {
		line := s.gen.PickLine(s.lib.LoadLinePool(s.mode.Source))
		if line == "" {
			return NoLinesText
		}
		return line
	}
	text := s.gen.SampleWords(s.lib.LoadWordPool(s.mode.Source), model.SampleSize)
	if text == "" {
		return NoWordsText
	}
	return text
}
