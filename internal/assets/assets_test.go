package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/krishnakanthb13/typer-tui/internal/generator"
	"github.com/krishnakanthb13/typer-tui/internal/model"
)

func TestEmbeddedPoolsExistForEveryMode(t *testing.T) {
	lib := NewLibrary("", nil)
	for _, mode := range model.Modes {
		if lib.PoolSize(mode) == 0 {
			t.Fatalf("mode %s has an empty pool", mode.ID)
		}
		if lib.Origin(mode.Source) != "embedded" {
			t.Fatalf("mode %s not embedded", mode.ID)
		}
	}
}

func TestOverrideDirWins(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "easy.txt"), []byte("alpha beta\ngamma\n"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	lib := NewLibrary(dir, nil)
	words := lib.LoadWordPool("easy.txt")
	if strings.Join(words, " ") != "alpha beta gamma" {
		t.Fatalf("unexpected override pool: %v", words)
	}
	if lib.Origin("easy.txt") != filepath.Join(dir, "easy.txt") {
		t.Fatalf("unexpected origin %q", lib.Origin("easy.txt"))
	}
	if len(lib.LoadWordPool("medium.txt")) == 0 {
		t.Fatalf("expected embedded fallback for medium.txt")
	}
}

func TestMissingPoolIsEmpty(t *testing.T) {
	lib := NewLibrary(t.TempDir(), nil)
	if pool := lib.LoadLinePool("nope.txt"); len(pool) != 0 {
		t.Fatalf("expected empty pool, got %v", pool)
	}
	if lib.Origin("nope.txt") != "missing" {
		t.Fatalf("expected missing origin")
	}
}

func TestSamplerWordMode(t *testing.T) {
	lib := NewLibrary("", nil)
	mode, _ := model.ModeByID("medium")
	text := NewSampler(lib, generator.NewSeeded(1), mode).Sample()
	if n := len(strings.Fields(text)); n != model.SampleSize {
		t.Fatalf("expected %d words, got %d", model.SampleSize, n)
	}
}

func TestSamplerLineMode(t *testing.T) {
	lib := NewLibrary("", nil)
	mode, _ := model.ModeByID("zen")
	text := NewSampler(lib, generator.NewSeeded(1), mode).Sample()
	if text == "" || strings.Contains(text, "\n") {
		t.Fatalf("expected one line, got %q", text)
	}
}

func TestSamplerPlaceholders(t *testing.T) {
	lib := NewLibrary("", nil)
	gen := generator.NewSeeded(1)
	words := NewSampler(lib, gen, model.Mode{Source: "absent.txt"}).Sample()
	if words != NoWordsText {
		t.Fatalf("expected %q, got %q", NoWordsText, words)
	}
	lines := NewSampler(lib, gen, model.Mode{Source: "absent.txt", LineBased: true}).Sample()
	if lines != NoLinesText {
		t.Fatalf("expected %q, got %q", NoLinesText, lines)
	}
}
