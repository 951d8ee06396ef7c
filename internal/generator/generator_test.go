package generator

import (
	"fmt"
	"strings"
	"testing"
)

func TestSampleWordsWithoutReplacement(t *testing.T) {
	pool := make([]string, 0, 150)
	for i := 0; i < 150; i++ {
		pool = append(pool, fmt.Sprintf("w%03d", i))
	}
	g := NewSeeded(1)
	words := strings.Fields(g.SampleWords(pool, 100))
	if len(words) != 100 {
		t.Fatalf("expected 100 words, got %d", len(words))
	}
	seen := map[string]struct{}{}
	for _, w := range words {
		if _, ok := seen[w]; ok {
			t.Fatalf("word %q sampled twice", w)
		}
		seen[w] = struct{}{}
	}
}

func TestSampleWordsSmallPoolUsesAll(t *testing.T) {
	g := NewSeeded(2)
	words := strings.Fields(g.SampleWords([]string{"a", "b", "c"}, 100))
	if len(words) != 3 {
		t.Fatalf("expected whole pool, got %v", words)
	}
}

func TestSampleWordsEmpty(t *testing.T) {
	if got := NewSeeded(3).SampleWords(nil, 100); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestPickLine(t *testing.T) {
	g := NewSeeded(4)
	lines := []string{"one", "two", "three"}
	got := g.PickLine(lines)
	if got != "one" && got != "two" && got != "three" {
		t.Fatalf("unexpected line %q", got)
	}
	if g.PickLine(nil) != "" {
		t.Fatalf("expected empty line for empty pool")
	}
}
