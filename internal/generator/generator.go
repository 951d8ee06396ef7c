// Package generator builds typing text from word and line pools.
package generator

import (
	"math/rand"
	"strings"
	"time"
)

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// SampleWords draws count words without replacement and joins them with
// single spaces. A pool smaller than count is used whole, shuffled.
func (g *Generator) SampleWords(words []string, count int) string {
	if len(words) == 0 || count <= 0 {
		return ""
	}
	n := min(count, len(words))
	picked := make([]string, 0, n)
	for _, idx := range g.rnd.Perm(len(words))[:n] {
		picked = append(picked, words[idx])
	}
	return strings.Join(picked, " ")
}

// PickLine returns one random line.
func (g *Generator) PickLine(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[g.rnd.Intn(len(lines))])
}
