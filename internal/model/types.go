// Package model defines shared data structures.
package model

import (
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
)

// SampleSize is the number of words drawn for word-based modes.
const SampleSize = 100

// Mode describes a practice text source.
type Mode struct {
	ID        string
	Name      string
	Source    string
	LineBased bool
}

// Modes lists every practice mode in menu order.
var Modes = []Mode{
	{ID: "easy", Name: "Easy", Source: "easy.txt"},
	{ID: "medium", Name: "Medium", Source: "medium.txt"},
	{ID: "hard", Name: "Hard", Source: "hard.txt"},
	{ID: "numbers", Name: "Numbers", Source: "numbers.txt"},
	{ID: "symbols", Name: "Symbols", Source: "symbols.txt"},
	{ID: "twisters", Name: "Twisters", Source: "twisters.txt", LineBased: true},
	{ID: "quotes", Name: "Quotes", Source: "quotes.txt", LineBased: true},
	{ID: "stories", Name: "Stories", Source: "stories.txt", LineBased: true},
	{ID: "zen", Name: "Zen", Source: "zen.txt", LineBased: true},
	{ID: "code", Name: "Code", Source: "code_words.txt"},
	{ID: "python", Name: "Python", Source: "python.txt", LineBased: true},
	{ID: "terminal", Name: "Terminal", Source: "terminal.txt", LineBased: true},
}

// Durations lists the allowed test lengths in seconds.
var Durations = []int{15, 30, 60, 120}

const (
	DefaultModeID   = "medium"
	DefaultDuration = 30
)

// ModeByID looks a mode up by id, case-insensitively.
func ModeByID(id string) (Mode, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, m := range Modes {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}

// SuggestMode returns the mode id that best fuzzy-matches input.
func SuggestMode(input string) (string, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", false
	}
	ids := make([]string, 0, len(Modes))
	for _, m := range Modes {
		ids = append(ids, m.ID)
	}
	matches := fuzzy.Find(input, ids)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}

// ValidDuration reports whether seconds is one of Durations.
func ValidDuration(seconds int) bool {
	for _, d := range Durations {
		if d == seconds {
			return true
		}
	}
	return false
}

// Config defines practice settings.
type Config struct {
	Mode      Mode
	Duration  int
	AssetsDir string
}

// Result is one finished typing test as handed to the result log.
type Result struct {
	ID              string
	RecordedAt      time.Time
	Mode            string
	DurationSeconds int
	WPM             float64
	Accuracy        float64
	RawWPM          float64
}

// ResultFilter narrows history queries.
type ResultFilter struct {
	Mode  string
	Since *time.Time
	Last  int
}
