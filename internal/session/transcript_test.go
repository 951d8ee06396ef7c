package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeString(tr *Transcript, s string) {
	for _, r := range s {
		tr.Insert(r)
	}
}

func TestInsertClampsToTarget(t *testing.T) {
	tr := NewTranscript("hello")
	typeString(tr, "hello")
	assert.False(t, tr.Insert('!'))
	assert.Equal(t, "hello", string(tr.Input()))
	assert.True(t, tr.Complete())
}

func TestDeleteLast(t *testing.T) {
	tr := NewTranscript("abc")
	assert.False(t, tr.DeleteLast())
	typeString(tr, "ab")
	assert.True(t, tr.DeleteLast())
	assert.Equal(t, "a", string(tr.Input()))
}

func TestDeleteWordSteps(t *testing.T) {
	tr := NewTranscript("type fast now")
	typeString(tr, "type fast ")

	steps := []string{"type fast", "type ", "type", ""}
	for _, want := range steps {
		require.True(t, tr.DeleteWord())
		assert.Equal(t, want, string(tr.Input()))
	}
	assert.False(t, tr.DeleteWord())
}

func TestDeleteWordTable(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", ""},
		{"hello ", "hello"},
		{"hello world", "hello "},
		{"one two three", "one two "},
		{"a b c", "a b "},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tr := NewTranscript("one two three four five")
			typeString(tr, tt.input)
			tr.DeleteWord()
			assert.Equal(t, tt.expected, string(tr.Input()))
		})
	}
}

func TestVerdicts(t *testing.T) {
	tr := NewTranscript("a bc")
	typeString(tr, "ax")
	assert.Equal(t, []Verdict{Correct, Incorrect, Cursor, Pending}, tr.Verdicts())

	typeString(tr, "bc")
	for _, v := range tr.Verdicts() {
		assert.NotEqual(t, Cursor, v, "no cursor once complete")
	}
}

func TestCounts(t *testing.T) {
	tr := NewTranscript("kitten")
	typeString(tr, "sitt")
	typed, correct := tr.Counts()
	assert.Equal(t, 4, typed)
	assert.Equal(t, 3, correct)
}
