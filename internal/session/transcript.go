package session

// Verdict classifies one target position against the transcript.
type Verdict int

const (
	Pending Verdict = iota
	Correct
	Incorrect
	Cursor
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	case Cursor:
		return "cursor"
	default:
		return "pending"
	}
}

// Transcript is the user's input reconciled against a fixed target.
// len(input) never exceeds len(target).
type Transcript struct {
	target []rune
	input  []rune
}

// NewTranscript returns an empty transcript for target.
func NewTranscript(target string) *Transcript {
	return &Transcript{target: []rune(target)}
}

// Target returns the target runes. Callers must not modify the slice.
func (t *Transcript) Target() []rune { return t.target }

// Input returns the typed runes. Callers must not modify the slice.
func (t *Transcript) Input() []rune { return t.input }

// Len is the number of typed runes.
func (t *Transcript) Len() int { return len(t.input) }

// Insert appends r unless the transcript already covers the target.
func (t *Transcript) Insert(r rune) bool {
	if len(t.input) >= len(t.target) {
		return false
	}
	t.input = append(t.input, r)
	return true
}

// DeleteLast removes the last typed rune.
func (t *Transcript) DeleteLast() bool {
	if len(t.input) == 0 {
		return false
	}
	t.input = t.input[:len(t.input)-1]
	return true
}

// DeleteWord removes a trailing space on its own, otherwise truncates to
// just after the last space so repeated calls step back one word at a time.
func (t *Transcript) DeleteWord() bool {
	n := len(t.input)
	if n == 0 {
		return false
	}
	if t.input[n-1] == ' ' {
		t.input = t.input[:n-1]
		return true
	}
	cut := 0
	for i := n - 1; i >= 0; i-- {
		if t.input[i] == ' ' {
			cut = i + 1
			break
		}
	}
	t.input = t.input[:cut]
	return true
}

// Reset clears the input and replaces the target.
func (t *Transcript) Reset(target string) {
	t.target = []rune(target)
	t.input = nil
}

// Complete reports whether the input covers the whole target.
func (t *Transcript) Complete() bool {
	return len(t.input) >= len(t.target)
}

// Counts returns the number of typed runes and how many match the target.
func (t *Transcript) Counts() (typed, correct int) {
	for i, r := range t.input {
		if i < len(t.target) && r == t.target[i] {
			correct++
		}
	}
	return len(t.input), correct
}

// Verdicts classifies every target position.
func (t *Transcript) Verdicts() []Verdict {
	out := make([]Verdict, len(t.target))
	for i, want := range t.target {
		switch {
		case i < len(t.input) && t.input[i] == want:
			out[i] = Correct
		case i < len(t.input):
			out[i] = Incorrect
		case i == len(t.input):
			out[i] = Cursor
		default:
			out[i] = Pending
		}
	}
	return out
}
