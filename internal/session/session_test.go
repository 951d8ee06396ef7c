package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnakanthb13/typer-tui/internal/model"
)

type fixedSource struct {
	texts []string
	calls int
}

func (f *fixedSource) Sample() string {
	text := f.texts[f.calls%len(f.texts)]
	f.calls++
	return text
}

type memoryLog struct {
	results []model.Result
	err     error
}

func (m *memoryLog) Record(_ context.Context, res model.Result) error {
	m.results = append(m.results, res)
	return m.err
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeTimer struct{ stopped bool }

func (f *fakeTimer) Stop() { f.stopped = true }

type fakeTimers struct{ armed []*fakeTimer }

func (f *fakeTimers) Factory(_ time.Duration, _ uint64) Timer {
	t := &fakeTimer{}
	f.armed = append(f.armed, t)
	return t
}

type harness struct {
	s      *Session
	log    *memoryLog
	clock  *fakeClock
	timers *fakeTimers
	src    *fixedSource
}

func newHarness(t *testing.T, duration time.Duration, texts ...string) *harness {
	t.Helper()
	h := &harness{
		log:    &memoryLog{},
		clock:  &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		timers: &fakeTimers{},
		src:    &fixedSource{texts: texts},
	}
	h.s = New(Options{
		Mode:     model.Mode{ID: "easy", Name: "Easy"},
		Duration: duration,
		Source:   h.src,
		Log:      h.log,
		Timers:   h.timers.Factory,
		Now:      h.clock.Now,
	})
	return h
}

func (h *harness) typeText(text string) Outcome {
	var out Outcome
	for _, r := range text {
		if r == ' ' {
			out = h.s.HandleKey(Key{Kind: KeySpace})
			continue
		}
		out = h.s.HandleKey(Key{Kind: KeyRune, Rune: r})
	}
	return out
}

func TestNewSessionIsIdle(t *testing.T) {
	h := newHarness(t, 30*time.Second, "cat")
	assert.Equal(t, Idle, h.s.State())
	assert.Equal(t, "cat", h.s.Target())
	assert.True(t, h.s.StartedAt().IsZero())
	assert.Empty(t, h.timers.armed)
	assert.Equal(t, 30*time.Second, h.s.Remaining())
}

func TestFirstKeystrokeStarts(t *testing.T) {
	h := newHarness(t, 30*time.Second, "cat")
	assert.Equal(t, Started, h.s.HandleKey(Key{Kind: KeyRune, Rune: 'c'}))
	assert.Equal(t, Running, h.s.State())
	assert.Equal(t, h.clock.now, h.s.StartedAt())
	require.Len(t, h.timers.armed, 1)
}

func TestBackspaceWhileIdleDoesNotStart(t *testing.T) {
	h := newHarness(t, 30*time.Second, "cat")
	assert.Equal(t, Ignored, h.s.HandleKey(Key{Kind: KeyBackspace}))
	assert.Equal(t, Ignored, h.s.HandleKey(Key{Kind: KeyDeleteWord}))
	assert.Equal(t, Idle, h.s.State())
}

func TestCompletionFinishes(t *testing.T) {
	h := newHarness(t, 30*time.Second, "cat")
	h.s.HandleKey(Key{Kind: KeyRune, Rune: 'c'})
	h.clock.Advance(6 * time.Second)
	assert.Equal(t, Changed, h.s.HandleKey(Key{Kind: KeyRune, Rune: 'a'}))
	assert.Equal(t, Running, h.s.State())
	assert.Equal(t, Completed, h.s.HandleKey(Key{Kind: KeyRune, Rune: 't'}))
	assert.Equal(t, Finished, h.s.State())

	require.Len(t, h.log.results, 1)
	res := h.log.results[0]
	assert.Equal(t, "Easy", res.Mode)
	assert.Equal(t, 30, res.DurationSeconds)
	assert.Equal(t, 100.0, res.Accuracy)
	assert.Equal(t, 6.0, res.WPM) // 3 chars / 5 over 0.1 minutes
	assert.Equal(t, res.WPM, res.RawWPM)
	assert.NotEmpty(t, res.ID)
	assert.True(t, h.timers.armed[0].stopped)
}

func TestDeadlineFinishesPartialTranscript(t *testing.T) {
	h := newHarness(t, 15*time.Second, "the quick brown fox")
	h.typeText("thx")
	gen := h.s.Generation()

	h.clock.Advance(10 * time.Second)
	assert.Equal(t, Changed, h.s.Tick(gen))
	assert.Equal(t, Running, h.s.State())

	h.clock.Advance(5 * time.Second)
	assert.Equal(t, Completed, h.s.Tick(gen))
	assert.Equal(t, Finished, h.s.State())
	assert.Equal(t, time.Duration(0), h.s.Remaining())

	require.Len(t, h.log.results, 1)
	final := h.s.Final()
	assert.Equal(t, 66.67, final.Accuracy)
	assert.Equal(t, 2.4, final.RawWPM) // 3 chars / 5 over 0.25 minutes
	assert.Equal(t, 1.6, final.WPM)
	assert.LessOrEqual(t, final.WPM, final.RawWPM)
}

func TestFinishIsIdempotent(t *testing.T) {
	h := newHarness(t, 15*time.Second, "abc")
	h.typeText("ab")
	assert.True(t, h.s.Finish())
	assert.False(t, h.s.Finish())
	h.clock.Advance(time.Minute)
	assert.Equal(t, Ignored, h.s.Tick(h.s.Generation()))
	assert.Len(t, h.log.results, 1)
}

func TestFinishFromIdleIsNoop(t *testing.T) {
	h := newHarness(t, 15*time.Second, "abc")
	assert.False(t, h.s.Finish())
	assert.Empty(t, h.log.results)
}

func TestFinishedIgnoresEdits(t *testing.T) {
	h := newHarness(t, 15*time.Second, "ab")
	h.typeText("ab")
	require.Equal(t, Finished, h.s.State())
	assert.Equal(t, Ignored, h.s.HandleKey(Key{Kind: KeyBackspace}))
	assert.Equal(t, Ignored, h.s.HandleKey(Key{Kind: KeyRune, Rune: 'x'}))
	assert.Equal(t, "ab", h.s.Input())
}

func TestRestartResetsAndCancelsTick(t *testing.T) {
	h := newHarness(t, 30*time.Second, "first text", "second text")
	h.typeText("fir")
	staleGen := h.s.Generation()

	assert.Equal(t, Restarted, h.s.HandleKey(Key{Kind: KeyRestart}))
	assert.Equal(t, Idle, h.s.State())
	assert.Equal(t, "", h.s.Input())
	assert.Equal(t, "second text", h.s.Target())
	assert.True(t, h.timers.armed[0].stopped)

	h.clock.Advance(time.Minute)
	assert.Equal(t, Ignored, h.s.Tick(staleGen))
	assert.Equal(t, Idle, h.s.State())
	assert.Equal(t, 0.0, h.s.Live().WPM)
	assert.Empty(t, h.log.results)
}

func TestRestartAfterFinish(t *testing.T) {
	h := newHarness(t, 30*time.Second, "ab")
	h.typeText("ab")
	h.s.Restart()
	assert.Equal(t, Idle, h.s.State())
	assert.Equal(t, "", h.s.Input())
	h.s.Restart()
	assert.Equal(t, Idle, h.s.State())
}

func TestStaleTickFromOldTimerIgnored(t *testing.T) {
	h := newHarness(t, 15*time.Second, "abcdef")
	h.typeText("a")
	old := h.s.Generation()
	h.s.Restart()
	h.typeText("a")
	require.NotEqual(t, old, h.s.Generation())

	h.clock.Advance(20 * time.Second)
	assert.Equal(t, Ignored, h.s.Tick(old))
	assert.Equal(t, Running, h.s.State())
	assert.Equal(t, Completed, h.s.Tick(h.s.Generation()))
}

func TestEscapeStopsTimer(t *testing.T) {
	h := newHarness(t, 15*time.Second, "abc")
	h.typeText("a")
	assert.Equal(t, Exit, h.s.HandleKey(Key{Kind: KeyEscape}))
	assert.True(t, h.timers.armed[0].stopped)
	assert.Empty(t, h.log.results)
}

func TestOtherKeysIgnored(t *testing.T) {
	h := newHarness(t, 15*time.Second, "abc")
	assert.Equal(t, Ignored, h.s.HandleKey(Key{Kind: KeyOther}))
	assert.Equal(t, Idle, h.s.State())
}

func TestInsertPastTargetIsNoop(t *testing.T) {
	h := newHarness(t, 15*time.Second, "hello world")
	h.typeText("hello")
	assert.Equal(t, "hello", h.s.Input())
	h.typeText(" world")
	assert.Equal(t, Finished, h.s.State())
	assert.Equal(t, Ignored, h.s.HandleKey(Key{Kind: KeyRune, Rune: '!'}))
	assert.Equal(t, "hello world", h.s.Input())
}

func TestEmptySourceFallsBack(t *testing.T) {
	h := newHarness(t, 15*time.Second, "")
	assert.Equal(t, FallbackText, h.s.Target())
}

func TestRecordErrorDoesNotBreakFinish(t *testing.T) {
	h := newHarness(t, 15*time.Second, "a")
	h.log.err = errors.New("disk full")
	assert.Equal(t, Completed, h.typeText("a"))
	assert.Equal(t, Finished, h.s.State())
}
