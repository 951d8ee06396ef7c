// Package session implements the typing test state machine: transcript
// reconciliation, the countdown tick and result reporting.
package session

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/krishnakanthb13/typer-tui/internal/model"
	"github.com/krishnakanthb13/typer-tui/internal/stats"
)

// FallbackText is shown when the text source yields nothing.
const FallbackText = "Error loading content."

// State is the lifecycle stage of a test.
type State int

const (
	Idle State = iota
	Running
	Finished
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "idle"
	}
}

// KeyKind enumerates the keys the session reacts to.
type KeyKind int

const (
	KeyOther KeyKind = iota
	KeyRune
	KeySpace
	KeyBackspace
	KeyDeleteWord
	KeyRestart
	KeyEscape
)

// Key is a single keyboard event. Rune is set for KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Outcome tells the caller what a key or tick did.
type Outcome int

const (
	Ignored Outcome = iota
	Changed
	Started
	Completed
	Restarted
	Exit
)

// TextSource produces target text for a new test.
type TextSource interface {
	Sample() string
}

// ResultLog receives one record per finished test.
type ResultLog interface {
	Record(ctx context.Context, res model.Result) error
}

// Options configures a Session.
type Options struct {
	Mode     model.Mode
	Duration time.Duration
	Source   TextSource
	Log      ResultLog
	Timers   TimerFactory
	Now      func() time.Time
	Logger   *slog.Logger
}

// Session owns one typing test. Its methods are not safe for concurrent use;
// keys and ticks must be delivered from a single event loop.
type Session struct {
	opts Options

	transcript *Transcript
	state      State
	startedAt  time.Time
	finishedAt time.Time
	final      stats.Metrics

	timer Timer
	gen   uint64
}

// New builds an idle session with freshly sampled target text.
func New(opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{opts: opts, transcript: NewTranscript("")}
	s.reset()
	return s
}

// State returns the lifecycle stage.
func (s *Session) State() State { return s.state }

// Mode returns the configured mode.
func (s *Session) Mode() model.Mode { return s.opts.Mode }

// Duration returns the configured countdown length.
func (s *Session) Duration() time.Duration { return s.opts.Duration }

// Target returns the target text.
func (s *Session) Target() string { return string(s.transcript.Target()) }

// Input returns the typed text.
func (s *Session) Input() string { return string(s.transcript.Input()) }

// Transcript exposes the transcript for rendering.
func (s *Session) Transcript() *Transcript { return s.transcript }

// Verdicts classifies every target position.
func (s *Session) Verdicts() []Verdict { return s.transcript.Verdicts() }

// Generation identifies the currently armed timer.
func (s *Session) Generation() uint64 { return s.gen }

// StartedAt is zero until the first keystroke.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Remaining returns the time left on the countdown.
func (s *Session) Remaining() time.Duration {
	switch s.state {
	case Running:
		return max(0, s.opts.Duration-s.opts.Now().Sub(s.startedAt))
	case Finished:
		return max(0, s.opts.Duration-s.finishedAt.Sub(s.startedAt))
	default:
		return s.opts.Duration
	}
}

// Live computes metrics for the test so far. Finished tests return the final
// metrics.
func (s *Session) Live() stats.Metrics {
	switch s.state {
	case Running:
		return s.metricsAt(s.opts.Now())
	case Finished:
		return s.final
	default:
		return stats.Metrics{}
	}
}

// Final returns the rounded metrics recorded at finish.
func (s *Session) Final() stats.Metrics { return s.final }

// Start begins the countdown. Only valid while idle.
func (s *Session) Start() bool {
	if s.state != Idle {
		return false
	}
	s.startedAt = s.opts.Now()
	s.state = Running
	s.arm()
	s.opts.Logger.Debug("test started", "mode", s.opts.Mode.ID, "duration", s.opts.Duration)
	return true
}

// HandleKey applies one key event.
func (s *Session) HandleKey(k Key) Outcome {
	switch k.Kind {
	case KeyRestart:
		s.Restart()
		return Restarted
	case KeyEscape:
		s.Close()
		return Exit
	}
	if s.state == Finished {
		return Ignored
	}

	started := false
	switch k.Kind {
	case KeyRune, KeySpace:
		r := k.Rune
		if k.Kind == KeySpace {
			r = ' '
		}
		if s.state == Idle {
			started = s.Start()
		}
		if !s.transcript.Insert(r) {
			return outcome(started, false)
		}
		if s.transcript.Complete() {
			s.Finish()
			return Completed
		}
		return outcome(started, true)
	case KeyBackspace:
		return outcome(false, s.transcript.DeleteLast())
	case KeyDeleteWord:
		return outcome(false, s.transcript.DeleteWord())
	default:
		return Ignored
	}
}

func outcome(started, changed bool) Outcome {
	switch {
	case started:
		return Started
	case changed:
		return Changed
	default:
		return Ignored
	}
}

// Tick handles a timer tick tagged with gen. Ticks from a cancelled or
// replaced timer are ignored.
func (s *Session) Tick(gen uint64) Outcome {
	if s.state != Running || s.timer == nil || gen != s.gen {
		return Ignored
	}
	if s.Remaining() <= 0 {
		s.Finish()
		return Completed
	}
	return Changed
}

// Finish ends a running test and records its result. Repeated calls are
// no-ops.
func (s *Session) Finish() bool {
	if s.state != Running {
		return false
	}
	s.cancel()
	s.finishedAt = s.opts.Now()
	s.state = Finished
	s.final = s.metricsAt(s.finishedAt).Rounded()
	s.record()
	return true
}

// Restart stops any timer, samples new text and returns to idle.
func (s *Session) Restart() {
	s.cancel()
	s.reset()
}

// Close stops any active timer. The session should be discarded afterwards.
func (s *Session) Close() {
	s.cancel()
}

func (s *Session) reset() {
	text := ""
	if s.opts.Source != nil {
		text = s.opts.Source.Sample()
	}
	if text == "" {
		text = FallbackText
	}
	s.transcript.Reset(text)
	s.state = Idle
	s.startedAt = time.Time{}
	s.finishedAt = time.Time{}
	s.final = stats.Metrics{}
}

func (s *Session) metricsAt(now time.Time) stats.Metrics {
	elapsed := now.Sub(s.startedAt)
	if elapsed > s.opts.Duration {
		elapsed = s.opts.Duration
	}
	typed, correct := s.transcript.Counts()
	return stats.Compute(s.startedAt, elapsed.Seconds(), typed, correct)
}

func (s *Session) arm() {
	s.gen++
	if s.opts.Timers == nil {
		return
	}
	s.timer = s.opts.Timers(TickPeriod, s.gen)
}

func (s *Session) cancel() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

func (s *Session) record() {
	if s.opts.Log == nil {
		return
	}
	res := model.Result{
		ID:              uuid.NewString(),
		RecordedAt:      s.finishedAt,
		Mode:            s.opts.Mode.Name,
		DurationSeconds: int(s.opts.Duration / time.Second),
		WPM:             s.final.WPM,
		Accuracy:        s.final.Accuracy,
		RawWPM:          s.final.RawWPM,
	}
	if err := s.opts.Log.Record(context.Background(), res); err != nil {
		s.opts.Logger.Warn("failed to record result", "mode", res.Mode, "err", err)
		return
	}
	s.opts.Logger.Info("test finished", "mode", res.Mode, "wpm", res.WPM, "accuracy", res.Accuracy, "raw_wpm", res.RawWPM)
}
