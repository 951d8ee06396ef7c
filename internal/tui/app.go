package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/krishnakanthb13/typer-tui/internal/assets"
	"github.com/krishnakanthb13/typer-tui/internal/generator"
	"github.com/krishnakanthb13/typer-tui/internal/logging"
	"github.com/krishnakanthb13/typer-tui/internal/model"
	"github.com/krishnakanthb13/typer-tui/internal/session"
	"github.com/krishnakanthb13/typer-tui/internal/stats"
	"github.com/krishnakanthb13/typer-tui/internal/statsui"
)

// ResultStore records finished tests and lists past ones.
type ResultStore interface {
	session.ResultLog
	stats.ResultLister
}

// Deps wires the App to its collaborators.
type Deps struct {
	Config    model.Config
	Library   *assets.Library
	Generator *generator.Generator
	Results   ResultStore
	Logger    *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// Timers defaults to interval timers that feed the event loop.
	Timers session.TimerFactory
}

type screen int

const (
	screenMenu screen = iota
	screenTyping
	screenResults
	screenHistory
)

// App is the root Bubble Tea model. It switches between the menu, typing,
// results and history screens.
type App struct {
	deps   Deps
	screen screen

	width  int
	height int

	menu    menuModel
	typing  typingModel
	results resultsModel
	history *statsui.Model
	session *session.Session

	// ticks is buffered so a timer never blocks on the event loop.
	ticks chan tickMsg
}

// NewApp constructs the root model on the menu screen.
func NewApp(deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Generator == nil {
		deps.Generator = generator.New()
	}
	a := &App{
		deps:  deps,
		menu:  newMenuModel(deps.Config),
		ticks: make(chan tickMsg, 1),
	}
	if a.deps.Timers == nil {
		a.deps.Timers = a.intervalTimer
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return waitForTick(a.ticks)
}

// Close stops any running test timer.
func (a *App) Close() {
	if a.session != nil {
		a.session.Close()
	}
}

func (a *App) intervalTimer(period time.Duration, gen uint64) session.Timer {
	return session.NewIntervalTimer(period, func() {
		select {
		case a.ticks <- tickMsg{gen: gen}:
		default:
		}
	})
}

func waitForTick(ticks <-chan tickMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ticks
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.history != nil {
			a.history.SetSize(msg.Width, msg.Height)
		}
		return a, nil
	case tickMsg:
		var cmd tea.Cmd
		if a.screen == screenTyping {
			a.typing, cmd = a.typing.Update(msg)
		}
		return a, tea.Batch(cmd, waitForTick(a.ticks))
	case startTestMsg:
		a.startTest(msg.mode, msg.duration)
		return a, nil
	case testFinishedMsg:
		a.showResults()
		return a, nil
	case restartTestMsg:
		if a.session != nil {
			a.session.Restart()
			a.typing = newTypingModel(a.session, a.loadFooter())
			a.screen = screenTyping
		}
		return a, nil
	case backToMenuMsg, statsui.CloseMsg:
		a.Close()
		a.history = nil
		a.screen = screenMenu
		return a, nil
	case showHistoryMsg:
		if a.deps.Results == nil {
			return a, nil
		}
		a.history = statsui.New(a.deps.Results, statsui.Options{})
		a.history.SetSize(a.width, a.height)
		a.screen = screenHistory
		return a, nil
	case tea.KeyMsg:
		if key.Matches(msg, quitKey) {
			a.Close()
			return a, tea.Quit
		}
		return a.updateScreen(msg)
	}
	return a, nil
}

func (a *App) updateScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case screenMenu:
		a.menu, cmd = a.menu.Update(msg)
	case screenTyping:
		a.typing, cmd = a.typing.Update(msg)
	case screenResults:
		a.results, cmd = a.results.Update(msg)
	case screenHistory:
		_, cmd = a.history.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	switch a.screen {
	case screenTyping:
		return a.typing.View(a.width, a.height)
	case screenResults:
		return a.results.View(a.width, a.height)
	case screenHistory:
		return a.history.View()
	default:
		return a.menu.View(a.width, a.height)
	}
}

func (a *App) startTest(mode model.Mode, duration int) {
	a.Close()
	a.deps.Config.Mode = mode
	a.deps.Config.Duration = duration
	a.session = session.New(session.Options{
		Mode:     mode,
		Duration: time.Duration(duration) * time.Second,
		Source:   assets.NewSampler(a.deps.Library, a.deps.Generator, mode),
		Log:      a.deps.Results,
		Timers:   a.deps.Timers,
		Now:      a.deps.Now,
		Logger:   a.deps.Logger,
	})
	a.typing = newTypingModel(a.session, a.loadFooter())
	a.screen = screenTyping
}

func (a *App) showResults() {
	if a.session == nil {
		return
	}
	a.results = newResultsModel(a.session.Final(), a.session.Mode().Name, int(a.session.Duration()/time.Second))
	a.screen = screenResults
}

func (a *App) loadFooter() footerStats {
	if a.deps.Results == nil {
		return footerStats{}
	}
	results, err := a.deps.Results.ListResults(context.Background(), model.ResultFilter{})
	if err != nil {
		a.deps.Logger.Warn("failed to load history for footer", "err", err)
		return footerStats{}
	}
	if len(results) == 0 {
		return footerStats{}
	}
	last := results[len(results)-1]
	return footerFromSummary(
		stats.Metrics{WPM: last.WPM, Accuracy: last.Accuracy, RawWPM: last.RawWPM},
		stats.Summarize(results),
	)
}
