package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/krishnakanthb13/typer-tui/internal/model"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func defaultConfig() model.Config {
	mode, _ := model.ModeByID(model.DefaultModeID)
	return model.Config{Mode: mode, Duration: model.DefaultDuration}
}

func TestMenuLayoutIsValid(t *testing.T) {
	grid, err := menuLayout()
	if err != nil {
		t.Fatalf("menu layout: %v", err)
	}
	rows := grid.Rows()
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
	if len(rows[4]) != len(model.Durations) {
		t.Fatalf("expected duration row of %d, got %d", len(model.Durations), len(rows[4]))
	}
}

func TestMenuNavigationBetweenDurationAndActions(t *testing.T) {
	m := newMenuModel(defaultConfig())
	steps := []struct {
		key  string
		want string
	}{
		{"up", "time:120"},
		{"left", "time:60"},
		{"down", "start"},
		{"left", "history"},
		{"up", "time:15"},
		{"right", "time:30"},
		{"down", "history"},
		{"k", "time:15"},
		{"k", "mode:code"},
	}
	for i, step := range steps {
		m, _ = m.Update(keyMsg(step.key))
		if m.focus != step.want {
			t.Fatalf("step %d (%s): expected focus %q, got %q", i, step.key, step.want, m.focus)
		}
	}
}

func TestMenuSelectModeAndDuration(t *testing.T) {
	m := newMenuModel(defaultConfig())
	m.focus = "mode:python"
	m, _ = m.Update(keyMsg("enter"))
	m.focus = "time:60"
	m, _ = m.Update(keyMsg("enter"))
	if m.mode.ID != "python" || m.duration != 60 {
		t.Fatalf("expected python/60, got %s/%d", m.mode.ID, m.duration)
	}

	m.focus = startButton
	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected start command")
	}
	msg, ok := cmd().(startTestMsg)
	if !ok {
		t.Fatalf("expected startTestMsg")
	}
	if msg.mode.ID != "python" || msg.duration != 60 {
		t.Fatalf("unexpected start message: %+v", msg)
	}
}

func TestMenuHistoryAndQuit(t *testing.T) {
	m := newMenuModel(defaultConfig())
	m.focus = historyButton
	_, cmd := m.Update(keyMsg("enter"))
	if _, ok := cmd().(showHistoryMsg); !ok {
		t.Fatalf("expected showHistoryMsg")
	}
	_, cmd = m.Update(keyMsg("q"))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit")
	}
}
