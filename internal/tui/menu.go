package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/krishnakanthb13/typer-tui/internal/model"
	"github.com/krishnakanthb13/typer-tui/internal/nav"
)

const (
	modePrefix     = "mode:"
	durationPrefix = "time:"
	historyButton  = "history"
	startButton    = "start"
	modesPerRow    = 3
)

var modeSections = []string{"Difficulty", "Special", "Creative", "Developer"}

// menuLayout builds the focus grid: four rows of modes, the duration row and
// the action row. The duration row is wider than the action row, so both
// transitions between them are mapped explicitly.
func menuLayout() (nav.Grid, error) {
	var rows [][]string
	for i := 0; i < len(model.Modes); i += modesPerRow {
		end := min(i+modesPerRow, len(model.Modes))
		row := make([]string, 0, modesPerRow)
		for _, m := range model.Modes[i:end] {
			row = append(row, modePrefix+m.ID)
		}
		rows = append(rows, row)
	}
	durations := make([]string, 0, len(model.Durations))
	for _, d := range model.Durations {
		durations = append(durations, durationPrefix+strconv.Itoa(d))
	}
	rows = append(rows, durations, []string{historyButton, startButton})

	durRow := len(rows) - 2
	actRow := len(rows) - 1
	return nav.NewGrid(rows,
		nav.Transition{From: durRow, To: actRow, Columns: []int{0, 0, 1, 1}},
		nav.Transition{From: actRow, To: durRow, Columns: []int{0, 3}},
	)
}

type startTestMsg struct {
	mode     model.Mode
	duration int
}

type showHistoryMsg struct{}

type menuModel struct {
	grid     nav.Grid
	focus    string
	mode     model.Mode
	duration int
	help     help.Model
}

func newMenuModel(cfg model.Config) menuModel {
	grid, err := menuLayout()
	if err != nil {
		panic(fmt.Sprintf("invalid menu layout: %v", err))
	}
	return menuModel{
		grid:     grid,
		focus:    startButton,
		mode:     cfg.Mode,
		duration: cfg.Duration,
		help:     help.New(),
	}
}

func (m menuModel) Update(msg tea.KeyMsg) (menuModel, tea.Cmd) {
	if key.Matches(msg, menuKeys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, menuKeys.Move) {
		if dir, ok := nav.ParseDirection(msg.String()); ok {
			m.focus = nav.Next(m.grid, m.focus, dir)
		}
		return m, nil
	}
	if key.Matches(msg, menuKeys.Select) {
		return m.activate()
	}
	return m, nil
}

func (m menuModel) activate() (menuModel, tea.Cmd) {
	switch {
	case m.focus == startButton:
		mode, duration := m.mode, m.duration
		return m, func() tea.Msg { return startTestMsg{mode: mode, duration: duration} }
	case m.focus == historyButton:
		return m, func() tea.Msg { return showHistoryMsg{} }
	case strings.HasPrefix(m.focus, modePrefix):
		if mode, ok := model.ModeByID(strings.TrimPrefix(m.focus, modePrefix)); ok {
			m.mode = mode
		}
	case strings.HasPrefix(m.focus, durationPrefix):
		if d, err := strconv.Atoi(strings.TrimPrefix(m.focus, durationPrefix)); err == nil && model.ValidDuration(d) {
			m.duration = d
		}
	}
	return m, nil
}

func (m menuModel) View(width, height int) string {
	rows := m.grid.Rows()
	sections := []string{titleStyle.Render("Typer TUI")}
	for i, row := range rows {
		switch {
		case i < len(modeSections):
			sections = append(sections, sectionStyle.Render(modeSections[i]+":"))
		case i == len(rows)-2:
			sections = append(sections, sectionStyle.Render("Duration:"))
		default:
			sections = append(sections, "")
		}
		buttons := make([]string, 0, len(row))
		for _, id := range row {
			buttons = append(buttons, m.renderButton(id))
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}
	sections = append(sections, "", m.help.View(menuKeys))
	return placeCenter(width, height, lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (m menuModel) renderButton(id string) string {
	style := buttonStyle
	if m.selected(id) {
		style = selectedButtonStyle
	}
	if id == m.focus {
		style = focusedButtonStyle
	}
	return style.Render(buttonLabel(id))
}

func (m menuModel) selected(id string) bool {
	switch {
	case strings.HasPrefix(id, modePrefix):
		return strings.TrimPrefix(id, modePrefix) == m.mode.ID
	case strings.HasPrefix(id, durationPrefix):
		return strings.TrimPrefix(id, durationPrefix) == strconv.Itoa(m.duration)
	default:
		return false
	}
}

func buttonLabel(id string) string {
	switch {
	case id == startButton:
		return "Start Test"
	case id == historyButton:
		return "View History"
	case strings.HasPrefix(id, modePrefix):
		if mode, ok := model.ModeByID(strings.TrimPrefix(id, modePrefix)); ok {
			return mode.Name
		}
	case strings.HasPrefix(id, durationPrefix):
		return strings.TrimPrefix(id, durationPrefix) + "s"
	}
	return id
}
