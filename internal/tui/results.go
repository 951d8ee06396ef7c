package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/krishnakanthb13/typer-tui/internal/nav"
	"github.com/krishnakanthb13/typer-tui/internal/stats"
)

const (
	restartButton = "restart"
	menuButton    = "menu"
)

var resultsGrid = nav.MustGrid([][]string{{restartButton, menuButton}})

type restartTestMsg struct{}

type resultsModel struct {
	metrics  stats.Metrics
	modeName string
	duration int
	focus    string
	help     help.Model
}

func newResultsModel(metrics stats.Metrics, modeName string, duration int) resultsModel {
	return resultsModel{
		metrics:  metrics,
		modeName: modeName,
		duration: duration,
		focus:    restartButton,
		help:     help.New(),
	}
}

func (m resultsModel) Update(msg tea.KeyMsg) (resultsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, resultsKeys.Move):
		if dir, ok := nav.ParseDirection(msg.String()); ok {
			m.focus = nav.Next(resultsGrid, m.focus, dir)
		}
	case key.Matches(msg, resultsKeys.Select):
		if m.focus == menuButton {
			return m, emit(backToMenuMsg{})
		}
		return m, emit(restartTestMsg{})
	case key.Matches(msg, resultsKeys.Restart):
		return m, emit(restartTestMsg{})
	case key.Matches(msg, resultsKeys.Menu):
		return m, emit(backToMenuMsg{})
	}
	return m, nil
}

func (m resultsModel) View(width, height int) string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		metricCard("WPM", fmt.Sprintf("%.0f", m.metrics.WPM)),
		metricCard("Accuracy", fmt.Sprintf("%.0f%%", m.metrics.Accuracy)),
		metricCard("Raw", fmt.Sprintf("%.0f", m.metrics.RawWPM)),
	)
	restart := buttonStyle
	menu := buttonStyle
	if m.focus == restartButton {
		restart = focusedButtonStyle
	} else {
		menu = focusedButtonStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		restart.Render("Restart (Enter)"),
		menu.Render("Menu (M)"),
	)
	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Test Complete!"),
		infoStyle.Render(fmt.Sprintf("%s · %ds", m.modeName, m.duration)),
		"",
		cards,
		"",
		buttons,
		"",
		m.help.View(resultsKeys),
	)
	return placeCenter(width, height, content)
}

func metricCard(label, value string) string {
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		cardTitleStyle.Render(label),
		cardValueStyle.Render(value),
	))
}
