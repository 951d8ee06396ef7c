package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/krishnakanthb13/typer-tui/internal/session"
	"github.com/krishnakanthb13/typer-tui/internal/stats"
)

type testFinishedMsg struct{}

type backToMenuMsg struct{}

// tickMsg is delivered by a session's interval timer.
type tickMsg struct {
	gen uint64
}

// footerStats summarizes past results for the typing footer.
type footerStats struct {
	hasLast bool
	lastWPM float64
	lastAcc float64
	allWPM  float64
	allAcc  float64
}

type typingModel struct {
	session *session.Session
	footer  footerStats
	help    help.Model
}

func newTypingModel(s *session.Session, footer footerStats) typingModel {
	return typingModel{session: s, footer: footer, help: help.New()}
}

func (m typingModel) Update(msg tea.Msg) (typingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.session.Tick(msg.gen) == session.Completed {
			return m, emit(testFinishedMsg{})
		}
		return m, nil
	case tea.KeyMsg:
		for _, k := range sessionKeys(msg) {
			switch m.session.HandleKey(k) {
			case session.Completed:
				return m, emit(testFinishedMsg{})
			case session.Exit:
				return m, emit(backToMenuMsg{})
			}
		}
	}
	return m, nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m typingModel) View(width, height int) string {
	s := m.session
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		infoStyle.Render("Mode: "+s.Mode().Name),
		"    ",
		m.renderStats(),
	)

	styled := buildStyledRunes(s.Transcript().Target(), s.Verdicts())
	text := renderStyledRunes(styled)
	if width > 0 {
		contentWidth := max(1, int(float64(width)*0.70))
		text = lipgloss.NewStyle().Width(contentWidth).Render(wrapStyledRunes(styled, contentWidth))
	}

	instruction := "Start typing to begin..."
	if s.State() != session.Idle {
		instruction = "Go!"
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		header,
		"",
		text,
		"",
		footerStyle.Render(instruction),
		"",
		m.help.View(typingKeys),
	)
	footer := m.renderFooter()
	if width == 0 || height < 3 || footer == "" {
		return placeCenter(width, height, body)
	}
	return lipgloss.Place(width, height-1, lipgloss.Center, lipgloss.Center, body) + "\n" +
		lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Center, footer)
}

func (m typingModel) renderStats() string {
	live := m.session.Live()
	remaining := int(math.Ceil(m.session.Remaining().Seconds()))
	return infoStyle.Render(fmt.Sprintf("WPM: %.0f | Time: %ds", live.WPM, remaining))
}

func (m typingModel) renderFooter() string {
	target := len(m.session.Transcript().Target())
	if target == 0 {
		return ""
	}
	progress := int(float64(m.session.Transcript().Len()) / float64(target) * 100)
	segments := []string{fmt.Sprintf("Progress %d%%", progress)}
	if m.footer.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.footer.lastWPM, m.footer.lastAcc))
		segments = append(segments, fmt.Sprintf("All-time %.1f WPM · %.1f%%", m.footer.allWPM, m.footer.allAcc))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func footerFromSummary(last stats.Metrics, summary stats.Summary) footerStats {
	if summary.Count == 0 {
		return footerStats{}
	}
	return footerStats{
		hasLast: true,
		lastWPM: last.WPM,
		lastAcc: last.Accuracy,
		allWPM:  summary.AvgWPM,
		allAcc:  summary.AvgAccuracy,
	}
}
