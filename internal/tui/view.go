package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daycheck/internal/tui/components/report"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateStats:
		content = m.viewStats()
	case StateQuestions:
		content = docStyle.Render(m.questionModel.View())
	case StateAnswering:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	current := m.state
	if current == StateAnswering {
		current = m.previousState
	}
	tabs := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		if current == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.errMsg != "" {
		return dangerStyle.Render("Error: " + m.errMsg)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewToday() string {
	answered, total := m.todayModel.Answered()
	header := fmt.Sprintf("%s · %d of %d answered", m.summary.Today, answered, total)
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.todayModel.View()))
}

func (m Model) chartWidth() int {
	if m.width <= 0 {
		return report.DefaultWidth
	}
	// leave room for padding and the selection border
	if w := m.width - 10; w > 10 {
		return w
	}
	return 10
}

func (m Model) viewStats() string {
	parts := []string{report.Summary(m.summary), ""}
	if len(m.summary.Questions) == 0 {
		parts = append(parts, "No active questions to chart.")
		return docStyle.Render(strings.Join(parts, "\n"))
	}

	for i, r := range m.summary.Questions {
		block := report.Question(r, m.chartWidth())
		if i == m.selected {
			block = selectedStyle.Render(block)
		} else {
			block = lipgloss.NewStyle().Padding(0, 2).Render(block)
		}
		parts = append(parts, block)
	}
	return docStyle.Render(strings.Join(parts, "\n"))
}
