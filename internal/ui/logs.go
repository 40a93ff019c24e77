package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/leadflow/internal/activity"
)

func severityIcon(s activity.Severity) string {
	switch s {
	case activity.SeveritySuccess:
		return "✓"
	case activity.SeverityWarning:
		return "⚠"
	case activity.SeverityError:
		return "✗"
	default:
		return "ℹ"
	}
}

func (m Model) renderLogs(width, height int) string {
	title := fmt.Sprintf("Activity (%d)", len(m.entries))
	return m.renderBox(title, m.logViewport.View(), width, height, m.focus == focusLogs)
}

// refreshLogs re-renders the activity viewport, newest entry on top.
func (m *Model) refreshLogs() {
	if m.logViewport.Width <= 0 {
		return
	}
	m.logViewport.SetContent(m.logContent(m.logViewport.Width))
}

func (m Model) logContent(width int) string {
	bg := NewBgStyle(m.theme.PaneBg(m.focus == focusLogs))
	styles := m.theme.Styles()

	if len(m.entries) == 0 {
		return bg.FillLine(bg.Render("No activity yet", styles.MutedText), width)
	}

	now := m.now()
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		color := m.theme.SeverityColor(e.Severity)
		sevStyle := styles.Text.Foreground(lipgloss.Color(color))
		line := bg.Render(severityIcon(e.Severity), sevStyle) + bg.Space() +
			styles.Badge(color).Render(fit(strings.ToUpper(string(e.Severity)), 7)) + bg.Space() +
			bg.Render(formatLogTime(e.Timestamp, now), styles.FaintText) + bg.Spaces(2) +
			bg.Render(oneLine(e.Message), styles.Text)
		lines = append(lines, bg.FillLine(line, width))
	}
	return strings.Join(lines, "\n")
}
