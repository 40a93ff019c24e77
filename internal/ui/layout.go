package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the table and detail pane
	// share one slot instead of sitting side by side.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width to show the endpoint in the header.
	LayoutWideWidth = 120
)

// DefaultUIInterval is how often the dashboard re-reads state and refreshes
// relative timestamps.
const DefaultUIInterval = time.Second

const (
	headerHeight  = 1
	searchHeight  = 3
	footerHeight  = 1
	minLogHeight  = 6
	minTopHeight  = 6
	statusColumns = 17
)

type geometry struct {
	tableWidth  int
	detailWidth int
	topHeight   int
	logHeight   int
	stacked     bool
}

func (m Model) geometry() geometry {
	avail := m.height - headerHeight - searchHeight - footerHeight
	logH := max(minLogHeight, avail/3)
	topH := max(minTopHeight, avail-logH)

	g := geometry{topHeight: topH, logHeight: logH}
	if m.width < LayoutCompactWidth {
		g.stacked = true
		g.tableWidth = m.width
		g.detailWidth = m.width
		return g
	}
	g.tableWidth = m.width * 3 / 5
	g.detailWidth = m.width - g.tableWidth
	return g
}

// resize applies the current geometry to widgets that track their own size.
func (m *Model) resize() {
	g := m.geometry()

	m.detailViewport.Width = max(1, g.detailWidth-2)
	m.detailViewport.Height = max(1, g.topHeight-2)
	m.logViewport.Width = max(1, m.width-2)
	m.logViewport.Height = max(1, g.logHeight-2)

	// "Query " + "  Limit " + limit field + button
	m.query.Width = max(10, m.width-2-6-8-6-16)
	m.limit.Width = 4

	m.refreshDetail()
	m.refreshLogs()
}

// renderBox draws a rounded border with the title set into the top edge.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	if width < 4 || height < 3 {
		return ""
	}
	borderColor := m.theme.Border
	if focused {
		borderColor = m.theme.BorderFocus
	}
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	inner := width - 2

	label := ""
	if title != "" {
		label = " " + truncate(title, max(1, inner-4)) + " "
	}
	fill := max(0, inner-1-lipgloss.Width(label))
	titleStyle := m.theme.Styles().MutedText.Bold(true)
	if focused {
		titleStyle = m.theme.Styles().AccentText.Bold(true)
	}
	top := edge.Render(border.TopLeft+border.Top) +
		titleStyle.Render(label) +
		edge.Render(strings.Repeat(border.Top, fill)+border.TopRight)

	body := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(lipgloss.Color(borderColor)).
		Background(lipgloss.Color(m.theme.PaneBg(focused))).
		Width(inner).
		Height(height - 2).
		MaxHeight(height - 1).
		Render(content)

	return top + "\n" + body
}
