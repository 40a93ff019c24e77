package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/leadflow/internal/pipeline"
	"github.com/five82/leadflow/internal/state"
)

var tableColumns = []struct {
	key   state.SortKey
	title string
}{
	{state.SortByName, "Name"},
	{state.SortByWebsite, "Website"},
	{state.SortByEmail, "Email"},
}

type columnWidths struct {
	name, website, email int
}

// gutter(2) + name + website + email + status, one space between columns.
func computeColumns(inner int) columnWidths {
	rest := max(12, inner-2-statusColumns-3)
	name := rest * 36 / 100
	website := rest * 32 / 100
	return columnWidths{name: name, website: website, email: rest - name - website}
}

// visibleRange returns the slice of rows to draw so the cursor stays on
// screen.
func visibleRange(cursor, total, height int) (int, int) {
	if height <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	start := max(0, cursor-height+1)
	return start, min(total, start+height)
}

func (m Model) renderTable(width, height int) string {
	focused := m.focus == focusTable
	bg := NewBgStyle(m.theme.PaneBg(focused))
	styles := m.theme.Styles()
	inner := width - 2
	title := fmt.Sprintf("Leads (%d)", len(m.snapshot.Leads))

	var lines []string
	switch {
	case m.snapshot.Loading && len(m.view) == 0:
		line := m.spinner.View() + bg.Render(" Running pipeline for "+fmt.Sprintf("%q", m.snapshot.Query), styles.WarningText)
		lines = append(lines, bg.FillLine(line, inner))
	case len(m.view) == 0:
		lines = append(lines, bg.FillLine(bg.Render("No leads yet. Enter a query and press enter to run the pipeline.", styles.MutedText), inner))
	default:
		cols := computeColumns(inner)
		lines = append(lines, m.renderTableHeader(cols, bg, inner))
		start, end := visibleRange(m.cursor, len(m.view), height-3)
		for i := start; i < end; i++ {
			lines = append(lines, m.renderRow(i, cols, bg, inner, focused))
		}
	}

	return m.renderBox(title, strings.Join(lines, "\n"), width, height, focused)
}

func (m Model) renderTableHeader(cols columnWidths, bg BgStyle, inner int) string {
	styles := m.theme.Styles()
	widths := []int{cols.name, cols.website, cols.email}

	parts := []string{bg.Spaces(2)}
	for i, col := range tableColumns {
		text := col.title
		style := styles.MutedText.Bold(true)
		if m.sort.Active() == col.key {
			text += " " + sortIndicator(m.sort.Descending)
			style = styles.AccentText.Bold(true)
		}
		parts = append(parts, bg.Render(fit(text, widths[i]), style), bg.Space())
	}
	parts = append(parts, bg.Render("Status", styles.MutedText.Bold(true)))
	return bg.FillLine(strings.Join(parts, ""), inner)
}

func sortIndicator(desc bool) string {
	if desc {
		return "▼"
	}
	return "▲"
}

func (m Model) renderRow(pos int, cols columnWidths, bg BgStyle, inner int, focused bool) string {
	styles := m.theme.Styles()
	idx := m.view[pos]
	lead := m.snapshot.Leads[idx]

	gutter := "  "
	if idx == m.snapshot.Selected {
		gutter = "› "
	}
	website := displayWebsite(lead.Website)
	email := displayEmail(lead.Email)

	if focused && pos == m.cursor {
		text := gutter + fit(lead.Name, cols.name) + " " + fit(website, cols.website) + " " + fit(email, cols.email) + " "
		row := styles.Selected.Render(text) + m.statusBadges(lead, NewBgStyle(m.theme.SelectionBg))
		return lipgloss.NewStyle().Background(lipgloss.Color(m.theme.SelectionBg)).Width(inner).MaxWidth(inner).Render(row)
	}

	nameStyle := styles.Text
	if idx == m.snapshot.Selected {
		nameStyle = styles.AccentText.Bold(true)
	}
	webStyle := styles.Text
	if strings.TrimSpace(lead.Website) == "" {
		webStyle = styles.FaintText
	}
	emailStyle := styles.InfoText
	if strings.TrimSpace(lead.Email) == "" {
		emailStyle = styles.FaintText
	}

	row := bg.Render(gutter, styles.AccentText) +
		bg.Render(fit(lead.Name, cols.name), nameStyle) + bg.Space() +
		bg.Render(fit(website, cols.website), webStyle) + bg.Space() +
		bg.Render(fit(email, cols.email), emailStyle) + bg.Space() +
		m.statusBadges(lead, bg)
	return bg.FillLine(row, inner)
}

// statusBadges renders the derived Summary / Email chips.
func (m Model) statusBadges(lead pipeline.Lead, bg BgStyle) string {
	styles := m.theme.Styles()
	var parts []string
	if lead.HasSummary() {
		parts = append(parts, styles.Badge(m.theme.Success).Render("Summary"))
	}
	if lead.HasOutreachEmail() {
		parts = append(parts, styles.Badge(m.theme.Info).Render("Email"))
	}
	if len(parts) == 0 {
		return bg.Render("-", styles.FaintText)
	}
	return strings.Join(parts, bg.Space())
}
