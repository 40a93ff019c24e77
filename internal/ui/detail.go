package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type detailSection struct {
	label string
	value string
	field copyField
	hint  string // copy key; empty when the field can't be copied
	long  bool
}

func (m Model) renderDetail(width, height int) string {
	title := "Details"
	if lead, ok := m.snapshot.SelectedLead(); ok {
		title = lead.Name
	}
	return m.renderBox(title, m.detailViewport.View(), width, height, m.focus == focusDetail)
}

// refreshDetail re-renders the detail viewport for the current selection.
func (m *Model) refreshDetail() {
	if m.detailViewport.Width <= 0 {
		return
	}
	m.detailViewport.SetContent(m.detailContent(m.detailViewport.Width))
}

func (m Model) detailContent(width int) string {
	focused := m.focus == focusDetail
	bgColor := m.theme.PaneBg(focused)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	lead, ok := m.snapshot.SelectedLead()
	if !ok {
		return bg.FillLine(bg.Render("Select a lead and press enter to see details", styles.MutedText), width)
	}

	sections := []detailSection{
		{label: "Website", value: lead.Website, field: fieldWebsite, hint: "w"},
		{label: "Email", value: lead.Email, field: fieldEmail, hint: "e"},
		{label: "Summary", value: lead.Summary, field: fieldSummary, hint: "s", long: true},
		{label: "Pain Points", value: lead.PainPoints, field: fieldPainPoints, hint: "p", long: true},
		{label: "Outreach Email", value: lead.OutreachEmail, field: fieldOutreach, hint: "o", long: true},
		{label: "Google Maps", value: lead.SourceURL},
	}

	now := m.now()
	wrap := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color(bgColor)).
		Foreground(lipgloss.Color(m.theme.Text))

	var lines []string
	for i, sec := range sections {
		heading := bg.Render(sec.label, styles.AccentText.Bold(true))
		if sec.hint != "" {
			heading += bg.Space() + bg.Render("["+sec.hint+"]", styles.FaintText)
			if m.copied.active(sec.field, now) {
				heading += bg.Space() + bg.Render("✓ copied", styles.SuccessText)
			}
		}
		lines = append(lines, bg.FillLine(heading, width))

		value := strings.TrimSpace(sec.value)
		switch {
		case value == "":
			lines = append(lines, bg.FillLine(bg.Render("Not available", styles.FaintText), width))
		case sec.long:
			lines = append(lines, wrap.Render(value))
		default:
			lines = append(lines, bg.FillLine(bg.Render(truncate(value, width), styles.Text), width))
		}
		if i < len(sections)-1 {
			lines = append(lines, bg.FillLine("", width))
		}
	}
	return strings.Join(lines, "\n")
}
