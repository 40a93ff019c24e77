package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/leadflow/internal/config"
)

func newQueryInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Search query, e.g. dentists in Austin TX"
	ti.CharLimit = 200
	ti.SetValue(value)
	return ti
}

func newLimitInput(n int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 4
	ti.Width = 4
	ti.SetValue(strconv.Itoa(config.ClampLimit(n)))
	return ti
}

// clampLimitInput converts the limit field to a usable bound. Anything that
// is not an integer becomes the default; integers are clamped into range.
func clampLimitInput(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return config.DefaultLimit
	}
	return config.ClampLimit(n)
}

// normalizeLimit rewrites the limit field with its clamped value.
func (m *Model) normalizeLimit() {
	m.limit.SetValue(strconv.Itoa(clampLimitInput(m.limit.Value())))
}

func (m Model) canSubmit() bool {
	return !m.snapshot.Loading && strings.TrimSpace(m.query.Value()) != ""
}

func (m Model) renderSearch() string {
	focused := m.inputFocused()
	bgColor := m.theme.PaneBg(focused)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	label := func(text string, active bool) string {
		if active {
			return bg.Render(text, styles.AccentText.Bold(true))
		}
		return bg.Render(text, styles.MutedText)
	}

	var button string
	switch {
	case m.snapshot.Loading:
		button = m.spinner.View() + bg.Render(" Running...", styles.WarningText)
	case m.canSubmit():
		button = bg.Render("[ Run ]", styles.SuccessText) + bg.Space() + bg.Render("enter", styles.FaintText)
	default:
		button = bg.Render("[ Run ]", styles.FaintText)
	}

	line := label("Query", m.focus == focusQuery) + bg.Space() +
		m.query.View() + bg.Spaces(2) +
		label("Limit", m.focus == focusLimit) + bg.Space() +
		m.limit.View() + bg.Spaces(2) +
		button

	content := lipgloss.NewStyle().Background(lipgloss.Color(bgColor)).Render(line)
	return m.renderBox("Search", content, m.width, searchHeight, focused)
}
