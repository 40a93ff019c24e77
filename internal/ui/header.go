package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/leadflow/internal/state"
)

// renderHeader renders the top status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("leadflow", styles.Logo),
		m.phaseIndicator(styles, bg),
		bg.Render("Leads:", styles.MutedText) + bg.Space() +
			bg.Render(fmt.Sprintf("%d", len(m.snapshot.Leads)), styles.Text),
	}

	if q := strings.TrimSpace(m.snapshot.Query); q != "" {
		parts = append(parts,
			bg.Render("Query:", styles.MutedText)+bg.Space()+
				bg.Render(truncate(q, 40), styles.Text))
	}

	if m.width >= LayoutWideWidth {
		parts = append(parts,
			bg.Render("API", styles.FaintText)+bg.Space()+
				bg.Render(truncate(m.config.Endpoint, 50), styles.MutedText))
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) phaseIndicator(styles Styles, bg BgStyle) string {
	snap := m.snapshot
	switch snap.Phase {
	case state.PhaseRunning:
		return m.spinner.View() + bg.Render(" RUNNING", styles.WarningText.Bold(true))
	case state.PhaseDone:
		return bg.Render("● DONE", styles.SuccessText) + m.runDuration(styles, bg)
	case state.PhaseFailed:
		return bg.Render("● FAILED", styles.DangerText) + m.runDuration(styles, bg)
	default:
		return bg.Render("● IDLE", styles.MutedText)
	}
}

func (m Model) runDuration(styles Styles, bg BgStyle) string {
	snap := m.snapshot
	if snap.StartedAt.IsZero() || snap.FinishedAt.IsZero() {
		return ""
	}
	d := snap.FinishedAt.Sub(snap.StartedAt).Round(100 * time.Millisecond)
	return bg.Space() + bg.Render("in "+d.String(), styles.FaintText)
}

// renderFooter shows a transient notice, or the key hints for the focused pane.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.notice != "" {
		return styles.Footer.Width(m.width).MaxWidth(m.width).Render(bg.Render(m.notice, styles.WarningText))
	}

	var bindings []key.Binding
	switch m.focus {
	case focusQuery, focusLimit:
		bindings = []key.Binding{m.keys.Submit, m.keys.Tab, m.keys.Escape}
	case focusTable:
		bindings = []key.Binding{m.keys.Select, m.keys.SortName, m.keys.SortWebsite, m.keys.SortEmail, m.keys.Export, m.keys.FocusQuery}
	case focusDetail:
		bindings = []key.Binding{m.keys.CopyWebsite, m.keys.CopyEmail, m.keys.CopySummary, m.keys.CopyPainPoints, m.keys.CopyOutreach, m.keys.PageDown}
	case focusLogs:
		bindings = []key.Binding{m.keys.PageUp, m.keys.PageDown, m.keys.Export}
	}
	bindings = append(bindings, m.keys.Help, m.keys.Quit)

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, bg.Render(h.Key, styles.AccentText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(0, 1).
		Width(m.width).
		MaxWidth(m.width).
		Render(bg.Join(hints, "  "))
}
