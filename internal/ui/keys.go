package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the dashboard.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	FocusQuery key.Binding

	// Search form
	Submit key.Binding

	// Results
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Select      key.Binding
	SortName    key.Binding
	SortWebsite key.Binding
	SortEmail   key.Binding
	Export      key.Binding

	// Scrolling panes
	PageUp   key.Binding
	PageDown key.Binding

	// Detail copy
	CopyWebsite    key.Binding
	CopyEmail      key.Binding
	CopySummary    key.Binding
	CopyPainPoints key.Binding
	CopyOutreach   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next pane"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous pane"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave input / clear selection"),
		),
		FocusQuery: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Edit query"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Run pipeline"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Show details"),
		),
		SortName: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Sort by name"),
		),
		SortWebsite: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Sort by website"),
		),
		SortEmail: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Sort by email"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Export CSV"),
		),

		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("ctrl+u", "Scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("ctrl+d", "Scroll down"),
		),

		CopyWebsite: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Copy website"),
		),
		CopyEmail: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Copy email"),
		),
		CopySummary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Copy summary"),
		),
		CopyPainPoints: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Copy pain points"),
		),
		CopyOutreach: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Copy outreach email"),
		),
	}
}
