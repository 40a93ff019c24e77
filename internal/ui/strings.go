package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// truncate shortens a string to limit terminal cells, adding an ellipsis if
// needed. Wide runes count as two cells.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	if limit <= 3 {
		return ansi.Truncate(value, limit, "")
	}
	return ansi.Truncate(value, limit, "...")
}

// padRight pads a string with spaces to the given display width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// fit truncates then pads so a cell is exactly width columns wide.
func fit(s string, width int) string {
	return padRight(truncate(s, width), width)
}

// displayWebsite strips the scheme and trailing slash for the table.
func displayWebsite(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "No website"
	}
	for _, prefix := range []string{"https://", "http://"} {
		if len(raw) >= len(prefix) && strings.EqualFold(raw[:len(prefix)], prefix) {
			raw = raw[len(prefix):]
			break
		}
	}
	return strings.TrimSuffix(raw, "/")
}

func displayEmail(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "No email"
	}
	return raw
}

// relativeAge renders how long ago t was: now, 12s ago, 3m ago, 2h ago, 1d ago.
func relativeAge(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < 5*time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// formatLogTime renders an absolute clock time with a relative suffix.
func formatLogTime(t, now time.Time) string {
	return fmt.Sprintf("%s (%s)", t.Format("15:04:05"), relativeAge(t, now))
}

// oneLine collapses whitespace runs, newlines included, into single spaces.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
