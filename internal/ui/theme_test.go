package ui

import (
	"testing"

	"github.com/five82/leadflow/internal/activity"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 {
		t.Fatalf("ThemeNames() returned %d names, want 2", len(names))
	}
	if names[0] != "Dracula" || names[1] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Dracula Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q, want Slate", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("Unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(Unknown) = %q, want Dracula", got)
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Unknown").Name; got != "Dracula" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Dracula (fallback)", got)
	}
}

func TestSeverityColor(t *testing.T) {
	th := GetTheme("Dracula")
	cases := map[activity.Severity]string{
		activity.SeverityInfo:    th.Info,
		activity.SeveritySuccess: th.Success,
		activity.SeverityWarning: th.Warning,
		activity.SeverityError:   th.Danger,
		"bogus":                  th.Muted,
	}
	for sev, want := range cases {
		if got := th.SeverityColor(sev); got != want {
			t.Fatalf("SeverityColor(%q) = %q, want %q", sev, got, want)
		}
	}
}
