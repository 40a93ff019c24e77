package ui

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func TestDisplayWebsite(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", "No website"},
		{"   ", "No website"},
		{"https://acme.example/", "acme.example"},
		{"HTTP://acme.example/path", "acme.example/path"},
		{"acme.example", "acme.example"},
	}
	for _, tc := range cases {
		if got := displayWebsite(tc.in); got != tc.want {
			t.Fatalf("displayWebsite(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayEmail(t *testing.T) {
	if got := displayEmail(" "); got != "No email" {
		t.Fatalf("displayEmail blank = %q, want No email", got)
	}
	if got := displayEmail("a@b.example"); got != "a@b.example" {
		t.Fatalf("displayEmail = %q", got)
	}
}

func TestFormatLogTime(t *testing.T) {
	now := time.Date(2025, 1, 2, 15, 4, 5, 0, time.Local)
	cases := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"now", time.Second, "15:04:04 (now)"},
		{"seconds", 30 * time.Second, "15:03:35 (30s ago)"},
		{"minutes", 3 * time.Minute, "15:01:05 (3m ago)"},
		{"hours", 2 * time.Hour, "13:04:05 (2h ago)"},
		{"days", 49 * time.Hour, "14:04:05 (2d ago)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatLogTime(now.Add(-tc.ago), now); got != tc.want {
				t.Fatalf("formatLogTime = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFit(t *testing.T) {
	if got := fit("abc", 5); got != "abc  " {
		t.Fatalf("fit pad = %q", got)
	}
	if got := fit("abcdefgh", 6); got != "abc..." {
		t.Fatalf("fit truncate = %q", got)
	}
}

func TestFitWideRunes(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"東京", "東京  "},
		{"東京ラボ", "東... "},
		{"Café", "Café  "},
	}
	for _, tc := range cases {
		got := fit(tc.in, 6)
		if got != tc.want {
			t.Fatalf("fit(%q, 6) = %q, want %q", tc.in, got, tc.want)
		}
		if w := lipgloss.Width(got); w != 6 {
			t.Fatalf("fit(%q, 6) is %d cells wide, want 6", tc.in, w)
		}
	}
}
