package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/leadflow/internal/activity"
	"github.com/five82/leadflow/internal/config"
	"github.com/five82/leadflow/internal/pipeline"
	"github.com/five82/leadflow/internal/prefs"
	"github.com/five82/leadflow/internal/state"
)

type fakeInvoker struct {
	store *state.Store
	rec   *activity.Recorder
	leads []pipeline.Lead
	err   error
	begun []string
}

func (f *fakeInvoker) Begin(query string, limit int) (string, error) {
	id := fmt.Sprintf("run-%d", len(f.begun)+1)
	if err := f.store.Begin(id, query, limit); err != nil {
		return "", err
	}
	f.begun = append(f.begun, fmt.Sprintf("%s/%d", query, limit))
	f.rec.Info(fmt.Sprintf("Starting pipeline for: %q", query))
	return id, nil
}

func (f *fakeInvoker) Perform(_ context.Context, runID string) func() error {
	return func() error {
		f.store.SetLeads(runID, f.leads)
		f.store.Finish(runID, f.err)
		return f.err
	}
}

type harness struct {
	model    Model
	invoker  *fakeInvoker
	store    *state.Store
	rec      *activity.Recorder
	copied   []string
	now      time.Time
	prefs    string
	exportTo string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store:    &state.Store{},
		rec:      activity.NewRecorder(),
		now:      time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		prefs:    filepath.Join(t.TempDir(), "prefs.toml"),
		exportTo: t.TempDir(),
	}
	h.invoker = &fakeInvoker{store: h.store, rec: h.rec}
	cfg := config.Default()
	cfg.ExportDir = h.exportTo
	h.model = New(Options{
		Invoker:   h.invoker,
		Store:     h.store,
		Recorder:  h.rec,
		Config:    &cfg,
		Prefs:     prefs.Defaults(),
		PrefsPath: h.prefs,
		Clipboard: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
		Now: func() time.Time { return h.now },
	})
	h.send(tea.WindowSizeMsg{Width: 140, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		switch k {
		case "enter":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "tab":
			h.send(tea.KeyMsg{Type: tea.KeyTab})
		case "esc":
			h.send(tea.KeyMsg{Type: tea.KeyEsc})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

// run submits the current form and delivers the pipeline result.
func (h *harness) run(t *testing.T, leads []pipeline.Lead) {
	t.Helper()
	h.invoker.leads = leads
	h.model.setFocus(focusQuery)
	h.press("enter")
	snap := h.store.Snapshot()
	if !snap.Loading {
		t.Fatalf("expected a run in progress after submit")
	}
	h.send(runFinishedMsg{runID: snap.RunID, apply: h.invoker.Perform(context.Background(), snap.RunID)})
}

var twoLeads = []pipeline.Lead{
	{Name: "Zeta Labs", Website: "https://zeta.example", Email: "z@zeta.example", Summary: "Zeta summary", OutreachEmail: "Hi Zeta"},
	{Name: "alpha works", Website: "https://alpha.example", Email: "a@alpha.example"},
}

func TestSubmit_BlankQueryDoesNothing(t *testing.T) {
	h := newHarness(t)
	h.model.query.SetValue("   ")

	h.press("enter")

	if len(h.invoker.begun) != 0 {
		t.Fatalf("begun = %v, want none", h.invoker.begun)
	}
	if h.model.notice == "" {
		t.Fatalf("expected a notice explaining why nothing ran")
	}
}

func TestSubmit_DisabledWhileLoading(t *testing.T) {
	h := newHarness(t)
	if err := h.store.Begin("other", "q", 5); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	h.send(tickMsg(h.now))

	h.press("enter")

	if len(h.invoker.begun) != 0 {
		t.Fatalf("begun = %v, want none while loading", h.invoker.begun)
	}
}

func TestSubmit_ClampsLimitAndRuns(t *testing.T) {
	h := newHarness(t)
	h.model.query.SetValue("coffee roasters")
	h.model.limit.SetValue("abc")

	h.run(t, twoLeads)

	if got := h.invoker.begun; len(got) != 1 || got[0] != "coffee roasters/10" {
		t.Fatalf("begun = %v, want [coffee roasters/10]", got)
	}
	if got := h.model.limit.Value(); got != "10" {
		t.Fatalf("limit field = %q, want 10", got)
	}
	if len(h.model.view) != 2 {
		t.Fatalf("view = %v, want two rows", h.model.view)
	}
	if h.model.snapshot.Loading {
		t.Fatalf("loading should be cleared after the result is applied")
	}
	if !strings.Contains(h.model.View(), "Leads (2)") {
		t.Fatalf("view missing lead count title")
	}
}

func TestSortKeysToggleAndPersist(t *testing.T) {
	h := newHarness(t)
	h.model.query.SetValue("q")
	h.run(t, twoLeads)
	h.model.setFocus(focusTable)

	// Default is name ascending; collation ignores case.
	if first := h.model.snapshot.Leads[h.model.view[0]].Name; first != "alpha works" {
		t.Fatalf("first row = %q, want alpha works", first)
	}

	h.press("1")
	if !h.model.sort.Descending {
		t.Fatalf("pressing 1 on the active key should flip to descending")
	}
	if first := h.model.snapshot.Leads[h.model.view[0]].Name; first != "Zeta Labs" {
		t.Fatalf("first row = %q, want Zeta Labs", first)
	}

	h.press("3")
	if h.model.sort.Key != state.SortByEmail || h.model.sort.Descending {
		t.Fatalf("sort = %+v, want email ascending", h.model.sort)
	}

	saved := prefs.Load(h.prefs)
	if saved.SortKey != "email" || saved.SortDesc {
		t.Fatalf("saved prefs = %+v, want email ascending", saved)
	}
}

func TestSelectAndCopyShowsTransientMark(t *testing.T) {
	h := newHarness(t)
	h.model.query.SetValue("q")
	h.run(t, twoLeads)
	h.model.setFocus(focusTable)

	h.press("j", "enter")
	lead, ok := h.model.snapshot.SelectedLead()
	if !ok || lead.Name != "Zeta Labs" {
		t.Fatalf("selected = %+v, %v; want Zeta Labs", lead, ok)
	}

	h.press("w")
	if len(h.copied) != 1 || h.copied[0] != "https://zeta.example" {
		t.Fatalf("clipboard = %v", h.copied)
	}
	if !h.model.copied.active(fieldWebsite, h.now) {
		t.Fatalf("website should be marked as copied")
	}
	if !strings.Contains(h.model.detailViewport.View(), "copied") {
		t.Fatalf("detail pane should show the copied mark")
	}

	h.send(copyExpiredMsg(h.now.Add(time.Second)))
	if !h.model.copied.active(fieldWebsite, h.now) {
		t.Fatalf("mark cleared before it expired")
	}
	h.send(copyExpiredMsg(h.now.Add(copiedFor)))
	if len(h.model.copied) != 0 {
		t.Fatalf("marks = %v, want empty after expiry", h.model.copied)
	}
}

func TestCopyMarkBelongsToSelectedLead(t *testing.T) {
	h := newHarness(t)
	h.model.query.SetValue("q")
	h.run(t, twoLeads)
	h.model.setFocus(focusTable)

	h.press("j", "enter", "w")
	if !h.model.copied.active(fieldWebsite, h.now) {
		t.Fatalf("website should be marked after copying on Zeta Labs")
	}

	// Re-selecting the same lead keeps the mark.
	h.press("enter")
	if !h.model.copied.active(fieldWebsite, h.now) {
		t.Fatalf("re-selecting the same lead dropped the mark")
	}

	h.press("k", "enter")
	if lead, _ := h.model.snapshot.SelectedLead(); lead.Name != "alpha works" {
		t.Fatalf("selected = %q, want alpha works", lead.Name)
	}
	if h.model.copied.active(fieldWebsite, h.now) {
		t.Fatalf("mark carried over to a lead that was never copied")
	}
	if strings.Contains(h.model.detailViewport.View(), "copied") {
		t.Fatalf("detail pane shows a copied mark for alpha works")
	}

	h.press("w", "esc")
	if len(h.model.copied) != 0 {
		t.Fatalf("marks = %v, want empty after clearing the selection", h.model.copied)
	}

	h.press("enter", "e")
	h.model.setFocus(focusQuery)
	h.press("enter")
	if len(h.model.copied) != 0 {
		t.Fatalf("marks = %v, want empty after a new run starts", h.model.copied)
	}
}

func TestStaleCompletionKeepsCursorAndMarks(t *testing.T) {
	h := newHarness(t)
	h.model.query.SetValue("q")
	h.run(t, twoLeads)
	h.model.setFocus(focusTable)
	h.press("j", "enter", "w")

	h.send(runFinishedMsg{runID: "run-0", apply: func() error { return nil }})

	if h.model.cursor != 1 {
		t.Fatalf("cursor = %d, want 1 after a stale completion", h.model.cursor)
	}
	if !h.model.copied.active(fieldWebsite, h.now) {
		t.Fatalf("stale completion cleared the copied mark")
	}
}

func TestCopyWithoutSelection(t *testing.T) {
	h := newHarness(t)
	h.model.setFocus(focusTable)

	h.press("e")

	if len(h.copied) != 0 {
		t.Fatalf("clipboard = %v, want nothing copied", h.copied)
	}
	if h.model.notice == "" {
		t.Fatalf("expected a notice")
	}
}

func TestNewRunClearsSelection(t *testing.T) {
	h := newHarness(t)
	h.model.query.SetValue("q")
	h.run(t, twoLeads)
	h.model.setFocus(focusTable)
	h.press("enter")
	if h.model.snapshot.Selected < 0 {
		t.Fatalf("expected a selection")
	}

	h.model.setFocus(focusQuery)
	h.press("enter")

	if h.model.snapshot.Selected != -1 || len(h.model.snapshot.Leads) != 0 {
		t.Fatalf("snapshot = %+v, want cleared list and selection", h.model.snapshot)
	}
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	h.model.setFocus(focusTable)

	h.press("x")
	entries := h.rec.Entries()
	if len(entries) == 0 || entries[0].Message != "No leads to export" || entries[0].Severity != activity.SeverityWarning {
		t.Fatalf("entries = %+v, want a no-leads warning", entries)
	}

	h.model.query.SetValue("q")
	h.run(t, twoLeads)
	h.model.setFocus(focusTable)
	h.press("x")

	entries = h.rec.Entries()
	if entries[0].Severity != activity.SeveritySuccess {
		t.Fatalf("latest entry = %+v, want export success", entries[0])
	}
	files, err := os.ReadDir(h.exportTo)
	if err != nil || len(files) != 1 {
		t.Fatalf("export dir = %v, %v; want one file", files, err)
	}
	if want := "leadflow_results-20250601-090000.csv"; files[0].Name() != want {
		t.Fatalf("export file = %q, want %q", files[0].Name(), want)
	}
}

func TestThemeCyclePersists(t *testing.T) {
	h := newHarness(t)
	h.model.setFocus(focusTable)

	h.press("T")

	if h.model.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", h.model.theme.Name)
	}
	if got := prefs.Load(h.prefs).Theme; got != "Slate" {
		t.Fatalf("saved theme = %q, want Slate", got)
	}
}

func TestTypingInQueryDoesNotTriggerShortcuts(t *testing.T) {
	h := newHarness(t)
	h.model.query.SetValue("")

	h.press("T", "x", "q")

	if h.model.theme.Name != "Dracula" {
		t.Fatalf("theme changed while typing")
	}
	if got := h.model.query.Value(); got != "Txq" {
		t.Fatalf("query = %q, want Txq", got)
	}
}

func TestEmptyActivityLog(t *testing.T) {
	h := newHarness(t)
	if !strings.Contains(h.model.View(), "No activity yet") {
		t.Fatalf("view should show the empty activity state")
	}
}

func TestVisibleRange(t *testing.T) {
	cases := []struct {
		cursor, total, height int
		start, end            int
	}{
		{0, 3, 10, 0, 3},
		{0, 30, 10, 0, 10},
		{15, 30, 10, 6, 16},
		{29, 30, 10, 20, 30},
	}
	for _, tc := range cases {
		start, end := visibleRange(tc.cursor, tc.total, tc.height)
		if start != tc.start || end != tc.end {
			t.Fatalf("visibleRange(%d,%d,%d) = %d,%d want %d,%d", tc.cursor, tc.total, tc.height, start, end, tc.start, tc.end)
		}
	}
}
