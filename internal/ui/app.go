package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/leadflow/internal/activity"
	"github.com/five82/leadflow/internal/config"
	"github.com/five82/leadflow/internal/export"
	"github.com/five82/leadflow/internal/prefs"
	"github.com/five82/leadflow/internal/state"
)

// Invoker starts pipeline runs. Perform does the network work and returns
// the step that applies the outcome; the dashboard calls that step on its
// own loop.
type Invoker interface {
	Begin(query string, limit int) (string, error)
	Perform(ctx context.Context, runID string) func() error
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Invoker   Invoker
	Store     *state.Store
	Recorder  *activity.Recorder
	Config    *config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *zap.Logger

	// Clipboard and Now default to the system clipboard and time.Now.
	Clipboard func(string) error
	Now       func() time.Time
}

type focusArea int

const (
	focusQuery focusArea = iota
	focusLimit
	focusTable
	focusDetail
	focusLogs
)

var focusOrder = []focusArea{focusQuery, focusLimit, focusTable, focusDetail, focusLogs}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Wiring
	ctx       context.Context
	invoker   Invoker
	store     *state.Store
	rec       *activity.Recorder
	config    config.Config
	prefsPath string
	logger    *zap.Logger
	clipboard func(string) error
	now       func() time.Time
	keys      keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	focus    focusArea
	showHelp bool
	notice   string

	// Data state
	snapshot state.Snapshot
	entries  []activity.Entry
	sort     state.Sort
	view     []int // sorted indices into snapshot.Leads
	cursor   int   // position in view

	// Widgets
	query          textinput.Model
	limit          textinput.Model
	spinner        spinner.Model
	detailViewport viewport.Model
	logViewport    viewport.Model
	copied         copyMarks
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	rec := opts.Recorder
	if rec == nil {
		rec = activity.NewRecorder()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:       ctx,
		invoker:   opts.Invoker,
		store:     store,
		rec:       rec,
		config:    cfg,
		prefsPath: prefsPath,
		logger:    logger,
		clipboard: copyFn,
		now:       now,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.Prefs.Theme),
		sort: state.Sort{
			Key:        state.SortKey(opts.Prefs.SortKey),
			Descending: opts.Prefs.SortDesc,
		},
		query:   newQueryInput(cfg.DefaultQuery),
		limit:   newLimitInput(cfg.DefaultLimit),
		spinner: sp,
		copied:  copyMarks{},
	}
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.setFocus(focusQuery)
	m.sync()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(DefaultUIInterval))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		m.sync()
		return m, tickCmd(DefaultUIInterval)

	case runFinishedMsg:
		if msg.apply != nil {
			if err := msg.apply(); err != nil {
				m.logger.Debug("pipeline run failed", zap.String("run_id", msg.runID), zap.Error(err))
			}
		}
		if m.store.Current(msg.runID) {
			m.cursor = 0
			m.copied.clear()
		}
		m.sync()
		return m, nil

	case copyExpiredMsg:
		m.copied.expire(time.Time(msg))
		m.refreshDetail()
		return m, nil

	case spinner.TickMsg:
		if !m.snapshot.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateInputs(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	m.notice = ""

	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		cmd := m.cycleFocus(1)
		return m, cmd
	case key.Matches(msg, m.keys.ShiftTab):
		cmd := m.cycleFocus(-1)
		return m, cmd
	}

	if m.inputFocused() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		m.savePrefs()
		m.refreshDetail()
		m.refreshLogs()
		return m, nil
	case key.Matches(msg, m.keys.FocusQuery):
		cmd := m.setFocus(focusQuery)
		return m, cmd
	case key.Matches(msg, m.keys.Escape):
		m.store.ClearSelection()
		m.copied.clear()
		m.sync()
		return m, nil
	case key.Matches(msg, m.keys.SortName):
		m.toggleSort(state.SortByName)
		return m, nil
	case key.Matches(msg, m.keys.SortWebsite):
		m.toggleSort(state.SortByWebsite)
		return m, nil
	case key.Matches(msg, m.keys.SortEmail):
		m.toggleSort(state.SortByEmail)
		return m, nil
	case key.Matches(msg, m.keys.Export):
		m.exportLeads()
		return m, nil
	case key.Matches(msg, m.keys.CopyWebsite):
		return m.copyField(fieldWebsite)
	case key.Matches(msg, m.keys.CopyEmail):
		return m.copyField(fieldEmail)
	case key.Matches(msg, m.keys.CopySummary):
		return m.copyField(fieldSummary)
	case key.Matches(msg, m.keys.CopyPainPoints):
		return m.copyField(fieldPainPoints)
	case key.Matches(msg, m.keys.CopyOutreach):
		return m.copyField(fieldOutreach)
	}

	switch m.focus {
	case focusTable:
		return m.handleTableKey(msg)
	case focusDetail:
		m.scroll(&m.detailViewport, msg)
	case focusLogs:
		m.scroll(&m.logViewport, msg)
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Escape):
		cmd := m.setFocus(focusTable)
		return m, cmd
	}
	return m.updateInputs(msg)
}

// updateInputs forwards a message to the focused text input.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusQuery:
		m.query, cmd = m.query.Update(msg)
	case focusLimit:
		m.limit, cmd = m.limit.Update(msg)
	}
	return m, cmd
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.view)
	if count == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < count-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = count - 1
	case key.Matches(msg, m.keys.Select):
		if idx := m.view[m.cursor]; idx != m.snapshot.Selected {
			m.copied.clear()
		}
		m.store.Select(m.view[m.cursor])
		m.sync()
		m.detailViewport.GotoTop()
	}
	return m, nil
}

func (m *Model) scroll(vp *viewport.Model, msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.PageUp):
		vp.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		vp.HalfPageDown()
	case key.Matches(msg, m.keys.Up):
		vp.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		vp.ScrollDown(1)
	case key.Matches(msg, m.keys.Top):
		vp.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		vp.GotoBottom()
	}
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	m.normalizeLimit()
	if !m.canSubmit() {
		if m.snapshot.Loading {
			m.notice = "A pipeline run is already in progress"
		} else {
			m.notice = "Enter a search query first"
		}
		return *m, nil
	}
	if m.invoker == nil {
		m.notice = "Pipeline is not configured"
		return *m, nil
	}

	limit, _ := strconv.Atoi(m.limit.Value())
	runID, err := m.invoker.Begin(strings.TrimSpace(m.query.Value()), limit)
	if err != nil {
		m.notice = err.Error()
		return *m, nil
	}
	m.cursor = 0
	m.copied.clear()
	m.sync()
	return *m, tea.Batch(m.spinner.Tick, performCmd(m.ctx, m.invoker, runID))
}

func (m *Model) cycleFocus(step int) tea.Cmd {
	idx := 0
	for i, f := range focusOrder {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + step + len(focusOrder)) % len(focusOrder)
	return m.setFocus(focusOrder[idx])
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	if m.focus == focusLimit && f != focusLimit {
		m.normalizeLimit()
	}
	m.focus = f
	m.query.Blur()
	m.limit.Blur()
	m.refreshDetail()
	m.refreshLogs()
	switch f {
	case focusQuery:
		return m.query.Focus()
	case focusLimit:
		return m.limit.Focus()
	}
	return nil
}

func (m Model) inputFocused() bool {
	return m.focus == focusQuery || m.focus == focusLimit
}

func (m *Model) toggleSort(k state.SortKey) {
	var current int
	if len(m.view) > 0 && m.cursor < len(m.view) {
		current = m.view[m.cursor]
	}
	m.sort = m.sort.Toggle(k)
	m.view = m.sort.View(m.snapshot.Leads)
	for i, idx := range m.view {
		if idx == current {
			m.cursor = i
			break
		}
	}
	m.savePrefs()
}

func (m *Model) exportLeads() {
	leads := m.sort.Sorted(m.snapshot.Leads)
	if len(leads) == 0 {
		m.rec.Warn("No leads to export")
		m.sync()
		return
	}
	path, err := export.ToDir(m.config.ExportDir, leads, m.now())
	if err != nil {
		m.rec.Error("Export failed: " + err.Error())
	} else {
		m.rec.Success(fmt.Sprintf("Exported %d leads to %s", len(leads), path))
	}
	m.sync()
}

func (m Model) copyField(f copyField) (tea.Model, tea.Cmd) {
	lead, ok := m.snapshot.SelectedLead()
	if !ok {
		m.notice = "Select a lead first"
		return m, nil
	}
	text := f.value(lead)
	if strings.TrimSpace(text) == "" {
		m.notice = "No " + strings.ToLower(f.label()) + " to copy"
		return m, nil
	}
	if err := m.clipboard(text); err != nil {
		m.rec.Error("Copy failed: " + err.Error())
		m.sync()
		return m, nil
	}
	m.copied.mark(f, m.now().Add(copiedFor))
	m.refreshDetail()
	return m, tea.Tick(copiedFor, func(t time.Time) tea.Msg {
		return copyExpiredMsg(t)
	})
}

func (m *Model) savePrefs() {
	p := prefs.Prefs{
		Theme:    m.theme.Name,
		SortKey:  string(m.sort.Active()),
		SortDesc: m.sort.Descending,
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

// sync pulls the latest store and activity state into the model.
func (m *Model) sync() {
	m.snapshot = m.store.Snapshot()
	m.entries = m.rec.Entries()
	m.view = m.sort.View(m.snapshot.Leads)
	if m.cursor >= len(m.view) {
		m.cursor = max(0, len(m.view)-1)
	}
	m.refreshDetail()
	m.refreshLogs()
}

// renderMain renders the full dashboard.
func (m Model) renderMain() string {
	g := m.geometry()

	var top string
	switch {
	case !g.stacked:
		top = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderTable(g.tableWidth, g.topHeight),
			m.renderDetail(g.detailWidth, g.topHeight),
		)
	case m.focus == focusDetail:
		top = m.renderDetail(g.detailWidth, g.topHeight)
	default:
		top = m.renderTable(g.tableWidth, g.topHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderSearch(),
		top,
		m.renderLogs(m.width, g.logHeight),
		m.renderFooter(),
	)
}

// Messages

type tickMsg time.Time

type copyExpiredMsg time.Time

type runFinishedMsg struct {
	runID string
	apply func() error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func performCmd(ctx context.Context, inv Invoker, runID string) tea.Cmd {
	return func() tea.Msg {
		return runFinishedMsg{runID: runID, apply: inv.Perform(ctx, runID)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
