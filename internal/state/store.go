// Package state holds the current run, its leads and the selection, plus the
// table ordering applied to them.
package state

import (
	"errors"
	"sync"
	"time"

	"github.com/five82/leadflow/internal/pipeline"
)

// Phase is the lifecycle of the current pipeline run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ErrRunInProgress is returned by Begin while another run is outstanding.
var ErrRunInProgress = errors.New("a pipeline run is already in progress")

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Leads      []pipeline.Lead
	Selected   int // index into Leads; -1 when nothing is selected
	Loading    bool
	Phase      Phase
	RunID      string
	Query      string
	Limit      int
	StartedAt  time.Time
	FinishedAt time.Time
	LastError  error
}

// SelectedLead returns the selected lead, if any.
func (s Snapshot) SelectedLead() (pipeline.Lead, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Leads) {
		return pipeline.Lead{}, false
	}
	return s.Leads[s.Selected], true
}

// Store coordinates updates to the result list, selection and run phase.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	inited   bool
}

func (s *Store) init() {
	if !s.inited {
		s.snapshot.Selected = -1
		s.inited = true
	}
}

// Begin starts a run: the lead list and selection are cleared together and
// the loading flag is raised. It fails when a run is already outstanding.
func (s *Store) Begin(runID, query string, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()

	if s.snapshot.Loading {
		return ErrRunInProgress
	}
	s.snapshot.Leads = nil
	s.snapshot.Selected = -1
	s.snapshot.Loading = true
	s.snapshot.Phase = PhaseRunning
	s.snapshot.RunID = runID
	s.snapshot.Query = query
	s.snapshot.Limit = limit
	s.snapshot.StartedAt = time.Now()
	s.snapshot.FinishedAt = time.Time{}
	s.snapshot.LastError = nil
	return nil
}

// Current reports whether runID is the run the store is tracking.
func (s *Store) Current(runID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return runID != "" && s.snapshot.RunID == runID
}

// SetLeads replaces the result list for runID. Stale run IDs are ignored.
func (s *Store) SetLeads(runID string, leads []pipeline.Lead) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()

	if s.snapshot.RunID != runID {
		return false
	}
	s.snapshot.Leads = cloneLeads(leads)
	s.snapshot.Selected = -1
	return true
}

// Finish clears the loading flag for runID and records the outcome.
func (s *Store) Finish(runID string, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()

	if s.snapshot.RunID != runID {
		return false
	}
	s.snapshot.Loading = false
	s.snapshot.FinishedAt = time.Now()
	s.snapshot.LastError = err
	if err != nil {
		s.snapshot.Phase = PhaseFailed
	} else {
		s.snapshot.Phase = PhaseDone
	}
	return true
}

// Select marks the lead at index as selected. Out-of-range indices clear
// the selection.
func (s *Store) Select(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()

	if index < 0 || index >= len(s.snapshot.Leads) {
		s.snapshot.Selected = -1
		return
	}
	s.snapshot.Selected = index
}

// ClearSelection drops the current selection.
func (s *Store) ClearSelection() {
	s.Select(-1)
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	s.init()
	snap := s.snapshot
	s.mu.Unlock()

	snap.Leads = cloneLeads(snap.Leads)
	return snap
}

func cloneLeads(items []pipeline.Lead) []pipeline.Lead {
	if len(items) == 0 {
		return nil
	}
	dup := make([]pipeline.Lead, len(items))
	copy(dup, items)
	return dup
}
