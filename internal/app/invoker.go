package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/leadflow/internal/activity"
	"github.com/five82/leadflow/internal/config"
	"github.com/five82/leadflow/internal/pipeline"
	"github.com/five82/leadflow/internal/state"
)

var (
	// ErrEmptyQuery is returned when a run is requested without a query.
	ErrEmptyQuery = errors.New("search query is empty")
	// ErrInvalidLimit is returned for a non-positive result bound.
	ErrInvalidLimit = errors.New("limit must be a positive integer")
)

// Completion is the outcome of one pipeline request, tagged with its run.
type Completion struct {
	RunID    string
	Response *pipeline.Response
	Err      error
}

// Invoker issues pipeline requests and applies their outcome to the store
// and the activity log. At most one run is outstanding at a time.
type Invoker struct {
	runner pipeline.Runner
	store  *state.Store
	rec    *activity.Recorder
	logger *zap.Logger
	newID  func() string
}

// NewInvoker wires an Invoker. A nil logger is replaced by a no-op logger.
func NewInvoker(runner pipeline.Runner, store *state.Store, rec *activity.Recorder, logger *zap.Logger) *Invoker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invoker{
		runner: runner,
		store:  store,
		rec:    rec,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Begin validates the input, clears the previous results and records the
// opening log entries. The returned run ID must be passed to Fetch.
func (inv *Invoker) Begin(query string, limit int) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	if limit < config.MinLimit {
		return "", fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	limit = config.ClampLimit(limit)

	runID := inv.newID()
	if err := inv.store.Begin(runID, query, limit); err != nil {
		return "", err
	}
	inv.logger.Debug("pipeline run started",
		zap.String("run_id", runID),
		zap.String("query", query),
		zap.Int("limit", limit),
	)

	field := zap.String("run_id", runID)
	inv.rec.Info(fmt.Sprintf("Starting pipeline for: %q", query), field)
	inv.rec.Info("Connecting to API...", field)
	return runID, nil
}

// Fetch performs the request for runID. It touches no shared state besides
// reading the run's parameters, so it is safe to call off the UI loop.
func (inv *Invoker) Fetch(ctx context.Context, runID string) Completion {
	snap := inv.store.Snapshot()
	if snap.RunID != runID {
		return Completion{RunID: runID, Err: fmt.Errorf("run %s is not current", runID)}
	}
	resp, err := inv.runner.Send(ctx, pipeline.Request{
		SearchQuery: snap.Query,
		MaxLinks:    snap.Limit,
	})
	return Completion{RunID: runID, Response: resp, Err: err}
}

// Finish applies a completion. Completions for runs other than the current
// one are discarded. The returned error is the run's failure, already logged.
func (inv *Invoker) Finish(c Completion) (err error) {
	if !inv.store.Current(c.RunID) {
		inv.logger.Debug("discarding stale completion", zap.String("run_id", c.RunID))
		return nil
	}
	field := zap.String("run_id", c.RunID)

	defer func() {
		if err != nil {
			inv.rec.Error("Error: "+err.Error(), field)
			if pipeline.IsUnreachable(err) {
				inv.rec.Error("Network error - check if the pipeline service is running at "+inv.host(), field)
			}
		}
		inv.store.Finish(c.RunID, err)
	}()

	if c.Err != nil {
		return c.Err
	}
	resp := c.Response
	if resp == nil {
		return fmt.Errorf("%w: empty response", pipeline.ErrMalformedResponse)
	}

	status := fmt.Sprintf("API Response Status: %d", resp.StatusCode)
	if !resp.OK() {
		inv.rec.Error(status, field)
		return &pipeline.RequestFailedError{Status: resp.StatusCode, Body: string(resp.Body)}
	}
	inv.rec.Success(status, field)

	inv.rec.Info("Parsing response data...", field)
	leads, err := pipeline.DecodeLeads(resp.Body)
	if err != nil {
		return err
	}

	inv.rec.Success(fmt.Sprintf("Found %d businesses", len(leads)), field)
	if len(leads) > 0 {
		inv.rec.Info("Processing business summaries...", field)
		inv.rec.Info("Generating outreach emails...", field)
		inv.rec.Success("Pipeline completed successfully!", field)
	} else {
		inv.rec.Warn("No businesses found for this query", field)
	}

	inv.store.SetLeads(c.RunID, leads)
	return nil
}

// Perform fetches runID and returns the step that applies the result. The
// fetch happens now; the returned func must run wherever state is mutated.
func (inv *Invoker) Perform(ctx context.Context, runID string) func() error {
	c := inv.Fetch(ctx, runID)
	return func() error {
		return inv.Finish(c)
	}
}

// Invoke runs Begin, Fetch and Finish back to back.
func (inv *Invoker) Invoke(ctx context.Context, query string, limit int) error {
	runID, err := inv.Begin(query, limit)
	if err != nil {
		return err
	}
	return inv.Finish(inv.Fetch(ctx, runID))
}

// host returns scheme://host of the endpoint for the connectivity hint.
func (inv *Invoker) host() string {
	raw := inv.runner.Endpoint()
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host
}
