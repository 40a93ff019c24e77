package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/five82/leadflow/internal/activity"
	"github.com/five82/leadflow/internal/export"
	"github.com/five82/leadflow/internal/pipeline"
	"github.com/five82/leadflow/internal/state"
)

// HeadlessOptions configure a single pipeline run without the dashboard.
type HeadlessOptions struct {
	Options

	Query   string // empty uses the configured default query
	Limit   int    // zero uses the configured default limit
	CSVPath string // optional export destination

	Stdout io.Writer
	Stderr io.Writer
}

// RunHeadless performs one run. Activity is streamed to Stderr as it
// happens and the resulting leads are printed to Stdout as a table.
func RunHeadless(ctx context.Context, opts HeadlessOptions) error {
	cfg, logger, client, err := setup(opts.Options)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	query := strings.TrimSpace(opts.Query)
	if query == "" {
		query = cfg.DefaultQuery
	}
	limit := opts.Limit
	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	store := &state.Store{}
	rec := activity.NewRecorder(
		activity.WithLogger(logger),
		activity.WithListener(func(e activity.Entry) {
			_, _ = fmt.Fprintln(stderr, formatEntry(e))
		}),
	)
	inv := NewInvoker(client, store, rec, logger)

	if err := inv.Invoke(ctx, query, limit); err != nil {
		return err
	}

	leads := state.Sort{}.Sorted(store.Snapshot().Leads)
	if len(leads) > 0 {
		if _, err := fmt.Fprintln(stdout, renderLeadTable(leads)); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}

	if opts.CSVPath != "" {
		switch err := export.ToFile(opts.CSVPath, leads); {
		case errors.Is(err, export.ErrNoLeads):
			rec.Warn("No leads to export")
		case err != nil:
			rec.Error("Export failed: " + err.Error())
			return fmt.Errorf("export csv: %w", err)
		default:
			rec.Success(fmt.Sprintf("Exported %d leads to %s", len(leads), opts.CSVPath), zap.String("path", opts.CSVPath))
		}
	}
	return nil
}

func formatEntry(e activity.Entry) string {
	return fmt.Sprintf("%s %-7s %s", e.Timestamp.Format("15:04:05"), strings.ToUpper(string(e.Severity)), e.Message)
}

func renderLeadTable(leads []pipeline.Lead) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Name", "Website", "Email", "Status").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, l := range leads {
		t.Row(l.Name, orDash(l.Website), orDash(l.Email), leadStatus(l))
	}
	return t.Render()
}

func leadStatus(l pipeline.Lead) string {
	var parts []string
	if l.HasSummary() {
		parts = append(parts, "Summary")
	}
	if l.HasOutreachEmail() {
		parts = append(parts, "Email")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
