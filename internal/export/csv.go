// Package export writes pipeline results to CSV.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/leadflow/internal/pipeline"
)

// ErrNoLeads is returned when there is nothing to export.
var ErrNoLeads = errors.New("no leads to export")

// Header is the first CSV row.
var Header = []string{"Name", "Website", "Email", "Summary", "Pain Points", "Outreach Email", "Google Maps"}

// WriteCSV writes leads in the given order.
func WriteCSV(w io.Writer, leads []pipeline.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, l := range leads {
		row := []string{l.Name, l.Website, l.Email, l.Summary, l.PainPoints, l.OutreachEmail, l.SourceURL}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// FileName returns the default export file name for t.
func FileName(t time.Time) string {
	return "leadflow_results-" + t.Format("20060102-150405") + ".csv"
}

// ToFile writes leads to path, creating parent directories.
func ToFile(path string, leads []pipeline.Lead) error {
	if len(leads) == 0 {
		return ErrNoLeads
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := WriteCSV(f, leads); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}

// ToDir writes leads to a timestamped file inside dir and returns its path.
func ToDir(dir string, leads []pipeline.Lead, now time.Time) (string, error) {
	path := filepath.Join(dir, FileName(now))
	if err := ToFile(path, leads); err != nil {
		return "", err
	}
	return path, nil
}
