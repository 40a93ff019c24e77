package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/leadflow/internal/pipeline"
)

var sample = []pipeline.Lead{
	{
		Name:          "Acme Robotics",
		Website:       "https://acme.example",
		Email:         "hello@acme.example",
		Summary:       "Builds robots, mostly friendly.",
		PainPoints:    "Slow \"lead\" follow-up",
		OutreachEmail: "Hi Acme,\nLet's talk.",
		SourceURL:     "https://maps.example/acme",
	},
	{Name: "Bare Minimum"},
}

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{
		"Acme Robotics", "https://acme.example", "hello@acme.example",
		"Builds robots, mostly friendly.", "Slow \"lead\" follow-up",
		"Hi Acme,\nLet's talk.", "https://maps.example/acme",
	}, records[1])
	assert.Equal(t, "Bare Minimum", records[2][0])
	assert.Equal(t, "", records[2][6])
}

func TestToDir_WritesTimestampedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	path, err := ToDir(dir, sample, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "leadflow_results-20250304-050607.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Acme Robotics")
}

func TestToFile_NoLeads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	err := ToFile(path, nil)
	require.ErrorIs(t, err, ErrNoLeads)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
