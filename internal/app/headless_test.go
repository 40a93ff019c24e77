package app

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig points logging and exports into a temp dir.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "log_file = \"\"\nexport_dir = \"" + filepath.ToSlash(filepath.Join(dir, "exports")) + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func pipelineServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunHeadless_PrintsActivityAndTable(t *testing.T) {
	srv := pipelineServer(t, http.StatusOK, `{"businesses":[
		{"name":"Zeta Labs","website":"https://zeta.example","email":"z@zeta.example","summary":"s"},
		{"name":"Alpha Works","website":"","email":""}
	]}`)
	csvPath := filepath.Join(t.TempDir(), "out", "leads.csv")

	var stdout, stderr bytes.Buffer
	err := RunHeadless(context.Background(), HeadlessOptions{
		Options: Options{ConfigPath: writeConfig(t), Endpoint: srv.URL},
		Query:   "robotics",
		Limit:   2,
		CSVPath: csvPath,
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	require.NoError(t, err)

	log := stderr.String()
	start := strings.Index(log, `Starting pipeline for: "robotics"`)
	found := strings.Index(log, "Found 2 businesses")
	require.GreaterOrEqual(t, start, 0)
	require.Greater(t, found, start, "activity should be chronological")
	assert.Contains(t, log, "Exported 2 leads to "+csvPath)

	out := stdout.String()
	assert.Contains(t, out, "Zeta Labs")
	assert.Contains(t, out, "Alpha Works")
	assert.Less(t, strings.Index(out, "Alpha Works"), strings.Index(out, "Zeta Labs"))

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Name,Website,Email,Summary,Pain Points,Outreach Email,Google Maps"))
}

func TestRunHeadless_ServerError(t *testing.T) {
	srv := pipelineServer(t, http.StatusInternalServerError, "server error")

	var stdout, stderr bytes.Buffer
	err := RunHeadless(context.Background(), HeadlessOptions{
		Options: Options{ConfigPath: writeConfig(t), Endpoint: srv.URL},
		Query:   "robotics",
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "Error: HTTP 500: server error")
	assert.Empty(t, stdout.String())
}

func TestRunHeadless_BadEndpointFlag(t *testing.T) {
	err := RunHeadless(context.Background(), HeadlessOptions{
		Options: Options{ConfigPath: writeConfig(t), Endpoint: "ftp://example.com"},
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint flag")
}
