package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/config"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/exporter"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/shared/testutil"
)

func testConfig(t *testing.T, withStorage bool) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Pipeline.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.Pipeline.Breakdowns = []string{exporter.GroupCity}
	cfg.Telemetry.EnableTracing = false
	if withStorage {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.DSN = filepath.Join(t.TempDir(), "funding.db")
	}
	return cfg
}

func newTestApplication(t *testing.T, withStorage bool) *Application {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	a, err := NewApplication(context.Background(), testConfig(t, withStorage), logger)
	require.NoError(t, err)
	// Stop may already have released everything
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a
}

func writeInput(t *testing.T, rows int) string {
	t.Helper()
	f := gofakeit.New(99)
	path := filepath.Join(t.TempDir(), "startup_funding.csv")
	content := testutil.FundingCSV(testutil.DatasetHeader, testutil.FundingRows(f, rows))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestProcessorOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.Strict = true
	cfg.Pipeline.MissingTokens = []string{"nil"}
	cfg.Columns.Aliases = map[string][]string{"city": {"hq"}}

	opts := ProcessorOptions(cfg)
	assert.True(t, opts.Strict)
	assert.True(t, opts.NormalizeMissing)
	assert.Equal(t, []string{"nil"}, opts.MissingTokens)
	assert.Equal(t, []string{"hq"}, opts.Aliases["city"])
	assert.Equal(t, cfg.Pipeline.Outlier, opts.Outlier)
}

func TestTransformFile(t *testing.T) {
	a := newTestApplication(t, true)
	input := writeInput(t, 40)

	result, written, err := a.TransformFile(context.Background(), input)
	require.NoError(t, err)

	paths := config.ResolveOutputPaths(input, a.Config.Pipeline.OutputDir)
	assert.Equal(t, []string{
		paths.Table,
		paths.SummaryJSON,
		paths.SummaryText,
		paths.Records,
		paths.Breakdown(exporter.GroupCity),
	}, written)
	for _, p := range written {
		assert.FileExists(t, p)
	}

	records, err := a.Sink.Rounds(context.Background(), result.RunID)
	require.NoError(t, err)
	assert.Len(t, records, 40)
}

func TestTransformFileMissingInput(t *testing.T) {
	a := newTestApplication(t, false)

	_, _, err := a.TransformFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestRouter(t *testing.T) {
	a := newTestApplication(t, true)
	server := httptest.NewServer(a.Router)
	defer server.Close()

	get := func(path string) (*http.Response, string) {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp, string(body)
	}

	resp, body := get("/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"storage"`)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, _ = get("/api/v1/vocabularies")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = get("/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "/errors/not-found")

	f := gofakeit.New(5)
	upload := testutil.FundingCSV(testutil.DatasetHeader, testutil.FundingRows(f, 12))
	post, err := http.Post(server.URL+"/api/v1/transform?source=api.csv", "text/csv", strings.NewReader(upload))
	require.NoError(t, err)
	defer post.Body.Close()
	require.Equal(t, http.StatusOK, post.StatusCode)

	var out struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.NewDecoder(post.Body).Decode(&out))
	require.NotEmpty(t, out.RunID)

	resp, body = get("/api/v1/runs/" + out.RunID + "/summary")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"total_rows":12`)

	resp, body = get("/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "funding_runs_total")
	assert.Contains(t, body, "funding_rows_persisted_total")
}

func TestRouterWithoutStorage(t *testing.T) {
	a := newTestApplication(t, false)
	server := httptest.NewServer(a.Router)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/runs/abc/summary")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStartStop(t *testing.T) {
	a := newTestApplication(t, false)
	a.Config.Server.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, a.Start(ctx, cancel))
	require.NoError(t, a.Stop(context.Background()))
}
