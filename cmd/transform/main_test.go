package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/services"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/shared/testutil"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, rows int) string {
	t.Helper()
	f := gofakeit.New(2024)
	path := filepath.Join(t.TempDir(), "startup_funding.csv")
	content := testutil.FundingCSV(testutil.DatasetHeader, testutil.FundingRows(f, rows))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVocabCommand(t *testing.T) {
	out, err := execute(t, "vocab")
	require.NoError(t, err)
	var all []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	assert.Len(t, all, 3)

	out, err = execute(t, "vocab", "industry")
	require.NoError(t, err)
	assert.Contains(t, out, `"field": "industry"`)

	out, err = execute(t, "vocab", "city", "Bangalore", "New Delhi")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "bengaluru"))
	assert.True(t, strings.HasSuffix(lines[1], "delhi"))

	_, err = execute(t, "vocab", "remarks")
	assert.ErrorIs(t, err, services.ErrUnknownField)
}

func TestTransformCommand(t *testing.T) {
	input := writeInput(t, 30)
	outDir := filepath.Join(t.TempDir(), "out")
	dsn := filepath.Join(t.TempDir(), "funding.db")

	out, err := execute(t, "transform", input,
		"--output-dir", outDir,
		"--breakdown", "city,year",
		"--storage-driver", "sqlite",
		"--dsn", dsn,
	)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "run "))
	assert.Contains(t, out, "startup_funding.csv, 30 rows")
	assert.Contains(t, out, "persisted to sqlite")

	for _, name := range []string{
		"startup_funding_transformed.csv",
		"startup_funding_summary.json",
		"startup_funding_summary.txt",
		"startup_funding_records.json",
		"startup_funding_by_city.csv",
		"startup_funding_by_year.csv",
	} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
	assert.FileExists(t, dsn)
}

func TestTransformCommandDirectory(t *testing.T) {
	dir := t.TempDir()
	f := gofakeit.New(1)
	for _, name := range []string{"2019.csv", "2020.csv"} {
		content := testutil.FundingCSV(testutil.DatasetHeader, testutil.FundingRows(f, 5))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	outDir := t.TempDir()

	out, err := execute(t, "transform", dir, "-o", outDir, "--records=false")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "run "))
	assert.FileExists(t, filepath.Join(outDir, "2019_transformed.csv"))
	assert.FileExists(t, filepath.Join(outDir, "2020_summary.txt"))
	assert.NoFileExists(t, filepath.Join(outDir, "2020_records.json"))
}

func TestTransformCommandErrors(t *testing.T) {
	_, err := execute(t, "transform")
	assert.Error(t, err)

	input := writeInput(t, 3)
	_, err = execute(t, "transform", input, "--output-dir", t.TempDir(), "--breakdown", "remarks")
	assert.Error(t, err)

	_, err = execute(t, "transform", filepath.Join(t.TempDir(), "missing.csv"), "--output-dir", t.TempDir())
	assert.Error(t, err)
}

func TestSummaryCommand(t *testing.T) {
	input := writeInput(t, 15)

	out, err := execute(t, "summary", input)
	require.NoError(t, err)
	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "startup_funding.csv", report["source"])
	amount, ok := report["amount"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 15, amount["total_rows"])

	out, err = execute(t, "summary", input, "--text")
	require.NoError(t, err)
	assert.Contains(t, out, "AMOUNT STATISTICS")
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "funding")
}
