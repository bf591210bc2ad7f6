package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/config"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/shared/testutil"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/summary"
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

type fakeTable struct {
	header []string
	rows   [][]string
}

func (f fakeTable) Header() []string { return f.header }
func (f fakeTable) Rows() [][]string { return f.rows }

func sampleTable() fakeTable {
	return fakeTable{
		header: []string{"startup", "city", "amount"},
		rows: [][]string{
			{"Ola", "bengaluru", "100"},
			{"Café, Inc", "mumbai", ""},
		},
	}
}

func sampleRecords() []domain.FundingRecord {
	return []domain.FundingRecord{
		{Row: 1, City: "bengaluru", Industry: "fintech", Year: 2016, Amount: domain.Known(100)},
		{Row: 2, City: "bengaluru", Industry: "edtech", Year: 2019, Amount: domain.Known(300),
			OutlierFlag: domain.NewOutlierFlag(false, true)},
		{Row: 3, City: "mumbai", Industry: "fintech", Amount: domain.Missing()},
		{Row: 4, City: "", Year: 2017, Amount: domain.Known(50)},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteTable(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(nil)

	path := filepath.Join(dir, "nested", "out.csv")
	require.NoError(t, w.WriteTable(path, sampleTable(), true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, utf8BOM))
	assert.Equal(t, [][]string{
		{"startup", "city", "amount"},
		{"Ola", "bengaluru", "100"},
		{"Café, Inc", "mumbai", ""},
	}, readCSV(t, path))

	// rewriting replaces the file
	require.NoError(t, w.WriteTable(path, fakeTable{header: []string{"a"}}, false))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(data))
}

func TestEncodeTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeTable(&buf, sampleTable(), false))
	assert.Equal(t, "startup,city,amount\nOla,bengaluru,100\n\"Café, Inc\",mumbai,\n", buf.String())
}

func TestGenerateCategorySummaries(t *testing.T) {
	c := NewCategoryExporter(NewCSVWriter(nil))

	summaries, err := c.GenerateCategorySummaries(sampleRecords(), GroupCity)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	blr := summaries[0]
	assert.Equal(t, "bengaluru", blr.Label)
	assert.Equal(t, 2, blr.Rounds)
	assert.Equal(t, 2, blr.WithAmount)
	assert.Equal(t, 400.0, blr.TotalAmount)
	assert.Equal(t, "200", blr.MeanAmount.String())
	assert.Equal(t, "300", blr.MaxAmount.String())
	assert.Equal(t, 1, blr.Outliers)
	assert.Equal(t, 2016, blr.FirstYear)
	assert.Equal(t, 2019, blr.LastYear)

	// ties are ordered by label, so the unlabelled group sorts first
	assert.Equal(t, "", summaries[1].Label)
	mumbai := summaries[2]
	assert.Equal(t, "mumbai", mumbai.Label)
	assert.Equal(t, 0, mumbai.WithAmount)
	assert.True(t, mumbai.MeanAmount.IsMissing())
	assert.Zero(t, mumbai.FirstYear)

	byYear, err := c.GenerateCategorySummaries(sampleRecords(), GroupYear)
	require.NoError(t, err)
	labels := make([]string, 0, len(byYear))
	for _, s := range byYear {
		labels = append(labels, s.Label)
	}
	assert.ElementsMatch(t, []string{"", "2016", "2017", "2019"}, labels)

	_, err = c.GenerateCategorySummaries(sampleRecords(), "country")
	assert.Error(t, err)
}

func TestExportCategorySummary(t *testing.T) {
	c := NewCategoryExporter(NewCSVWriter(nil))
	summaries, err := c.GenerateCategorySummaries(sampleRecords(), GroupIndustry)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "by_industry.csv")
	require.NoError(t, c.ExportCategorySummary(summaries, path, false))

	rows := readCSV(t, path)
	require.Len(t, rows, 4)
	assert.Equal(t, "group", rows[0][0])
	assert.Equal(t, []string{"industry", "fintech", "2", "1", "100.00", "100.00", "100.00", "0", "2016", "2016"}, rows[1])
}

func TestEncodeRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeRecords(&buf, nil))
	assert.JSONEq(t, "[]", buf.String())

	buf.Reset()
	require.NoError(t, EncodeRecords(&buf, sampleRecords()[2:3]))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Nil(t, decoded[0]["amount"])
	assert.Equal(t, "mumbai", decoded[0]["city"])
}

func TestExport(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	exp := NewExporter(logger, Options{
		BOM:        true,
		Records:    true,
		Breakdowns: []string{GroupCity, GroupYear},
	})

	paths := config.ResolveOutputPaths("startup_funding.csv", filepath.Join(t.TempDir(), "out"))
	report := &summary.Report{
		RunID:       "run-1",
		GeneratedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Amount:      summary.Summarize([]domain.Number{domain.Known(100), domain.Known(300)}, nil),
		Buckets:     map[domain.Bucket]int{domain.BucketVerySmall: 2},
	}

	written, err := exp.Export(context.Background(), paths, Output{
		Table:   sampleTable(),
		Records: sampleRecords(),
		Report:  report,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		paths.Table, paths.SummaryJSON, paths.SummaryText, paths.Records,
		paths.Breakdown(GroupCity), paths.Breakdown(GroupYear),
	}, written)
	for _, p := range written {
		assert.FileExists(t, p)
	}

	var decoded summary.Report
	data, err := os.ReadFile(paths.SummaryJSON)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, 2, decoded.Amount.Count)

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "export complete")
}

func TestExportMinimal(t *testing.T) {
	exp := NewExporter(nil, Options{})
	paths := config.ResolveOutputPaths("in.csv", t.TempDir())

	written, err := exp.Export(context.Background(), paths, Output{
		Table:  sampleTable(),
		Report: &summary.Report{RunID: "r"},
	})
	require.NoError(t, err)
	assert.Len(t, written, 3)
	assert.NoFileExists(t, paths.Records)

	_, err = exp.Export(context.Background(), paths, Output{Table: sampleTable()})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = exp.Export(ctx, paths, Output{Table: sampleTable(), Report: &summary.Report{}})
	assert.ErrorIs(t, err, context.Canceled)
}
