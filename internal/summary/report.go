package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// Report is everything a run knows about its output, beyond the rows
type Report struct {
	RunID          string                    `json:"run_id"`
	Source         string                    `json:"source,omitempty"`
	GeneratedAt    time.Time                 `json:"generated_at"`
	Amount         domain.SummaryStatistics  `json:"amount"`
	ZScoreOutliers int                       `json:"zscore_outliers"`
	IQROutliers    int                       `json:"iqr_outliers"`
	Buckets        map[domain.Bucket]int     `json:"buckets"`
	Categories     map[string]map[string]int `json:"categories,omitempty"`
	Investors      InvestorStats             `json:"investors"`
	SkippedColumns []string                  `json:"skipped_columns,omitempty"`
}

// InvestorStats describes the parsed investor lists
type InvestorStats struct {
	Present       bool `json:"present"`
	RowsWithNames int  `json:"rows_with_names"`
	TotalNames    int  `json:"total_names"`
	MaxPerRow     int  `json:"max_per_row"`
}

// SaveJSON writes the report as indented JSON, creating parent directories
func SaveJSON(report *Report, outputPath string) error {
	if report == nil {
		return fmt.Errorf("no report to save")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return nil
}

// SaveText writes the human readable report to outputPath
func SaveText(report *Report, outputPath string) error {
	if report == nil {
		return fmt.Errorf("no report to save")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer file.Close()

	return WriteText(file, report)
}

// WriteText renders the report in the plain-text layout
func WriteText(w io.Writer, report *Report) error {
	s := report.Amount
	p := &textPrinter{w: w}

	p.printf("Startup Funding Transformation - Summary Report\n")
	p.printf("===============================================\n\n")
	p.printf("Run: %s\n", report.RunID)
	if report.Source != "" {
		p.printf("Source: %s\n", report.Source)
	}
	p.printf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	p.printf("AMOUNT STATISTICS\n")
	p.printf("-----------------\n")
	p.printf("Rows: %d (with amount: %d)\n", s.TotalRows, s.Count)
	p.printf("Min: %s\n", formatNumber(s.Min))
	p.printf("Max: %s\n", formatNumber(s.Max))
	p.printf("Mean: %s\n", formatNumber(s.Mean))
	p.printf("Median: %s\n", formatNumber(s.Median))
	p.printf("Std Dev: %s\n", formatNumber(s.StdDev))
	p.printf("Q1: %s\n", formatNumber(s.Q1))
	p.printf("Q3: %s\n", formatNumber(s.Q3))
	p.printf("IQR: %s\n\n", formatNumber(s.IQR))

	p.printf("OUTLIERS\n")
	p.printf("--------\n")
	if s.OutlierCount == nil || s.OutlierPct == nil {
		p.printf("Not computed\n\n")
	} else {
		p.printf("Flagged: %d (%.2f%% of rows)\n", *s.OutlierCount, *s.OutlierPct)
		p.printf("Z-score: %d, IQR: %d\n\n", report.ZScoreOutliers, report.IQROutliers)
	}

	p.printf("AMOUNT BUCKETS\n")
	p.printf("--------------\n")
	for _, b := range append(domain.Tiers(), domain.BucketUnknown) {
		p.printf("%-11s %d\n", b, report.Buckets[b])
	}
	p.printf("\n")

	fields := make([]string, 0, len(report.Categories))
	for field := range report.Categories {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		p.printf("%s\n", field)
		for _, lc := range sortedCounts(report.Categories[field]) {
			p.printf("  %-20s %d\n", lc.label, lc.count)
		}
	}

	if report.Investors.Present {
		p.printf("\nINVESTORS\n")
		p.printf("---------\n")
		p.printf("Rows with names: %d, names: %d, max per row: %d\n",
			report.Investors.RowsWithNames, report.Investors.TotalNames, report.Investors.MaxPerRow)
	}

	if len(report.SkippedColumns) > 0 {
		p.printf("\nSkipped columns (absent from input): %v\n", report.SkippedColumns)
	}

	return p.err
}

type labelCount struct {
	label string
	count int
}

// sortedCounts orders by descending count, then label
func sortedCounts(counts map[string]int) []labelCount {
	out := make([]labelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, labelCount{label: label, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].label < out[j].label
	})
	return out
}

func formatNumber(n domain.Number) string {
	v, ok := n.Float64()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", v)
}

// textPrinter keeps the first write error
type textPrinter struct {
	w   io.Writer
	err error
}

func (p *textPrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
