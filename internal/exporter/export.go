package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/config"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/summary"
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// Output is what one run hands to the exporter
type Output struct {
	Table   Tabular
	Records []domain.FundingRecord
	Report  *summary.Report
}

// Options select the optional files
type Options struct {
	BOM        bool
	Records    bool
	Breakdowns []string
}

// Exporter writes the files of a run
type Exporter struct {
	logger     *slog.Logger
	csvWriter  *CSVWriter
	categories *CategoryExporter
	opts       Options
}

// NewExporter creates an exporter
func NewExporter(logger *slog.Logger, opts Options) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	csvWriter := NewCSVWriter(logger)
	return &Exporter{
		logger:     logger.With(slog.String("component", "exporter")),
		csvWriter:  csvWriter,
		categories: NewCategoryExporter(csvWriter),
		opts:       opts,
	}
}

// Export writes the table, both summary formats and the optional files.
// It returns the paths written, in order.
func (e *Exporter) Export(ctx context.Context, paths config.OutputPaths, out Output) ([]string, error) {
	if out.Table == nil || out.Report == nil {
		return nil, fmt.Errorf("nothing to export")
	}
	if err := paths.EnsureDir(); err != nil {
		return nil, err
	}

	var written []string
	step := func(path string, write func() error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := write(); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	if err := step(paths.Table, func() error {
		return e.csvWriter.WriteTable(paths.Table, out.Table, e.opts.BOM)
	}); err != nil {
		return written, err
	}
	if err := step(paths.SummaryJSON, func() error {
		return summary.SaveJSON(out.Report, paths.SummaryJSON)
	}); err != nil {
		return written, err
	}
	if err := step(paths.SummaryText, func() error {
		return summary.SaveText(out.Report, paths.SummaryText)
	}); err != nil {
		return written, err
	}

	if e.opts.Records {
		if err := step(paths.Records, func() error {
			return WriteRecordsJSON(out.Records, paths.Records)
		}); err != nil {
			return written, err
		}
	}

	for _, group := range e.opts.Breakdowns {
		summaries, err := e.categories.GenerateCategorySummaries(out.Records, group)
		if err != nil {
			return written, err
		}
		path := paths.Breakdown(group)
		if err := step(path, func() error {
			return e.categories.ExportCategorySummary(summaries, path, e.opts.BOM)
		}); err != nil {
			return written, err
		}
	}

	e.logger.InfoContext(ctx, "export complete",
		slog.String("dir", paths.Dir),
		slog.Int("files", len(written)))

	return written, nil
}
