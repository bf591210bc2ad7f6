package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/dataprocessing"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/summary"
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// Sink persists finished runs
type Sink interface {
	Write(ctx context.Context, report *summary.Report, records []domain.FundingRecord) error
}

// TransformService runs the cleaning pipeline and persists the results
type TransformService struct {
	processor *dataprocessing.Processor
	sink      Sink
	logger    *slog.Logger
}

// NewTransformService creates a transform service. sink may be nil.
func NewTransformService(processor *dataprocessing.Processor, sink Sink, logger *slog.Logger) *TransformService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransformService{
		processor: processor,
		sink:      sink,
		logger:    logger.With(slog.String("service", "transform")),
	}
}

// Transform processes table, labels the report with source and writes the
// run to the sink when one is configured
func (s *TransformService) Transform(ctx context.Context, table *dataprocessing.Table, source string) (*dataprocessing.Result, error) {
	if table == nil {
		return nil, ErrNoInput
	}

	result, err := s.processor.Process(ctx, table)
	if err != nil {
		return nil, err
	}
	result.Report.Source = source

	if s.sink != nil {
		if err := s.sink.Write(ctx, result.Report, result.Records); err != nil {
			return nil, fmt.Errorf("persist run %s: %w", result.RunID, err)
		}
	}

	return result, nil
}

// TransformFile loads a CSV or XLSX file and transforms it
func (s *TransformService) TransformFile(ctx context.Context, path string) (*dataprocessing.Result, error) {
	table, err := dataprocessing.LoadFile(path)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "input loaded",
		slog.String("path", path),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Header())))

	return s.Transform(ctx, table, filepath.Base(path))
}
