package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics holds the application instruments
type PipelineMetrics struct {
	// Pipeline metrics
	RunsTotal       metric.Int64Counter
	RunDuration     metric.Float64Histogram
	StageDuration   metric.Float64Histogram
	RowsProcessed   metric.Int64Counter
	MissingAmounts  metric.Int64Counter
	OutliersFlagged metric.Int64Counter
	FallbackLabels  metric.Int64Counter
	ColumnsSkipped  metric.Int64Counter
	RowsPersisted   metric.Int64Counter

	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
}

// NewPipelineMetrics creates the instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	m := &PipelineMetrics{}
	var err error

	if m.RunsTotal, err = meter.Int64Counter(
		"funding_runs_total",
		metric.WithDescription("Total number of transformation runs"),
	); err != nil {
		return nil, err
	}

	if m.RunDuration, err = meter.Float64Histogram(
		"funding_run_duration_seconds",
		metric.WithDescription("Transformation run duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.StageDuration, err = meter.Float64Histogram(
		"funding_stage_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.RowsProcessed, err = meter.Int64Counter(
		"funding_rows_processed_total",
		metric.WithDescription("Total number of funding rows transformed"),
	); err != nil {
		return nil, err
	}

	if m.MissingAmounts, err = meter.Int64Counter(
		"funding_missing_amounts_total",
		metric.WithDescription("Rows whose amount normalized to missing"),
	); err != nil {
		return nil, err
	}

	if m.OutliersFlagged, err = meter.Int64Counter(
		"funding_outliers_total",
		metric.WithDescription("Rows flagged as outliers, by method"),
	); err != nil {
		return nil, err
	}

	if m.FallbackLabels, err = meter.Int64Counter(
		"funding_fallback_labels_total",
		metric.WithDescription("Values that fell through to the fallback label, by field"),
	); err != nil {
		return nil, err
	}

	if m.ColumnsSkipped, err = meter.Int64Counter(
		"funding_columns_skipped_total",
		metric.WithDescription("Expected columns absent from the input"),
	); err != nil {
		return nil, err
	}

	if m.RowsPersisted, err = meter.Int64Counter(
		"funding_rows_persisted_total",
		metric.WithDescription("Rows written to the SQL sink"),
	); err != nil {
		return nil, err
	}

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordRun records one finished transformation run
func RecordRun(ctx context.Context, m *PipelineMetrics, duration time.Duration, rows int, err error) {
	if m == nil {
		return
	}

	status := attribute.String("status", "success")
	if err != nil {
		status = attribute.String("status", "failure")
	}

	m.RunsTotal.Add(ctx, 1, metric.WithAttributes(status))
	m.RunDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(status))
	if err == nil {
		m.RowsProcessed.Add(ctx, int64(rows))
	}
}

// RecordStage records the duration of one pipeline stage
func RecordStage(ctx context.Context, m *PipelineMetrics, stage string, duration time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordOutliers records flagged row counts per method
func RecordOutliers(ctx context.Context, m *PipelineMetrics, zscore, iqr, total int) {
	if m == nil {
		return
	}
	m.OutliersFlagged.Add(ctx, int64(zscore), metric.WithAttributes(attribute.String("method", "zscore")))
	m.OutliersFlagged.Add(ctx, int64(iqr), metric.WithAttributes(attribute.String("method", "iqr")))
	m.OutliersFlagged.Add(ctx, int64(total), metric.WithAttributes(attribute.String("method", "any")))
}

// RecordFallbacks records how many values of field got the fallback label
func RecordFallbacks(ctx context.Context, m *PipelineMetrics, field string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.FallbackLabels.Add(ctx, int64(count), metric.WithAttributes(attribute.String("field", field)))
}

// RecordHTTPRequest records one served request
func RecordHTTPRequest(ctx context.Context, m *PipelineMetrics, route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("route", route),
		attribute.String("method", method),
		attribute.Int("status", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}
