package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/config"
)

func testTelemetryConfig() config.TelemetryConfig {
	return config.TelemetryConfig{
		ServiceName:    "funding-transform-test",
		Environment:    "test",
		EnableMetrics:  true,
		MetricExporter: "prometheus",
		TraceExporter:  "none",
		SampleRatio:    1,
	}
}

func TestOTelInitialization(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	providers, err := InitializeOTel(testTelemetryConfig(), logger)
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.Nil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	require.NotNil(t, providers.PrometheusHTTP)

	metrics, err := NewPipelineMetrics(providers.Meter)
	require.NoError(t, err)
	RecordRun(context.Background(), metrics, 250*time.Millisecond, 42, nil)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "funding_runs")
	assert.Contains(t, rec.Body.String(), "funding_rows_processed")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelInitializationRepeated(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for i := 0; i < 2; i++ {
		providers, err := InitializeOTel(testTelemetryConfig(), logger)
		require.NoError(t, err)
		_, err = NewPipelineMetrics(providers.Meter)
		require.NoError(t, err)
		require.NoError(t, providers.Shutdown(context.Background()))
	}
}

func TestOTelDisabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testTelemetryConfig()
	cfg.EnableMetrics = false

	providers, err := InitializeOTel(cfg, logger)
	require.NoError(t, err)

	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	assert.NotNil(t, providers.Meter, "no-op meter")

	_, err = NewPipelineMetrics(providers.Meter)
	assert.NoError(t, err)
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestOTelUnsupportedExporter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testTelemetryConfig()
	cfg.MetricExporter = "otlp"

	_, err := InitializeOTel(cfg, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported metric exporter")
}

func TestTraceIDFromContext(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))

	// no-op spans are not recording
	RecordError(context.Background(), errors.New("ignored"))
}

func TestPipelineMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(context.Background())

	m, err := NewPipelineMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	RecordRun(ctx, m, time.Second, 10, nil)
	RecordRun(ctx, m, time.Second, 10, errors.New("failed"))
	RecordOutliers(ctx, m, 1, 2, 2)
	RecordFallbacks(ctx, m, "industry", 3)
	RecordFallbacks(ctx, m, "city", 0)
	RecordStage(ctx, m, "amount", time.Millisecond)
	RecordHTTPRequest(ctx, m, "/healthz", http.MethodGet, http.StatusOK, time.Millisecond)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	sums := map[string]int64{}
	histograms := map[string]uint64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			switch data := md.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					sums[md.Name] += dp.Value
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					histograms[md.Name] += dp.Count
				}
			}
		}
	}

	assert.Equal(t, int64(2), sums["funding_runs_total"])
	assert.Equal(t, int64(10), sums["funding_rows_processed_total"], "failed runs add no rows")
	assert.Equal(t, int64(5), sums["funding_outliers_total"])
	assert.Equal(t, int64(3), sums["funding_fallback_labels_total"])
	assert.Equal(t, int64(1), sums["http_requests_total"])
	assert.Equal(t, uint64(2), histograms["funding_run_duration_seconds"])
	assert.Equal(t, uint64(1), histograms["funding_stage_duration_seconds"])
}

func TestPipelineMetricsNil(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordRun(ctx, nil, time.Second, 1, nil)
		RecordStage(ctx, nil, "amount", time.Second)
		RecordOutliers(ctx, nil, 1, 1, 1)
		RecordFallbacks(ctx, nil, "city", 1)
		RecordHTTPRequest(ctx, nil, "/", http.MethodGet, http.StatusOK, time.Second)
	})
}
