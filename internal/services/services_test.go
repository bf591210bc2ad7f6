package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/canonical"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/dataprocessing"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/shared/testutil"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/summary"
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

type recordingSink struct {
	report  *summary.Report
	records []domain.FundingRecord
	err     error
}

func (s *recordingSink) Write(_ context.Context, report *summary.Report, records []domain.FundingRecord) error {
	if s.err != nil {
		return s.err
	}
	s.report = report
	s.records = records
	return nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTransformService(t *testing.T, sink Sink) *TransformService {
	logger, _ := testutil.NewTestLogger(t)
	processor := dataprocessing.NewProcessor(logger, dataprocessing.DefaultOptions(), nil)
	return NewTransformService(processor, sink, logger)
}

func fakeTable(n int) *dataprocessing.Table {
	f := gofakeit.New(7)
	return dataprocessing.NewTable(testutil.DatasetHeader, testutil.FundingRows(f, n))
}

func TestTransform(t *testing.T) {
	sink := &recordingSink{}
	svc := newTransformService(t, sink)

	result, err := svc.Transform(context.Background(), fakeTable(25), "upload.csv")
	require.NoError(t, err)

	assert.Equal(t, "upload.csv", result.Report.Source)
	assert.Len(t, result.Records, 25)
	require.NotNil(t, sink.report)
	assert.Equal(t, result.RunID, sink.report.RunID)
	assert.Len(t, sink.records, 25)
}

func TestTransformWithoutSink(t *testing.T) {
	svc := newTransformService(t, nil)

	result, err := svc.Transform(context.Background(), fakeTable(3), "")
	require.NoError(t, err)
	assert.Len(t, result.Records, 3)
}

func TestTransformSinkFailure(t *testing.T) {
	boom := errors.New("disk full")
	svc := newTransformService(t, &recordingSink{err: boom})

	_, err := svc.Transform(context.Background(), fakeTable(3), "x.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "persist run")
}

func TestTransformNilTable(t *testing.T) {
	svc := newTransformService(t, nil)

	_, err := svc.Transform(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestTransformFile(t *testing.T) {
	f := gofakeit.New(11)
	path := filepath.Join(t.TempDir(), "startup_funding.csv")
	content := testutil.FundingCSV(testutil.DatasetHeader, testutil.FundingRows(f, 10))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	svc := newTransformService(t, nil)
	result, err := svc.TransformFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "startup_funding.csv", result.Report.Source)
	assert.Len(t, result.Records, 10)
}

func TestTransformFileMissing(t *testing.T) {
	svc := newTransformService(t, nil)

	_, err := svc.TransformFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestVocabularyService(t *testing.T) {
	svc := NewVocabularyService()

	assert.Equal(t, []string{"city", "industry", "investment_type"}, svc.Fields())
	assert.Len(t, svc.Describe(), 3)

	labels, err := svc.Canonicalize("investment_type", []string{"Seed Funding", "Private Equity"})
	require.NoError(t, err)
	assert.Equal(t, []string{canonical.InvestmentSeed, canonical.InvestmentPrivateEquity}, labels)

	cities, err := svc.Canonicalize("city", []string{"Bangalore", " Chandigarh "})
	require.NoError(t, err)
	assert.Equal(t, []string{"bengaluru", "chandigarh"}, cities)

	_, err = svc.Canonicalize("remarks", []string{"x"})
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name          string
		storage       Pinger
		wantStatus    string
		wantStorage   string
		storageAbsent bool
	}{
		{name: "no storage", storage: nil, wantStatus: StatusHealthy, storageAbsent: true},
		{name: "storage up", storage: stubPinger{}, wantStatus: StatusHealthy, wantStorage: StatusHealthy},
		{name: "storage down", storage: stubPinger{err: errors.New("refused")}, wantStatus: StatusDegraded, wantStorage: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			svc := NewHealthService("1.2.3", tt.storage, logger)

			status := svc.HealthCheck(context.Background())
			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Equal(t, "1.2.3", status.Version)
			assert.NotEmpty(t, status.Runtime["go_version"])

			storage, ok := status.Services["storage"]
			if tt.storageAbsent {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantStorage, storage.Status)
		})
	}
}
