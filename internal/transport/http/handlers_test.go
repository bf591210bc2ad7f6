package http

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/dataprocessing"
	apierrors "github.com/OlixIgnacious/indian-startups-transformations/internal/errors"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/services"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/shared/testutil"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/storage"
	api "github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/api/v1"
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// MockTransformService is a mock implementation of TransformServiceInterface
type MockTransformService struct {
	mock.Mock
}

func (m *MockTransformService) Transform(ctx context.Context, table *dataprocessing.Table, source string) (*dataprocessing.Result, error) {
	args := m.Called(table, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dataprocessing.Result), args.Error(1)
}

// MockRunStore is a mock implementation of RunStore
type MockRunStore struct {
	mock.Mock
}

func (m *MockRunStore) Summary(ctx context.Context, runID string) (domain.SummaryStatistics, error) {
	args := m.Called(runID)
	return args.Get(0).(domain.SummaryStatistics), args.Error(1)
}

func (m *MockRunStore) Rounds(ctx context.Context, runID string) ([]domain.FundingRecord, error) {
	args := m.Called(runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundingRecord), args.Error(1)
}

type stubHealth struct{ status string }

func (s stubHealth) HealthCheck(context.Context) services.HealthStatus {
	return services.HealthStatus{Status: s.status, Version: "test"}
}

func newErrorHandler(t *testing.T) *apierrors.ErrorHandler {
	logger, _ := testutil.NewTestLogger(t)
	return apierrors.NewErrorHandler(logger, false)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func realTransformService(t *testing.T, opts dataprocessing.Options) *services.TransformService {
	logger, _ := testutil.NewTestLogger(t)
	return services.NewTransformService(dataprocessing.NewProcessor(logger, opts, nil), nil, logger)
}

func fundingCSV(n int) string {
	f := gofakeit.New(3)
	return testutil.FundingCSV(testutil.DatasetHeader, testutil.FundingRows(f, n))
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		status     string
		wantStatus int
	}{
		{services.StatusHealthy, http.StatusOK},
		{services.StatusDegraded, http.StatusOK},
		{services.StatusUnhealthy, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			h := NewHealthHandler(stubHealth{status: tt.status}, logger)

			rec := httptest.NewRecorder()
			h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.status, decodeBody(t, rec)["status"])
		})
	}
}

func TestVersionHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewHealthHandler(stubHealth{status: services.StatusHealthy}, logger)

	rec := httptest.NewRecorder()
	h.Version(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["version"])
	assert.Equal(t, "v1", body["api_version"])
}

func TestMetricsHandler(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		h := NewMetricsHandler(nil, newErrorHandler(t))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("enabled", func(t *testing.T) {
		exposition := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("funding_runs_total 1\n"))
		})
		h := NewMetricsHandler(exposition, newErrorHandler(t))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "funding_runs_total")
	})
}

func vocabularyRouter(t *testing.T) chi.Router {
	logger, _ := testutil.NewTestLogger(t)
	h := NewVocabularyHandler(services.NewVocabularyService(), logger, newErrorHandler(t))

	r := chi.NewRouter()
	r.Mount("/vocabularies", h.Routes())
	r.Post("/canonicalize", h.Canonicalize)
	return r
}

func TestVocabularyHandler_List(t *testing.T) {
	r := vocabularyRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vocabularies", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 3)
	assert.Equal(t, "city", body[0]["field"])
	assert.Equal(t, "lookup", body[0]["kind"])
}

func TestVocabularyHandler_Get(t *testing.T) {
	r := vocabularyRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vocabularies/industry", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "pattern", body["kind"])
	assert.Equal(t, "other", body["fallback"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vocabularies/remarks", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierrors.TypeUnknownField, decodeBody(t, rec)["type"])
}

func TestVocabularyHandler_Canonicalize(t *testing.T) {
	r := vocabularyRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantLabels []string
		wantType   string
	}{
		{
			name:       "cities",
			body:       `{"field":"city","values":["Bangalore","New Delhi","Chandigarh"]}`,
			wantStatus: http.StatusOK,
			wantLabels: []string{"bengaluru", "delhi", "chandigarh"},
		},
		{
			name:       "investment types",
			body:       `{"field":"investment_type","values":["Seed Funding","mystery"]}`,
			wantStatus: http.StatusOK,
			wantLabels: []string{"seed", "other"},
		},
		{
			name:       "malformed json",
			body:       `{"field":`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:       "unknown field",
			body:       `{"field":"remarks","values":["x"]}`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:       "no values",
			body:       `{"field":"city","values":[]}`,
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/canonicalize", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantLabels != nil {
				var resp api.CanonicalizeResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantLabels, resp.Labels)
				return
			}
			assert.Equal(t, tt.wantType, decodeBody(t, rec)["type"])
		})
	}
}

func transformRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/?source=funding.csv", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	return req
}

func TestTransformHandler_JSON(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewTransformHandler(realTransformService(t, dataprocessing.DefaultOptions()), 1<<20, logger, newErrorHandler(t))

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, transformRequest(fundingCSV(20), "text/csv; charset=utf-8"))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp TransformResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RunID)
	assert.Len(t, resp.Records, 20)
	require.NotNil(t, resp.Report)
	assert.Equal(t, "funding.csv", resp.Report.Source)
	assert.Equal(t, 20, resp.Report.Amount.TotalRows)
}

func TestTransformHandler_CSV(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	h := NewTransformHandler(realTransformService(t, dataprocessing.DefaultOptions()), 1<<20, logger, newErrorHandler(t))

	req := transformRequest(fundingCSV(5), "text/csv")
	req.Header.Set("Accept", "text/csv")
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	assert.NotEmpty(t, rec.Header().Get("X-Run-ID"))

	rows, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Contains(t, rows[0], "amount_bucket")
	assert.Contains(t, rows[0], "is_outlier")
}

func TestTransformHandler_Errors(t *testing.T) {
	strict := dataprocessing.DefaultOptions()
	strict.Strict = true

	tests := []struct {
		name        string
		opts        dataprocessing.Options
		maxBody     int64
		body        string
		contentType string
		wantStatus  int
		wantType    string
	}{
		{
			name:        "wrong media type",
			opts:        dataprocessing.DefaultOptions(),
			body:        "a,b\n1,2\n",
			contentType: "text/plain",
			wantStatus:  http.StatusUnsupportedMediaType,
			wantType:    apierrors.TypeUnsupportedMedia,
		},
		{
			name:        "empty body",
			opts:        dataprocessing.DefaultOptions(),
			body:        "",
			contentType: "text/csv",
			wantStatus:  http.StatusBadRequest,
			wantType:    apierrors.TypeEmptyInput,
		},
		{
			name:        "strict missing column",
			opts:        strict,
			body:        "Startup Name,Amount in USD\nOla,100\n",
			contentType: "text/csv",
			wantStatus:  http.StatusUnprocessableEntity,
			wantType:    apierrors.TypeColumnMissing,
		},
		{
			name:        "body too large",
			opts:        dataprocessing.DefaultOptions(),
			maxBody:     64,
			body:        fundingCSV(50),
			contentType: "text/csv",
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantType:    apierrors.TypePayloadTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			maxBody := tt.maxBody
			if maxBody == 0 {
				maxBody = 1 << 20
			}
			h := NewTransformHandler(realTransformService(t, tt.opts), maxBody, logger, newErrorHandler(t))

			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, transformRequest(tt.body, tt.contentType))

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantType, decodeBody(t, rec)["type"])
		})
	}
}

func TestTransformHandler_ServiceFailure(t *testing.T) {
	svc := new(MockTransformService)
	svc.On("Transform", mock.Anything, "upload").Return(nil, errors.New("sink unreachable"))

	logger, _ := testutil.NewTestLogger(t)
	h := NewTransformHandler(svc, 1<<20, logger, newErrorHandler(t))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a,b\n1,2\n"))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	svc.AssertExpectations(t)
}

func runsRouter(t *testing.T, store RunStore) chi.Router {
	logger, _ := testutil.NewTestLogger(t)
	return NewRunsHandler(store, logger, newErrorHandler(t)).Routes()
}

func TestRunsHandler_Summary(t *testing.T) {
	mean := domain.Known(12.5)
	store := new(MockRunStore)
	store.On("Summary", "run-1").Return(domain.SummaryStatistics{TotalRows: 4, Count: 2, Mean: mean}, nil)
	store.On("Summary", "missing").Return(domain.SummaryStatistics{}, storage.ErrRunNotFound)

	r := runsRouter(t, store)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/run-1/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.RunSummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "run-1", resp.RunID)
	assert.Equal(t, 4, resp.Summary.TotalRows)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing/summary", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	store.AssertExpectations(t)
}

func TestRunsHandler_Records(t *testing.T) {
	store := new(MockRunStore)
	store.On("Rounds", "run-1").Return([]domain.FundingRecord{{Row: 1, Startup: "Ola"}}, nil)
	store.On("Rounds", "missing").Return(nil, nil)
	store.On("Summary", "missing").Return(domain.SummaryStatistics{}, storage.ErrRunNotFound)

	r := runsRouter(t, store)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/run-1/records", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.RunRecordsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Ola", resp.Records[0].Startup)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing/records", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	store.AssertExpectations(t)
}
