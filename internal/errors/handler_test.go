package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/infrastructure"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/shared/testutil"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestProblemDetailsJSON(t *testing.T) {
	p := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "", "/x").
		WithExtension("trace_id", "abc").
		WithExtension("status", "ignored")

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"/errors/validation","title":"Bad Request","status":400,"instance":"/x","trace_id":"abc"}`, string(data))
}

func TestHandleError(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantCode   string
	}{
		{"validation", ErrValidation("field", "field is required"), http.StatusBadRequest, TypeValidation, CodeValidationFailed},
		{"wrapped api error", fmt.Errorf("canonicalize: %w", UnknownFieldError("country", []string{"city"})), http.StatusNotFound, TypeUnknownField, CodeUnknownField},
		{"column missing", ColumnMissingError(fmt.Errorf("city: column missing")), http.StatusUnprocessableEntity, TypeColumnMissing, CodeColumnMissing},
		{"empty input", EmptyInputError(), http.StatusBadRequest, TypeEmptyInput, CodeEmptyInput},
		{"media type", UnsupportedMediaTypeError("text/plain", []string{"text/csv"}), http.StatusUnsupportedMediaType, TypeUnsupportedMedia, CodeUnsupportedMediaType},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, TypePayloadTooLarge, CodePayloadTooLarge},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, TypeTimeout, ""},
		{"unknown", fmt.Errorf("disk on fire"), http.StatusInternalServerError, TypeInternal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/transform", nil)
			req = req.WithContext(infrastructure.WithTraceID(req.Context(), "trace-1"))
			rec := httptest.NewRecorder()

			h.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeProblem(t, rec)
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			assert.Equal(t, "/api/v1/transform", body["instance"])
			assert.Equal(t, "trace-1", body["trace_id"])
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["error_code"])
			}
		})
	}

	testutil.AssertLogContains(t, handler, slog.LevelWarn, "request failed")
	assert.True(t, handler.ContainsAttr("error", "disk on fire"))
}

func TestHandleErrorDetails(t *testing.T) {
	h := NewErrorHandler(nil, false)
	rec := httptest.NewRecorder()
	h.HandleError(rec, httptest.NewRequest(http.MethodPost, "/", nil), NewValidationErrors([]ValidationError{
		{Field: "field", Message: "field is required"},
		{Field: "values", Message: "values must contain at least 1 item"},
	}))

	body := decodeProblem(t, rec)
	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, details["errors"], 2)
}

func TestHandleErrorNil(t *testing.T) {
	h := NewErrorHandler(nil, false)
	rec := httptest.NewRecorder()
	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Empty(t, rec.Body.String())
}

func TestRecoveryMiddleware(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, true)

	panicky := RecoveryMiddleware(h)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	panicky.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeInternal, body["type"])
	assert.Equal(t, "boom", body["panic"])
	assert.True(t, strings.Contains(body["stack"].(string), "goroutine"))
	assert.True(t, handler.ContainsMessage("panic recovered"))
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := NewErrorHandler(nil, false)

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, TypeNotFound, decodeProblem(t, rec)["type"])

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/healthz", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, decodeProblem(t, rec)["detail"], "DELETE")
}
