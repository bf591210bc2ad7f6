package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/dataprocessing"
	apierrors "github.com/OlixIgnacious/indian-startups-transformations/internal/errors"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/exporter"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/middleware"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/summary"
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// Accepted upload media types
const (
	MediaTypeCSV  = "text/csv"
	MediaTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DefaultSource labels uploads that carry no source query parameter
const DefaultSource = "upload"

// TransformResponse is the JSON body of a finished run
type TransformResponse struct {
	RunID   string                 `json:"run_id"`
	Report  *summary.Report        `json:"report"`
	Records []domain.FundingRecord `json:"records"`
}

// TransformHandler runs uploaded tables through the pipeline
type TransformHandler struct {
	service      TransformServiceInterface
	maxBodyBytes int64
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewTransformHandler creates a new transform handler
func NewTransformHandler(service TransformServiceInterface, maxBodyBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *TransformHandler {
	return &TransformHandler{
		service:      service,
		maxBodyBytes: maxBodyBytes,
		logger:       logger.With(slog.String("component", "transform_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the transform routes
func (h *TransformHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.BodyLimit(h.maxBodyBytes))
	r.Use(middleware.ContentTypeValidator(h.errorHandler, MediaTypeCSV, MediaTypeXLSX))

	r.Post("/", h.Transform)

	return r
}

// Transform handles POST /api/v1/transform. The response is the cleaned
// table as CSV when the client accepts text/csv, JSON otherwise.
func (h *TransformHandler) Transform(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	table, err := h.load(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	source := r.URL.Query().Get("source")
	if source == "" {
		source = DefaultSource
	}

	result, err := h.service.Transform(ctx, table, source)
	if err != nil {
		if errors.Is(err, dataprocessing.ErrColumnMissing) {
			err = apierrors.ColumnMissingError(err)
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "upload transformed",
		slog.String("run_id", result.RunID),
		slog.String("source", source),
		slog.Int("rows", len(result.Records)))

	if wantsCSV(r) {
		w.Header().Set("Content-Type", MediaTypeCSV+"; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.RunID+".csv"))
		w.Header().Set("X-Run-ID", result.RunID)
		if err := exporter.EncodeTable(w, result.Table, false); err != nil {
			h.logger.ErrorContext(ctx, "failed to stream table", slog.String("error", err.Error()))
		}
		return
	}

	records := result.Records
	if records == nil {
		records = []domain.FundingRecord{}
	}
	render.JSON(w, r, TransformResponse{
		RunID:   result.RunID,
		Report:  result.Report,
		Records: records,
	})
}

// load decodes the request body by media type
func (h *TransformHandler) load(r *http.Request) (*dataprocessing.Table, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var load func(io.Reader) (*dataprocessing.Table, error) = dataprocessing.LoadCSV
	if strings.EqualFold(mediaType, MediaTypeXLSX) {
		load = dataprocessing.LoadXLSX
	}

	table, err := load(r.Body)
	if err == nil {
		return table, nil
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return nil, err
	case errors.Is(err, dataprocessing.ErrEmptyInput):
		return nil, apierrors.EmptyInputError()
	default:
		return nil, apierrors.InvalidRequestWithError(err)
	}
}

// wantsCSV reports whether the Accept header prefers text/csv
func wantsCSV(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && strings.EqualFold(mediaType, MediaTypeCSV) {
			return true
		}
	}
	return false
}
