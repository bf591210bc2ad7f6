package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/OlixIgnacious/indian-startups-transformations/internal/errors"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/storage"
	api "github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/api/v1"
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// RunsHandler serves persisted runs
type RunsHandler struct {
	store        RunStore
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewRunsHandler creates a new runs handler
func NewRunsHandler(store RunStore, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *RunsHandler {
	return &RunsHandler{
		store:        store,
		logger:       logger.With(slog.String("component", "runs_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the run routes
func (h *RunsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/{runID}", func(r chi.Router) {
		r.Use(h.RunCtx)
		r.Get("/summary", h.GetSummary)
		r.Get("/records", h.GetRecords)
	})

	return r
}

// RunCtx validates the run id parameter
func (h *RunsHandler) RunCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runID := chi.URLParam(r, "runID")
		if runID == "" || len(runID) > 64 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("run_id", "Invalid run id"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSummary handles GET /api/v1/runs/{runID}/summary
func (h *RunsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	stats, err := h.store.Summary(r.Context(), runID)
	if errors.Is(err, storage.ErrRunNotFound) {
		h.errorHandler.HandleError(w, r, apierrors.New(http.StatusNotFound, apierrors.CodeNotFound, "run not found"))
		return
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.RunSummaryResponse{RunID: runID, Summary: stats})
}

// GetRecords handles GET /api/v1/runs/{runID}/records. An unknown run
// answers 404 rather than an empty list.
func (h *RunsHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	records, err := h.store.Rounds(r.Context(), runID)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if len(records) == 0 {
		records = []domain.FundingRecord{}
		if _, err := h.store.Summary(r.Context(), runID); errors.Is(err, storage.ErrRunNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.New(http.StatusNotFound, apierrors.CodeNotFound, "run not found"))
			return
		}
	}

	render.JSON(w, r, api.RunRecordsResponse{RunID: runID, Count: len(records), Records: records})
}
