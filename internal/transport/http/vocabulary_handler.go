package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/OlixIgnacious/indian-startups-transformations/internal/errors"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/middleware"
	"github.com/OlixIgnacious/indian-startups-transformations/internal/services"
	api "github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/api/v1"
)

// VocabularyHandler serves the canonical vocabularies
type VocabularyHandler struct {
	service      VocabularyServiceInterface
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewVocabularyHandler creates a new vocabulary handler
func NewVocabularyHandler(service VocabularyServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *VocabularyHandler {
	return &VocabularyHandler{
		service:      service,
		validator:    middleware.NewValidator(),
		logger:       logger.With(slog.String("component", "vocabulary_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the vocabulary routes
func (h *VocabularyHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.ListVocabularies)
	r.Get("/{field}", h.GetVocabulary)

	return r
}

// ListVocabularies handles GET /api/v1/vocabularies
func (h *VocabularyHandler) ListVocabularies(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Describe())
}

// GetVocabulary handles GET /api/v1/vocabularies/{field}
func (h *VocabularyHandler) GetVocabulary(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")
	for _, d := range h.service.Describe() {
		if d.Field == field {
			render.JSON(w, r, d)
			return
		}
	}
	h.errorHandler.HandleError(w, r, apierrors.UnknownFieldError(field, h.service.Fields()))
}

// Canonicalize handles POST /api/v1/canonicalize
func (h *VocabularyHandler) Canonicalize(w http.ResponseWriter, r *http.Request) {
	var req api.CanonicalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	labels, err := h.service.Canonicalize(req.Field, req.Values)
	if errors.Is(err, services.ErrUnknownField) {
		h.errorHandler.HandleError(w, r, apierrors.UnknownFieldError(req.Field, h.service.Fields()))
		return
	}
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.CanonicalizeResponse{
		Field:  req.Field,
		Values: req.Values,
		Labels: labels,
	})
}
