package publish

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-tourism-content/internal/api"
	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

type HandlerImpl struct {
	publishService PublishService
	logger         *slog.Logger
}

func NewHandler(publishService PublishService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		publishService: publishService,
		logger:         logger,
	}
}

// Publish godoc
// @Summary      Publish content (simulated)
// @Description  Records the content as published on the given platforms. No external platform is contacted.
// @Tags         Publish
// @Accept       json
// @Produce      json
// @Param        request body types.PublishRequest true "Content to publish"
// @Success      201 {object} types.Publication "Simulated publication"
// @Failure      400 {object} types.ErrorBody "Invalid Input"
// @Router       /content/publish [post]
func (h *HandlerImpl) Publish(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PublishHandler").Start(r.Context(), "Publish", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/content/publish"),
	))
	defer span.End()

	l := h.logger.With(slog.String("HandlerImpl", "Publish"))

	var req types.PublishRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	pub, err := h.publishService.Publish(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Publish failed")
		var valErr *types.ValidationError
		if errors.As(err, &valErr) {
			api.ErrorResponse(w, r, valErr.HTTPStatus(), valErr.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to publish", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to publish content")
		return
	}

	span.SetStatus(codes.Ok, "Published")
	api.WriteJSONResponse(w, r, http.StatusCreated, pub)
}

// GetPublication godoc
// @Summary      Get a simulated publication
// @Tags         Publish
// @Produce      json
// @Param        id path string true "Publication ID"
// @Success      200 {object} types.Publication "Publication"
// @Failure      400 {object} types.ErrorBody "Invalid ID"
// @Failure      404 {object} types.ErrorBody "Not Found"
// @Router       /content/publications/{id} [get]
func (h *HandlerImpl) GetPublication(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PublishHandler").Start(r.Context(), "GetPublication", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/content/publications/{id}"),
	))
	defer span.End()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid publication ID")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid publication ID format")
		return
	}

	pub, err := h.publishService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Publication not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to fetch publication", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch publication")
		return
	}

	span.SetStatus(codes.Ok, "Publication found")
	api.WriteJSONResponse(w, r, http.StatusOK, pub)
}
