package content

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-tourism-content/internal/api"
	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

const (
	msgUnexpected     = "An unexpected error occurred while generating content"
	msgProviderFailed = "The content provider could not complete the request"
	msgTimeout        = "The content provider did not respond in time"
	msgNoContent      = "The content provider returned no content"
)

type HandlerImpl struct {
	contentService ContentService
	logger         *slog.Logger
	// exposeDetails is false in production; provider bodies and wrapped errors stay server-side.
	exposeDetails bool
}

func NewHandler(contentService ContentService, logger *slog.Logger, mode string) *HandlerImpl {
	return &HandlerImpl{
		contentService: contentService,
		logger:         logger,
		exposeDetails:  mode != "production",
	}
}

// GenerateContent godoc
// @Summary      Generate marketing content
// @Description  Returns a cached template when the story names a known experience on a single platform, otherwise generates copy with Claude.
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        request body types.GenerationRequest true "Wizard session data"
// @Success      200 {object} types.GenerationResult "Generated content"
// @Failure      400 {object} types.ErrorBody "Invalid Input"
// @Failure      500 {object} types.ErrorBody "Configuration or Internal Server Error"
// @Failure      504 {object} types.ErrorBody "Provider Timeout"
// @Router       /content/generate [post]
func (h *HandlerImpl) GenerateContent(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ContentHandler").Start(r.Context(), "GenerateContent", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/content/generate"),
	))
	defer span.End()

	l := h.logger.With(slog.String("HandlerImpl", "GenerateContent"))

	var req types.GenerationRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.contentService.Generate(ctx, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Generation failed")
		h.writeError(w, r, l, err)
		return
	}

	span.SetAttributes(
		attribute.Bool("result.cached", result.Cached),
		attribute.String("result.provider", string(result.Provider)),
	)
	span.SetStatus(codes.Ok, "Content generated")
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// EnhanceContent godoc
// @Summary      Generate enhanced content
// @Description  Always calls a live provider (openai by default, or gemini) with the standard prompt. Never served from the template cache.
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        request body types.GenerationRequest true "Wizard session data with a prompt"
// @Success      200 {object} types.GenerationResult "Generated content"
// @Failure      400 {object} types.ErrorBody "Invalid Input"
// @Failure      500 {object} types.ErrorBody "Configuration or Internal Server Error"
// @Failure      504 {object} types.ErrorBody "Provider Timeout"
// @Router       /content/enhance [post]
func (h *HandlerImpl) EnhanceContent(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ContentHandler").Start(r.Context(), "EnhanceContent", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/content/enhance"),
	))
	defer span.End()

	l := h.logger.With(slog.String("HandlerImpl", "EnhanceContent"))

	var req types.GenerationRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.contentService.Enhance(ctx, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Enhancement failed")
		h.writeError(w, r, l, err)
		return
	}

	span.SetStatus(codes.Ok, "Content enhanced")
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// GetOptions godoc
// @Summary      List wizard options
// @Description  Platforms, formats, audience profiles and locations with cultural context.
// @Tags         Content
// @Produce      json
// @Success      200 {object} types.ContentOptions "Available options"
// @Router       /content/options [get]
func (h *HandlerImpl) GetOptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ContentHandler").Start(r.Context(), "GetOptions", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/content/options"),
	))
	defer span.End()

	api.WriteJSONResponse(w, r, http.StatusOK, h.contentService.Options(ctx))
}

// writeError maps service errors onto the failure envelope.
func (h *HandlerImpl) writeError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	status := http.StatusInternalServerError
	message := msgUnexpected
	details := err.Error()

	var (
		validationErr *types.ValidationError
		configErr     *types.ConfigurationError
		timeoutErr    *types.TimeoutError
		providerErr   *types.ProviderError
		missingErr    *types.MissingContentError
	)
	switch {
	case errors.As(err, &validationErr):
		status, message, details = validationErr.HTTPStatus(), validationErr.Error(), ""
	case errors.As(err, &configErr):
		status, message, details = configErr.HTTPStatus(), configErr.Error(), ""
	case errors.As(err, &timeoutErr):
		status, message = timeoutErr.HTTPStatus(), msgTimeout
		if h.exposeDetails {
			message = timeoutErr.Error()
		}
	case errors.As(err, &providerErr):
		status, message, details = providerErr.HTTPStatus(), msgProviderFailed, providerErr.Body
		if h.exposeDetails {
			message = providerErr.Error()
		}
	case errors.As(err, &missingErr):
		status, message = missingErr.HTTPStatus(), msgNoContent
	}

	if status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "Content request failed", slog.Int("status", status), slog.Any("error", err))
	} else {
		l.WarnContext(r.Context(), "Content request rejected", slog.Int("status", status), slog.Any("error", err))
	}

	if !h.exposeDetails {
		details = ""
	}
	api.ErrorResponseWithDetails(w, r, status, message, details)
}
