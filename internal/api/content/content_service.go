package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-tourism-content/app/observability/metrics"
	"github.com/FACorreiaa/go-tourism-content/internal/api/detector"
	generativeAI "github.com/FACorreiaa/go-tourism-content/internal/api/generative_ai"
	llmInteraction "github.com/FACorreiaa/go-tourism-content/internal/api/llm_interaction"
	"github.com/FACorreiaa/go-tourism-content/internal/api/prompt"
	"github.com/FACorreiaa/go-tourism-content/internal/api/templates"
	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

const (
	MinTokens = 1
	MaxTokens = 4096
)

// Settings are the per-mode limits applied to provider calls.
type Settings struct {
	MobileTimeout     time.Duration
	StandardTimeout   time.Duration
	MobileMaxTokens   int
	StandardMaxTokens int
	// CacheDelay is waited before a template hit is returned, so both paths feel alike.
	CacheDelay time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		MobileTimeout:     15 * time.Second,
		StandardTimeout:   30 * time.Second,
		MobileMaxTokens:   500,
		StandardMaxTokens: 1500,
		CacheDelay:        800 * time.Millisecond,
	}
}

var _ ContentService = (*ContentServiceImpl)(nil)

// ContentService turns wizard session data into marketing copy.
type ContentService interface {
	Generate(ctx context.Context, req *types.GenerationRequest) (*types.GenerationResult, error)
	Enhance(ctx context.Context, req *types.GenerationRequest) (*types.GenerationResult, error)
	Options(ctx context.Context) types.ContentOptions
}

type ContentServiceImpl struct {
	logger    *slog.Logger
	templates *templates.Cache
	detector  *detector.Detector
	lookups   *prompt.Lookups
	builder   *prompt.Builder
	providers *generativeAI.Registry
	repo      llmInteraction.LLmInteractionRepository
	metrics   *metrics.AppMetrics
	settings  Settings
	now       func() time.Time
}

func NewContentService(
	cache *templates.Cache,
	det *detector.Detector,
	lookups *prompt.Lookups,
	providers *generativeAI.Registry,
	repo llmInteraction.LLmInteractionRepository,
	appMetrics *metrics.AppMetrics,
	settings Settings,
	logger *slog.Logger,
) *ContentServiceImpl {
	return &ContentServiceImpl{
		logger:    logger,
		templates: cache,
		detector:  det,
		lookups:   lookups,
		builder:   prompt.NewBuilder(lookups),
		providers: providers,
		repo:      repo,
		metrics:   appMetrics,
		settings:  settings,
		now:       time.Now,
	}
}

// Generate serves the primary path: a cached template when the story names a known
// subject on a single platform, otherwise one call to the primary provider.
func (s *ContentServiceImpl) Generate(ctx context.Context, req *types.GenerationRequest) (*types.GenerationResult, error) {
	ctx, span := otel.Tracer("ContentService").Start(ctx, "Generate", trace.WithAttributes(
		attribute.Int("request.platforms", len(req.Platforms)),
		attribute.Int("request.formats", len(req.Formats)),
		attribute.Bool("request.mobile_optimized", req.MobileOptimized),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Generate"))
	start := s.now()

	client := s.providers.Primary()
	if err := client.Configured(); err != nil {
		l.ErrorContext(ctx, "Primary provider is not configured", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Provider not configured")
		return nil, err
	}

	if err := validateRequest(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request")
		return nil, err
	}

	detection := s.detector.Detect(detectionText(req))
	span.SetAttributes(
		attribute.Bool("detection.subject_matched", detection.SubjectMatched),
		attribute.String("detection.bucket", string(detection.Bucket)),
	)

	// Only the single platform field selects the template table; a platforms list is a standard request.
	if platform := req.Platform; platform != "" && detection.SubjectMatched {
		if tmpl, hit := s.templates.Lookup(platform, detection.Bucket); hit {
			return s.serveTemplate(ctx, span, req, tmpl, platform, detection, start)
		}
		l.DebugContext(ctx, "No template for detected subject", slog.String("platform", string(platform)),
			slog.String("bucket", string(detection.Bucket)))
	}

	mode := prompt.ModeFor(req)
	if mode == types.PromptModeStandard && !req.HasPrompt() {
		err := &types.ValidationError{Field: "prompt", Message: "is required"}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request")
		return nil, err
	}

	return s.callProvider(ctx, span, client, req, mode, detection, start)
}

// Enhance serves the enhanced path: always a live call with the standard prompt,
// never the template cache.
func (s *ContentServiceImpl) Enhance(ctx context.Context, req *types.GenerationRequest) (*types.GenerationResult, error) {
	ctx, span := otel.Tracer("ContentService").Start(ctx, "Enhance", trace.WithAttributes(
		attribute.String("request.provider", string(req.Provider)),
		attribute.Int("request.platforms", len(req.Platforms)),
		attribute.Int("request.formats", len(req.Formats)),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Enhance"))
	start := s.now()

	client, err := s.providers.Enhancer(req.Provider)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unknown provider")
		return nil, err
	}
	if err := client.Configured(); err != nil {
		l.ErrorContext(ctx, "Enhancement provider is not configured", slog.String("provider", string(client.Provider())), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Provider not configured")
		return nil, err
	}

	if err := validateRequest(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request")
		return nil, err
	}
	if !req.HasPrompt() {
		err := &types.ValidationError{Field: "prompt", Message: "is required"}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request")
		return nil, err
	}

	detection := s.detector.Detect(detectionText(req))
	return s.callProvider(ctx, span, client, req, types.PromptModeStandard, detection, start)
}

// Options lists what the wizard can offer in its selection steps.
func (s *ContentServiceImpl) Options(_ context.Context) types.ContentOptions {
	return types.ContentOptions{
		Platforms: types.AllPlatforms,
		Formats:   types.AllFormats,
		Audiences: s.lookups.AudienceKeys(),
		Locations: s.lookups.LocationNames(),
	}
}

func (s *ContentServiceImpl) serveTemplate(ctx context.Context, span trace.Span, req *types.GenerationRequest,
	tmpl string, platform types.Platform, detection types.DetectionResult, start time.Time) (*types.GenerationResult, error) {
	if err := s.wait(ctx, s.settings.CacheDelay); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Request cancelled")
		return nil, err
	}

	mode := prompt.ModeFor(req)
	text := templates.Personalize(tmpl, req.UserData.Story)
	result := Assemble(text, req, Timing{Start: start, End: s.now()}, Outcome{
		CacheHit:   true,
		Provider:   types.ProviderTemplate,
		Mode:       mode,
		TokenLimit: s.tokenLimit(req, mode),
	}, detection)

	attrs := metric.WithAttributes(
		attribute.String("platform", string(platform)),
		attribute.String("bucket", string(detection.Bucket)),
	)
	s.metrics.TemplateCacheHitsTotal.Add(ctx, 1, attrs)
	s.record(ctx, types.ProviderTemplate, "success", result)

	s.logger.InfoContext(ctx, "Served cached template",
		slog.String("platform", string(platform)),
		slog.String("bucket", string(detection.Bucket)),
		slog.Int("content_length", result.Metadata.ContentLength))
	span.SetAttributes(attribute.Bool("result.cached", true))
	span.SetStatus(codes.Ok, "Template served")
	return result, nil
}

func (s *ContentServiceImpl) callProvider(ctx context.Context, span trace.Span, client generativeAI.Client,
	req *types.GenerationRequest, mode types.PromptMode, detection types.DetectionResult, start time.Time) (*types.GenerationResult, error) {
	l := s.logger.With(slog.String("provider", string(client.Provider())), slog.String("mode", string(mode)))

	tokenLimit := s.tokenLimit(req, mode)
	doc := s.builder.Build(req, mode)
	span.SetAttributes(
		attribute.String("prompt.mode", string(mode)),
		attribute.Int("prompt.length", len(doc)),
		attribute.Int("prompt.token_limit", tokenLimit),
	)

	completion, err := client.Generate(ctx, generativeAI.GenerateParams{
		Prompt:    doc,
		MaxTokens: tokenLimit,
		Timeout:   s.timeout(mode),
	})
	if err != nil {
		l.ErrorContext(ctx, "Provider call failed", slog.Any("error", err))
		s.metrics.ProviderErrorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("provider", string(client.Provider())),
			attribute.String("error_type", errorKind(err)),
		))
		s.record(ctx, client.Provider(), "error", nil)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Provider call failed")
		return nil, err
	}

	end := s.now()
	result := Assemble(completion.Text, req, Timing{Start: start, End: end}, Outcome{
		Provider:   client.Provider(),
		Mode:       mode,
		TokenLimit: tokenLimit,
	}, detection)
	s.record(ctx, client.Provider(), "success", result)

	interaction := types.LlmInteraction{
		ID:              uuid.New(),
		Prompt:          doc,
		ResponseText:    completion.Text,
		Provider:        client.Provider(),
		ModelUsed:       completion.Model,
		PromptMode:      string(mode),
		TokenLimit:      tokenLimit,
		LatencyMs:       int(completion.Elapsed.Milliseconds()),
		InputTokens:     completion.Usage.InputTokens,
		OutputTokens:    completion.Usage.OutputTokens,
		PlatformCount:   result.Metadata.PlatformCount,
		FormatCount:     result.Metadata.FormatCount,
		MobileOptimized: mode == types.PromptModeMobile,
		CreatedAt:       end,
	}
	if err := s.repo.SaveInteraction(ctx, interaction); err != nil {
		l.WarnContext(ctx, "Failed to record llm interaction", slog.Any("error", err))
		s.metrics.DbQueryErrorsTotal.Add(ctx, 1)
	}

	l.InfoContext(ctx, "Generated content",
		slog.String("model", completion.Model),
		slog.Int("input_tokens", completion.Usage.InputTokens),
		slog.Int("output_tokens", completion.Usage.OutputTokens),
		slog.Int64("generation_time_ms", result.GenerationTime),
		slog.Int("content_length", result.Metadata.ContentLength))
	span.SetAttributes(
		attribute.Bool("result.cached", false),
		attribute.Int("result.content_length", result.Metadata.ContentLength),
	)
	span.SetStatus(codes.Ok, "Content generated")
	return result, nil
}

// tokenLimit applies the caller's budget capped at MaxTokens. Zero or negative budgets mean
// unset and fall back to the mode default.
func (s *ContentServiceImpl) tokenLimit(req *types.GenerationRequest, mode types.PromptMode) int {
	if req.MaxTokens != nil && *req.MaxTokens >= MinTokens {
		return min(*req.MaxTokens, MaxTokens)
	}
	if mode == types.PromptModeMobile {
		return s.settings.MobileMaxTokens
	}
	return s.settings.StandardMaxTokens
}

func (s *ContentServiceImpl) timeout(mode types.PromptMode) time.Duration {
	if mode == types.PromptModeMobile {
		return s.settings.MobileTimeout
	}
	return s.settings.StandardTimeout
}

func (s *ContentServiceImpl) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *ContentServiceImpl) record(ctx context.Context, provider types.Provider, outcome string, result *types.GenerationResult) {
	attrs := metric.WithAttributes(
		attribute.String("provider", string(provider)),
		attribute.String("outcome", outcome),
	)
	s.metrics.GenerationRequestsTotal.Add(ctx, 1, attrs)
	if result == nil {
		return
	}
	s.metrics.GenerationDurationSeconds.Record(ctx, float64(result.GenerationTime)/1000, attrs)
	s.metrics.GeneratedContentRunes.Record(ctx, int64(result.Metadata.ContentLength), attrs)
}

func validateRequest(req *types.GenerationRequest) error {
	if req.Platform != "" && !req.Platform.Valid() {
		return &types.ValidationError{Field: "platform", Message: fmt.Sprintf("unsupported platform %q", req.Platform)}
	}
	for _, p := range req.Platforms {
		if !p.Valid() {
			return &types.ValidationError{Field: "platforms", Message: fmt.Sprintf("unsupported platform %q", p)}
		}
	}
	for _, f := range req.Formats {
		if !f.Valid() {
			return &types.ValidationError{Field: "formats", Message: fmt.Sprintf("unsupported format %q", f)}
		}
	}
	return nil
}

// detectionText is the story, or the prompt when no story was collected.
func detectionText(req *types.GenerationRequest) string {
	if strings.TrimSpace(req.UserData.Story) != "" {
		return req.UserData.Story
	}
	return req.Prompt
}

func errorKind(err error) string {
	var (
		timeoutErr  *types.TimeoutError
		providerErr *types.ProviderError
		missingErr  *types.MissingContentError
	)
	switch {
	case errors.As(err, &timeoutErr):
		return "timeout"
	case errors.As(err, &providerErr):
		return "provider_status"
	case errors.As(err, &missingErr):
		return "missing_content"
	default:
		return "unexpected"
	}
}
