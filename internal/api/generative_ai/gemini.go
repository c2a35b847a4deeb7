package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

const DefaultGeminiModel = "gemini-2.0-flash"

var _ Client = (*GeminiClient)(nil)

type GeminiConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	HTTPClient  *http.Client
}

// GeminiClient calls the Gemini API through the genai SDK.
type GeminiClient struct {
	client      *genai.Client
	apiKey      string
	model       string
	temperature float32
}

// NewGeminiClient builds the SDK client only when a key is present; a keyless client
// reports a ConfigurationError from Configured and Generate.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	c := &GeminiClient{
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
	}
	if c.model == "" {
		c.model = DefaultGeminiModel
	}
	if strings.TrimSpace(c.apiKey) == "" {
		return c, nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     c.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	c.client = client
	return c, nil
}

// GeminiResponse wraps the SDK response.
type GeminiResponse struct {
	raw *genai.GenerateContentResponse
}

func (r *GeminiResponse) Provider() types.Provider { return types.ProviderGemini }

// Text returns the first part of the first candidate.
func (r *GeminiResponse) Text() (string, error) {
	if r.raw == nil || len(r.raw.Candidates) == 0 {
		return "", &types.MissingContentError{Provider: types.ProviderGemini}
	}
	cand := r.raw.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 || cand.Content.Parts[0] == nil {
		return "", &types.MissingContentError{Provider: types.ProviderGemini}
	}
	text := cand.Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", &types.MissingContentError{Provider: types.ProviderGemini}
	}
	return text, nil
}

func (r *GeminiResponse) TokenUsage() Usage {
	if r.raw == nil || r.raw.UsageMetadata == nil {
		return Usage{}
	}
	return Usage{
		InputTokens:  int(r.raw.UsageMetadata.PromptTokenCount),
		OutputTokens: int(r.raw.UsageMetadata.CandidatesTokenCount),
	}
}

func (c *GeminiClient) Provider() types.Provider { return types.ProviderGemini }

func (c *GeminiClient) Model() string { return c.model }

func (c *GeminiClient) Configured() error {
	if strings.TrimSpace(c.apiKey) == "" || c.client == nil {
		return &types.ConfigurationError{Setting: "GEMINI_API_KEY", Reason: "is not set"}
	}
	return nil
}

func (c *GeminiClient) Generate(ctx context.Context, params GenerateParams) (*Completion, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GeminiClient.Generate", trace.WithAttributes(
		attribute.Int("prompt.length", len(params.Prompt)),
		attribute.String("model", c.model),
		attribute.Int("max_tokens", params.MaxTokens),
	))
	defer span.End()

	if err := c.Configured(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "API key not set")
		return nil, err
	}

	if params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.Timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](c.temperature),
		MaxOutputTokens: int32(params.MaxTokens),
	}

	start := time.Now()
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(params.Prompt), config)
	elapsed := time.Since(start)
	span.SetAttributes(attribute.Int64("elapsed_ms", elapsed.Milliseconds()))
	if err != nil {
		err = c.mapError(ctx, err, elapsed, params.Timeout)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Gemini request failed")
		return nil, err
	}

	completion, err := complete(&GeminiResponse{raw: result}, c.model, elapsed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Gemini returned no content")
		return nil, err
	}
	span.SetAttributes(attribute.Int("response.length", len(completion.Text)))
	span.SetStatus(codes.Ok, "Content generated successfully")
	return completion, nil
}

// mapError folds SDK failures into the shared error types.
func (c *GeminiClient) mapError(ctx context.Context, err error, elapsed, timeout time.Duration) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &types.TimeoutError{Provider: types.ProviderGemini, Elapsed: elapsed, Timeout: timeout}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &types.ProviderError{Provider: types.ProviderGemini, StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &types.ProviderError{Provider: types.ProviderGemini, StatusCode: apiErrPtr.Code, Body: apiErrPtr.Message}
	}
	return fmt.Errorf("gemini request failed: %w", err)
}
