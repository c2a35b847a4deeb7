package generativeAI

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

const (
	DefaultClaudeBaseURL = "https://api.anthropic.com/v1"
	DefaultClaudeModel   = "claude-3-5-sonnet-20241022"
	ClaudeAPIVersion     = "2023-06-01"
)

var _ Client = (*ClaudeClient)(nil)

type ClaudeConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Version     string
	Temperature float64
	HTTPClient  *http.Client
}

// ClaudeClient talks to the Anthropic Messages API.
type ClaudeClient struct {
	apiKey      string
	baseURL     string
	model       string
	version     string
	temperature float64
	httpClient  *http.Client
}

func NewClaudeClient(cfg ClaudeConfig) *ClaudeClient {
	c := &ClaudeClient{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		version:     cfg.Version,
		temperature: cfg.Temperature,
		httpClient:  cfg.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultClaudeBaseURL
	}
	if c.model == "" {
		c.model = DefaultClaudeModel
	}
	if c.version == "" {
		c.version = ClaudeAPIVersion
	}
	if c.httpClient == nil {
		// per-call deadlines come from the context
		c.httpClient = &http.Client{}
	}
	return c
}

type claudeRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

// ClaudeContentBlock is one entry of the content array.
type ClaudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ClaudeResponse is the Messages API response shape.
type ClaudeResponse struct {
	ID         string               `json:"id"`
	Model      string               `json:"model"`
	StopReason string               `json:"stop_reason"`
	Content    []ClaudeContentBlock `json:"content"`
	Usage      Usage                `json:"usage"`
}

func (r *ClaudeResponse) Provider() types.Provider { return types.ProviderClaude }

// Text returns the first content block's text.
func (r *ClaudeResponse) Text() (string, error) {
	if len(r.Content) == 0 || strings.TrimSpace(r.Content[0].Text) == "" {
		return "", &types.MissingContentError{Provider: types.ProviderClaude}
	}
	return r.Content[0].Text, nil
}

func (r *ClaudeResponse) TokenUsage() Usage { return r.Usage }

func (c *ClaudeClient) Provider() types.Provider { return types.ProviderClaude }

func (c *ClaudeClient) Model() string { return c.model }

func (c *ClaudeClient) Configured() error {
	if strings.TrimSpace(c.apiKey) == "" {
		return &types.ConfigurationError{Setting: "ANTHROPIC_API_KEY", Reason: "is not set"}
	}
	return nil
}

func (c *ClaudeClient) Generate(ctx context.Context, params GenerateParams) (*Completion, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "ClaudeClient.Generate", trace.WithAttributes(
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

	reqBody := claudeRequest{
		Model:       c.model,
		MaxTokens:   params.MaxTokens,
		Temperature: c.temperature,
		Messages:    []message{{Role: "user", Content: params.Prompt}},
	}
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": c.version,
	}

	var resp ClaudeResponse
	elapsed, err := postJSON(ctx, c.httpClient, types.ProviderClaude, c.baseURL+"/messages", headers, reqBody, params.Timeout, &resp)
	span.SetAttributes(attribute.Int64("elapsed_ms", elapsed.Milliseconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Claude request failed")
		return nil, err
	}

	completion, err := complete(&resp, c.model, elapsed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Claude returned no content")
		return nil, err
	}
	span.SetAttributes(attribute.Int("response.length", len(completion.Text)))
	span.SetStatus(codes.Ok, "Content generated successfully")
	return completion, nil
}
