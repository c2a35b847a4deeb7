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
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"
)

var _ Client = (*OpenAIClient)(nil)

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	HTTPClient  *http.Client
}

// OpenAIClient talks to the chat completions API.
type OpenAIClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	c := &OpenAIClient{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient:  cfg.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultOpenAIBaseURL
	}
	if c.model == "" {
		c.model = DefaultOpenAIModel
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c
}

type openAIRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type OpenAIChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// OpenAIResponse is the chat completions response shape.
type OpenAIResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []OpenAIChoice `json:"choices"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (r *OpenAIResponse) Provider() types.Provider { return types.ProviderOpenAI }

// Text returns the first choice's message content.
func (r *OpenAIResponse) Text() (string, error) {
	if len(r.Choices) == 0 || strings.TrimSpace(r.Choices[0].Message.Content) == "" {
		return "", &types.MissingContentError{Provider: types.ProviderOpenAI}
	}
	return r.Choices[0].Message.Content, nil
}

func (r *OpenAIResponse) TokenUsage() Usage {
	return Usage{InputTokens: r.Usage.PromptTokens, OutputTokens: r.Usage.CompletionTokens}
}

func (c *OpenAIClient) Provider() types.Provider { return types.ProviderOpenAI }

func (c *OpenAIClient) Model() string { return c.model }

func (c *OpenAIClient) Configured() error {
	if strings.TrimSpace(c.apiKey) == "" {
		return &types.ConfigurationError{Setting: "OPENAI_API_KEY", Reason: "is not set"}
	}
	return nil
}

func (c *OpenAIClient) Generate(ctx context.Context, params GenerateParams) (*Completion, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "OpenAIClient.Generate", trace.WithAttributes(
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

	reqBody := openAIRequest{
		Model:       c.model,
		MaxTokens:   params.MaxTokens,
		Temperature: c.temperature,
		Messages:    []message{{Role: "user", Content: params.Prompt}},
	}
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	var resp OpenAIResponse
	elapsed, err := postJSON(ctx, c.httpClient, types.ProviderOpenAI, c.baseURL+"/chat/completions", headers, reqBody, params.Timeout, &resp)
	span.SetAttributes(attribute.Int64("elapsed_ms", elapsed.Milliseconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "OpenAI request failed")
		return nil, err
	}

	completion, err := complete(&resp, c.model, elapsed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "OpenAI returned no content")
		return nil, err
	}
	span.SetAttributes(attribute.Int("response.length", len(completion.Text)))
	span.SetStatus(codes.Ok, "Content generated successfully")
	return completion, nil
}
