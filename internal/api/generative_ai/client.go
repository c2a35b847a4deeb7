package generativeAI

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

// GenerateParams is one generation call. Timeout bounds the whole round trip.
type GenerateParams struct {
	Prompt    string
	MaxTokens int
	Timeout   time.Duration
}

// Usage is the token accounting reported by the provider, when it reports any.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Completion is a normalized provider answer.
type Completion struct {
	Text     string
	Provider types.Provider
	Model    string
	Elapsed  time.Duration
	Usage    Usage
	Response ProviderResponse
}

// ProviderResponse is the raw answer of one provider family. Each variant knows how
// to pull its own text out; callers never probe fields.
type ProviderResponse interface {
	Provider() types.Provider
	Text() (string, error)
	TokenUsage() Usage
}

// Client sends a single prompt to an LLM provider. One attempt, no retries.
type Client interface {
	Provider() types.Provider
	Model() string
	// Configured returns a *types.ConfigurationError when the client cannot be used.
	Configured() error
	Generate(ctx context.Context, params GenerateParams) (*Completion, error)
}

// message is the single user-role message every provider receives.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// complete normalizes a decoded response into a Completion.
func complete(resp ProviderResponse, model string, elapsed time.Duration) (*Completion, error) {
	text, err := resp.Text()
	if err != nil {
		return nil, err
	}
	return &Completion{
		Text:     text,
		Provider: resp.Provider(),
		Model:    model,
		Elapsed:  elapsed,
		Usage:    resp.TokenUsage(),
		Response: resp,
	}, nil
}

// postJSON performs one bounded POST and decodes a 2xx body into out. The returned
// duration runs from just before the request is sent until the body is fully read.
func postJSON(ctx context.Context, httpClient *http.Client, provider types.Provider, url string,
	headers map[string]string, payload any, timeout time.Duration, out any) (time.Duration, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		return time.Since(start), timeoutOr(ctx, provider, start, timeout, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		return elapsed, timeoutOr(ctx, provider, start, timeout, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return elapsed, &types.ProviderError{Provider: provider, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return elapsed, fmt.Errorf("failed to parse %s response: %w", provider, err)
	}
	return elapsed, nil
}

// timeoutOr turns a deadline expiry into a TimeoutError and passes anything else through.
func timeoutOr(ctx context.Context, provider types.Provider, start time.Time, timeout time.Duration, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &types.TimeoutError{Provider: provider, Elapsed: time.Since(start), Timeout: timeout}
	}
	return err
}
