package types

import (
	"time"

	"github.com/google/uuid"
)

// LlmInteraction is one live generation, written to the interaction log.
type LlmInteraction struct {
	ID              uuid.UUID `json:"id"`
	Prompt          string    `json:"prompt"`
	ResponseText    string    `json:"response_text"`
	Provider        Provider  `json:"provider"`
	ModelUsed       string    `json:"model_used"`
	PromptMode      string    `json:"prompt_mode"`
	TokenLimit      int       `json:"token_limit"`
	LatencyMs       int       `json:"latency_ms"`
	InputTokens     int       `json:"input_tokens"`
	OutputTokens    int       `json:"output_tokens"`
	PlatformCount   int       `json:"platform_count"`
	FormatCount     int       `json:"format_count"`
	MobileOptimized bool      `json:"mobile_optimized"`
	CreatedAt       time.Time `json:"created_at"`
}
