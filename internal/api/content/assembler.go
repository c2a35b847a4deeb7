package content

import (
	"time"
	"unicode/utf8"

	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

// Timing brackets one generation. End doubles as the result timestamp.
type Timing struct {
	Start time.Time
	End   time.Time
}

// Outcome describes how the text was produced.
type Outcome struct {
	CacheHit   bool
	Provider   types.Provider
	Mode       types.PromptMode
	TokenLimit int
}

// Assemble composes the caller-facing result. It has no side effects.
func Assemble(text string, req *types.GenerationRequest, timing Timing, outcome Outcome, detection types.DetectionResult) *types.GenerationResult {
	platforms := requestedPlatforms(req)
	formats := req.Formats
	if formats == nil {
		formats = []types.Format{}
	}

	result := &types.GenerationResult{
		Content:        text,
		Platforms:      platforms,
		Formats:        formats,
		Success:        true,
		Cached:         outcome.CacheHit,
		Provider:       outcome.Provider,
		GenerationTime: timing.End.Sub(timing.Start).Milliseconds(),
		Detection:      detection,
		Metadata: types.GenerationMetadata{
			ContentLength:   utf8.RuneCountInString(text),
			PlatformCount:   len(platforms),
			FormatCount:     len(formats),
			Timestamp:       timing.End,
			MobileOptimized: outcome.Mode == types.PromptModeMobile,
			TokenLimit:      outcome.TokenLimit,
		},
	}

	if !outcome.CacheHit {
		switch outcome.Provider {
		case types.ProviderClaude:
			result.ClaudeOptimized = true
		case types.ProviderOpenAI:
			result.OpenAIOptimized = true
		case types.ProviderGemini:
			result.GeminiOptimized = true
		}
	}
	return result
}

// requestedPlatforms echoes the platform list, falling back to the single platform field.
func requestedPlatforms(req *types.GenerationRequest) []types.Platform {
	if len(req.Platforms) > 0 {
		return req.Platforms
	}
	if req.Platform != "" {
		return []types.Platform{req.Platform}
	}
	return []types.Platform{}
}
