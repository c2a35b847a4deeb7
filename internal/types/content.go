package types

import (
	"encoding/json"
	"strings"
	"time"
)

// Platform identifies a social or distribution channel the copy is written for.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformPinterest Platform = "pinterest"
	PlatformWebsite   Platform = "website"
)

// AllPlatforms lists every supported platform in display order.
var AllPlatforms = []Platform{
	PlatformInstagram,
	PlatformFacebook,
	PlatformTwitter,
	PlatformLinkedIn,
	PlatformTikTok,
	PlatformYouTube,
	PlatformPinterest,
	PlatformWebsite,
}

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	for _, known := range AllPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

// Format identifies the shape of the requested content.
type Format string

const (
	FormatSocialPost  Format = "social_post"
	FormatStory       Format = "story"
	FormatReel        Format = "reel"
	FormatBlog        Format = "blog"
	FormatArticle     Format = "article"
	FormatEmail       Format = "email"
	FormatAd          Format = "ad"
	FormatVideoScript Format = "video_script"
)

var AllFormats = []Format{
	FormatSocialPost,
	FormatStory,
	FormatReel,
	FormatBlog,
	FormatArticle,
	FormatEmail,
	FormatAd,
	FormatVideoScript,
}

func (f Format) Valid() bool {
	for _, known := range AllFormats {
		if f == known {
			return true
		}
	}
	return false
}

// ExperienceBucket is the detector's coarse classification of a story.
type ExperienceBucket string

const (
	BucketNone     ExperienceBucket = ""
	BucketWaka     ExperienceBucket = "waka"     // waterway / guided tour
	BucketCultural ExperienceBucket = "cultural" // generic cultural experience
)

// AudienceProfileKey selects a persona from the audience profile table.
type AudienceProfileKey string

const (
	AudienceGenZ       AudienceProfileKey = "gen_z"
	AudienceMillennial AudienceProfileKey = "millennial"
	AudienceGenX       AudienceProfileKey = "gen_x"
	AudienceBoomer     AudienceProfileKey = "baby_boomer"
	AudienceFamily     AudienceProfileKey = "family"
	AudienceLuxury     AudienceProfileKey = "luxury"
	AudienceAdventure  AudienceProfileKey = "adventure"
)

// Provider names an upstream generator. ProviderTemplate marks the cached path.
type Provider string

const (
	ProviderClaude   Provider = "claude"
	ProviderOpenAI   Provider = "openai"
	ProviderGemini   Provider = "gemini"
	ProviderTemplate Provider = "template"
)

// PromptMode picks the prompt shape.
type PromptMode string

const (
	PromptModeMobile   PromptMode = "mobile"
	PromptModeStandard PromptMode = "standard"
)

// UserData is the wizard session data collected before generation.
type UserData struct {
	Story        string             `json:"story"`
	Location     string             `json:"location,omitempty"`
	BusinessType string             `json:"businessType,omitempty"`
	Audience     AudienceProfileKey `json:"audience,omitempty"`
	Demographic  string             `json:"demographic,omitempty"`
	Interests    []string           `json:"interests,omitempty"`
	// Extra holds session keys the pipeline does not read, such as photo data.
	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON accepts any additional wizard keys into Extra, even when the enclosing
// decoder rejects unknown fields.
func (u *UserData) UnmarshalJSON(data []byte) error {
	type plain UserData
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, key := range []string{"story", "location", "businessType", "audience", "demographic", "interests"} {
		delete(all, key)
	}
	known.Extra = nil
	if len(all) > 0 {
		known.Extra = all
	}
	*u = UserData(known)
	return nil
}

// GenerationRequest is the inbound body of the generate and enhance endpoints.
type GenerationRequest struct {
	Prompt          string     `json:"prompt,omitempty"`
	Platforms       []Platform `json:"platforms,omitempty"`
	Formats         []Format   `json:"formats,omitempty"`
	UserData        UserData   `json:"userData"`
	MobileOptimized bool       `json:"mobileOptimized"`
	MaxTokens       *int       `json:"maxTokens,omitempty"`
	Platform        Platform   `json:"platform,omitempty"`
	Provider        Provider   `json:"provider,omitempty"` // enhance endpoint only
}

// TargetPlatform returns the single platform the prompt is shaped for, if any.
// The explicit platform field wins; otherwise a one-element platform list counts.
// Template selection looks at the platform field alone.
func (r *GenerationRequest) TargetPlatform() (Platform, bool) {
	if r.Platform != "" {
		return r.Platform, true
	}
	if len(r.Platforms) == 1 {
		return r.Platforms[0], true
	}
	return "", false
}

// HasPrompt reports whether the caller supplied instruction text.
func (r *GenerationRequest) HasPrompt() bool {
	return strings.TrimSpace(r.Prompt) != ""
}

// DetectionResult is derived from the story text on every request.
type DetectionResult struct {
	SubjectMatched  bool             `json:"subjectMatched"`
	Bucket          ExperienceBucket `json:"bucket,omitempty"`
	ThemeMatched    bool             `json:"themeMatched"`
	MatchedKeywords []string         `json:"matchedKeywords,omitempty"`
}

// GenerationMetadata describes how a result was produced.
type GenerationMetadata struct {
	ContentLength   int       `json:"contentLength"`
	PlatformCount   int       `json:"platformCount"`
	FormatCount     int       `json:"formatCount"`
	Timestamp       time.Time `json:"timestamp"`
	MobileOptimized bool      `json:"mobileOptimized"`
	TokenLimit      int       `json:"tokenLimit"`
}

// GenerationResult is the only payload returned to callers on success.
type GenerationResult struct {
	Content         string             `json:"content"`
	Platforms       []Platform         `json:"platforms"`
	Formats         []Format           `json:"formats"`
	Success         bool               `json:"success"`
	Cached          bool               `json:"cached"`
	Provider        Provider           `json:"provider"`
	ClaudeOptimized bool               `json:"claudeOptimized,omitempty"`
	OpenAIOptimized bool               `json:"openaiOptimized,omitempty"`
	GeminiOptimized bool               `json:"geminiOptimized,omitempty"`
	GenerationTime  int64              `json:"generationTime"` // milliseconds
	Detection       DetectionResult    `json:"detection"`
	Metadata        GenerationMetadata `json:"metadata"`
}

// ContentOptions is what the wizard needs to render its selection steps.
type ContentOptions struct {
	Platforms []Platform           `json:"platforms"`
	Formats   []Format             `json:"formats"`
	Audiences []AudienceProfileKey `json:"audiences"`
	Locations []string             `json:"locations"`
}
