package prompt

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

const (
	defaultStory        = "A memorable visitor experience worth sharing."
	defaultLocation     = "New Zealand"
	defaultBusinessType = "tourism experience"
	notSpecified        = "not specified"

	contextStart = "--- Context ---"
	contextEnd   = "--- End Context ---"
)

// Builder renders prompts. It is safe for concurrent use; the output depends only on its input.
type Builder struct {
	lookups *Lookups
}

func NewBuilder(lookups *Lookups) *Builder {
	return &Builder{lookups: lookups}
}

// ModeFor picks mobile when the caller asked for it or when there is no instruction text
// on the single-platform path.
func ModeFor(req *types.GenerationRequest) types.PromptMode {
	if req.MobileOptimized {
		return types.PromptModeMobile
	}
	if !req.HasPrompt() {
		if _, ok := req.TargetPlatform(); ok {
			return types.PromptModeMobile
		}
	}
	return types.PromptModeStandard
}

// Build never fails; missing fields degrade to generic placeholders.
func (b *Builder) Build(req *types.GenerationRequest, mode types.PromptMode) string {
	var body string
	if mode == types.PromptModeMobile {
		body = b.mobile(req)
	} else {
		body = b.standard(req)
	}
	if section := b.contextSection(req.UserData); section != "" {
		body += "\n\n" + section
	}
	return body
}

func (b *Builder) mobile(req *types.GenerationRequest) string {
	story := orDefault(req.UserData.Story, defaultStory)
	location := orDefault(req.UserData.Location, defaultLocation)
	businessType := orDefault(req.UserData.BusinessType, defaultBusinessType)

	platform, ok := req.TargetPlatform()
	if !ok && len(req.Platforms) > 0 {
		platform = req.Platforms[0]
	}
	platformName := string(platform)
	if platformName == "" {
		platformName = "social media"
	}

	return fmt.Sprintf(`Write a short %s post for a %s in %s.
Story: %s
Length: %s words.
Include relevant hashtags, a clear call-to-action, and respectful cultural language.`,
		platformName, businessType, location, story, WordBand(platform))
}

func (b *Builder) standard(req *types.GenerationRequest) string {
	platforms := make([]string, 0, len(req.Platforms))
	for _, p := range req.Platforms {
		platforms = append(platforms, string(p))
	}
	formats := make([]string, 0, len(req.Formats))
	for _, f := range req.Formats {
		formats = append(formats, string(f))
	}

	return fmt.Sprintf(`%s

Platforms: %s
Formats: %s

Tailor the content to every platform and format combination requested. Label each piece with its platform and format, follow each platform's conventions for length, tone and hashtags, and use respectful cultural language.`,
		req.Prompt, joinOrNotSpecified(platforms), joinOrNotSpecified(formats))
}

func (b *Builder) contextSection(data types.UserData) string {
	var lines []string

	if c, ok := b.lookups.Location(data.Location); ok {
		lines = append(lines,
			"Location: "+c.Region,
			"Iwi: "+c.Iwi,
			"Significance: "+c.Significance,
			"Cultural protocols: "+c.Protocols,
		)
	}
	if a, ok := b.lookups.Audience(data.Audience); ok {
		lines = append(lines,
			"Audience: "+a.Label,
			"Audience interests: "+a.Interests,
			"Preferred tone: "+a.Tone,
			"Preferred channels: "+a.Channels,
		)
	}
	if d := strings.TrimSpace(data.Demographic); d != "" {
		lines = append(lines, "Demographic: "+d)
	}
	if len(data.Interests) > 0 {
		lines = append(lines, "Interests: "+strings.Join(data.Interests, ", "))
	}

	if len(lines) == 0 {
		return ""
	}
	return contextStart + "\n" + strings.Join(lines, "\n") + "\n" + contextEnd
}

// WordBand is the target word count for mobile prompts.
func WordBand(platform types.Platform) string {
	switch platform {
	case types.PlatformInstagram:
		return "50-100"
	case types.PlatformFacebook:
		return "100-150"
	default:
		return "150-200"
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func joinOrNotSpecified(items []string) string {
	if len(items) == 0 {
		return notSpecified
	}
	return strings.Join(items, ", ")
}
