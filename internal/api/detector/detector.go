package detector

import (
	"strings"

	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

// Keywords are the three fixed term sets the detector matches against.
// Terms must be lower case.
type Keywords struct {
	Subjects []string // names of the recognised experience
	Topics   []string // waterway / guided tour terms
	Themes   []string // cultural themes
}

// DefaultKeywords recognises Ko Tāne stories.
func DefaultKeywords() Keywords {
	return Keywords{
		Subjects: []string{"ko tāne", "ko tane", "kotane"},
		Topics:   []string{"waka", "canoe", "river", "paddle", "waterway"},
		Themes:   []string{"māori", "maori", "cultural", "haka", "hāngī", "hangi", "marae", "pōwhiri", "powhiri"},
	}
}

// Detector classifies free text. It holds no mutable state.
type Detector struct {
	keywords Keywords
}

func New(keywords Keywords) *Detector {
	return &Detector{keywords: keywords}
}

func NewDefault() *Detector {
	return New(DefaultKeywords())
}

// Detect checks the subject set first; the bucket is only refined when a subject matched.
func (d *Detector) Detect(text string) types.DetectionResult {
	lower := strings.ToLower(text)
	var result types.DetectionResult

	themes := matches(lower, d.keywords.Themes)
	result.ThemeMatched = len(themes) > 0

	subjects := matches(lower, d.keywords.Subjects)
	if len(subjects) == 0 {
		result.MatchedKeywords = themes
		return result
	}
	result.SubjectMatched = true

	topics := matches(lower, d.keywords.Topics)
	if len(topics) > 0 {
		result.Bucket = types.BucketWaka
	} else {
		result.Bucket = types.BucketCultural
	}

	matched := make([]string, 0, len(subjects)+len(topics)+len(themes))
	matched = append(matched, subjects...)
	matched = append(matched, topics...)
	result.MatchedKeywords = append(matched, themes...)
	return result
}

func matches(text string, terms []string) []string {
	var found []string
	for _, term := range terms {
		if term != "" && strings.Contains(text, term) {
			found = append(found, term)
		}
	}
	return found
}
