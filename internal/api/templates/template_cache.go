package templates

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

const (
	// PersonalizeThreshold is the story length (in characters) a story must exceed
	// before it is spliced in front of a cached template.
	PersonalizeThreshold = 20
	// PersonalizePrefixLength caps how much of the story is spliced.
	PersonalizePrefixLength = 100
)

// Key addresses one cached template.
type Key struct {
	Platform types.Platform
	Bucket   types.ExperienceBucket
}

// Cache is an immutable table of pre-written copy. Build it once with New and share it.
type Cache struct {
	entries map[Key]string
}

// New copies entries into a fresh Cache so later mutation of the input has no effect.
func New(entries map[Key]string) *Cache {
	c := &Cache{entries: make(map[Key]string, len(entries))}
	for k, v := range entries {
		c.entries[k] = v
	}
	return c
}

// NewDefault returns the cache loaded with the built-in Ko Tāne copy.
func NewDefault() *Cache {
	return New(defaultEntries())
}

// Lookup returns the stored template unmodified.
func (c *Cache) Lookup(platform types.Platform, bucket types.ExperienceBucket) (string, bool) {
	if c == nil {
		return "", false
	}
	tmpl, ok := c.entries[Key{Platform: platform, Bucket: bucket}]
	return tmpl, ok
}

// Keys lists every cached combination, sorted by platform then bucket.
func (c *Cache) Keys() []Key {
	keys := make([]Key, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Platform != keys[j].Platform {
			return keys[i].Platform < keys[j].Platform
		}
		return keys[i].Bucket < keys[j].Bucket
	})
	return keys
}

// Len is the number of cached templates.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Personalize splices the opening of a story in front of a template. Stories of
// PersonalizeThreshold characters or fewer leave the template untouched.
func Personalize(template, story string) string {
	story = strings.TrimSpace(story)
	if utf8.RuneCountInString(story) <= PersonalizeThreshold {
		return template
	}
	runes := []rune(story)
	prefix := story
	if len(runes) > PersonalizePrefixLength {
		prefix = string(runes[:PersonalizePrefixLength]) + "..."
	}
	return "\"" + prefix + "\"\n\n" + template
}
