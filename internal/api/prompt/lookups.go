package prompt

import (
	"sort"
	"strings"

	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

// CulturalContext describes a location for the context section of a prompt.
type CulturalContext struct {
	Region       string
	Iwi          string
	Significance string
	Protocols    string
}

// AudienceProfile describes a target persona.
type AudienceProfile struct {
	Label     string
	Interests string
	Tone      string
	Channels  string
}

// Lookups holds the static tables the builder consults. Built once at startup.
type Lookups struct {
	locations map[string]CulturalContext
	audiences map[types.AudienceProfileKey]AudienceProfile
}

// NewLookups copies the given tables. Location keys are matched case-insensitively.
func NewLookups(locations map[string]CulturalContext, audiences map[types.AudienceProfileKey]AudienceProfile) *Lookups {
	l := &Lookups{
		locations: make(map[string]CulturalContext, len(locations)),
		audiences: make(map[types.AudienceProfileKey]AudienceProfile, len(audiences)),
	}
	for k, v := range locations {
		l.locations[normalizeLocation(k)] = v
	}
	for k, v := range audiences {
		l.audiences[k] = v
	}
	return l
}

func DefaultLookups() *Lookups {
	return NewLookups(defaultLocations(), defaultAudiences())
}

func (l *Lookups) Location(name string) (CulturalContext, bool) {
	if l == nil {
		return CulturalContext{}, false
	}
	c, ok := l.locations[normalizeLocation(name)]
	return c, ok
}

func (l *Lookups) Audience(key types.AudienceProfileKey) (AudienceProfile, bool) {
	if l == nil {
		return AudienceProfile{}, false
	}
	a, ok := l.audiences[key]
	return a, ok
}

// LocationNames returns the known location keys, sorted.
func (l *Lookups) LocationNames() []string {
	names := make([]string, 0, len(l.locations))
	for k := range l.locations {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// AudienceKeys returns the known persona keys, sorted.
func (l *Lookups) AudienceKeys() []types.AudienceProfileKey {
	keys := make([]types.AudienceProfileKey, 0, len(l.audiences))
	for k := range l.audiences {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func normalizeLocation(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func defaultLocations() map[string]CulturalContext {
	return map[string]CulturalContext{
		"christchurch": {
			Region:       "Ōtautahi Christchurch, Canterbury",
			Iwi:          "Ngāi Tahu, Ngāi Tūāhuriri",
			Significance: "The Ōtākaro (Avon) river was a mahinga kai, a traditional food-gathering place.",
			Protocols:    "Use Ōtautahi alongside Christchurch and acknowledge Ngāi Tahu as mana whenua.",
		},
		"rotorua": {
			Region:       "Rotorua, Bay of Plenty",
			Iwi:          "Te Arawa",
			Significance: "Geothermal valleys and living villages central to Te Arawa identity.",
			Protocols:    "Describe geothermal sites as taonga and avoid framing culture as a performance only.",
		},
		"auckland": {
			Region:       "Tāmaki Makaurau Auckland",
			Iwi:          "Ngāti Whātua Ōrākei and other iwi of Tāmaki",
			Significance: "An isthmus of volcanic maunga, many of them former pā sites.",
			Protocols:    "Refer to maunga by their Māori names and respect restrictions on summits.",
		},
		"queenstown": {
			Region:       "Tāhuna Queenstown, Otago",
			Iwi:          "Ngāi Tahu",
			Significance: "Whakatipu Waimāori was part of the pounamu trails.",
			Protocols:    "Mention pounamu with care; it is a treasured resource.",
		},
		"wellington": {
			Region:       "Te Whanganui-a-Tara Wellington",
			Iwi:          "Taranaki Whānui, Ngāti Toa Rangatira",
			Significance: "The harbour is linked to the legend of the taniwha Ngake and Whātaitai.",
			Protocols:    "Use macrons correctly in Māori place names.",
		},
		"new zealand": {
			Region:       "Aotearoa New Zealand",
			Iwi:          "Many iwi across the motu",
			Significance: "Māori culture is a living culture present across the country.",
			Protocols:    "Use te reo Māori words accurately and respectfully.",
		},
	}
}

func defaultAudiences() map[types.AudienceProfileKey]AudienceProfile {
	return map[types.AudienceProfileKey]AudienceProfile{
		types.AudienceGenZ: {
			Label:     "Gen Z travellers (18-26)",
			Interests: "authentic experiences, sustainability, shareable moments",
			Tone:      "casual, energetic, emoji-friendly",
			Channels:  "TikTok, Instagram",
		},
		types.AudienceMillennial: {
			Label:     "Millennial travellers (27-42)",
			Interests: "local culture, food, meaningful experiences",
			Tone:      "warm, story-driven, conversational",
			Channels:  "Instagram, Facebook",
		},
		types.AudienceGenX: {
			Label:     "Gen X travellers (43-58)",
			Interests: "family trips, history, value for money",
			Tone:      "informative, trustworthy",
			Channels:  "Facebook, email",
		},
		types.AudienceBoomer: {
			Label:     "Baby boomer travellers (59+)",
			Interests: "heritage, comfort, guided tours",
			Tone:      "clear, respectful, detailed",
			Channels:  "Facebook, email, website",
		},
		types.AudienceFamily: {
			Label:     "Families with children",
			Interests: "hands-on activities, safety, education",
			Tone:      "friendly, reassuring",
			Channels:  "Facebook, Instagram",
		},
		types.AudienceLuxury: {
			Label:     "Luxury travellers",
			Interests: "exclusivity, private guides, fine food",
			Tone:      "refined, understated",
			Channels:  "Instagram, LinkedIn, website",
		},
		types.AudienceAdventure: {
			Label:     "Adventure seekers",
			Interests: "outdoors, physical challenge, nature",
			Tone:      "bold, vivid",
			Channels:  "Instagram, YouTube, TikTok",
		},
	}
}
