package extract

import (
	"context"
	"strings"

	"github.com/arjunmehta/tastemap/internal/core"
)

// RuleExtractor labels tracks from fixed artist and song-title tables. It
// needs no network and is fully deterministic, which makes it the stand-in
// implementation for offline runs and tests.
type RuleExtractor struct{}

// NewRuleExtractor creates a rule-based extractor.
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

var genreByArtist = map[string]string{
	"coldplay":             "pop-rock",
	"onerepublic":          "pop-rock",
	"morgan wallen":        "country",
	"luke combs":           "country",
	"chris stapleton":      "country",
	"dan + shay":           "country",
	"cody johnson":         "country",
	"brett young":          "country",
	"florida georgia line": "country",
	"dylan gossett":        "country",
	"kygo":                 "electronic",
	"noor chahal":          "bollywood",
	"rahul vaidya":         "bollywood",
	"arijit singh":         "bollywood",
	"aur":                  "bollywood",
	"capt":                 "bollywood",
	"death cab for cutie":  "indie-folk",
	"big red machine":      "indie-folk",
	"the japanese house":   "indie-folk",
	"declan mckenna":       "indie-folk",
	"geowulf":              "indie-folk",
	"harbour":              "indie-folk",
	"del water gap":        "indie-folk",
}

// Song-title keyword tables, checked in order; first match wins.
var (
	melancholicWords = []string{"scientist", "fix you", "yellow", "apologize", "secrets", "beautiful crazy", "tennessee whiskey", "speechless", "realize", "collide", "by your side"}
	upbeatWords      = []string{"clocks", "viva la vida", "paradise", "sky full of stars", "adventure", "counting stars", "good life", "stole the show", "for life", "whatever"}
	nostalgicWords   = []string{"last night", "7 summers", "more than my hometown", "coal", "dirt", "lucky"}
	romanticWords    = []string{"speechless", "tequila", "in case you didn't know", "lucky", "by your side"}
)

// Extract implements core.LabelExtractor. It never fails; descriptions that
// match no table fall back to the default pair.
func (e *RuleExtractor) Extract(_ context.Context, description string) (string, string, error) {
	artist, song := splitDescription(description)
	artistLower := strings.ToLower(artist)
	songLower := strings.ToLower(song)

	genre, ok := genreByArtist[artistLower]
	if !ok {
		genre = core.DefaultGenre
	}

	var mood string
	switch {
	case containsAny(songLower, melancholicWords):
		mood = "melancholic"
	case containsAny(songLower, upbeatWords):
		mood = "upbeat"
	case containsAny(songLower, nostalgicWords):
		mood = "nostalgic"
	case containsAny(songLower, romanticWords):
		mood = "romantic"
	case genre == "electronic":
		mood = "energetic"
	default:
		mood = core.DefaultMood
	}

	return genre, mood, nil
}

// splitDescription recovers (artist, song) from the canonical
// "Artist: X, Song: Y" form. Unparseable input yields the whole string as
// the song, so keyword matching still gets a chance.
func splitDescription(description string) (string, string) {
	rest, found := strings.CutPrefix(description, "Artist: ")
	if !found {
		return "", description
	}
	artist, song, found := strings.Cut(rest, ", Song: ")
	if !found {
		return "", description
	}
	return artist, song
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
