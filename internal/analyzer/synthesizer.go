package analyzer

import (
	"fmt"
	"strings"

	"github.com/arjunmehta/tastemap/internal/core"
)

// responseRule pairs a keyword group with a response template. Rules are
// evaluated in order against the lowercased query; the first group with a
// keyword hit renders the response. Extending the synthesizer means
// extending this table.
type responseRule struct {
	keywords []string
	render   func(c []core.QueryCandidate) string
}

var responseRules = []responseRule{
	{
		keywords: []string{"recommend", "suggest", "should listen"},
		render:   renderRecommendation,
	},
	{
		keywords: []string{"genre", "style", "type"},
		render:   renderGenre,
	},
	{
		keywords: []string{"mood", "feel", "emotion", "vibe"},
		render:   renderMood,
	},
	{
		keywords: []string{"sad", "melancholic", "emotional"},
		render:   renderEmotional,
	},
}

// Synthesize turns a free-text query and ranked candidates into a
// human-readable answer plus statistical insights. It is a pure function of
// its inputs: no external calls, no side effects.
func Synthesize(query string, candidates []core.QueryCandidate) (string, []string) {
	if len(candidates) == 0 {
		return fallbackResponse(), []string{}
	}

	queryLower := strings.ToLower(query)

	response := ""
	for _, rule := range responseRules {
		if containsAnyKeyword(queryLower, rule.keywords) {
			response = rule.render(candidates)
			break
		}
	}
	if response == "" {
		response = renderGeneral(candidates)
	}

	return response, buildInsights(candidates)
}

func containsAnyKeyword(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// fallbackResponse is returned when retrieval produced no candidates. It
// names both closed vocabularies so the user knows what can be asked.
func fallbackResponse() string {
	return fmt.Sprintf(
		"I don't have any matching tracks for that query. Try asking about genres like %s, or moods like %s.",
		strings.Join(core.Genres, ", "),
		strings.Join(core.Moods, ", "),
	)
}

func renderRecommendation(candidates []core.QueryCandidate) string {
	var builder strings.Builder
	builder.WriteString("Based on your music taste, I'd recommend these tracks:\n\n")
	for i, track := range topN(candidates, 3) {
		builder.WriteString(fmt.Sprintf("%d. **%s - %s** (%s, %s)\n", i+1, track.Artist, track.Song, track.Genre, track.Mood))
	}
	builder.WriteString(fmt.Sprintf("\nThese match your query with %s similarity!", percent(candidates[0].SimilarityScore)))
	return builder.String()
}

func renderGenre(candidates []core.QueryCandidate) string {
	genres := make([]string, len(candidates))
	for i, t := range candidates {
		genres[i] = t.Genre
	}
	dominant, count := mostFrequent(genres)

	response := fmt.Sprintf("Your music taste leans heavily toward **%s**. ", dominant)
	response += fmt.Sprintf("Looking at your top matches, you have %d %s tracks including **%s - %s**",
		count, dominant, candidates[0].Artist, candidates[0].Song)
	if len(candidates) > 1 {
		response += fmt.Sprintf(" and **%s - %s**", candidates[1].Artist, candidates[1].Song)
	}
	return response + "."
}

func renderMood(candidates []core.QueryCandidate) string {
	moods := make([]string, len(candidates))
	for i, t := range candidates {
		moods[i] = t.Mood
	}
	dominant, _ := mostFrequent(moods)

	return fmt.Sprintf("Your music has a predominantly **%s** vibe. Songs like **%s - %s** capture this %s feeling perfectly.",
		dominant, candidates[0].Artist, candidates[0].Song, dominant)
}

func renderEmotional(candidates []core.QueryCandidate) string {
	var sad []core.QueryCandidate
	for _, t := range candidates {
		if t.Mood == "melancholic" || t.Mood == "nostalgic" {
			sad = append(sad, t)
		}
	}
	if len(sad) == 0 {
		return "Your music library has some emotional depth, though the current matches lean more toward upbeat vibes."
	}

	return fmt.Sprintf("When you're feeling emotional, you turn to tracks like **%s - %s**. Your %s music taste includes beautiful songs that resonate with deeper emotions.",
		sad[0].Artist, sad[0].Song, sad[0].Mood)
}

func renderGeneral(candidates []core.QueryCandidate) string {
	genres := make([]string, len(candidates))
	for i, t := range candidates {
		genres[i] = t.Genre
	}
	dominant, _ := mostFrequent(genres)

	var builder strings.Builder
	builder.WriteString("Based on your music taste, here are your top matches:\n\n")
	for _, track := range topN(candidates, 3) {
		builder.WriteString(fmt.Sprintf("- **%s - %s** (%s, %s)\n", track.Artist, track.Song, track.Genre, track.Mood))
	}
	builder.WriteString(fmt.Sprintf("\nYour music spans %d genres with a preference for %s music.", distinctCount(genres), dominant))
	return builder.String()
}

// buildInsights is computed for every non-empty candidate set, independent of
// which response rule fired.
func buildInsights(candidates []core.QueryCandidate) []string {
	genres := make([]string, len(candidates))
	moods := make([]string, len(candidates))
	var similaritySum float64
	for i, t := range candidates {
		genres[i] = t.Genre
		moods[i] = t.Mood
		similaritySum += t.SimilarityScore
	}

	insights := make([]string, 0, 3)

	distinctGenres := distinctInOrder(genres)
	if len(distinctGenres) > 1 {
		insights = append(insights, fmt.Sprintf("Your taste spans %d genres: %s", len(distinctGenres), strings.Join(distinctGenres, ", ")))
	} else {
		insights = append(insights, fmt.Sprintf("Strong preference for %s music", distinctGenres[0]))
	}

	dominantMood, _ := mostFrequent(moods)
	insights = append(insights, fmt.Sprintf("Dominant mood: %s", dominantMood))

	avg := similaritySum / float64(len(candidates))
	insights = append(insights, fmt.Sprintf("Average match: %s", percent(avg)))

	return insights
}

// mostFrequent returns the most frequent value and its count, breaking ties
// by first occurrence.
func mostFrequent(values []string) (string, int) {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	best, bestCount := "", 0
	for _, v := range values {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best, bestCount
}

func distinctInOrder(values []string) []string {
	seen := make(map[string]struct{})
	var distinct []string
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			distinct = append(distinct, v)
		}
	}
	return distinct
}

func distinctCount(values []string) int {
	return len(distinctInOrder(values))
}

func topN(candidates []core.QueryCandidate, n int) []core.QueryCandidate {
	if len(candidates) < n {
		return candidates
	}
	return candidates[:n]
}

func percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value*100)
}
