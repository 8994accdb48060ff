package extract

import (
	"fmt"
	"strings"

	"github.com/arjunmehta/tastemap/internal/core"
)

// FewShotExample is one fixed input/output pair given to the extraction model
// to steer labeling.
type FewShotExample struct {
	Text  string
	Genre string
	Mood  string
}

// DefaultFewShotExamples steer the model toward the catalog's label
// conventions. They cover three distinct genre/mood pairings.
var DefaultFewShotExamples = []FewShotExample{
	{Text: "Artist: Coldplay, Song: Yellow", Genre: "pop-rock", Mood: "melancholic"},
	{Text: "Artist: Morgan Wallen, Song: Last Night", Genre: "country", Mood: "nostalgic"},
	{Text: "Artist: Kygo, Song: Stole the Show", Genre: "electronic", Mood: "upbeat"},
}

// BuildExtractionPrompt creates the system instruction for label extraction,
// naming both closed vocabularies and appending the few-shot examples.
func BuildExtractionPrompt(examples []FewShotExample) string {
	var builder strings.Builder

	builder.WriteString("Analyze music tracks and extract the primary genre and mood from \"Artist: X, Song: Y\" format.\n")
	builder.WriteString("Focus on the most representative genre and dominant emotional tone based on the artist's style and song characteristics.\n\n")

	builder.WriteString("Use these exact attribute values:\n\n")
	builder.WriteString(fmt.Sprintf("primary_genre: [%s]\n", quotedList(core.Genres)))
	builder.WriteString(fmt.Sprintf("mood: [%s]\n\n", quotedList(core.Moods)))

	builder.WriteString("Respond with a single JSON object of the form {\"primary_genre\": \"...\", \"mood\": \"...\"} and nothing else.\n")

	if len(examples) > 0 {
		builder.WriteString("\nExamples:\n")
		for _, ex := range examples {
			builder.WriteString(fmt.Sprintf("Input: %s\n", ex.Text))
			builder.WriteString(fmt.Sprintf("Output: {\"primary_genre\": %q, \"mood\": %q}\n", ex.Genre, ex.Mood))
		}
	}

	return builder.String()
}

func quotedList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
