// Package extract assigns (genre, mood) labels to canonical track
// descriptions, either through the Gemini API or a rule table.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arjunmehta/tastemap/internal/core"
	"github.com/arjunmehta/tastemap/internal/logger"
)

// generator is the slice of the Gemini client the extractor needs.
type generator interface {
	GenerateContent(ctx context.Context, model, systemInstruction, userText string) (string, error)
}

// GeminiExtractor labels tracks through a few-shot JSON-mode generation call.
type GeminiExtractor struct {
	client generator
	model  string
	prompt string
}

// extractionResult is the JSON object the model is instructed to return.
type extractionResult struct {
	PrimaryGenre string `json:"primary_genre"`
	Mood         string `json:"mood"`
}

// NewGeminiExtractor creates an extractor backed by the given client and
// model, seeded with the default few-shot examples.
func NewGeminiExtractor(client generator, model string) *GeminiExtractor {
	return &GeminiExtractor{
		client: client,
		model:  model,
		prompt: BuildExtractionPrompt(DefaultFewShotExamples),
	}
}

// Extract implements core.LabelExtractor. A transport or decode failure is
// returned to the caller; out-of-vocabulary or missing attributes are clamped
// to the default pair instead.
func (e *GeminiExtractor) Extract(ctx context.Context, description string) (string, string, error) {
	if description == "" {
		return "", "", fmt.Errorf("description is empty")
	}

	raw, err := e.client.GenerateContent(ctx, e.model, e.prompt, description)
	if err != nil {
		return "", "", fmt.Errorf("extraction call failed: %w", err)
	}

	var result extractionResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &result); err != nil {
		return "", "", fmt.Errorf("failed to decode extraction result %q: %w", raw, err)
	}

	genre, mood := ClampLabels(result.PrimaryGenre, result.Mood)
	logger.Debug("Extracted labels for %q: %s, %s", description, genre, mood)
	return genre, mood, nil
}

// ClampLabels forces both labels into their vocabularies, substituting the
// default pair for anything unknown.
func ClampLabels(genre, mood string) (string, string) {
	genre = strings.ToLower(strings.TrimSpace(genre))
	mood = strings.ToLower(strings.TrimSpace(mood))

	if !core.ValidGenre(genre) {
		if genre != "" {
			logger.Warn("Out-of-vocabulary genre %q, using default %q", genre, core.DefaultGenre)
		}
		genre = core.DefaultGenre
	}
	if !core.ValidMood(mood) {
		if mood != "" {
			logger.Warn("Out-of-vocabulary mood %q, using default %q", mood, core.DefaultMood)
		}
		mood = core.DefaultMood
	}
	return genre, mood
}
