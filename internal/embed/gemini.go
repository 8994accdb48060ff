// Package embed turns text into fixed-dimension dense vectors.
package embed

import (
	"context"
	"fmt"

	"github.com/arjunmehta/tastemap/internal/core"
	"github.com/arjunmehta/tastemap/internal/gemini"
)

// embedClient is the slice of the Gemini client the embedder needs.
type embedClient interface {
	EmbedContent(ctx context.Context, model, text, taskType string, dim int) ([]float32, error)
}

// GeminiEmbedder implements core.Embedder on top of the Gemini embedding API,
// using asymmetric task types for documents and queries.
type GeminiEmbedder struct {
	client embedClient
	model  string
	dim    int
}

// NewGeminiEmbedder creates an embedder for the given model and output
// dimensionality. dim <= 0 falls back to the default dimension.
func NewGeminiEmbedder(client embedClient, model string, dim int) *GeminiEmbedder {
	if dim <= 0 {
		dim = core.DefaultEmbeddingDim
	}
	return &GeminiEmbedder{
		client: client,
		model:  model,
		dim:    dim,
	}
}

// Embed implements core.Embedder.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string, mode core.EmbedMode) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text to embed is empty")
	}

	taskType := gemini.TaskRetrievalDocument
	if mode == core.EmbedQuery {
		taskType = gemini.TaskRetrievalQuery
	}

	vector, err := e.client.EmbedContent(ctx, e.model, text, taskType, e.dim)
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}
	return vector, nil
}

// Dim implements core.Embedder.
func (e *GeminiEmbedder) Dim() int {
	return e.dim
}
