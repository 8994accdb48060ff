package embed

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/arjunmehta/tastemap/internal/core"
)

// StubEmbedder is a deterministic offline embedder: the vector is seeded
// from a hash of the input text, so identical inputs always produce identical
// vectors and distinct inputs are overwhelmingly likely to differ. Document
// and query modes share one encoding, which keeps self-retrieval exact.
type StubEmbedder struct {
	dim int
}

// NewStubEmbedder creates a stub embedder with the given dimensionality.
func NewStubEmbedder(dim int) *StubEmbedder {
	if dim <= 0 {
		dim = core.DefaultEmbeddingDim
	}
	return &StubEmbedder{dim: dim}
}

// Embed implements core.Embedder. The returned vector is unit-normalized so
// cosine similarity behaves the same as with a real embedding backend.
func (e *StubEmbedder) Embed(_ context.Context, text string, _ core.EmbedMode) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text to embed is empty")
	}

	h := fnv.New64a()
	h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	vector := make([]float32, e.dim)
	var norm float64
	for i := range vector {
		v := rng.Float64()*2 - 1
		vector[i] = float32(v)
		norm += v * v
	}

	norm = math.Sqrt(norm)
	if norm == 0 {
		vector[0] = 1
		return vector, nil
	}
	for i := range vector {
		vector[i] /= float32(norm)
	}
	return vector, nil
}

// Dim implements core.Embedder.
func (e *StubEmbedder) Dim() int {
	return e.dim
}
