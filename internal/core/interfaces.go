package core

import (
	"context"
	"errors"
)

// Sentinel errors surfaced to callers as request-level validation failures.
var (
	// ErrEmptyQuery is returned when a query has no text to embed.
	ErrEmptyQuery = errors.New("query text is empty")

	// ErrMissingColumns is returned when a CSV source lacks the required
	// artist/song columns.
	ErrMissingColumns = errors.New("csv must contain 'artist' and 'song' columns")
)

// EmbedMode selects the backend-specific encoding for a text.
type EmbedMode int

const (
	// EmbedDocument encodes a text for storage.
	EmbedDocument EmbedMode = iota
	// EmbedQuery encodes a text for searching.
	EmbedQuery
)

// LabelExtractor assigns a (genre, mood) pair to a canonical track
// description. Implementations clamp out-of-vocabulary results to the
// default pair instead of propagating invalid labels.
type LabelExtractor interface {
	Extract(ctx context.Context, description string) (genre, mood string, err error)
}

// Embedder turns text into a fixed-dimension dense vector. The dimension is
// fixed for the lifetime of the index; Dim reports it.
type Embedder interface {
	Embed(ctx context.Context, text string, mode EmbedMode) ([]float32, error)
	Dim() int
}

// TrackIndex is a vector-searchable store of enriched track records under a
// cosine metric.
type TrackIndex interface {
	// Create idempotently (re)creates an empty collection with the fixed
	// vector dimension, discarding any prior contents.
	Create(ctx context.Context, dim int) error

	// Upsert inserts or replaces records by id.
	Upsert(ctx context.Context, records []TrackRecord) error

	// Ready performs whatever "ready for search" transition the store
	// requires before Search is guaranteed to see upserted data.
	Ready(ctx context.Context) error

	// Search returns at most k hits ordered best match first. An empty
	// collection yields an empty slice, not an error.
	Search(ctx context.Context, vector []float32, k int) ([]SearchHit, error)

	// ScanAll returns up to limit stored records (without embeddings), in no
	// particular order, for aggregate statistics.
	ScanAll(ctx context.Context, limit int) ([]TrackRecord, error)

	// Close releases the underlying store connection.
	Close() error
}
