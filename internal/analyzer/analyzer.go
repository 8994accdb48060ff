// Package analyzer orchestrates enrichment, storage and retrieval of the
// music catalog, and synthesizes answers to free-text taste questions.
package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/arjunmehta/tastemap/internal/core"
	"github.com/arjunmehta/tastemap/internal/logger"
)

// DefaultTopK is the candidate count used for query answering.
const DefaultTopK = 5

// scanLimit bounds the stats full scan.
const scanLimit = 10000

// Analyzer wires the label extractor, the embedder and the track index into
// the ingestion and retrieval pipelines. Callers serialize Ingest against
// in-flight queries; the collection reset inside Ingest needs exclusive
// access to the index.
type Analyzer struct {
	extractor   core.LabelExtractor
	embedder    core.Embedder
	index       core.TrackIndex
	parallelism int
}

// NewAnalyzer creates an analyzer. parallelism bounds concurrent enrichment
// calls during ingestion; values below 1 mean sequential processing.
func NewAnalyzer(extractor core.LabelExtractor, embedder core.Embedder, index core.TrackIndex, parallelism int) *Analyzer {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Analyzer{
		extractor:   extractor,
		embedder:    embedder,
		index:       index,
		parallelism: parallelism,
	}
}

// Ingest recreates the collection and enriches every pair independently:
// canonical description, label extraction, document embedding, then one
// batched upsert. A failing item is skipped and logged; it never aborts the
// batch. Processed counts the records actually upserted.
func (a *Analyzer) Ingest(ctx context.Context, pairs []core.TrackPair) (core.IngestResult, error) {
	result := core.IngestResult{Total: len(pairs)}

	if err := a.index.Create(ctx, a.embedder.Dim()); err != nil {
		return result, fmt.Errorf("failed to create collection: %w", err)
	}

	var (
		mu      sync.Mutex
		records []core.TrackRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)

	for _, pair := range pairs {
		g.Go(func() error {
			record, err := a.enrich(gctx, pair)
			if err != nil {
				// Item-level failure: skip the pair, keep the batch going.
				logger.Warn("Skipping %s - %s: %v", pair.Artist, pair.Song, err)
				return nil
			}

			mu.Lock()
			records = append(records, record)
			mu.Unlock()

			logger.Debug("Processed: %s - %s -> %s, %s", record.Artist, record.Song, record.Genre, record.Mood)
			return nil
		})
	}

	// Item errors are swallowed above; Wait only fails on context cancellation.
	if err := g.Wait(); err != nil {
		return result, err
	}

	if len(records) > 0 {
		if err := a.index.Upsert(ctx, records); err != nil {
			return result, fmt.Errorf("failed to upsert records: %w", err)
		}
		if err := a.index.Ready(ctx); err != nil {
			return result, fmt.Errorf("failed to ready collection: %w", err)
		}
	}

	result.Processed = len(records)
	logger.Info("Ingested %d of %d tracks", result.Processed, result.Total)
	return result, nil
}

// enrich builds one TrackRecord from a raw pair.
func (a *Analyzer) enrich(ctx context.Context, pair core.TrackPair) (core.TrackRecord, error) {
	if strings.TrimSpace(pair.Artist) == "" || strings.TrimSpace(pair.Song) == "" {
		return core.TrackRecord{}, fmt.Errorf("artist and song must be non-empty")
	}

	description := pair.Description()

	genre, mood, err := a.extractor.Extract(ctx, description)
	if err != nil {
		return core.TrackRecord{}, fmt.Errorf("extraction failed: %w", err)
	}

	embedding, err := a.embedder.Embed(ctx, description, core.EmbedDocument)
	if err != nil {
		return core.TrackRecord{}, fmt.Errorf("embedding failed: %w", err)
	}

	return core.TrackRecord{
		ID:        newTrackID(),
		Artist:    pair.Artist,
		Song:      pair.Song,
		TrackInfo: description,
		Genre:     genre,
		Mood:      mood,
		Embedding: embedding,
	}, nil
}

// newTrackID generates a fresh opaque record id.
func newTrackID() string {
	return "track_" + uuid.NewString()[:8]
}

// Retrieve embeds the query and returns up to k candidates in the store's
// similarity order, best match first. Display fields missing from a hit get
// the documented placeholders instead of failing the query.
func (a *Analyzer) Retrieve(ctx context.Context, query string, k int) ([]core.QueryCandidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyQuery
	}
	if k <= 0 {
		k = DefaultTopK
	}

	queryVector, err := a.embedder.Embed(ctx, query, core.EmbedQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := a.index.Search(ctx, queryVector, k)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	candidates := make([]core.QueryCandidate, 0, len(hits))
	for _, hit := range hits {
		c := core.QueryCandidate{
			Artist:          hit.Artist,
			Song:            hit.Song,
			Genre:           hit.Genre,
			Mood:            hit.Mood,
			SimilarityScore: 1 - hit.Distance,
		}
		if c.Artist == "" {
			c.Artist = core.UnknownArtist
		}
		if c.Song == "" {
			c.Song = core.UnknownSong
		}
		if c.Genre == "" {
			c.Genre = core.UnknownLabel
		}
		if c.Mood == "" {
			c.Mood = core.UnknownLabel
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

// Query answers a free-text question: retrieval followed by deterministic
// response synthesis.
func (a *Analyzer) Query(ctx context.Context, query string) (core.QueryResult, error) {
	candidates, err := a.Retrieve(ctx, query, DefaultTopK)
	if err != nil {
		return core.QueryResult{}, err
	}

	response, insights := Synthesize(query, candidates)
	return core.QueryResult{
		Response: response,
		Tracks:   candidates,
		Insights: insights,
	}, nil
}

// Stats scans the stored catalog and aggregates genre, mood and artist
// distributions. TopArtists is capped at 10, sorted by count descending.
func (a *Analyzer) Stats(ctx context.Context) (core.LibraryStats, error) {
	records, err := a.index.ScanAll(ctx, scanLimit)
	if err != nil {
		return core.LibraryStats{}, fmt.Errorf("failed to scan collection: %w", err)
	}

	stats := core.LibraryStats{
		TotalTracks: len(records),
		Genres:      make(map[string]int),
		Moods:       make(map[string]int),
	}

	artists := make(map[string]int)
	for _, r := range records {
		stats.Genres[r.Genre]++
		stats.Moods[r.Mood]++
		artists[r.Artist]++
	}

	for artist, count := range artists {
		stats.TopArtists = append(stats.TopArtists, core.ArtistCount{Artist: artist, Count: count})
	}
	sort.Slice(stats.TopArtists, func(i, j int) bool {
		if stats.TopArtists[i].Count != stats.TopArtists[j].Count {
			return stats.TopArtists[i].Count > stats.TopArtists[j].Count
		}
		return stats.TopArtists[i].Artist < stats.TopArtists[j].Artist
	})
	if len(stats.TopArtists) > 10 {
		stats.TopArtists = stats.TopArtists[:10]
	}

	return stats, nil
}
