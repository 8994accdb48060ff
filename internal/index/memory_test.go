package index

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunmehta/tastemap/internal/core"
	"github.com/arjunmehta/tastemap/internal/embed"
)

func newTestRecord(t *testing.T, e core.Embedder, id, artist, song, genre, mood string) core.TrackRecord {
	t.Helper()
	pair := core.TrackPair{Artist: artist, Song: song}
	vec, err := e.Embed(context.Background(), pair.Description(), core.EmbedDocument)
	require.NoError(t, err)
	return core.TrackRecord{
		ID:        id,
		Artist:    artist,
		Song:      song,
		TrackInfo: pair.Description(),
		Genre:     genre,
		Mood:      mood,
		Embedding: vec,
	}
}

func TestMemoryIndexSearch(t *testing.T) {
	ctx := context.Background()
	embedder := embed.NewStubEmbedder(64)

	idx := NewMemoryIndex(64)
	require.NoError(t, idx.Create(ctx, 64))

	records := []core.TrackRecord{
		newTestRecord(t, embedder, "track_1", "Coldplay", "Yellow", "pop-rock", "melancholic"),
		newTestRecord(t, embedder, "track_2", "Morgan Wallen", "Last Night", "country", "nostalgic"),
		newTestRecord(t, embedder, "track_3", "Kygo", "Stole the Show", "electronic", "upbeat"),
	}
	require.NoError(t, idx.Upsert(ctx, records))
	require.NoError(t, idx.Ready(ctx))

	t.Run("self-query is the top hit with similarity 1", func(t *testing.T) {
		hits, err := idx.Search(ctx, records[1].Embedding, 3)
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, "track_2", hits[0].ID)
		assert.InDelta(t, 0.0, hits[0].Distance, 1e-6)
	})

	t.Run("never returns more than k hits", func(t *testing.T) {
		hits, err := idx.Search(ctx, records[0].Embedding, 2)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(hits), 2)
	})

	t.Run("hits are ordered by increasing distance", func(t *testing.T) {
		hits, err := idx.Search(ctx, records[0].Embedding, 3)
		require.NoError(t, err)
		for i := 1; i < len(hits); i++ {
			assert.LessOrEqual(t, hits[i-1].Distance, hits[i].Distance)
		}
	})

	t.Run("empty collection yields empty slice", func(t *testing.T) {
		fresh := NewMemoryIndex(64)
		require.NoError(t, fresh.Create(ctx, 64))
		hits, err := fresh.Search(ctx, records[0].Embedding, 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("dimension mismatch is an error", func(t *testing.T) {
		_, err := idx.Search(ctx, make([]float32, 32), 5)
		assert.Error(t, err)
	})
}

func TestMemoryIndexUpsert(t *testing.T) {
	ctx := context.Background()
	embedder := embed.NewStubEmbedder(64)

	idx := NewMemoryIndex(64)
	require.NoError(t, idx.Create(ctx, 64))

	rec := newTestRecord(t, embedder, "track_1", "Coldplay", "Yellow", "pop-rock", "melancholic")
	require.NoError(t, idx.Upsert(ctx, []core.TrackRecord{rec}))

	t.Run("replaces by id", func(t *testing.T) {
		rec.Mood = "upbeat"
		require.NoError(t, idx.Upsert(ctx, []core.TrackRecord{rec}))

		records, err := idx.ScanAll(ctx, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "upbeat", records[0].Mood)
	})

	t.Run("rejects wrong-dimension embeddings", func(t *testing.T) {
		bad := rec
		bad.ID = "track_bad"
		bad.Embedding = make([]float32, 8)
		assert.Error(t, idx.Upsert(ctx, []core.TrackRecord{bad}))
	})

	t.Run("create wipes prior contents", func(t *testing.T) {
		require.NoError(t, idx.Create(ctx, 64))
		records, err := idx.ScanAll(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestMemoryIndexScanAll(t *testing.T) {
	ctx := context.Background()
	embedder := embed.NewStubEmbedder(64)

	idx := NewMemoryIndex(64)
	require.NoError(t, idx.Create(ctx, 64))

	var records []core.TrackRecord
	for i := 0; i < 20; i++ {
		records = append(records, newTestRecord(t, embedder,
			fmt.Sprintf("track_%d", i), fmt.Sprintf("Artist %d", i), fmt.Sprintf("Song %d", i), "alternative", "chill"))
	}
	require.NoError(t, idx.Upsert(ctx, records))

	t.Run("respects the limit", func(t *testing.T) {
		scanned, err := idx.ScanAll(ctx, 5)
		require.NoError(t, err)
		assert.Len(t, scanned, 5)
	})

	t.Run("omits embeddings", func(t *testing.T) {
		scanned, err := idx.ScanAll(ctx, 20)
		require.NoError(t, err)
		for _, r := range scanned {
			assert.Nil(t, r.Embedding)
		}
	})
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical direction", func(t *testing.T) {
		sim, err := cosineSimilarity([]float32{1, 0}, []float32{2, 0})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sim, 1e-9)
	})

	t.Run("orthogonal", func(t *testing.T) {
		sim, err := cosineSimilarity([]float32{1, 0}, []float32{0, 1})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, sim, 1e-9)
	})

	t.Run("opposite direction", func(t *testing.T) {
		sim, err := cosineSimilarity([]float32{1, 0}, []float32{-1, 0})
		require.NoError(t, err)
		assert.InDelta(t, -1.0, sim, 1e-9)
	})
}
