package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunmehta/tastemap/internal/core"
)

func TestParsePairs(t *testing.T) {
	t.Run("parses artist and song columns", func(t *testing.T) {
		input := "artist,song\nColdplay,Yellow\nKygo,Stole the Show\n"

		pairs, err := ParsePairs(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, pairs, 2)
		assert.Equal(t, core.TrackPair{Artist: "Coldplay", Song: "Yellow"}, pairs[0])
		assert.Equal(t, core.TrackPair{Artist: "Kygo", Song: "Stole the Show"}, pairs[1])
	})

	t.Run("header matching is case-insensitive", func(t *testing.T) {
		input := "Artist,SONG\nColdplay,Yellow\n"

		pairs, err := ParsePairs(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.Equal(t, "Coldplay", pairs[0].Artist)
	})

	t.Run("column order is free and extras are ignored", func(t *testing.T) {
		input := "rank,song,artist\n1,Yellow,Coldplay\n"

		pairs, err := ParsePairs(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.Equal(t, core.TrackPair{Artist: "Coldplay", Song: "Yellow"}, pairs[0])
	})

	t.Run("fields are trimmed", func(t *testing.T) {
		input := "artist,song\nColdplay ,  Yellow  \n"

		pairs, err := ParsePairs(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.Equal(t, "Coldplay", pairs[0].Artist)
		assert.Equal(t, "Yellow", pairs[0].Song)
	})

	t.Run("short rows are skipped", func(t *testing.T) {
		input := "artist,song\nColdplay\nKygo,Stole the Show\n"

		pairs, err := ParsePairs(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.Equal(t, "Kygo", pairs[0].Artist)
	})

	t.Run("missing artist column", func(t *testing.T) {
		_, err := ParsePairs(strings.NewReader("band,song\nColdplay,Yellow\n"))
		assert.ErrorIs(t, err, core.ErrMissingColumns)
	})

	t.Run("missing song column", func(t *testing.T) {
		_, err := ParsePairs(strings.NewReader("artist,track\nColdplay,Yellow\n"))
		assert.ErrorIs(t, err, core.ErrMissingColumns)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ParsePairs(strings.NewReader(""))
		assert.ErrorIs(t, err, core.ErrMissingColumns)
	})

	t.Run("header only yields no pairs", func(t *testing.T) {
		pairs, err := ParsePairs(strings.NewReader("artist,song\n"))
		require.NoError(t, err)
		assert.Empty(t, pairs)
	})
}

func TestSeedPairs(t *testing.T) {
	pairs := SeedPairs()
	assert.Len(t, pairs, 67)

	for _, p := range pairs {
		assert.NotEmpty(t, p.Artist)
		assert.NotEmpty(t, p.Song)
	}

	t.Run("callers cannot mutate the catalog", func(t *testing.T) {
		pairs[0].Artist = "overwritten"
		assert.NotEqual(t, "overwritten", SeedPairs()[0].Artist)
	})
}
