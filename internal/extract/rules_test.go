package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunmehta/tastemap/internal/core"
)

func TestRuleExtractor(t *testing.T) {
	e := NewRuleExtractor()
	ctx := context.Background()

	tests := []struct {
		name      string
		artist    string
		song      string
		wantGenre string
		wantMood  string
	}{
		{"pop-rock melancholic", "Coldplay", "Yellow", "pop-rock", "melancholic"},
		{"pop-rock upbeat", "Coldplay", "Viva La Vida", "pop-rock", "upbeat"},
		{"country nostalgic", "Morgan Wallen", "Last Night", "country", "nostalgic"},
		{"country romantic", "Dan + Shay", "Tequila", "country", "romantic"},
		{"electronic defaults to energetic", "Kygo", "It Ain't Me", "electronic", "energetic"},
		{"electronic upbeat keyword wins", "Kygo", "Stole the Show", "electronic", "upbeat"},
		{"bollywood", "Arijit Singh", "California's Burning", "bollywood", "chill"},
		{"indie-folk", "Death Cab for Cutie", "Your New Twin Sized Bed", "indie-folk", "chill"},
		{"unknown artist falls back", "Nobody", "Nothing", core.DefaultGenre, core.DefaultMood},
		{"artist match is case-insensitive", "COLDPLAY", "Clocks", "pop-rock", "upbeat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := core.TrackPair{Artist: tt.artist, Song: tt.song}
			genre, mood, err := e.Extract(ctx, pair.Description())
			require.NoError(t, err)
			assert.Equal(t, tt.wantGenre, genre)
			assert.Equal(t, tt.wantMood, mood)
		})
	}
}

func TestRuleExtractorAlwaysInVocabulary(t *testing.T) {
	e := NewRuleExtractor()

	descriptions := []string{
		"Artist: Coldplay, Song: Yellow",
		"Artist: Someone Totally Unknown, Song: Some Unknown Song",
		"not even a canonical description",
		"",
	}

	for _, d := range descriptions {
		genre, mood, err := e.Extract(context.Background(), d)
		require.NoError(t, err)
		assert.True(t, core.ValidGenre(genre), "genre %q must be in vocabulary", genre)
		assert.True(t, core.ValidMood(mood), "mood %q must be in vocabulary", mood)
	}
}

func TestClampLabels(t *testing.T) {
	t.Run("valid labels pass through", func(t *testing.T) {
		genre, mood := ClampLabels("country", "nostalgic")
		assert.Equal(t, "country", genre)
		assert.Equal(t, "nostalgic", mood)
	})

	t.Run("labels are normalized", func(t *testing.T) {
		genre, mood := ClampLabels(" Country ", "NOSTALGIC")
		assert.Equal(t, "country", genre)
		assert.Equal(t, "nostalgic", mood)
	})

	t.Run("out-of-vocabulary values clamp to defaults", func(t *testing.T) {
		genre, mood := ClampLabels("death-metal", "furious")
		assert.Equal(t, core.DefaultGenre, genre)
		assert.Equal(t, core.DefaultMood, mood)
	})

	t.Run("missing values clamp to defaults", func(t *testing.T) {
		genre, mood := ClampLabels("", "")
		assert.Equal(t, core.DefaultGenre, genre)
		assert.Equal(t, core.DefaultMood, mood)
	})
}
