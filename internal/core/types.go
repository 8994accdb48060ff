package core

import "fmt"

// DefaultEmbeddingDim is the default dimension for embedding vectors.
// Matches the output dimensionality of gemini-embedding-001.
const DefaultEmbeddingDim = 3072

// Genres is the closed genre vocabulary. Both the extraction layer and the
// display layer depend on this set staying finite and known.
var Genres = []string{"pop-rock", "indie-folk", "country", "electronic", "alternative", "bollywood"}

// Moods is the closed mood vocabulary.
var Moods = []string{"melancholic", "upbeat", "chill", "nostalgic", "romantic", "energetic"}

// Default labels substituted whenever extraction produces a value outside the
// vocabularies or omits a field. One policy everywhere; the retrieval layer
// uses its own display placeholders for hits missing stored fields.
const (
	DefaultGenre = "alternative"
	DefaultMood  = "chill"
)

// Display placeholders for partially populated search hits.
const (
	UnknownArtist = "Unknown"
	UnknownSong   = "Unknown"
	UnknownLabel  = "unknown"
)

// TrackPair is a raw (artist, song) input pair before enrichment.
type TrackPair struct {
	Artist string `json:"artist"`
	Song   string `json:"song"`
}

// Description returns the canonical text form of the pair, used for both
// label extraction and embedding.
func (p TrackPair) Description() string {
	return fmt.Sprintf("Artist: %s, Song: %s", p.Artist, p.Song)
}

// TrackRecord is the unit of storage: a pair enriched with labels and an
// embedding. Records are never mutated in place; a re-ingest rebuilds the
// collection.
type TrackRecord struct {
	ID        string    `json:"id"`
	Artist    string    `json:"artist"`
	Song      string    `json:"song"`
	TrackInfo string    `json:"track_info"`
	Genre     string    `json:"primary_genre"`
	Mood      string    `json:"mood"`
	Embedding []float32 `json:"-"`
}

// QueryCandidate is a per-query search hit: record display fields plus the
// cosine similarity to the query vector. Not persisted.
type QueryCandidate struct {
	Artist          string  `json:"artist"`
	Song            string  `json:"song"`
	Genre           string  `json:"primary_genre"`
	Mood            string  `json:"mood"`
	SimilarityScore float64 `json:"similarity_score"`
}

// SearchHit is what the index returns for one k-NN match: the stored display
// fields and the cosine distance (1 - similarity) to the query vector.
type SearchHit struct {
	ID       string
	Artist   string
	Song     string
	Genre    string
	Mood     string
	Distance float64
}

// IngestResult reports how many of the input pairs made it into the index.
type IngestResult struct {
	Processed int `json:"processed_tracks"`
	Total     int `json:"total_tracks"`
}

// QueryResult is the structured answer for one free-text question.
type QueryResult struct {
	Response string           `json:"response"`
	Tracks   []QueryCandidate `json:"relevant_tracks"`
	Insights []string         `json:"insights"`
}

// ArtistCount is one entry of the top-artists ranking.
type ArtistCount struct {
	Artist string `json:"artist"`
	Count  int    `json:"count"`
}

// LibraryStats summarizes the stored catalog.
type LibraryStats struct {
	TotalTracks int            `json:"total_tracks"`
	Genres      map[string]int `json:"genres"`
	Moods       map[string]int `json:"moods"`
	TopArtists  []ArtistCount  `json:"top_artists"`
}

// ValidGenre reports whether g belongs to the genre vocabulary.
func ValidGenre(g string) bool {
	for _, v := range Genres {
		if v == g {
			return true
		}
	}
	return false
}

// ValidMood reports whether m belongs to the mood vocabulary.
func ValidMood(m string) bool {
	for _, v := range Moods {
		if v == m {
			return true
		}
	}
	return false
}
