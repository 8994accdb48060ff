// Package index provides vector-searchable stores of enriched track records
// under a cosine metric.
package index

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"github.com/arjunmehta/tastemap/internal/core"
	"github.com/arjunmehta/tastemap/internal/logger"
)

// Field names for the Milvus collection.
const (
	FieldID        = "id"
	FieldTrackInfo = "track_info"
	FieldArtist    = "artist"
	FieldSong      = "song"
	FieldGenre     = "primary_genre"
	FieldMood      = "mood"
	FieldEmbedding = "embedding"
)

// CollectionName is the single collection holding the track catalog.
const CollectionName = "music_tracks"

// MilvusIndex implements core.TrackIndex on a Milvus collection with a
// COSINE HNSW index on the embedding field.
type MilvusIndex struct {
	client *milvusclient.Client
	dim    int
}

// NewMilvusIndex connects to Milvus at addr. The collection itself is not
// touched until Create is called.
func NewMilvusIndex(ctx context.Context, addr string, dim int) (*MilvusIndex, error) {
	logger.Info("Connecting to Milvus at %s with dimension %d", addr, dim)

	if dim <= 0 {
		dim = core.DefaultEmbeddingDim
	}

	c, err := milvusclient.New(ctx, &milvusclient.ClientConfig{
		Address: addr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Milvus: %w", err)
	}

	return &MilvusIndex{
		client: c,
		dim:    dim,
	}, nil
}

// Create implements core.TrackIndex. It drops any existing collection, then
// creates a fresh one with the fixed vector dimension and a COSINE HNSW
// index. Callers must not interleave this with in-flight searches or upserts.
func (m *MilvusIndex) Create(ctx context.Context, dim int) error {
	if dim <= 0 {
		dim = m.dim
	}
	if dim != m.dim {
		return fmt.Errorf("collection dimension %d does not match index dimension %d", dim, m.dim)
	}

	hasOpt := milvusclient.NewHasCollectionOption(CollectionName)
	exists, err := m.client.HasCollection(ctx, hasOpt)
	if err != nil {
		return fmt.Errorf("failed to check if collection exists: %w", err)
	}

	if exists {
		logger.Info("Dropping existing collection: %s", CollectionName)
		dropOpt := milvusclient.NewDropCollectionOption(CollectionName)
		if err := m.client.DropCollection(ctx, dropOpt); err != nil {
			return fmt.Errorf("failed to drop collection %s: %w", CollectionName, err)
		}
	}

	schema := &entity.Schema{
		CollectionName: CollectionName,
		Description:    "Enriched music tracks with genre/mood labels and embeddings",
		Fields: []*entity.Field{
			{
				Name:       FieldID,
				DataType:   entity.FieldTypeVarChar,
				PrimaryKey: true,
				AutoID:     false,
				TypeParams: map[string]string{
					"max_length": "100",
				},
			},
			{
				Name:     FieldTrackInfo,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "1000",
				},
			},
			{
				Name:     FieldArtist,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "200",
				},
			},
			{
				Name:     FieldSong,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "200",
				},
			},
			{
				Name:     FieldGenre,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "100",
				},
			},
			{
				Name:     FieldMood,
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "100",
				},
			},
			{
				Name:     FieldEmbedding,
				DataType: entity.FieldTypeFloatVector,
				TypeParams: map[string]string{
					"dim": fmt.Sprintf("%d", dim),
				},
			},
		},
	}

	createOpt := milvusclient.NewCreateCollectionOption(CollectionName, schema)
	if err := m.client.CreateCollection(ctx, createOpt); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	vecIdx := index.NewHNSWIndex(entity.COSINE, 16, 200)
	indexOpt := milvusclient.NewCreateIndexOption(CollectionName, FieldEmbedding, vecIdx)
	if _, err := m.client.CreateIndex(ctx, indexOpt); err != nil {
		return fmt.Errorf("failed to create index on embedding field: %w", err)
	}

	loadOpt := milvusclient.NewLoadCollectionOption(CollectionName)
	if _, err := m.client.LoadCollection(ctx, loadOpt); err != nil {
		return fmt.Errorf("failed to load collection %s: %w", CollectionName, err)
	}

	logger.Info("Created and loaded collection: %s (dim=%d)", CollectionName, dim)
	return nil
}

// Upsert implements core.TrackIndex.
func (m *MilvusIndex) Upsert(ctx context.Context, records []core.TrackRecord) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]string, len(records))
	infos := make([]string, len(records))
	artists := make([]string, len(records))
	songs := make([]string, len(records))
	genres := make([]string, len(records))
	moods := make([]string, len(records))
	vectors := make([][]float32, len(records))

	for i, r := range records {
		if len(r.Embedding) != m.dim {
			return fmt.Errorf("record %s has embedding dimension %d, index requires %d", r.ID, len(r.Embedding), m.dim)
		}
		ids[i] = r.ID
		infos[i] = r.TrackInfo
		artists[i] = r.Artist
		songs[i] = r.Song
		genres[i] = r.Genre
		moods[i] = r.Mood
		vectors[i] = r.Embedding
	}

	upsertOpt := milvusclient.NewColumnBasedInsertOption(CollectionName,
		column.NewColumnVarChar(FieldID, ids),
		column.NewColumnVarChar(FieldTrackInfo, infos),
		column.NewColumnVarChar(FieldArtist, artists),
		column.NewColumnVarChar(FieldSong, songs),
		column.NewColumnVarChar(FieldGenre, genres),
		column.NewColumnVarChar(FieldMood, moods),
		column.NewColumnFloatVector(FieldEmbedding, m.dim, vectors),
	)

	if _, err := m.client.Upsert(ctx, upsertOpt); err != nil {
		return fmt.Errorf("failed to upsert %d records: %w", len(records), err)
	}

	logger.Debug("Upserted %d records into %s", len(records), CollectionName)
	return nil
}

// Ready implements core.TrackIndex. Milvus requires a flush and a loaded
// collection before new data is guaranteed to be searchable.
func (m *MilvusIndex) Ready(ctx context.Context) error {
	flushTask, err := m.client.Flush(ctx, milvusclient.NewFlushOption(CollectionName))
	if err != nil {
		return fmt.Errorf("failed to flush collection: %w", err)
	}
	if err := flushTask.Await(ctx); err != nil {
		return fmt.Errorf("failed to await flush: %w", err)
	}

	loadOpt := milvusclient.NewLoadCollectionOption(CollectionName)
	if _, err := m.client.LoadCollection(ctx, loadOpt); err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}
	return nil
}

// Search implements core.TrackIndex. Milvus reports COSINE scores as
// similarities; they are converted to distances (1 - score) so all index
// implementations expose the same contract.
func (m *MilvusIndex) Search(ctx context.Context, vector []float32, k int) ([]core.SearchHit, error) {
	if k <= 0 {
		k = 5
	}

	searchOpt := milvusclient.NewSearchOption(CollectionName, k, []entity.Vector{entity.FloatVector(vector)}).
		WithANNSField(FieldEmbedding).
		WithOutputFields(FieldArtist, FieldSong, FieldGenre, FieldMood)

	resultSets, err := m.client.Search(ctx, searchOpt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	hits := []core.SearchHit{}
	if len(resultSets) == 0 {
		return hits, nil
	}

	rs := resultSets[0]
	for i := 0; i < rs.ResultCount; i++ {
		hit := core.SearchHit{}

		if rs.IDs != nil {
			if id, err := rs.IDs.GetAsString(i); err == nil {
				hit.ID = id
			}
		}
		hit.Artist = columnString(rs.GetColumn(FieldArtist), i)
		hit.Song = columnString(rs.GetColumn(FieldSong), i)
		hit.Genre = columnString(rs.GetColumn(FieldGenre), i)
		hit.Mood = columnString(rs.GetColumn(FieldMood), i)

		if i < len(rs.Scores) {
			hit.Distance = 1 - float64(rs.Scores[i])
		}

		hits = append(hits, hit)
	}

	return hits, nil
}

// ScanAll implements core.TrackIndex.
func (m *MilvusIndex) ScanAll(ctx context.Context, limit int) ([]core.TrackRecord, error) {
	if limit <= 0 {
		limit = 1000
	}

	queryOpt := milvusclient.NewQueryOption(CollectionName).
		WithOutputFields(FieldID, FieldArtist, FieldSong, FieldGenre, FieldMood).
		WithLimit(limit)

	result, err := m.client.Query(ctx, queryOpt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan collection: %w", err)
	}

	idCol := result.GetColumn(FieldID)
	if idCol == nil {
		return []core.TrackRecord{}, nil
	}

	records := make([]core.TrackRecord, 0, idCol.Len())
	for i := 0; i < idCol.Len(); i++ {
		rec := core.TrackRecord{
			Artist: columnString(result.GetColumn(FieldArtist), i),
			Song:   columnString(result.GetColumn(FieldSong), i),
			Genre:  columnString(result.GetColumn(FieldGenre), i),
			Mood:   columnString(result.GetColumn(FieldMood), i),
		}
		if id, err := idCol.GetAsString(i); err == nil {
			rec.ID = id
		}
		records = append(records, rec)
	}

	return records, nil
}

// Close implements core.TrackIndex.
func (m *MilvusIndex) Close() error {
	return m.client.Close(context.Background())
}

// columnString reads row i of a varchar column, tolerating missing columns.
func columnString(col column.Column, i int) string {
	if col == nil || i >= col.Len() {
		return ""
	}
	s, err := col.GetAsString(i)
	if err != nil {
		return ""
	}
	return s
}
