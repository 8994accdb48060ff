package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/arjunmehta/tastemap/internal/core"
)

// MemoryIndex implements core.TrackIndex with an in-process brute-force
// cosine scan. It backs offline runs and tests; exact search keeps the
// contract identical to the Milvus implementation.
type MemoryIndex struct {
	mu      sync.RWMutex
	dim     int
	records map[string]core.TrackRecord
	order   []string // insertion order, for stable scans
}

// NewMemoryIndex creates an in-memory index with the given dimensionality.
func NewMemoryIndex(dim int) *MemoryIndex {
	if dim <= 0 {
		dim = core.DefaultEmbeddingDim
	}
	return &MemoryIndex{
		dim:     dim,
		records: make(map[string]core.TrackRecord),
	}
}

// Create implements core.TrackIndex.
func (m *MemoryIndex) Create(_ context.Context, dim int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dim > 0 {
		m.dim = dim
	}
	m.records = make(map[string]core.TrackRecord)
	m.order = nil
	return nil
}

// Upsert implements core.TrackIndex.
func (m *MemoryIndex) Upsert(_ context.Context, records []core.TrackRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range records {
		if len(r.Embedding) != m.dim {
			return fmt.Errorf("record %s has embedding dimension %d, index requires %d", r.ID, len(r.Embedding), m.dim)
		}
		if _, exists := m.records[r.ID]; !exists {
			m.order = append(m.order, r.ID)
		}
		m.records[r.ID] = r
	}
	return nil
}

// Ready implements core.TrackIndex. Nothing to do for an in-process store.
func (m *MemoryIndex) Ready(_ context.Context) error {
	return nil
}

// Search implements core.TrackIndex with an exact scan.
func (m *MemoryIndex) Search(_ context.Context, vector []float32, k int) ([]core.SearchHit, error) {
	if k <= 0 {
		k = 5
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	hits := []core.SearchHit{}
	for _, id := range m.order {
		r := m.records[id]
		sim, err := cosineSimilarity(vector, r.Embedding)
		if err != nil {
			return nil, err
		}
		hits = append(hits, core.SearchHit{
			ID:       r.ID,
			Artist:   r.Artist,
			Song:     r.Song,
			Genre:    r.Genre,
			Mood:     r.Mood,
			Distance: 1 - sim,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// ScanAll implements core.TrackIndex.
func (m *MemoryIndex) ScanAll(_ context.Context, limit int) ([]core.TrackRecord, error) {
	if limit <= 0 {
		limit = 1000
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]core.TrackRecord, 0, len(m.order))
	for _, id := range m.order {
		if len(records) >= limit {
			break
		}
		r := m.records[id]
		r.Embedding = nil
		records = append(records, r)
	}
	return records, nil
}

// Close implements core.TrackIndex.
func (m *MemoryIndex) Close() error {
	return nil
}

// cosineSimilarity returns the cosine of the angle between a and b.
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions do not match: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
