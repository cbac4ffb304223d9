// Package index provides vector index implementations behind the
// domain.VectorIndex interface.
package index

import (
	"math"
	"sort"
	"sync"

	"ragflow/internal/domain"
)

// Memory is an in-memory vector index using brute-force cosine distance.
// Entries are immutable once inserted; a single RWMutex gives the
// multiple-readers/single-writer discipline the query path relies on.
type Memory struct {
	mu        sync.RWMutex
	dimension int
	entries   []entry
}

type entry struct {
	segment domain.Segment
	vector  []float64
}

// NewMemory creates an empty index. The dimensionality is fixed by the first
// inserted vector.
func NewMemory() *Memory { return &Memory{} }

// Insert appends an index entry. There is no deduplication; inserting the
// same segment twice yields two entries. A vector whose length disagrees with
// the established dimensionality fails with ErrDimensionMismatch and leaves
// the index unchanged.
func (m *Memory) Insert(segment domain.Segment, vector []float64) error {
	if len(vector) == 0 {
		return domain.ErrDimensionMismatch
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dimension == 0 {
		m.dimension = len(vector)
	} else if len(vector) != m.dimension {
		return domain.ErrDimensionMismatch
	}
	v := make([]float64, len(vector))
	copy(v, vector)
	m.entries = append(m.entries, entry{segment: segment, vector: v})
	return nil
}

// Query returns the k entries closest to the query vector, ascending by
// cosine distance, ties broken by insertion order. k is clamped to the index
// size; querying an empty index returns an empty result, not an error.
func (m *Memory) Query(vector []float64, k int) ([]domain.Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.entries) == 0 || k <= 0 {
		return nil, nil
	}
	if len(vector) != m.dimension {
		return nil, domain.ErrDimensionMismatch
	}
	matches := make([]domain.Match, len(m.entries))
	for i, e := range m.entries {
		matches[i] = domain.Match{Segment: e.segment, Distance: cosineDistance(vector, e.vector)}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k], nil
}

// Len reports the number of entries in the index.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// cosineDistance is 1 - cosine similarity. Orthogonal or zero vectors are at
// distance 1.
func cosineDistance(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
