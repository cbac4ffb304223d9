package chunker

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragflow/internal/domain"
)

func TestWindowChunker_SegmentCount(t *testing.T) {
	cases := []struct {
		name    string
		length  int
		size    int
		overlap float64
	}{
		{"no overlap even split", 1000, 100, 0},
		{"ten percent overlap", 1000, 100, 0.1},
		{"half overlap", 750, 100, 0.5},
		{"uneven tail", 1037, 250, 0.2},
		{"fractional step truncates", 50, 10, 1.0 / 3.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := domain.Document{ID: "d", Text: strings.Repeat("a", tc.length)}
			segments := NewWindowChunker(tc.size, tc.overlap).Split(doc)

			// the window advances by whole runes: size*(1-overlap) truncated
			step := float64(int(float64(tc.size) * (1 - tc.overlap)))
			want := int(math.Ceil(float64(tc.length-tc.size)/step)) + 1
			assert.Len(t, segments, want)
		})
	}
}

func TestWindowChunker_ShortDocument(t *testing.T) {
	doc := domain.Document{ID: "d", Text: "tiny"}
	segments := NewWindowChunker(500, 0.1).Split(doc)

	require.Len(t, segments, 1)
	assert.Equal(t, "tiny", segments[0].Text)
	assert.Equal(t, "d:0", segments[0].ID)
	assert.Equal(t, 0, segments[0].Start)
	assert.Equal(t, 4, segments[0].End)
}

func TestWindowChunker_Overlap(t *testing.T) {
	doc := domain.Document{ID: "d", Text: "abcdefghijklmnopqrst"}
	segments := NewWindowChunker(10, 0.5).Split(doc)

	require.True(t, len(segments) >= 2)
	for i := 1; i < len(segments); i++ {
		prev, cur := segments[i-1], segments[i]
		assert.Equal(t, prev.DocumentID, cur.DocumentID)
		assert.Equal(t, prev.Seq+1, cur.Seq)
		// each window starts halfway into the previous one
		assert.Equal(t, prev.Start+5, cur.Start)
	}
}

func TestWindowChunker_Deterministic(t *testing.T) {
	doc := domain.Document{ID: "d", Text: strings.Repeat("the quick brown fox ", 60)}
	c := NewWindowChunker(120, 0.25)
	assert.Equal(t, c.Split(doc), c.Split(doc))
}

func TestWindowChunker_EmptyDocument(t *testing.T) {
	segments := NewWindowChunker(100, 0.1).Split(domain.Document{ID: "d"})
	assert.Empty(t, segments)
}
