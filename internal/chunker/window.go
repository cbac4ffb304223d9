package chunker

import (
	"strconv"

	"ragflow/internal/domain"
)

// WindowChunker splits text into fixed-size segments with fractional overlap.
// The window advances by size*(1-overlap) runes per step, truncated to a
// whole rune count (minimum 1), so consecutive segments from the same
// document share roughly an overlap*size rune suffix/prefix.
type WindowChunker struct {
	size    int
	overlap float64
}

// NewWindowChunker creates a chunker producing segments of roughly size runes.
// Invalid arguments are clamped: size must be positive, overlap must be in
// [0, 1).
func NewWindowChunker(size int, overlap float64) *WindowChunker {
	if size <= 0 {
		size = 500
	}
	if overlap < 0 || overlap >= 1 {
		overlap = 0.1
	}
	return &WindowChunker{size: size, overlap: overlap}
}

// Split produces the ordered segment sequence for a document. Identical input
// always yields identical output. An empty document yields no segments.
func (c *WindowChunker) Split(document domain.Document) []domain.Segment {
	runes := []rune(document.Text)
	if len(runes) == 0 {
		return nil
	}
	step := int(float64(c.size) * (1 - c.overlap))
	if step < 1 {
		step = 1
	}
	var segments []domain.Segment
	seq := 0
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		segments = append(segments, domain.Segment{
			ID:         document.ID + ":" + strconv.Itoa(seq),
			DocumentID: document.ID,
			Text:       string(runes[start:end]),
			Start:      start,
			End:        end,
			Seq:        seq,
		})
		if end == len(runes) {
			break
		}
		seq++
	}
	return segments
}
