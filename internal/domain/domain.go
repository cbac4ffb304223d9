package domain

// Document is an immutable piece of source text loaded into the system.
type Document struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// Segment is a bounded span of a document's text used as the atomic
// retrieval unit. Offsets are rune offsets into the parent document.
type Segment struct {
	ID         string
	DocumentID string
	Text       string
	Start      int
	End        int
	Seq        int
}

// Match pairs a segment with its distance to a query vector.
// Smaller distance means a closer match.
type Match struct {
	Segment  Segment
	Distance float64
}
