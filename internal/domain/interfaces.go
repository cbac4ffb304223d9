package domain

import "context"

// Chunker splits documents into overlapping segments suitable for indexing.
type Chunker interface {
	Split(document Document) []Segment
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}

// VectorIndex stores segment embeddings and supports k-nearest-neighbor
// queries by vector distance.
type VectorIndex interface {
	Insert(segment Segment, vector []float64) error
	Query(vector []float64, k int) ([]Match, error)
	Len() int
}

// Generator is a language-model collaborator that completes a prompt.
type Generator interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}
