// Package retriever assembles query context from the vector index.
package retriever

import (
	"context"
	"fmt"
	"strings"

	"ragflow/internal/domain"
	"ragflow/internal/logger"
)

// Separator joins ranked segment texts into one context string.
const Separator = "\n\n"

// Result is the outcome of one retrieval: the assembled context text and the
// identifiers of the segments it was built from, in rank order.
type Result struct {
	Context string
	Sources []string
}

// Retriever embeds a question and collects the top-k nearest segments.
type Retriever struct {
	embedder domain.Embedder
	index    domain.VectorIndex
	log      *logger.Logger
}

// New creates a Retriever over the given embedder and index.
func New(embedder domain.Embedder, index domain.VectorIndex) *Retriever {
	return &Retriever{embedder: embedder, index: index, log: logger.New("retriever")}
}

// Retrieve returns the assembled context for a question. An empty index
// yields an empty result, not an error: downstream stages are expected to
// handle missing context.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int) (Result, error) {
	if r.index.Len() == 0 {
		r.log.Debug("index is empty, returning empty context")
		return Result{}, nil
	}
	vec, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return Result{}, fmt.Errorf("embed question: %w", err)
	}
	matches, err := r.index.Query(vec, k)
	if err != nil {
		return Result{}, fmt.Errorf("query index: %w", err)
	}
	texts := make([]string, len(matches))
	sources := make([]string, len(matches))
	for i, m := range matches {
		texts[i] = m.Segment.Text
		sources[i] = m.Segment.ID
	}
	r.log.WithFields(map[string]any{"segments": len(matches), "k": k}).Debug("retrieved context")
	return Result{Context: strings.Join(texts, Separator), Sources: sources}, nil
}
