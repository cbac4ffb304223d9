package domain

import "errors"

var (
	// ErrDimensionMismatch is returned by a vector index when an inserted or
	// queried vector does not match the index dimensionality. It is fatal to
	// the offending call only; the index itself stays intact.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEmbeddingUnavailable wraps transient failures of the embedding
	// collaborator. Callers may retry with bounded backoff.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrGenerationUnavailable wraps transient failures of the language-model
	// collaborator. The calling responder retries with bounded backoff before
	// surfacing it as a run-level failure.
	ErrGenerationUnavailable = errors.New("generation unavailable")
)
