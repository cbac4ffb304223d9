package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	olla "github.com/ollama/ollama/api"

	"ragflow/internal/domain"
)

// Ollama embeds text through a local Ollama server using its native API
// client.
type Ollama struct {
	client     *olla.Client
	model      string
	dimension  int
	attempts   uint
	retryDelay time.Duration
}

// NewOllama creates an Ollama embeddings client. An empty baseURL defaults to
// the local server.
func NewOllama(model, baseURL string, timeout time.Duration) (*Ollama, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	hc := &http.Client{Timeout: timeout}
	return &Ollama{
		client:     olla.NewClient(parsed, hc),
		model:      model,
		attempts:   3,
		retryDelay: 500 * time.Millisecond,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (o *Ollama) Name() string { return "ollama" }

// Prepare is a no-op; the model is already trained.
func (o *Ollama) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality of the produced embedding vectors,
// known after the first successful embed.
func (o *Ollama) Dimension() int { return o.dimension }

// Embed returns an embedding vector for the given text. Transient server
// failures are retried with bounded backoff; exhausted retries surface as
// ErrEmbeddingUnavailable.
func (o *Ollama) Embed(ctx context.Context, text string) ([]float64, error) {
	var vec []float64
	err := retry.Do(
		func() error {
			resp, err := o.client.Embeddings(ctx, &olla.EmbeddingRequest{
				Model:  o.model,
				Prompt: text,
			})
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
			}
			if len(resp.Embedding) == 0 {
				return fmt.Errorf("%w: empty embedding", domain.ErrEmbeddingUnavailable)
			}
			vec = resp.Embedding
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(o.attempts),
		retry.Delay(o.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(func(err error) bool { return errors.Is(err, domain.ErrEmbeddingUnavailable) }),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	if o.dimension == 0 {
		o.dimension = len(vec)
	}
	return vec, nil
}
