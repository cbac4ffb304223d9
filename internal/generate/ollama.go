// Package generate provides Generator implementations for the language-model
// collaborator. Retry policy belongs to the calling responder, not here.
package generate

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	olla "github.com/ollama/ollama/api"

	"ragflow/internal/domain"
)

// Ollama completes prompts through a local Ollama server.
type Ollama struct {
	client *olla.Client
	model  string
}

// NewOllama creates an Ollama generation client. An empty baseURL defaults to
// the local server.
func NewOllama(model, baseURL string, timeout time.Duration) (*Ollama, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	hc := &http.Client{Timeout: timeout}
	return &Ollama{client: olla.NewClient(parsed, hc), model: model}, nil
}

// Name returns the identifier of this generator implementation.
func (o *Ollama) Name() string { return "ollama" }

// Complete generates a completion for the prompt. Failures are reported as
// ErrGenerationUnavailable.
func (o *Ollama) Complete(ctx context.Context, prompt string) (string, error) {
	stream := false
	var out string
	err := o.client.Generate(ctx, &olla.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: &stream,
	}, func(resp olla.GenerateResponse) error {
		out = resp.Response
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationUnavailable, err)
	}
	return out, nil
}
