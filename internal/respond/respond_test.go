package respond

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragflow/internal/classify"
	"ragflow/internal/domain"
)

const holmesContext = "Sherlock Holmes sat in his armchair examining a peculiar case. " +
	"Watson entered the room carrying the morning newspaper."

func TestDirect_EmptyContext(t *testing.T) {
	d := NewDirect()
	for _, cat := range []classify.Category{
		classify.CategoryCharacter,
		classify.CategoryDescription,
		classify.CategorySummary,
		classify.CategoryGeneral,
	} {
		assert.Equal(t, InsufficientContext, d.Respond(cat, ""), cat.String())
		assert.Equal(t, InsufficientContext, d.Respond(cat, "   \n"), cat.String())
	}
}

func TestDirect_CharacterNames(t *testing.T) {
	out := NewDirect().Respond(classify.CategoryCharacter, holmesContext)
	assert.Contains(t, out, "Sherlock")
	assert.Contains(t, out, "Watson")
}

func TestDirect_SummaryUsesContext(t *testing.T) {
	out := NewDirect().Respond(classify.CategorySummary, holmesContext)
	assert.True(t, strings.HasPrefix(out, "Summary:"))
	assert.Contains(t, out, "Holmes")
}

func TestDirect_Deterministic(t *testing.T) {
	d := NewDirect()
	a := d.Respond(classify.CategoryDescription, holmesContext)
	b := d.Respond(classify.CategoryDescription, holmesContext)
	assert.Equal(t, a, b)
}

func TestReflective_TemplateWithoutGenerator(t *testing.T) {
	r := NewReflective(nil)
	out, err := r.Respond(context.Background(), "Why did Holmes take the case?", holmesContext, classify.CategoryReasoning)
	require.NoError(t, err)
	assert.Contains(t, out, "Why did Holmes take the case?")
	assert.Contains(t, out, "Key passages")
}

func TestReflective_EmptyContext(t *testing.T) {
	r := NewReflective(nil)
	out, err := r.Respond(context.Background(), "Why?", "", classify.CategoryReasoning)
	require.NoError(t, err)
	assert.Equal(t, InsufficientContext, out)
}

// flakyGenerator fails a fixed number of times before succeeding.
type flakyGenerator struct {
	failures int
	calls    int
}

func (g *flakyGenerator) Name() string { return "flaky" }

func (g *flakyGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	g.calls++
	if g.calls <= g.failures {
		return "", fmt.Errorf("%w: transient", domain.ErrGenerationUnavailable)
	}
	return "generated analysis", nil
}

func TestReflective_RetriesTransientFailures(t *testing.T) {
	gen := &flakyGenerator{failures: 2}
	r := NewReflective(gen)
	out, err := r.Respond(context.Background(), "Why?", holmesContext, classify.CategoryReasoning)
	require.NoError(t, err)
	assert.Equal(t, "generated analysis", out)
	assert.Equal(t, 3, gen.calls)
}

func TestReflective_SurfacesExhaustedRetries(t *testing.T) {
	gen := &flakyGenerator{failures: 10}
	r := NewReflective(gen)
	_, err := r.Respond(context.Background(), "Why?", holmesContext, classify.CategoryReasoning)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
	// bounded attempts
	assert.Equal(t, 3, gen.calls)
}
