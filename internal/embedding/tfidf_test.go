package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTFIDF_PrepareAndEmbed(t *testing.T) {
	e := NewTFIDF()
	require.NoError(t, e.Prepare([]string{
		"Holmes examined the case carefully.",
		"Watson carried the morning newspaper.",
		"The detective solved the mystery.",
	}))
	require.Greater(t, e.Dimension(), 0)

	vec, err := e.Embed(context.Background(), "Holmes examined the mystery.")
	require.NoError(t, err)
	assert.Len(t, vec, e.Dimension())

	// L2 normalized
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestTFIDF_UnknownTokensEmbedToZero(t *testing.T) {
	e := NewTFIDF()
	require.NoError(t, e.Prepare([]string{"alpha beta gamma"}))

	vec, err := e.Embed(context.Background(), "zzz qqq")
	require.NoError(t, err)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestTFIDF_EmbedBeforePrepareFails(t *testing.T) {
	_, err := NewTFIDF().Embed(context.Background(), "anything")
	assert.Error(t, err)
}

func TestTFIDF_EmptyCorpus(t *testing.T) {
	assert.Error(t, NewTFIDF().Prepare(nil))
}
