package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "tfidf", cfg.Embedder.Type)
	assert.Equal(t, "none", cfg.Generator.Type)
	assert.Equal(t, "memory", cfg.Index.Type)
	assert.Equal(t, 500, cfg.Chunker.Size)
	assert.InDelta(t, 0.1, cfg.Chunker.OverlapFraction, 1e-9)
	assert.Equal(t, 3, cfg.Workflow.TopK)
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "workflow:\n  top_k: 7\nembedder:\n  type: openai\n  openai:\n    model: custom-model\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Workflow.TopK)
	assert.Equal(t, "custom-model", cfg.Embedder.OpenAI.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Embedder.OpenAI.BaseURL)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.OpenAI.APIKeyEnv)
	assert.Equal(t, 500, cfg.Chunker.Size)
	assert.Equal(t, "memory", cfg.Index.Type)
}

func TestSave_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := defaultConfig()
	in.Workflow.TopK = 5

	require.NoError(t, Save(path, in))
	out, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, in, out)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("embedder: [not: a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
