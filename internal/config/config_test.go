package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig_Defaults(t *testing.T) {
	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 800, cfg.Ingest.ChunkSize)
	assert.Equal(t, 100, cfg.Ingest.ChunkOverlap)
	assert.Equal(t, 4, cfg.Ingest.TopK)
	assert.Equal(t, "gemini-embedding-001", cfg.Embedding.GeminiModel)
	assert.Equal(t, "all-MiniLM-L6-v2", cfg.Embedding.LocalModel)
	assert.Equal(t, "local", cfg.VectorStore.Driver)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 30, cfg.JWT.ExpiresMinutes)
}

func TestLoadAppConfig_EnvOverride(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("DATA_DIR", "/tmp/docqa-data")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("MILVUS_ADDRESS", "milvus:19530")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "9001", cfg.Server.Port)
	assert.Equal(t, "/tmp/docqa-data", cfg.Storage.DataDir)
	assert.Equal(t, "test-key", cfg.Embedding.GeminiAPIKey)
	assert.Equal(t, "test-key", cfg.LLM.GeminiAPIKey)
	// 设置MILVUS_ADDRESS后驱动自动切换
	assert.Equal(t, "milvus", cfg.VectorStore.Driver)
	assert.Equal(t, "milvus:19530", cfg.VectorStore.Milvus.Address)
}

func TestLoadAppConfig_GoogleKeyFallback(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "google-key", cfg.Embedding.GeminiAPIKey)
}
