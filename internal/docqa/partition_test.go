package docqa

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartition_Key(t *testing.T) {
	p := ResolvePartition(7, BackendGemini)
	assert.Equal(t, "user_7/gemini-embedding-001", p.Key())
}

func TestPartition_Dir(t *testing.T) {
	p := ResolvePartition(7, BackendLocal)
	expected := filepath.Join("/data", "user_7", "all-MiniLM-L6-v2")
	assert.Equal(t, expected, p.Dir("/data"))
}

func TestPartition_Collection(t *testing.T) {
	tests := []struct {
		name    string
		backend Backend
		want    string
	}{
		{"gemini", BackendGemini, "docqa_user_7_gemini_embedding_001"},
		{"local", BackendLocal, "docqa_user_7_all_minilm_l6_v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ResolvePartition(7, tt.backend)
			assert.Equal(t, tt.want, p.Collection("docqa"))
		})
	}
}

func TestBackend_Dimensions(t *testing.T) {
	assert.Equal(t, 768, BackendGemini.Dimensions())
	assert.Equal(t, 384, BackendLocal.Dimensions())
	assert.Equal(t, 0, Backend("unknown").Dimensions())

	assert.True(t, BackendGemini.Known())
	assert.False(t, Backend("unknown").Known())
}
