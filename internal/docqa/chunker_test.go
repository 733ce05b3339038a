package docqa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunker_Split_Empty(t *testing.T) {
	chunker := NewChunker(800, 100)

	assert.Nil(t, chunker.Split(nil, "a.txt", "1"))
	assert.Nil(t, chunker.Split([]string{""}, "a.txt", "1"))
	assert.Nil(t, chunker.Split([]string{"   ", "\n\t"}, "a.txt", "1"))
}

func TestChunker_Split_SinglePage(t *testing.T) {
	chunker := NewChunker(800, 100)

	chunks := chunker.Split([]string{"hello world"}, "a.txt", "42")
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, "hello world", chunks[0].Text)
	assert.Equal(t, "a.txt", chunks[0].Source)
	assert.Equal(t, "42", chunks[0].UserID)
}

func TestChunker_Split_Overlap(t *testing.T) {
	chunker := NewChunker(10, 3)

	text := "abcdefghijklmnopqrstuvwxyz"
	chunks := chunker.Split([]string{text}, "a.txt", "1")
	require.True(t, len(chunks) > 1)

	// 相邻chunk之间保留重叠部分
	assert.Equal(t, "abcdefghij", chunks[0].Text)
	assert.Equal(t, "hijklmnopq", chunks[1].Text)

	// 拼接后覆盖全部内容
	last := chunks[len(chunks)-1].Text
	assert.True(t, strings.HasSuffix(last, "z"))

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Index)
	}
}

func TestChunker_Split_NormalizesWhitespace(t *testing.T) {
	chunker := NewChunker(800, 100)

	chunks := chunker.Split([]string{"hello   world", "second\t\tpage"}, "a.txt", "1")
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world second page", chunks[0].Text)
}

func TestNewChunker_Defaults(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		overlap     int
		wantSize    int
		wantOverlap int
	}{
		{"zero size", 0, 100, 800, 100},
		{"negative overlap", 500, -1, 500, 0},
		{"overlap exceeds size", 100, 100, 100, 25},
		{"valid", 800, 100, 800, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunker := NewChunker(tt.size, tt.overlap)
			assert.Equal(t, tt.wantSize, chunker.chunkSize)
			assert.Equal(t, tt.wantOverlap, chunker.chunkOverlap)
		})
	}
}
