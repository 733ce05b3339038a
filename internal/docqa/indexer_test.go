package docqa

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexWriter_Write(t *testing.T) {
	root := t.TempDir()
	store := NewLocalVectorStore(root)
	records := NewFileRecordStore(root)
	writer := NewIndexWriter(store, records)
	ctx := context.Background()

	embedder := &fakeEmbedder{backend: BackendGemini}
	selection := &Selection{Embedder: embedder, Backend: BackendGemini}
	chunks := []Chunk{
		{Index: 0, Text: "vacation policy", Source: "policy.pdf", UserID: "5"},
		{Index: 1, Text: "security rules", Source: "policy.pdf", UserID: "5"},
	}

	require.NoError(t, writer.Write(ctx, 5, selection, chunks, "policy.pdf"))

	partition := ResolvePartition(5, BackendGemini)
	ready, err := store.Ready(ctx, partition)
	require.NoError(t, err)
	assert.True(t, ready)

	backend, err := records.ActiveBackend(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, BackendGemini, backend)

	source, err := records.LastSource(ctx, partition)
	require.NoError(t, err)
	assert.Equal(t, "policy.pdf", source)
}

func TestIndexWriter_Write_EmbedFailureLeavesRecordsUntouched(t *testing.T) {
	root := t.TempDir()
	store := NewLocalVectorStore(root)
	records := NewFileRecordStore(root)
	writer := NewIndexWriter(store, records)
	ctx := context.Background()

	embedder := &fakeEmbedder{backend: BackendGemini, fail: true}
	selection := &Selection{Embedder: embedder, Backend: BackendGemini}
	chunks := []Chunk{{Index: 0, Text: "content", Source: "a.txt", UserID: "5"}}

	require.Error(t, writer.Write(ctx, 5, selection, chunks, "a.txt"))

	backend, err := records.ActiveBackend(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, Backend(""), backend)
}
