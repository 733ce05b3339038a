package docqa

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRecordStore_ActiveBackend(t *testing.T) {
	store := NewFileRecordStore(t.TempDir())
	ctx := context.Background()

	// 未记录时返回空串
	backend, err := store.ActiveBackend(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, Backend(""), backend)

	require.NoError(t, store.SetActiveBackend(ctx, 1, BackendGemini))

	backend, err = store.ActiveBackend(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, BackendGemini, backend)

	// 覆盖更新
	require.NoError(t, store.SetActiveBackend(ctx, 1, BackendLocal))
	backend, err = store.ActiveBackend(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, BackendLocal, backend)
}

func TestFileRecordStore_LastSource(t *testing.T) {
	store := NewFileRecordStore(t.TempDir())
	ctx := context.Background()
	partition := ResolvePartition(1, BackendGemini)

	source, err := store.LastSource(ctx, partition)
	require.NoError(t, err)
	assert.Equal(t, "", source)

	require.NoError(t, store.SetLastSource(ctx, partition, "policy.pdf"))

	source, err = store.LastSource(ctx, partition)
	require.NoError(t, err)
	assert.Equal(t, "policy.pdf", source)

	// 不同分区的记录互不影响
	other := ResolvePartition(1, BackendLocal)
	source, err = store.LastSource(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, "", source)
}

func TestFileRecordStore_FileLayout(t *testing.T) {
	root := t.TempDir()
	store := NewFileRecordStore(root)
	ctx := context.Background()
	partition := ResolvePartition(3, BackendGemini)

	require.NoError(t, store.SetActiveBackend(ctx, 3, BackendGemini))
	require.NoError(t, store.SetLastSource(ctx, partition, "handbook.pdf"))

	data, err := os.ReadFile(filepath.Join(root, "user_3_current_model.txt"))
	require.NoError(t, err)
	assert.Equal(t, "gemini-embedding-001", string(data))

	data, err = os.ReadFile(filepath.Join(root, "user_3", "gemini-embedding-001", "last_source.txt"))
	require.NoError(t, err)
	assert.Equal(t, "handbook.pdf", string(data))
}
