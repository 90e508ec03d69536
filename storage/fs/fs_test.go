package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	obstypes "github.com/dowjones/factiva-core-go/observability/types"
	"github.com/dowjones/factiva-core-go/storage/types"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := New(t.TempDir(), obstypes.NopLogger{}, obstypes.NopMetrics{})
	require.NoError(t, err)
	return store
}

func TestNewCreatesBasePath(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), "objects", "nested")

	_, err := New(basePath, obstypes.NopLogger{}, obstypes.NopMetrics{})
	require.NoError(t, err)

	info, err := os.Stat(basePath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPutAndGet(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	content := "article body"

	written, err := store.Put(ctx, "snapshots/2026/file.json", strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), written)

	reader, err := store.Get(ctx, "snapshots/2026/file.json")
	require.NoError(t, err)
	defer reader.Close()

	read, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, string(read))
}

func TestPutOverwritesExistingObject(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "key.txt", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = store.Put(ctx, "key.txt", strings.NewReader("second"))
	require.NoError(t, err)

	reader, err := store.Get(ctx, "key.txt")
	require.NoError(t, err)
	defer reader.Close()

	read, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "second", string(read))
}

func TestGetMissingObject(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.Get(context.Background(), "does/not/exist.json")
	assert.ErrorIs(t, err, types.ErrObjectNotFound)
}

func TestExists(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	exists, err := store.Exists(ctx, "pending.csv")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Put(ctx, "pending.csv", strings.NewReader("a,b\n"))
	require.NoError(t, err)

	exists, err = store.Exists(ctx, "pending.csv")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRejectsTraversalKeys(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	for _, key := range []string{"../outside.txt", "nested/../../outside.txt"} {
		t.Run(key, func(t *testing.T) {
			_, err := store.Put(ctx, key, strings.NewReader("x"))
			assert.Error(t, err)

			_, err = store.Get(ctx, key)
			assert.Error(t, err)

			_, err = store.Exists(ctx, key)
			assert.Error(t, err)
		})
	}
}
