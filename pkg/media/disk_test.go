package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveAndRemove(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	ref, err := store.Save(ctx, strings.NewReader("fake video bytes"), "Clip.MP4", "video/mp4")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".mp4"))
	assert.Equal(t, ref, filepath.Base(ref))

	data, err := os.ReadFile(filepath.Join(store.Dir, ref))
	require.NoError(t, err)
	assert.Equal(t, "fake video bytes", string(data))

	require.NoError(t, store.Remove(ctx, ref))
	_, err = os.Stat(filepath.Join(store.Dir, ref))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_RemoveMissingIsNoop(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(context.Background(), "never-existed.jpg"))
}

func TestDiskStore_RemoveRefusesPathEscape(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	outside := filepath.Join(dir, "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	require.NoError(t, store.Remove(context.Background(), "../victim.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestDiskStore_UniqueNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	a, err := store.Save(ctx, strings.NewReader("a"), "same.jpg", "image/jpeg")
	require.NoError(t, err)
	b, err := store.Save(ctx, strings.NewReader("b"), "same.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
