package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveImage(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save(7, "photo.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "7.png", filepath.Base(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestSaveImageOverwrites(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(3, "a.jpg", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := store.Save(3, "b.jpg", strings.NewReader("two"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	content, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "two", string(content))
}

func TestSaveImageRejectsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(dir)
	require.NoError(t, err)

	for _, name := range []string{"notes.txt", "payload.exe", "noext", "image.png.txt"} {
		_, err := store.Save(1, name, strings.NewReader("data"))
		assert.ErrorIs(t, err, ErrUnsupportedImageType, "file %q", name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveImageRejectsEmptyContent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(dir)
	require.NoError(t, err)

	_, err = store.Save(2, "empty.gif", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyImage)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemoveIsBestEffort(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save(5, "c.jpeg", strings.NewReader("data"))
	require.NoError(t, err)

	store.Remove(path)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Removing again, or removing nothing, must not panic.
	store.Remove(path)
	store.Remove("")
}
