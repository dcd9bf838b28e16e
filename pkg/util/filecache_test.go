package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCacheRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))

	fc := NewFileCache(nil)
	defer fc.Close()

	data, err := fc.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	// Second read hits the cached mapping.
	again, err := fc.Read(path)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestFileCacheMissing(t *testing.T) {
	fc := NewFileCache(nil)
	defer fc.Close()

	_, err := fc.Read(filepath.Join(t.TempDir(), "absent.html"))
	assert.Error(t, err)
}

func TestFileCacheEmptyFileFallback(t *testing.T) {
	// Empty files cannot be mapped; Read falls back to a plain read.
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.html")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	fc := NewFileCache(nil)
	defer fc.Close()

	data, err := fc.Read(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFileCacheInvalidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte("before"), 0o644))

	fc := NewFileCache(nil)
	defer fc.Close()

	data, err := fc.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "before", string(data))

	require.NoError(t, os.WriteFile(path, []byte("after!"), 0o644))
	fc.Invalidate(path)

	data, err = fc.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "after!", string(data))
}
