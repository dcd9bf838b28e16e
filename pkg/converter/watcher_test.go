package converter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherStartStop(t *testing.T) {
	c := newTestConverter(t, nil)
	w, err := NewWatcher(c, DefaultWatchOptions())
	require.NoError(t, err)

	require.NoError(t, w.Start(t.TempDir()))
	require.NoError(t, w.Stop())
	assert.NoError(t, w.Stop(), "stop is idempotent")
}

func TestWatcherReconvertsOnChange(t *testing.T) {
	in := t.TempDir()
	c := newTestConverter(t, nil)

	w, err := NewWatcher(c, WatchOptions{DebounceMs: 50})
	require.NoError(t, err)
	require.NoError(t, w.Start(in))
	defer w.Stop()

	writeDoc(t, in, "landing.html", navListDoc)

	pagePath := filepath.Join(c.cfg.OutputDir, "pages", "LandingPage.jsx")
	require.Eventually(t, func() bool {
		_, err := os.Stat(pagePath)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond, "page output should appear after the debounce window")
}

func TestWatcherIgnoresNonDocuments(t *testing.T) {
	in := t.TempDir()
	c := newTestConverter(t, nil)

	w, err := NewWatcher(c, WatchOptions{DebounceMs: 20})
	require.NoError(t, err)
	require.NoError(t, w.Start(in))
	defer w.Stop()

	writeDoc(t, in, "notes.txt", "plain text")
	time.Sleep(200 * time.Millisecond)

	_, err = os.Stat(filepath.Join(c.cfg.OutputDir, "pages"))
	assert.True(t, os.IsNotExist(err))
}
