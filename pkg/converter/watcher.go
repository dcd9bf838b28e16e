package converter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOptions configures watch mode.
type WatchOptions struct {
	// DebounceMs groups rapid changes to one reconversion (default 200).
	DebounceMs int
}

// DefaultWatchOptions returns the standard debounce window.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{DebounceMs: 200}
}

// Watcher reconverts documents as they change on disk. Rapid saves are
// debounced per file so an editor writing in chunks triggers one conversion.
type Watcher struct {
	watcher   *fsnotify.Watcher
	converter *Converter
	options   WatchOptions

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a Watcher around an existing converter. The converter's
// global registry persists across reconversions, so a component extracted
// before a file change keeps its name afterwards.
func NewWatcher(c *Converter, options WatchOptions) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if options.DebounceMs == 0 {
		options.DebounceMs = DefaultWatchOptions().DebounceMs
	}
	return &Watcher{
		watcher:        fsw,
		converter:      c,
		options:        options,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start watches rootPath and its subdirectories and begins processing events
// in a background goroutine.
func (w *Watcher) Start(rootPath string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if shouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(path); err != nil {
				w.converter.logger.Warn("failed to watch directory", "path", path, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set up watches: %w", err)
	}

	w.converter.logger.Info("watching for changes", "root", rootPath)
	go w.eventLoop()
	return nil
}

// Stop stops the watcher. Idempotent.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.converter.logger.Info("watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.converter.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".html" && ext != ".htm" {
		return
	}

	w.converter.logger.Debug("file event", "op", event.Op.String(), "file", path)

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write,
		event.Op&fsnotify.Create == fsnotify.Create:
		w.debounceConvert(path)

	case event.Op&fsnotify.Remove == fsnotify.Remove,
		event.Op&fsnotify.Rename == fsnotify.Rename:
		w.converter.Invalidate(path)
	}
}

// debounceConvert schedules a reconversion after the debounce window; only
// the last event for a file within the window triggers work.
func (w *Watcher) debounceConvert(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}
	w.debounceTimers[path] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			w.reconvert(path)

			w.debounceMu.Lock()
			delete(w.debounceTimers, path)
			w.debounceMu.Unlock()
		},
	)
}

func (w *Watcher) reconvert(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	w.converter.Invalidate(path)

	res, err := w.converter.ConvertFile(path)
	if err != nil {
		w.converter.logger.Warn("reconversion failed", "file", path, "error", err)
		return
	}
	if err := w.converter.store.Flush(); err != nil {
		w.converter.logger.Warn("asset flush reported failures", "error", err)
	}
	w.converter.logger.Info("reconverted",
		"file", path,
		"page", res.Page.Name,
		"new_components", len(res.Components))
}

// shouldIgnoreDir filters directories that never hold input documents.
func shouldIgnoreDir(path string) bool {
	switch filepath.Base(path) {
	case "node_modules", ".git", "dist", "build", ".next", ".jsxify":
		return true
	}
	return false
}
