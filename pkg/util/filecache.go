package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// FileCache reads input documents through memory-mapped files so that batch
// and watch mode can re-read large pages cheaply. Falls back to os.ReadFile
// when mapping fails. Thread-safe.
type FileCache struct {
	mu     sync.Mutex
	mapped map[string]mmap.MMap
	files  map[string]*os.File
	logger *slog.Logger
}

// NewFileCache creates an empty cache.
func NewFileCache(logger *slog.Logger) *FileCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileCache{
		mapped: make(map[string]mmap.MMap),
		files:  make(map[string]*os.File),
		logger: logger,
	}
}

// Read returns the file content, mapping it on first access. The returned
// slice must not be retained past Close or Invalidate of the same path.
func (fc *FileCache) Read(path string) ([]byte, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if data, ok := fc.mapped[path]; ok {
		return data, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		// Empty files and exotic filesystems cannot be mapped.
		f.Close()
		fc.logger.Debug("mmap failed, falling back to ReadFile", "path", path, "error", err)
		return os.ReadFile(path)
	}

	fc.mapped[path] = data
	fc.files[path] = f
	return data, nil
}

// Invalidate drops a cached mapping, e.g. after a watcher change event.
func (fc *FileCache) Invalidate(path string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.drop(path)
}

// Close unmaps every cached file.
func (fc *FileCache) Close() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	for path := range fc.mapped {
		fc.drop(path)
	}
}

func (fc *FileCache) drop(path string) {
	if data, ok := fc.mapped[path]; ok {
		if err := data.Unmap(); err != nil {
			fc.logger.Warn("failed to unmap file", "path", path, "error", err)
		}
		delete(fc.mapped, path)
	}
	if f, ok := fc.files[path]; ok {
		f.Close()
		delete(fc.files, path)
	}
}
