// Package assets persists externalized icon subtrees as content-addressed
// files. Identical content is written at most once per run; writes happen on
// a background goroutine and are drained before a batch reports completion.
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// queueDepth buffers pending writes so rendering never blocks on disk.
const queueDepth = 64

type writeJob struct {
	filename string
	content  string
}

// Store is a deduplicated, asynchronous asset writer.
//
// Put is safe for concurrent use; the content-hash set guards against
// duplicate writes when the same icon is discovered from multiple contexts.
// A failed write is logged and counted but keeps the already-substituted
// reference (best effort, per the batch degradation rules).
type Store struct {
	dir    string
	prefix string
	logger *slog.Logger

	mu   sync.Mutex
	seen map[string]string // content hash -> filename

	jobs    chan writeJob
	pending sync.WaitGroup
	wg      sync.WaitGroup
	closed  atomic.Bool

	written atomic.Int64
	failed  atomic.Int64
}

// NewStore creates a store writing into dir. prefix is the path prefix used
// in generated references (e.g. "./assets").
func NewStore(dir, prefix string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		dir:    dir,
		prefix: prefix,
		logger: logger,
		seen:   make(map[string]string),
		jobs:   make(chan writeJob, queueDepth),
	}
	s.wg.Add(1)
	go s.writer()
	return s
}

// Put registers icon content and returns the reference path to embed in
// generated markup. The first Put for a given content enqueues one write;
// later Puts with identical content return the same reference immediately.
func (s *Store) Put(content string) string {
	sum := sha256.Sum256([]byte(content))
	hash := hex.EncodeToString(sum[:])[:8]
	filename := "icon-" + hash + ".svg"

	s.mu.Lock()
	_, dup := s.seen[hash]
	if !dup {
		s.seen[hash] = filename
	}
	s.mu.Unlock()

	if !dup && !s.closed.Load() {
		s.pending.Add(1)
		s.jobs <- writeJob{filename: filename, content: content}
	}

	return s.prefix + "/" + filename
}

// writer drains the queue, creating the asset directory lazily.
func (s *Store) writer() {
	defer s.wg.Done()
	for job := range s.jobs {
		s.write(job)
		s.pending.Done()
	}
}

func (s *Store) write(job writeJob) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.failed.Add(1)
		s.logger.Warn("failed to create asset directory", "dir", s.dir, "error", err)
		return
	}
	path := filepath.Join(s.dir, job.filename)
	if err := os.WriteFile(path, []byte(job.content), 0o644); err != nil {
		s.failed.Add(1)
		s.logger.Warn("failed to write asset", "path", path, "error", err)
		return
	}
	s.written.Add(1)
	s.logger.Debug("wrote asset", "path", path, "bytes", len(job.content))
}

// Flush blocks until every write enqueued so far has completed. The store
// stays usable; a batch calls Flush before reporting completion.
func (s *Store) Flush() error {
	s.pending.Wait()
	if n := s.failed.Load(); n > 0 {
		return fmt.Errorf("%d asset write(s) failed", n)
	}
	return nil
}

// Close stops accepting new content and blocks until every pending write has
// succeeded or been logged as failed. Returns an error summarizing failures.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(s.jobs)
	s.wg.Wait()
	if n := s.failed.Load(); n > 0 {
		return fmt.Errorf("%d asset write(s) failed", n)
	}
	return nil
}

// Stats reports write counts for logging at the end of a batch.
func (s *Store) Stats() (written, failed int64) {
	return s.written.Load(), s.failed.Load()
}
