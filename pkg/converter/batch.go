package converter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gnana997/jsxify/pkg/format"
)

// BatchResult summarizes a batch run.
type BatchResult struct {
	Documents  int
	Skipped    int
	Components int
	Pages      int
}

// ConvertBatch discovers documents under root matching pattern (doublestar
// glob, e.g. "**/*.html"), converts them in deterministic lexicographic
// order, and writes outputs under the configured output directory. Documents
// that fail to convert are logged and skipped; the batch keeps going.
func (c *Converter) ConvertBatch(root, pattern string) (*BatchResult, error) {
	paths, err := c.Discover(root, pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		c.logger.Warn("no documents matched", "root", root, "pattern", pattern)
		return &BatchResult{}, nil
	}

	res := &BatchResult{}
	for _, path := range paths {
		docRes, err := c.ConvertFile(path)
		if err != nil {
			c.logger.Warn("skipping document", "path", path, "error", err)
			res.Skipped++
			continue
		}
		res.Documents++
		res.Components += len(docRes.Components)
		res.Pages++
	}

	if err := c.store.Flush(); err != nil {
		c.logger.Warn("asset flush reported failures", "error", err)
	}
	written, failed := c.store.Stats()
	c.logger.Info("batch complete",
		"documents", res.Documents,
		"skipped", res.Skipped,
		"components", res.Components,
		"assets_written", written,
		"assets_failed", failed)
	return res, nil
}

// Discover returns the matching document paths sorted lexicographically, so
// batch conversion order (and therefore first-claim naming) is stable across
// runs regardless of filesystem iteration order.
func (c *Converter) Discover(root, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "**/*.html"
	}
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var paths []string
	for _, m := range matches {
		ext := strings.ToLower(filepath.Ext(m))
		if ext != ".html" && ext != ".htm" {
			continue
		}
		paths = append(paths, filepath.Join(root, m))
	}
	sort.Strings(paths)
	return paths, nil
}

// ConvertFile converts one document from disk and writes its outputs. Used by
// both batch and watch mode; watch mode calls Invalidate first so a changed
// file is re-read.
func (c *Converter) ConvertFile(path string) (*DocumentResult, error) {
	data, err := c.cache.Read(path)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	res, err := c.ConvertDocument(name, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if err := c.writeOutputs(res); err != nil {
		return nil, err
	}
	return res, nil
}

// Invalidate drops the cached content for path.
func (c *Converter) Invalidate(path string) {
	c.cache.Invalidate(path)
}

// writeOutputs formats and writes every component and page source of one
// document. Formatting and verification are best effort and never drop a
// file.
func (c *Converter) writeOutputs(res *DocumentResult) error {
	for _, comp := range res.Components {
		if err := c.writeSource(comp.Path, comp.Source); err != nil {
			return err
		}
	}
	return c.writeSource(res.Page.Path, res.Page.Source)
}

func (c *Converter) writeSource(relPath, source string) error {
	out := format.Apply(c.formatter, source, c.logger)

	if c.verifier != nil {
		if err := c.verifier.Check(relPath, []byte(out)); err != nil {
			c.logger.Warn("generated source failed verification", "path", relPath, "error", err)
		}
	}

	full := filepath.Join(c.cfg.OutputDir, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(full, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", full, err)
	}
	c.logger.Debug("wrote source", "path", full, "bytes", len(out))
	return nil
}

// Close releases the asset writer, the input cache and any parsers.
func (c *Converter) Close() error {
	err := c.store.Close()
	c.cache.Close()
	if c.verifier != nil {
		c.verifier.Close()
	}
	return err
}
