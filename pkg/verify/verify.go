// Package verify parses generated JSX/TSX with tree-sitter and reports
// syntax problems. Verification is advisory: a failed check is logged by the
// caller and never drops generated output.
package verify

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Verifier holds lazily created parsers per grammar. Safe for concurrent
// use; parsing itself is serialized per grammar.
type Verifier struct {
	mu      sync.Mutex
	parsers map[string]*ts.Parser
	logger  *slog.Logger
}

// New creates a Verifier.
func New(logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{parsers: make(map[string]*ts.Parser), logger: logger}
}

// Check parses source with the grammar implied by the file extension
// (.tsx uses the TypeScript TSX grammar, everything else the JavaScript
// grammar, which covers JSX). Returns an error when the parse tree contains
// syntax errors.
func (v *Verifier) Check(path string, source []byte) error {
	grammar := "javascript"
	var langPtr unsafe.Pointer
	if filepath.Ext(path) == ".tsx" {
		grammar = "tsx"
		langPtr = ts_typescript.LanguageTSX()
	} else {
		langPtr = ts_javascript.Language()
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	parser, ok := v.parsers[grammar]
	if !ok {
		parser = ts.NewParser()
		if parser == nil {
			return fmt.Errorf("failed to create %s parser", grammar)
		}
		if err := parser.SetLanguage(ts.NewLanguage(langPtr)); err != nil {
			parser.Close()
			return fmt.Errorf("failed to set %s grammar: %w", grammar, err)
		}
		v.parsers[grammar] = parser
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return fmt.Errorf("parser returned nil tree for %s", path)
	}
	defer tree.Close()

	if tree.RootNode().HasError() {
		return fmt.Errorf("generated source %s contains syntax errors", path)
	}
	return nil
}

// Close releases all parsers.
func (v *Verifier) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, p := range v.parsers {
		p.Close()
	}
	v.parsers = make(map[string]*ts.Parser)
}
