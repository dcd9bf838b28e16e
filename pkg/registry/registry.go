// Package registry tracks extracted components: a per-document registry
// keyed by node identity, and a process-wide registry that deduplicates
// components by content fingerprint and assigns collision-free, stable names.
package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/gnana997/jsxify/pkg/props"
)

// ComponentRef associates an instance node with its resolved component.
type ComponentRef struct {
	Name     string
	Template *html.Node
	Spec     *props.Spec
}

// PerRun is rebuilt for every document and discarded afterwards. Once a node
// is registered, the generator renders it as a component reference and never
// inlines its markup again.
type PerRun struct {
	refs map[*html.Node]*ComponentRef
}

// NewPerRun creates an empty per-document registry.
func NewPerRun() *PerRun {
	return &PerRun{refs: make(map[*html.Node]*ComponentRef)}
}

// Register records every given instance node under the resolved component.
func (r *PerRun) Register(ref *ComponentRef, instances ...*html.Node) {
	for _, n := range instances {
		r.refs[n] = ref
	}
}

// Lookup returns the component reference for a node, if registered.
func (r *PerRun) Lookup(n *html.Node) (*ComponentRef, bool) {
	ref, ok := r.refs[n]
	return ref, ok
}

// Claimed reports whether a node belongs to an already-extracted component.
func (r *PerRun) Claimed(n *html.Node) bool {
	_, ok := r.refs[n]
	return ok
}

// Fingerprint hashes a rendered component body together with its sorted prop
// names. Components with equal fingerprints are the same component no matter
// which document or candidate produced them.
func Fingerprint(body string, propNames []string) string {
	names := append([]string(nil), propNames...)
	sort.Strings(names)

	h := sha256.New()
	h.Write([]byte(body))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(names, ",")))
	return hex.EncodeToString(h.Sum(nil))
}

// Entry is one globally registered component.
type Entry struct {
	Name        string
	Fingerprint string
	PropNames   []string
	Path        string
}

// Global lives for a whole batch run and grows monotonically. Naming is a
// pure function of content: resolving the same fingerprint always yields the
// same name, and distinct fingerprints never share one.
type Global struct {
	mu            sync.Mutex
	byFingerprint map[string]*Entry
	byName        map[string]string // name -> fingerprint
	logger        *slog.Logger
}

// NewGlobal creates an empty global registry.
func NewGlobal(logger *slog.Logger) *Global {
	if logger == nil {
		logger = slog.Default()
	}
	return &Global{
		byFingerprint: make(map[string]*Entry),
		byName:        make(map[string]string),
		logger:        logger,
	}
}

// Resolve returns the final name for a component fingerprint. A known
// fingerprint reuses its existing name (isNew=false, no new definition is
// emitted). Otherwise the tentative name is claimed, or disambiguated with a
// short fingerprint prefix when a different component already owns it.
func (g *Global) Resolve(fingerprint, tentativeName string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if e, ok := g.byFingerprint[fingerprint]; ok {
		g.logger.Info("reusing component", "name", e.Name, "fingerprint", fingerprint[:8])
		return e.Name, false
	}

	name := tentativeName
	if owner, taken := g.byName[name]; taken && owner != fingerprint {
		name = tentativeName + "_" + fingerprint[:8]
	}

	g.byFingerprint[fingerprint] = &Entry{Name: name, Fingerprint: fingerprint}
	g.byName[name] = fingerprint
	return name, true
}

// Describe fills in metadata for an already-resolved component.
func (g *Global) Describe(fingerprint string, propNames []string, path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if e, ok := g.byFingerprint[fingerprint]; ok {
		e.PropNames = append([]string(nil), propNames...)
		e.Path = path
	}
}

// Components returns all registered components sorted by name.
func (g *Global) Components() []Entry {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Entry, 0, len(g.byFingerprint))
	for _, e := range g.byFingerprint {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
