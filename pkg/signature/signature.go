// Package signature computes canonical shape keys for HTML subtrees.
//
// A signature is invariant under attribute values and text content but
// sensitive to tag names, the set of attribute names, the set of class
// tokens, and the signatures of children in order. Two subtrees with equal
// signatures are shape-equivalent and may be merged into one component.
package signature

import (
	"log/slog"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/net/html"

	"github.com/gnana997/jsxify/pkg/dom"
)

// DefaultCacheSize bounds the per-node memo cache. Signatures are keyed by
// node pointer, so entries are only reusable within one document's lifetime.
const DefaultCacheSize = 8192

// Hasher computes signatures with an LRU memo so that repetition grouping
// does not recompute deep subtrees once per ancestor level.
type Hasher struct {
	cache  *lru.Cache[*html.Node, string]
	logger *slog.Logger
}

// NewHasher creates a Hasher with the given cache size (0 uses the default).
func NewHasher(cacheSize int, logger *slog.Logger) *Hasher {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := lru.New[*html.Node, string](cacheSize)
	if err != nil {
		// Only reachable with a non-positive size, which is guarded above.
		logger.Warn("signature cache unavailable, computing uncached", "error", err)
	}
	return &Hasher{cache: cache, logger: logger}
}

// Signature returns the canonical shape key of the subtree rooted at n.
// Pure and deterministic: equal inputs always produce equal keys.
func (h *Hasher) Signature(n *html.Node) string {
	if h.cache != nil {
		if s, ok := h.cache.Get(n); ok {
			return s
		}
	}
	s := h.compute(n)
	if h.cache != nil {
		h.cache.Add(n, s)
	}
	return s
}

// ChildrenSignature concatenates the signatures of n's children in order.
// Prop inference compares these to decide whether instances diverge in
// nested structure and need a children passthrough prop.
func (h *Hasher) ChildrenSignature(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(h.Signature(c))
	}
	return b.String()
}

func (h *Hasher) compute(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	case html.ElementNode:
		var b strings.Builder
		b.WriteByte('<')
		b.WriteString(n.Data)
		b.WriteByte('|')

		names := make([]string, 0, len(n.Attr))
		for _, a := range n.Attr {
			names = append(names, a.Key)
		}
		sort.Strings(names)
		b.WriteString(strings.Join(names, ","))
		b.WriteByte('|')

		classes := append([]string(nil), dom.ClassTokens(n)...)
		sort.Strings(classes)
		b.WriteString(strings.Join(classes, " "))
		b.WriteByte('|')

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.WriteString(h.Signature(c))
		}
		b.WriteByte('>')
		return b.String()
	default:
		// Doctype, raw and error nodes reduce to their kind tag.
		return "#raw"
	}
}
