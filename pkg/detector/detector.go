// Package detector finds component candidates in a document tree: layout
// regions matched by configured identifiers, and repeated subtrees grouped
// by structural signature.
package detector

import (
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/gnana997/jsxify/pkg/dom"
	"github.com/gnana997/jsxify/pkg/registry"
	"github.com/gnana997/jsxify/pkg/signature"
)

// Origin tells which pass discovered a candidate.
type Origin int

const (
	// Layout candidates match a configured layout identifier.
	Layout Origin = iota
	// Repetition candidates are signature-equal repeated subtrees.
	Repetition
)

// String implements fmt.Stringer for Origin.
func (o Origin) String() string {
	if o == Layout {
		return "layout"
	}
	return "repetition"
}

// Candidate is a potential component: a template node plus every
// signature-equivalent (or identifier-matched) instance, template included.
type Candidate struct {
	Name      string // tentative; the global registry resolves the final name
	Template  *html.Node
	Origin    Origin
	Instances []*html.Node
	Size      int // descendant count of the template
}

// Config controls candidate eligibility.
type Config struct {
	// MinChildren is the minimum element-child count for repetition
	// eligibility (>= 1).
	MinChildren int
	// MinInstances is the minimum group size to form a component (>= 2).
	MinInstances int
	// LayoutIdentifiers are class tokens or id values that mark layout
	// regions ("navbar", "sidebar", ...).
	LayoutIdentifiers []string
}

// Detector discovers candidates within one document.
type Detector struct {
	cfg    Config
	sig    *signature.Hasher
	logger *slog.Logger
}

// New creates a Detector. Zero config values fall back to the minimums.
func New(cfg Config, sig *signature.Hasher, logger *slog.Logger) *Detector {
	if cfg.MinChildren < 1 {
		cfg.MinChildren = 1
	}
	if cfg.MinInstances < 2 {
		cfg.MinInstances = 2
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{cfg: cfg, sig: sig, logger: logger}
}

// Detect runs both passes over the tree rooted at root and returns the
// merged candidate list sorted ascending by template size, so that smaller
// nested structures are extracted before the components that enclose them.
//
// perRun carries claims from earlier extraction. For a fresh document it is
// empty at discovery time, so the repetition pass's claimed check screens
// against layout claims recorded during this call; callers rerunning Detect
// on a partially extracted document also get prior claims honored.
func (d *Detector) Detect(root *html.Node, perRun *registry.PerRun) []*Candidate {
	claimed := make(map[*html.Node]bool)

	candidates := d.layoutPass(root, perRun, claimed)
	candidates = append(candidates, d.repetitionPass(root, perRun, claimed)...)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Size < candidates[j].Size
	})
	return candidates
}

// layoutPass finds one single-instance candidate per element matching a
// configured layout identifier by class token or id.
func (d *Detector) layoutPass(root *html.Node, perRun *registry.PerRun, claimed map[*html.Node]bool) []*Candidate {
	var out []*Candidate
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && !dom.IsIcon(n) {
			if !claimed[n] && !perRun.Claimed(n) {
				if id := d.matchIdentifier(n); id != "" {
					claimed[n] = true
					out = append(out, &Candidate{
						Name:      PascalCase(id),
						Template:  n,
						Origin:    Layout,
						Instances: []*html.Node{n},
						Size:      dom.DescendantCount(n),
					})
					d.logger.Debug("layout candidate", "identifier", id, "tag", n.Data)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func (d *Detector) matchIdentifier(n *html.Node) string {
	id := dom.ID(n)
	for _, ident := range d.cfg.LayoutIdentifiers {
		if id == ident || dom.HasClassToken(n, ident) {
			return ident
		}
	}
	return ""
}

// repetitionPass groups eligible elements by structural signature in one
// depth-first traversal. Icon subtrees are opaque leaves: no descent.
func (d *Detector) repetitionPass(root *html.Node, perRun *registry.PerRun, claimed map[*html.Node]bool) []*Candidate {
	groups := make(map[string][]*html.Node)
	var order []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if dom.IsIcon(n) {
				return
			}
			if !claimed[n] && !perRun.Claimed(n) && dom.ElementChildCount(n) >= d.cfg.MinChildren {
				key := d.sig.Signature(n)
				if _, seen := groups[key]; !seen {
					order = append(order, key)
				}
				groups[key] = append(groups[key], n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	var out []*Candidate
	for _, key := range order {
		nodes := groups[key]
		if len(nodes) < d.cfg.MinInstances {
			continue
		}
		template := nodes[0]
		out = append(out, &Candidate{
			Name:      deriveName(template),
			Template:  template,
			Origin:    Repetition,
			Instances: nodes,
			Size:      dom.DescendantCount(template),
		})
		d.logger.Debug("repetition candidate", "tag", template.Data, "instances", len(nodes))
	}
	return out
}

// deriveName names a repetition candidate from the first instance's primary
// class token, its id, or its tag name, with a generic fallback for empty or
// degenerate (single-letter) results.
func deriveName(n *html.Node) string {
	var base string
	if tokens := dom.ClassTokens(n); len(tokens) > 0 {
		base = tokens[0]
	} else if id := dom.ID(n); id != "" {
		base = id
	} else {
		base = n.Data
	}
	name := PascalCase(base)
	if len(name) <= 1 {
		return "Component"
	}
	return name
}

// PascalCase converts a hyphen/underscore separated identifier to PascalCase,
// dropping characters that cannot appear in a component name.
func PascalCase(s string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == '.' || r == ':':
			upperNext = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if upperNext {
				b.WriteRune(unicode.ToUpper(r))
				upperNext = false
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
