// Package props infers component properties by diffing multiple instances
// of a repeated pattern against a template instance.
package props

import (
	"strconv"
	"strings"
)

// Kind discriminates the prop variants. Each kind carries only the payload
// relevant to it and is matched exhaustively at render time.
type Kind int

const (
	// Attribute props parameterize a varying attribute value.
	Attribute Kind = iota
	// TextChild props parameterize a varying text child.
	TextChild
	// SVGIcon props parameterize an icon subtree, externalized as an asset.
	SVGIcon
	// Children props forward the whole child subtree verbatim.
	Children
)

// String implements fmt.Stringer for Kind.
func (k Kind) String() string {
	switch k {
	case Attribute:
		return "attribute"
	case TextChild:
		return "textChild"
	case SVGIcon:
		return "svgIcon"
	case Children:
		return "childrenPassthrough"
	default:
		return "unknown"
	}
}

// Step is one hop on a path from a template root to a varying location:
// either a child index or an attribute key.
type Step struct {
	Index int
	Key   string // non-empty for an attribute step
}

// Path locates a varying value relative to the template root.
type Path []Step

// Child returns p extended with a child-index step.
func (p Path) Child(i int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Step{Index: i})
}

// Attr returns p extended with an attribute step.
func (p Path) Attr(key string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Step{Key: key})
}

// String renders the path as "0/2/@href". Used as a stable map key.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if i > 0 {
			b.WriteByte('/')
		}
		if s.Key != "" {
			b.WriteByte('@')
			b.WriteString(s.Key)
		} else {
			b.WriteString(strconv.Itoa(s.Index))
		}
	}
	return b.String()
}

// Prop is one inferred property.
type Prop struct {
	Name   string
	Kind   Kind
	Path   Path
	Values []string // observed distinct values, template's first; informative only
}

// Spec is an ordered set of props with unique names.
type Spec struct {
	Props []Prop

	byPath map[string]*Prop
}

// Names returns prop names in spec order.
func (s *Spec) Names() []string {
	names := make([]string, len(s.Props))
	for i, p := range s.Props {
		names[i] = p.Name
	}
	return names
}

// HasChildren reports whether the spec declares a children passthrough prop.
func (s *Spec) HasChildren() bool {
	for _, p := range s.Props {
		if p.Kind == Children {
			return true
		}
	}
	return false
}

// At returns the prop anchored at path with the given kind, or nil.
func (s *Spec) At(path Path, kind Kind) *Prop {
	if s.byPath == nil {
		s.byPath = make(map[string]*Prop, len(s.Props))
		for i := range s.Props {
			s.byPath[s.Props[i].Kind.String()+"|"+s.Props[i].Path.String()] = &s.Props[i]
		}
	}
	return s.byPath[kind.String()+"|"+path.String()]
}
