package props

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/gnana997/jsxify/pkg/dom"
	"github.com/gnana997/jsxify/pkg/signature"
)

// valuePoint is one observable value in an instance: an attribute, a
// non-blank text child, or an icon subtree treated as a single atomic value.
type valuePoint struct {
	path  Path
	kind  Kind
	value string
	owner *html.Node // enclosing element, used for prop naming
}

// Infer computes the minimal prop spec for a template and its sibling
// instances. Deterministic: the same inputs always yield the same spec, and
// prop names are unique within the spec.
func Infer(template *html.Node, instances []*html.Node, sig *signature.Hasher) *Spec {
	tmplPoints := enumerate(template)
	tmplByPath := indexByPath(tmplPoints)

	// Differing paths in discovery order: template order first, then paths
	// that only appear in a later instance.
	var order []string
	points := make(map[string]*valuePoint)
	values := make(map[string][]string)

	record := func(key string, vp *valuePoint, val string) {
		if _, seen := points[key]; !seen {
			order = append(order, key)
			points[key] = vp
			values[key] = nil
		}
		for _, v := range values[key] {
			if v == val {
				return
			}
		}
		values[key] = append(values[key], val)
	}

	childrenDiverge := false
	tmplChildren := sig.ChildrenSignature(template)

	for _, inst := range instances {
		if inst == template {
			continue
		}
		instPoints := enumerate(inst)
		instByPath := indexByPath(instPoints)

		for i := range tmplPoints {
			tp := &tmplPoints[i]
			key := tp.path.String()
			ip, ok := instByPath[key]
			if !ok || ip.value != tp.value {
				record(key, tp, tp.value)
				if ok {
					record(key, tp, ip.value)
				}
			}
		}
		for i := range instPoints {
			ip := &instPoints[i]
			key := ip.path.String()
			if _, ok := tmplByPath[key]; !ok {
				record(key, ip, ip.value)
			}
		}

		if sig.ChildrenSignature(inst) != tmplChildren {
			childrenDiverge = true
		}
	}

	spec := &Spec{}
	used := make(map[string]bool)
	for _, key := range order {
		vp := points[key]
		spec.Props = append(spec.Props, Prop{
			Name:   uniqueName(baseName(vp, template), used),
			Kind:   vp.kind,
			Path:   vp.path,
			Values: values[key],
		})
	}

	if childrenDiverge && !spec.HasChildren() {
		spec.Props = append(spec.Props, Prop{
			Name: uniqueName("children", used),
			Kind: Children,
		})
	}

	return spec
}

// enumerate walks a subtree and collects its value points in document order.
// Icon subtrees are one atomic point; there is no descent into them.
func enumerate(root *html.Node) []valuePoint {
	var out []valuePoint
	var walk func(n *html.Node, path Path)
	walk = func(n *html.Node, path Path) {
		keys := make([]string, 0, len(n.Attr))
		for _, a := range n.Attr {
			keys = append(keys, a.Key)
		}
		// Attribute order in source markup is not significant.
		sort.Strings(keys)
		for _, k := range keys {
			v, _ := dom.Attr(n, k)
			out = append(out, valuePoint{path: path.Attr(k), kind: Attribute, value: v, owner: n})
		}

		for i, c := range dom.Children(n) {
			switch {
			case dom.IsIcon(c):
				serialized, err := dom.Render(c)
				if err != nil {
					serialized = ""
				}
				out = append(out, valuePoint{path: path.Child(i), kind: SVGIcon, value: serialized, owner: n})
			case c.Type == html.TextNode && !dom.IsBlankText(c):
				out = append(out, valuePoint{path: path.Child(i), kind: TextChild, value: strings.TrimSpace(c.Data), owner: n})
			case c.Type == html.ElementNode:
				walk(c, path.Child(i))
			}
		}
	}
	walk(root, nil)
	return out
}

func indexByPath(points []valuePoint) map[string]*valuePoint {
	m := make(map[string]*valuePoint, len(points))
	for i := range points {
		m[points[i].path.String()] = &points[i]
	}
	return m
}

// baseName derives a prop name, in priority order: the fixed icon keyword,
// the camel-cased JSX attribute key, a role guessed from ancestor class/id
// tokens, the owning tag name plus "Text", and finally a generic fallback.
func baseName(vp *valuePoint, template *html.Node) string {
	switch vp.kind {
	case SVGIcon:
		return "iconSrc"
	case Attribute:
		key := vp.path[len(vp.path)-1].Key
		if name := CamelCase(JSXAttrName(key)); name != "" {
			return name
		}
	case TextChild:
		for anc := vp.owner; anc != nil; anc = anc.Parent {
			tokens := append(dom.ClassTokens(anc), dom.ID(anc))
			if role := roleFromTokens(tokens); role != "" {
				return role
			}
			if anc == template {
				break
			}
		}
		if name := tagTextName(vp.owner.Data); name != "" {
			return name
		}
	}
	return "text"
}

// uniqueName disambiguates duplicate base names with an incrementing suffix
// assigned in first-seen order.
func uniqueName(base string, used map[string]bool) string {
	if base == "" {
		base = "text"
	}
	name := base
	for n := 2; used[name]; n++ {
		name = base + strconv.Itoa(n)
	}
	used[name] = true
	return name
}
