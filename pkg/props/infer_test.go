package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/gnana997/jsxify/pkg/dom"
	"github.com/gnana997/jsxify/pkg/signature"
)

// --- helpers ---

func elements(t *testing.T, src string, tag string) []*html.Node {
	t.Helper()
	doc, err := dom.ParseString(src)
	require.NoError(t, err)
	body, err := dom.Body(doc)
	require.NoError(t, err)

	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)
	require.NotEmpty(t, out, "no <%s> in tree", tag)
	return out
}

func infer(t *testing.T, src, tag string) *Spec {
	t.Helper()
	nodes := elements(t, src, tag)
	return Infer(nodes[0], nodes, signature.NewHasher(0, nil))
}

// --- basic inference ---

func TestInferLinkItems(t *testing.T) {
	spec := infer(t, `<ul><li><a href="/home">Home</a></li><li><a href="/about">About</a></li><li><a href="/contact">Contact</a></li></ul>`, "li")

	require.Len(t, spec.Props, 2)

	// Template order: the attribute point precedes the text point.
	assert.Equal(t, "href", spec.Props[0].Name)
	assert.Equal(t, Attribute, spec.Props[0].Kind)
	assert.Equal(t, "0/@href", spec.Props[0].Path.String())
	assert.Equal(t, []string{"/home", "/about", "/contact"}, spec.Props[0].Values)

	assert.Equal(t, "linkText", spec.Props[1].Name)
	assert.Equal(t, TextChild, spec.Props[1].Kind)
	assert.Equal(t, "0/0", spec.Props[1].Path.String())
}

func TestInferIdenticalInstancesYieldNoProps(t *testing.T) {
	spec := infer(t, `<div><p class="x">same</p><p class="x">same</p></div>`, "p")
	assert.Empty(t, spec.Props)
	assert.False(t, spec.HasChildren())
}

func TestInferConstantValuesStayLiteral(t *testing.T) {
	// class is identical everywhere and must not become a prop.
	spec := infer(t, `<div><a class="btn" href="/a">A</a><a class="btn" href="/b">B</a></div>`, "a")
	for _, p := range spec.Props {
		assert.NotEqual(t, "@class", p.Path.String())
	}
	require.Len(t, spec.Props, 2) // href and text
}

// --- naming ---

func TestInferRoleName(t *testing.T) {
	nodes := elements(t, `<main><div class="card"><h2 class="card-title">One</h2></div><div class="card"><h2 class="card-title">Two</h2></div></main>`, "div")
	spec := Infer(nodes[0], nodes, signature.NewHasher(0, nil))

	require.Len(t, spec.Props, 1)
	assert.Equal(t, "title", spec.Props[0].Name)
	assert.Equal(t, TextChild, spec.Props[0].Kind)
}

func TestInferHeadingFallbackName(t *testing.T) {
	nodes := elements(t, `<main><div><h2>One</h2></div><div><h2>Two</h2></div></main>`, "div")
	spec := Infer(nodes[0], nodes, signature.NewHasher(0, nil))

	require.Len(t, spec.Props, 1)
	assert.Equal(t, "headingText", spec.Props[0].Name)
}

func TestInferDuplicateNamesSuffixed(t *testing.T) {
	nodes := elements(t, `<main><div><h2>A</h2><h3>B</h3></div><div><h2>C</h2><h3>D</h3></div></main>`, "div")
	spec := Infer(nodes[0], nodes, signature.NewHasher(0, nil))

	require.Len(t, spec.Props, 2)
	assert.Equal(t, "headingText", spec.Props[0].Name)
	assert.Equal(t, "headingText2", spec.Props[1].Name)
}

// --- icons ---

func TestInferIconProp(t *testing.T) {
	src := `<main>
<button><svg viewBox="0 0 16 16"><path d="M1 1"></path></svg><span>Save</span></button>
<button><svg viewBox="0 0 16 16"><path d="M2 2"></path></svg><span>Load</span></button>
</main>`
	nodes := elements(t, src, "button")
	spec := Infer(nodes[0], nodes, signature.NewHasher(0, nil))

	var icon *Prop
	for i := range spec.Props {
		if spec.Props[i].Kind == SVGIcon {
			icon = &spec.Props[i]
		}
	}
	require.NotNil(t, icon)
	assert.Equal(t, "iconSrc", icon.Name)
}

// --- children passthrough ---

func TestInferChildrenDivergence(t *testing.T) {
	src := `<main>
<div class="panel"><p>plain text</p></div>
<div class="panel"><ul><li>a</li><li>b</li></ul></div>
</main>`
	nodes := elements(t, src, "div")
	spec := Infer(nodes[0], nodes, signature.NewHasher(0, nil))

	assert.True(t, spec.HasChildren())
	var children *Prop
	for i := range spec.Props {
		if spec.Props[i].Kind == Children {
			children = &spec.Props[i]
		}
	}
	require.NotNil(t, children)
	assert.Equal(t, "children", children.Name)
}

// --- determinism ---

func TestInferDeterministic(t *testing.T) {
	src := `<ul><li><a href="/x">X</a></li><li><a href="/y">Y</a></li></ul>`
	a := infer(t, src, "li")
	b := infer(t, src, "li")
	assert.Equal(t, a.Names(), b.Names())
	for i := range a.Props {
		assert.Equal(t, a.Props[i].Path.String(), b.Props[i].Path.String())
	}
}

// --- spec lookups ---

func TestSpecAt(t *testing.T) {
	spec := infer(t, `<ul><li><a href="/x">X</a></li><li><a href="/y">Y</a></li></ul>`, "li")

	p := spec.At(Path{{Index: 0}}.Attr("href"), Attribute)
	require.NotNil(t, p)
	assert.Equal(t, "href", p.Name)

	assert.Nil(t, spec.At(Path{{Index: 0}}.Attr("href"), TextChild))
	assert.Nil(t, spec.At(Path{{Index: 5}}, TextChild))
}

func TestPathString(t *testing.T) {
	p := Path{}.Child(0).Child(2).Attr("href")
	assert.Equal(t, "0/2/@href", p.String())
	assert.Equal(t, "", Path{}.String())
}
