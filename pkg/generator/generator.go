// Package generator emits JSX text from HTML subtrees: component definition
// bodies with prop substitution, and page bodies where extracted components
// render as call sites with instance-specific prop values.
package generator

import (
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/gnana997/jsxify/pkg/assets"
	"github.com/gnana997/jsxify/pkg/dom"
	"github.com/gnana997/jsxify/pkg/props"
	"github.com/gnana997/jsxify/pkg/registry"
)

// Config controls emission.
type Config struct {
	// SelfClosing tags always render without a body.
	SelfClosing map[string]bool
	// Indent is one indentation level (default two spaces).
	Indent string
	// TypeScript adds prop type annotations and switches file extensions.
	TypeScript bool
}

// DefaultSelfClosing lists the HTML void tags.
func DefaultSelfClosing() map[string]bool {
	tags := []string{
		"area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "source", "track", "wbr",
	}
	m := make(map[string]bool, len(tags))
	for _, t := range tags {
		m[t] = true
	}
	return m
}

// DefaultConfig returns the standard emission settings.
func DefaultConfig() Config {
	return Config{SelfClosing: DefaultSelfClosing(), Indent: "  "}
}

// Renderer renders subtrees against a per-document registry. It accumulates
// the set of referenced component names for import wiring; TakeReferenced
// drains it between files.
type Renderer struct {
	cfg    Config
	perRun *registry.PerRun
	assets *assets.Store
	logger *slog.Logger
	refs   map[string]bool
}

// New creates a Renderer.
func New(cfg Config, perRun *registry.PerRun, store *assets.Store, logger *slog.Logger) *Renderer {
	if cfg.Indent == "" {
		cfg.Indent = "  "
	}
	if cfg.SelfClosing == nil {
		cfg.SelfClosing = DefaultSelfClosing()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		cfg:    cfg,
		perRun: perRun,
		assets: store,
		logger: logger,
		refs:   make(map[string]bool),
	}
}

// renderCtx is the state carried on the recursion stack: the root of the
// definition being rendered (nil at a page/call-site level), its prop spec,
// and the structural path from that root.
type renderCtx struct {
	defRoot *html.Node
	spec    *props.Spec
	path    props.Path
}

// ComponentBody renders a component definition body from its template.
func (r *Renderer) ComponentBody(template *html.Node, spec *props.Spec) string {
	var b strings.Builder
	r.render(&b, template, renderCtx{defRoot: template, spec: spec}, 0)
	return strings.TrimRight(b.String(), "\n")
}

// PageBody renders the page-level body: every child of body, with
// registered nodes emitted as component references. Multiple top-level
// elements are wrapped in a fragment.
func (r *Renderer) PageBody(body *html.Node) string {
	var inner strings.Builder
	roots := 0
	for _, c := range dom.Children(body) {
		if dom.IsBlankText(c) {
			continue
		}
		roots++
	}

	depth := 0
	if roots > 1 {
		depth = 1
	}
	for _, c := range dom.Children(body) {
		r.render(&inner, c, renderCtx{}, depth)
	}
	content := strings.TrimRight(inner.String(), "\n")

	if roots > 1 {
		return "<>\n" + content + "\n</>"
	}
	return content
}

// TakeReferenced returns the component names referenced since the last call,
// sorted, and resets the set.
func (r *Renderer) TakeReferenced() []string {
	out := make([]string, 0, len(r.refs))
	for name := range r.refs {
		out = append(out, name)
	}
	sort.Strings(out)
	r.refs = make(map[string]bool)
	return out
}

// render dispatches on node kind. Total: unknown kinds render to nothing
// with a warning, never an error.
func (r *Renderer) render(b *strings.Builder, n *html.Node, ctx renderCtx, depth int) {
	if ref, ok := r.perRun.Lookup(n); ok && n != ctx.defRoot {
		r.renderCallSite(b, n, ref, depth)
		return
	}

	switch n.Type {
	case html.TextNode:
		r.renderText(b, n, ctx, depth)
	case html.CommentNode:
		text := strings.TrimSpace(n.Data)
		if text != "" {
			b.WriteString(r.indent(depth) + "{/* " + text + " */}\n")
		}
	case html.DoctypeNode, html.RawNode:
		// Suppressed: doctype and processing-instruction-like nodes.
	case html.ElementNode:
		switch n.Data {
		case "script", "style":
			return
		}
		if dom.IsIcon(n) {
			r.renderIcon(b, n, ctx, depth)
			return
		}
		r.renderElement(b, n, ctx, depth)
	default:
		r.logger.Warn("unhandled node kind rendered as empty", "type", int(n.Type))
	}
}

func (r *Renderer) renderText(b *strings.Builder, n *html.Node, ctx renderCtx, depth int) {
	text := strings.TrimSpace(n.Data)
	if text == "" {
		return
	}
	// Inside a definition, a text child at a prop path renders as a prop
	// reference with the original text as the literal default, so the
	// component works both parameterized and standalone. A declared
	// children prop suppresses this: the whole subtree is forwarded.
	if ctx.spec != nil && !ctx.spec.HasChildren() {
		if p := ctx.spec.At(ctx.path, props.TextChild); p != nil {
			b.WriteString(r.indent(depth) + "{" + p.Name + " || " + jsString(text) + "}\n")
			return
		}
	}
	b.WriteString(r.indent(depth) + escapeText(text) + "\n")
}

// renderIcon externalizes a raw icon subtree: serialized, content-addressed,
// written once per unique content, and replaced by an image reference. Inside
// a definition, an icon at a prop path renders its src as a prop reference
// with the template's asset as the literal default, matching the text-child
// treatment in renderText.
func (r *Renderer) renderIcon(b *strings.Builder, n *html.Node, ctx renderCtx, depth int) {
	serialized, err := dom.Render(n)
	if err != nil {
		r.logger.Warn("failed to serialize icon, dropped", "error", err)
		return
	}
	ref := r.assets.Put(serialized)
	alt := dom.IconTitle(n)
	if alt == "" {
		alt = "icon"
	}

	src := jsxAttrValue(ref)
	if ctx.spec != nil && !ctx.spec.HasChildren() {
		if p := ctx.spec.At(ctx.path, props.SVGIcon); p != nil {
			src = "{" + p.Name + " || " + jsString(ref) + "}"
		}
	}
	b.WriteString(r.indent(depth) + `<img src=` + src + ` alt=` + jsxAttrValue(alt) + ` />` + "\n")
}

func (r *Renderer) renderElement(b *strings.Builder, n *html.Node, ctx renderCtx, depth int) {
	open := "<" + n.Data
	for _, a := range n.Attr {
		if rendered := r.renderAttr(a, ctx); rendered != "" {
			open += " " + rendered
		}
	}

	if r.cfg.SelfClosing[n.Data] {
		b.WriteString(r.indent(depth) + open + " />\n")
		return
	}

	var inner strings.Builder
	if ctx.spec != nil && n == ctx.defRoot && ctx.spec.HasChildren() {
		inner.WriteString(r.indent(depth+1) + "{children}\n")
	} else {
		for i, c := range dom.Children(n) {
			childCtx := ctx
			if ctx.spec != nil {
				childCtx.path = ctx.path.Child(i)
			}
			r.render(&inner, c, childCtx, depth+1)
		}
	}

	if inner.Len() == 0 {
		b.WriteString(r.indent(depth) + open + " />\n")
		return
	}
	b.WriteString(r.indent(depth) + open + ">\n")
	b.WriteString(inner.String())
	b.WriteString(r.indent(depth) + "</" + n.Data + ">\n")
}

// renderCallSite emits a reference to an extracted component, resolving each
// prop value by walking the instance node along the prop's stored path.
func (r *Renderer) renderCallSite(b *strings.Builder, n *html.Node, ref *registry.ComponentRef, depth int) {
	r.refs[ref.Name] = true

	open := "<" + ref.Name
	for i := range ref.Spec.Props {
		p := &ref.Spec.Props[i]
		if p.Kind == props.Children {
			continue
		}
		val, ok := r.resolveValue(n, p)
		if !ok {
			continue
		}
		open += " " + p.Name + "=" + jsxAttrValue(val)
	}

	if !ref.Spec.HasChildren() {
		b.WriteString(r.indent(depth) + open + " />\n")
		return
	}

	// Children are forwarded verbatim as nested content.
	var inner strings.Builder
	for _, c := range dom.Children(n) {
		r.render(&inner, c, renderCtx{}, depth+1)
	}
	if inner.Len() == 0 {
		b.WriteString(r.indent(depth) + open + " />\n")
		return
	}
	b.WriteString(r.indent(depth) + open + ">\n")
	b.WriteString(inner.String())
	b.WriteString(r.indent(depth) + "</" + ref.Name + ">\n")
}

// resolveValue walks an instance node along a prop path and produces the
// call-site value. Missing locations resolve to nothing (best effort).
func (r *Renderer) resolveValue(instance *html.Node, p *props.Prop) (string, bool) {
	cur := instance
	for _, step := range p.Path {
		if step.Key != "" {
			return dom.Attr(cur, step.Key)
		}
		children := dom.Children(cur)
		if step.Index >= len(children) {
			return "", false
		}
		cur = children[step.Index]
	}

	// Instances with diverging children can have a different node kind at
	// the same path; such values resolve to nothing.
	switch p.Kind {
	case props.TextChild:
		if cur.Type != html.TextNode {
			return "", false
		}
		return strings.TrimSpace(cur.Data), true
	case props.SVGIcon:
		if !dom.IsIcon(cur) {
			return "", false
		}
		serialized, err := dom.Render(cur)
		if err != nil {
			return "", false
		}
		return r.assets.Put(serialized), true
	default:
		return "", false
	}
}

func (r *Renderer) indent(depth int) string {
	return strings.Repeat(r.cfg.Indent, depth)
}
