package generator

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/gnana997/jsxify/pkg/props"
)

// booleanAttrs are the HTML boolean attributes: an empty (or self-named)
// value renders as bare presence, "false" is omitted.
var booleanAttrs = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"hidden":          true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"novalidate":      true,
	"open":            true,
	"readonly":        true,
	"required":        true,
	"reversed":        true,
	"selected":        true,
}

// renderAttr translates one HTML attribute to its JSX form. Returns "" when
// the attribute is omitted entirely.
func (r *Renderer) renderAttr(a html.Attribute, ctx renderCtx) string {
	key := props.JSXAttrName(a.Key)

	// Attributes at a prop path render as a prop reference with the
	// original literal value as fallback default. A children prop only
	// suppresses text substitution, not attribute substitution.
	if ctx.spec != nil {
		if p := ctx.spec.At(ctx.path.Attr(a.Key), props.Attribute); p != nil {
			return key + "={" + p.Name + " || " + jsString(a.Val) + "}"
		}
	}

	if a.Key == "style" {
		obj := styleObject(a.Val)
		if obj == "" {
			return ""
		}
		return "style={" + obj + "}"
	}

	if booleanAttrs[a.Key] {
		switch strings.ToLower(a.Val) {
		case "", "true", a.Key:
			return key
		case "false":
			return ""
		}
	}

	return key + "=" + jsxAttrValue(a.Val)
}

// styleObject converts an inline CSS declaration string to a JSX style
// object literal: "margin-top: 4px; color: red" becomes
// `{ marginTop: "4px", color: "red" }`.
func styleObject(style string) string {
	var pairs []string
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if key == "" || val == "" {
			continue
		}
		pairs = append(pairs, cssPropName(key)+": "+jsString(val))
	}
	if len(pairs) == 0 {
		return ""
	}
	return "{ " + strings.Join(pairs, ", ") + " }"
}

// cssPropName camel-cases a CSS property name. Vendor prefixes keep a
// leading uppercase segment per the React convention, except -ms-.
func cssPropName(key string) string {
	key = strings.TrimSpace(key)
	msPrefix := strings.HasPrefix(key, "-ms-")
	vendor := strings.HasPrefix(key, "-")
	key = strings.TrimPrefix(key, "-")

	parts := strings.Split(key, "-")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 && !vendor {
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	out := b.String()
	if msPrefix && len(out) > 0 {
		out = strings.ToLower(out[:1]) + out[1:]
	}
	return out
}

// jsxAttrValue renders a string attribute value with in-band escaping.
func jsxAttrValue(val string) string {
	val = strings.ReplaceAll(val, "&", "&amp;")
	val = strings.ReplaceAll(val, `"`, "&quot;")
	return `"` + val + `"`
}

// escapeText escapes characters that are syntactically significant in JSX
// text position.
func escapeText(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	text = strings.ReplaceAll(text, "{", "&#123;")
	text = strings.ReplaceAll(text, "}", "&#125;")
	return text
}

// jsString renders a JS string literal for expression position.
func jsString(s string) string {
	return strconv.Quote(s)
}
