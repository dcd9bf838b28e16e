// Package dom provides read helpers over the golang.org/x/net/html node tree.
//
// The componentization engine treats nodes by pointer identity: two
// structurally identical subtrees at different positions are distinct
// entities. All functions here are read-only except NormalizeSVGAttrs,
// which performs two in-place attribute renames.
package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses an HTML document from r.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return doc, nil
}

// ParseString parses an HTML document from a string.
func ParseString(src string) (*html.Node, error) {
	return Parse(strings.NewReader(src))
}

// Body returns the <body> element of a parsed document.
// Returns an error if the document has no body (callers skip the
// document and continue the batch).
func Body(doc *html.Node) (*html.Node, error) {
	var body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if body == nil {
		return nil, fmt.Errorf("document has no body element")
	}
	return body, nil
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// ID returns the element's id attribute, or "".
func ID(n *html.Node) string {
	v, _ := Attr(n, "id")
	return strings.TrimSpace(v)
}

// ClassTokens returns the whitespace-split tokens of the class attribute
// in document order.
func ClassTokens(n *html.Node) []string {
	v, ok := Attr(n, "class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// HasClassToken reports whether the element's class list contains tok.
func HasClassToken(n *html.Node, tok string) bool {
	for _, t := range ClassTokens(n) {
		if t == tok {
			return true
		}
	}
	return false
}

// Children returns the ordered child nodes of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// ElementChildCount counts direct element children.
func ElementChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

// DescendantCount counts all nodes in the subtree rooted at n, including n.
func DescendantCount(n *html.Node) int {
	count := 1
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += DescendantCount(c)
	}
	return count
}

// IsIcon reports whether n is an inline vector icon subtree (<svg>).
// Icon subtrees are opaque to pattern detection and prop inference;
// they are serialized whole and externalized as assets.
func IsIcon(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.Svg || n.Data == "svg")
}

// IsBlankText reports whether n is a text node containing only whitespace.
func IsBlankText(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

// Render serializes the subtree rooted at n to HTML text.
func Render(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", fmt.Errorf("failed to render node: %w", err)
	}
	return b.String(), nil
}

// IconTitle extracts the text of an embedded <title> child of an icon
// subtree, used as best-effort alt text. Returns "" when absent.
func IconTitle(n *html.Node) string {
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			var b strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
				}
			}
			title = strings.TrimSpace(b.String())
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return title
}

// svgAttrCasing maps attribute names the HTML tokenizer lowercases back to
// their case-sensitive SVG spellings.
var svgAttrCasing = map[string]string{
	"viewbox":             "viewBox",
	"preserveaspectratio": "preserveAspectRatio",
}

// NormalizeSVGAttrs restores SVG attribute casing in place for the whole
// subtree. This is the only mutation the engine performs on the input tree.
func NormalizeSVGAttrs(n *html.Node) {
	if n.Type == html.ElementNode {
		for i := range n.Attr {
			if fixed, ok := svgAttrCasing[n.Attr[i].Key]; ok {
				n.Attr[i].Key = fixed
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		NormalizeSVGAttrs(c)
	}
}
