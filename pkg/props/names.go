package props

import (
	"strings"
	"unicode"
)

// jsxAttrRenames maps HTML attribute names to their JSX spellings.
// Names not listed pass through unchanged (data-* and aria-* keep their
// hyphenated form in JSX).
var jsxAttrRenames = map[string]string{
	"class":           "className",
	"for":             "htmlFor",
	"tabindex":        "tabIndex",
	"readonly":        "readOnly",
	"maxlength":       "maxLength",
	"minlength":       "minLength",
	"colspan":         "colSpan",
	"rowspan":         "rowSpan",
	"cellpadding":     "cellPadding",
	"cellspacing":     "cellSpacing",
	"autocomplete":    "autoComplete",
	"autofocus":       "autoFocus",
	"autoplay":        "autoPlay",
	"srcset":          "srcSet",
	"crossorigin":     "crossOrigin",
	"spellcheck":      "spellCheck",
	"contenteditable": "contentEditable",
	"enctype":         "encType",
	"formaction":      "formAction",
	"novalidate":      "noValidate",
	"usemap":          "useMap",
	"accesskey":       "accessKey",
	"datetime":        "dateTime",
	"frameborder":     "frameBorder",
	"allowfullscreen": "allowFullScreen",
	"srcdoc":          "srcDoc",
	"srclang":         "srcLang",
	"hreflang":        "hrefLang",
}

// JSXAttrName translates an HTML attribute name to its JSX equivalent.
func JSXAttrName(key string) string {
	if renamed, ok := jsxAttrRenames[key]; ok {
		return renamed
	}
	return key
}

// CamelCase converts a hyphen/underscore/space separated token sequence into
// a lowerCamelCase identifier, dropping characters that are not valid in a
// JS identifier.
func CamelCase(s string) string {
	var b strings.Builder
	upperNext := false
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == ':' || r == '.':
			upperNext = b.Len() > 0
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if upperNext {
				b.WriteRune(unicode.ToUpper(r))
				upperNext = false
			} else {
				b.WriteRune(r)
			}
		}
	}
	out := b.String()
	if out == "" {
		return out
	}
	return strings.ToLower(out[:1]) + out[1:]
}

// roleKeywords maps class/id token fragments to prop role names, checked in
// order so that more specific fragments win ("subtitle" before "title").
var roleKeywords = []struct {
	fragment string
	role     string
}{
	{"subtitle", "subtitle"},
	{"title", "title"},
	{"label", "label"},
	{"desc", "description"},
	{"header", "header"},
	{"footer", "footer"},
	{"button", "buttonText"},
	{"btn", "buttonText"},
	{"caption", "caption"},
	{"item", "itemText"},
}

// roleFromTokens guesses a prop role from ancestor class/id tokens.
// Returns "" when no keyword matches.
func roleFromTokens(tokens []string) string {
	for _, kw := range roleKeywords {
		for _, tok := range tokens {
			if strings.Contains(strings.ToLower(tok), kw.fragment) {
				return kw.role
			}
		}
	}
	return ""
}

// tagWords maps tag names to friendlier prop name stems; tags not listed use
// the tag name itself ("span" → spanText).
var tagWords = map[string]string{
	"a":  "link",
	"h1": "heading",
	"h2": "heading",
	"h3": "heading",
	"h4": "heading",
	"h5": "heading",
	"h6": "heading",
}

// tagTextName derives a prop name from an ancestor tag name.
func tagTextName(tag string) string {
	if w, ok := tagWords[tag]; ok {
		return w + "Text"
	}
	if tag == "" {
		return ""
	}
	return CamelCase(tag) + "Text"
}
