package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"margin-top: 4px", `{ marginTop: "4px" }`},
		{"margin-top: 4px; color: red", `{ marginTop: "4px", color: "red" }`},
		{"  color :  blue ; ", `{ color: "blue" }`},
		{"", ""},
		{"no-colon-here", ""},
		{"color:", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, styleObject(tc.in), "input %q", tc.in)
	}
}

func TestCSSPropName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"color", "color"},
		{"margin-top", "marginTop"},
		{"border-bottom-width", "borderBottomWidth"},
		{"-webkit-transition", "WebkitTransition"},
		{"-ms-transform", "msTransform"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, cssPropName(tc.in), "input %q", tc.in)
	}
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, "a &#123;x&#125; b", escapeText("a {x} b"))
	assert.Equal(t, "1 &lt; 2 &gt; 0", escapeText("1 < 2 > 0"))
	assert.Equal(t, "fish &amp; chips", escapeText("fish & chips"))
}

func TestJSXAttrValue(t *testing.T) {
	assert.Equal(t, `"/home"`, jsxAttrValue("/home"))
	assert.Equal(t, `"say &quot;hi&quot;"`, jsxAttrValue(`say "hi"`))
	assert.Equal(t, `"a &amp; b"`, jsxAttrValue("a & b"))
}
