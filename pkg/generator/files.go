package generator

import (
	"strings"

	"github.com/gnana997/jsxify/pkg/props"
)

// FileExt returns the generated source extension for the configuration.
func (r *Renderer) FileExt() string {
	if r.cfg.TypeScript {
		return ".tsx"
	}
	return ".jsx"
}

// ComponentFile wraps a rendered component body into a complete source file:
// imports for nested components, a function component destructuring its
// props, and a default export.
func (r *Renderer) ComponentFile(name string, spec *props.Spec, body string, references []string) string {
	var b strings.Builder
	for _, ref := range references {
		b.WriteString(`import ` + ref + ` from "./` + ref + `";` + "\n")
	}
	if len(references) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("function " + name + "(" + r.paramList(spec) + ") {\n")
	b.WriteString(r.cfg.Indent + "return (\n")
	b.WriteString(indentBlock(body, r.cfg.Indent+r.cfg.Indent) + "\n")
	b.WriteString(r.cfg.Indent + ");\n")
	b.WriteString("}\n\n")
	b.WriteString("export default " + name + ";\n")
	return b.String()
}

// PageFile wraps a rendered page body, importing every referenced component.
func (r *Renderer) PageFile(name, body string, references []string) string {
	var b strings.Builder
	for _, ref := range references {
		b.WriteString(`import ` + ref + ` from "../components/` + ref + `";` + "\n")
	}
	if len(references) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("function " + name + "() {\n")
	b.WriteString(r.cfg.Indent + "return (\n")
	b.WriteString(indentBlock(body, r.cfg.Indent+r.cfg.Indent) + "\n")
	b.WriteString(r.cfg.Indent + ");\n")
	b.WriteString("}\n\n")
	b.WriteString("export default " + name + ";\n")
	return b.String()
}

// paramList renders the destructured prop parameter, with optional type
// annotations in TypeScript mode.
func (r *Renderer) paramList(spec *props.Spec) string {
	if spec == nil || len(spec.Props) == 0 {
		return ""
	}
	names := spec.Names()
	params := "{ " + strings.Join(names, ", ") + " }"
	if !r.cfg.TypeScript {
		return params
	}

	fields := make([]string, len(spec.Props))
	for i, p := range spec.Props {
		typ := "string"
		if p.Kind == props.Children {
			typ = "React.ReactNode"
		}
		fields[i] = p.Name + "?: " + typ
	}
	return params + ": { " + strings.Join(fields, "; ") + " }"
}

// indentBlock prefixes every non-empty line of s with prefix.
func indentBlock(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
