package generator

import (
	"fmt"
	"strings"

	"github.com/apiforge/modelgen/internal/model"
)

// reservedWords are Go keywords that cannot be used as field or parameter
// identifiers; colliding canonical names get a suffix.
var reservedWords = map[string]struct{}{
	"break": {}, "case": {}, "chan": {}, "const": {}, "continue": {},
	"default": {}, "defer": {}, "else": {}, "fallthrough": {}, "for": {},
	"func": {}, "go": {}, "goto": {}, "if": {}, "import": {},
	"interface": {}, "map": {}, "package": {}, "range": {}, "return": {},
	"select": {}, "struct": {}, "switch": {}, "type": {}, "var": {},
}

// Go emits Go source models. Output is deterministic and gofmt-clean.
type Go struct{}

// NewGo creates the Go emitter.
func NewGo() *Go {
	return &Go{}
}

// FileName places the model under its grouping key, snake_cased.
func (g *Go) FileName(resource model.Resource) string {
	return outputPath(resource, ".go")
}

// Emit renders the model source for one resource.
func (g *Go) Emit(resource model.Resource) (string, error) {
	class := resource.ClassName()
	if class == "" {
		return "", fmt.Errorf("resource %q has no usable class name", resource.Name)
	}

	var b strings.Builder

	b.WriteString("// Code generated by modelgen. DO NOT EDIT.\n")
	b.WriteString("//\n")
	fmt.Fprintf(&b, "// Resource: %s", resource.Name)
	if resource.Endpoint != "" {
		fmt.Fprintf(&b, " (%s)", resource.Endpoint)
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "package %s\n\n", resource.GroupKey())

	g.writeImports(&b, resource)
	g.writeStruct(&b, class, resource)
	g.writeConstructor(&b, class, resource)
	g.writeFromMap(&b, class, resource)
	g.writeToMap(&b, class, resource)
	g.writeMarshalJSON(&b, class)
	g.writeAccessors(&b, class, resource)

	return b.String(), nil
}

func (g *Go) writeImports(b *strings.Builder, resource model.Resource) {
	b.WriteString("import (\n")
	b.WriteString("\t\"encoding/json\"\n")
	if len(resource.Properties) > 0 {
		b.WriteString("\n")
		b.WriteString("\t\"github.com/apiforge/modelgen/pkg/coerce\"\n")
	}
	b.WriteString(")\n\n")
}

func (g *Go) writeStruct(b *strings.Builder, class string, resource model.Resource) {
	fmt.Fprintf(b, "// %s is the generated model for the %s resource.\n", class, resource.Name)
	if resource.Description != "" {
		fmt.Fprintf(b, "// %s\n", resource.Description)
	}
	fmt.Fprintf(b, "type %s struct {\n", class)
	writeAligned(b, 1, propertyPairs(resource, func(p model.Property) (string, string) {
		return fieldIdent(p), goType(p)
	}))
	b.WriteString("}\n\n")
}

func (g *Go) writeConstructor(b *strings.Builder, class string, resource model.Resource) {
	params := make([]string, 0, len(resource.Properties))
	for _, p := range resource.Properties {
		params = append(params, fieldIdent(p)+" "+goType(p))
	}

	fmt.Fprintf(b, "// New%s constructs a %s with every field set. Pass nil for absent\n", class, class)
	b.WriteString("// nullable fields.\n")
	fmt.Fprintf(b, "func New%s(%s) *%s {\n", class, strings.Join(params, ", "), class)
	fmt.Fprintf(b, "\treturn &%s{\n", class)
	writeAligned(b, 2, propertyPairs(resource, func(p model.Property) (string, string) {
		return fieldIdent(p) + ":", fieldIdent(p) + ","
	}))
	b.WriteString("\t}\n")
	b.WriteString("}\n\n")
}

func (g *Go) writeFromMap(b *strings.Builder, class string, resource model.Resource) {
	fmt.Fprintf(b, "// %sFromMap builds a %s from an untyped map keyed by the documented\n", class, class)
	b.WriteString("// property names. Required fields coerce with zero-value fallbacks;\n")
	b.WriteString("// nullable fields pass raw values through or stay nil.\n")
	fmt.Fprintf(b, "func %sFromMap(m map[string]any) *%s {\n", class, class)
	fmt.Fprintf(b, "\treturn &%s{\n", class)
	writeAligned(b, 2, propertyPairs(resource, func(p model.Property) (string, string) {
		return fieldIdent(p) + ":", fmt.Sprintf("coerce.%s(m[%q]),", coerceFunc(p), p.Name)
	}))
	b.WriteString("\t}\n")
	b.WriteString("}\n\n")
}

func (g *Go) writeToMap(b *strings.Builder, class string, resource model.Resource) {
	b.WriteString("// ToMap returns the untyped map form keyed by the documented property\n")
	b.WriteString("// names.\n")
	fmt.Fprintf(b, "func (r *%s) ToMap() map[string]any {\n", class)
	fmt.Fprintf(b, "\tm := make(map[string]any, %d)\n", len(resource.Properties))
	for _, p := range resource.Properties {
		fmt.Fprintf(b, "\tm[%q] = r.%s\n", p.Name, fieldIdent(p))
	}
	b.WriteString("\treturn m\n")
	b.WriteString("}\n\n")
}

func (g *Go) writeMarshalJSON(b *strings.Builder, class string) {
	b.WriteString("// MarshalJSON implements json.Marshaler by delegating to ToMap.\n")
	fmt.Fprintf(b, "func (r *%s) MarshalJSON() ([]byte, error) {\n", class)
	b.WriteString("\treturn json.Marshal(r.ToMap())\n")
	b.WriteString("}\n")
}

func (g *Go) writeAccessors(b *strings.Builder, class string, resource model.Resource) {
	for _, p := range resource.Properties {
		accessor := p.AccessorName()
		b.WriteString("\n")
		if p.Type == model.TypeBool {
			fmt.Fprintf(b, "// %s reports the %s property.\n", accessor, p.Name)
		} else {
			fmt.Fprintf(b, "// %s returns the %s property.\n", accessor, p.Name)
		}
		fmt.Fprintf(b, "func (r *%s) %s() %s {\n", class, accessor, goType(p))
		fmt.Fprintf(b, "\treturn r.%s\n", fieldIdent(p))
		b.WriteString("}\n")
	}
}

// goType maps the canonical property type to its Go type; nullable
// properties are pointer-typed.
func goType(p model.Property) string {
	var base string
	switch p.Type {
	case model.TypeInt:
		base = "int"
	case model.TypeFloat:
		base = "float64"
	case model.TypeBool:
		base = "bool"
	default:
		base = "string"
	}
	if p.IsNullable {
		return "*" + base
	}
	return base
}

// coerceFunc picks the pkg/coerce helper for a property.
func coerceFunc(p model.Property) string {
	var base string
	switch p.Type {
	case model.TypeInt:
		base = "Int"
	case model.TypeFloat:
		base = "Float"
	case model.TypeBool:
		base = "Bool"
	default:
		base = "String"
	}
	if p.IsNullable {
		return "Nullable" + base
	}
	return base
}

// fieldIdent returns the canonical field identifier, suffixing names that
// collide with Go keywords.
func fieldIdent(p model.Property) string {
	name := p.FieldName()
	if _, reserved := reservedWords[name]; reserved {
		return name + "Field"
	}
	return name
}

// propertyPairs renders (left, right) column pairs for each property.
func propertyPairs(resource model.Resource, render func(model.Property) (string, string)) [][2]string {
	pairs := make([][2]string, 0, len(resource.Properties))
	for _, p := range resource.Properties {
		left, right := render(p)
		pairs = append(pairs, [2]string{left, right})
	}
	return pairs
}

// writeAligned writes column pairs at the given tab depth with the right
// column aligned the way gofmt would align it. Struct fields sit at depth
// 1, composite-literal fields inside a function body at depth 2.
func writeAligned(b *strings.Builder, indent int, pairs [][2]string) {
	prefix := strings.Repeat("\t", indent)
	width := 0
	for _, pair := range pairs {
		if len(pair[0]) > width {
			width = len(pair[0])
		}
	}
	for _, pair := range pairs {
		fmt.Fprintf(b, "%s%s%s%s\n", prefix, pair[0], strings.Repeat(" ", width-len(pair[0])+1), pair[1])
	}
}
