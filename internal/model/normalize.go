package model

import (
	"strings"
	"unicode"
)

// typeTable maps documented type tokens (lower-cased) to canonical types.
// Date and time tokens stay strings because the documented wire format is
// a string; unknown tokens default to string as well.
var typeTable = map[string]PropertyType{
	"guid":           TypeString,
	"uuid":           TypeString,
	"string":         TypeString,
	"datetime":       TypeString,
	"date":           TypeString,
	"time":           TypeString,
	"datetimeoffset": TypeString,
	"int16":          TypeInt,
	"int32":          TypeInt,
	"int64":          TypeInt,
	"int":            TypeInt,
	"integer":        TypeInt,
	"byte":           TypeInt,
	"double":         TypeFloat,
	"decimal":        TypeFloat,
	"float":          TypeFloat,
	"single":         TypeFloat,
	"bool":           TypeBool,
	"boolean":        TypeBool,
}

// NormalizeType maps a documented type token to its canonical type.
// The lookup is case-insensitive and trimmed; it is total and never fails.
func NormalizeType(raw string) PropertyType {
	if t, ok := typeTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t
	}
	return TypeString
}

// acronyms are identifiers that map to their fully lower-case form when the
// entire raw name equals the acronym.
var acronyms = map[string]struct{}{
	"id":    {},
	"url":   {},
	"api":   {},
	"json":  {},
	"xml":   {},
	"html":  {},
	"http":  {},
	"https": {},
	"sql":   {},
}

// FieldNameFrom converts a documented identifier into a canonical field
// name: a full acronym match yields the lower-case acronym, otherwise only
// the first character is lower-cased and words split on space, underscore
// or hyphen are joined camel-style.
func FieldNameFrom(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if _, ok := acronyms[strings.ToLower(raw)]; ok {
		return strings.ToLower(raw)
	}

	words := splitWords(raw)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(lowerFirst(w))
			continue
		}
		b.WriteString(upperFirst(w))
	}
	return b.String()
}

// exportedName returns the exported (upper camel) form of a documented
// identifier. Full acronym matches keep their canonical upper-case form.
func exportedName(raw string) string {
	raw = strings.TrimSpace(raw)
	if _, ok := acronyms[strings.ToLower(raw)]; ok {
		return strings.ToUpper(raw)
	}

	var b strings.Builder
	for _, w := range splitWords(raw) {
		b.WriteString(upperFirst(w))
	}
	return b.String()
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
}

func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func upperFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
