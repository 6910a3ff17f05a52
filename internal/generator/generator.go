// Package generator turns resource models into emitted source code. The
// crawler core only sees the Emitter interface, so the parsing pipeline
// stays agnostic of the emitted language.
package generator

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/apiforge/modelgen/internal/model"
)

// Emitter emits one source file per resource. Implementations must be
// deterministic: the same resource always yields byte-identical output.
type Emitter interface {
	// Emit renders the model source for one resource.
	Emit(resource model.Resource) (string, error)

	// FileName derives the output path (relative to the output root) for
	// one resource.
	FileName(resource model.Resource) string
}

// snakeCase converts an UpperCamel class name into snake_case for file
// naming.
func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || (unicode.IsUpper(runes[i-1]) && nextLower)) {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// outputPath joins the resource's grouping key with its snake_cased class
// name and extension.
func outputPath(resource model.Resource, ext string) string {
	return filepath.Join(resource.GroupKey(), snakeCase(resource.ClassName())+ext)
}
