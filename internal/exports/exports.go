// Package exports statically detects the export surface of a module.
// Detection is regex-based and best-effort: it may produce false
// negatives for unusual export syntax, which downstream treats as "no
// wrapper needed".
package exports

import (
	"os"
	"regexp"
)

var (
	// defaultExport matches a default export statement.
	defaultExport = regexp.MustCompile(`\bexport\s+default\b`)
	// namedDeclaration matches declaration-level named exports.
	namedDeclaration = regexp.MustCompile(`\bexport\s+(const|let|var|function|async\s+function|class)\b`)
	// namedList matches an explicit export list.
	namedList = regexp.MustCompile(`\bexport\s*\{`)
)

// Shape is the detected export surface of one module.
type Shape struct {
	// HasDefault reports a default export.
	HasDefault bool
	// HasNamed reports any named export.
	HasNamed bool
}

// Mixed reports a default and named exports together: a shape that
// single-binding output formats cannot represent, requiring a wrapper
// entry that collapses both into one default binding.
func (s Shape) Mixed() bool {
	return s.HasDefault && s.HasNamed
}

// DetectSource tests the two patterns against source text.
func DetectSource(src []byte) Shape {
	return Shape{
		HasDefault: defaultExport.Match(src),
		HasNamed:   namedDeclaration.Match(src) || namedList.Match(src),
	}
}

// Detect reads path and tests its content. An unreadable file yields the
// zero Shape rather than an error.
func Detect(path string) Shape {
	src, err := os.ReadFile(path)
	if err != nil {
		return Shape{}
	}
	return DetectSource(src)
}
