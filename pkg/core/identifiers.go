package core

import (
	"regexp"
	"strings"
)

// bareIdentifier matches names usable verbatim as a global variable.
var bareIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// IsBareIdentifier reports whether name can stand alone as a global
// variable binding without renaming.
func IsBareIdentifier(name string) bool {
	return bareIdentifier.MatchString(name)
}

// RemoveScope strips a leading "@scope/" from a package name.
func RemoveScope(name string) string {
	if strings.HasPrefix(name, "@") {
		if i := strings.Index(name, "/"); i >= 0 {
			return name[i+1:]
		}
	}
	return name
}

// SafeModuleName derives a global-safe module name from a package name:
// the scope is dropped, characters outside [A-Za-z0-9._-] are removed
// along with any non-letter prefix and non-alphanumeric suffix, and the
// remainder is camel-cased on separator boundaries.
func SafeModuleName(name string) string {
	normalized := strings.ToLower(RemoveScope(name))

	var cleaned strings.Builder
	started := false
	for _, r := range normalized {
		if !started {
			if !isLetter(r) {
				continue
			}
			started = true
		}
		if isLetter(r) || isDigit(r) || r == '.' || r == '_' || r == '-' {
			cleaned.WriteRune(r)
		}
	}
	trimmed := strings.TrimRight(cleaned.String(), "._-")

	return camelCase(trimmed)
}

// camelCase joins segments split on [._-] with upper-cased joints.
func camelCase(s string) string {
	var b strings.Builder
	upperNext := false
	for _, r := range s {
		switch {
		case r == '.' || r == '_' || r == '-':
			upperNext = true
		case upperNext:
			b.WriteRune(toUpper(r))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
