package core

import (
	"fmt"
	"sort"
	"strings"
)

// Format identifies the module convention of one produced bundle.
type Format string

const (
	// FormatCJS produces a CommonJS bundle.
	FormatCJS Format = "cjs"
	// FormatUMD produces a universal bundle with a named global fallback.
	FormatUMD Format = "umd"
	// FormatES produces an ECMAScript module bundle.
	FormatES Format = "es"
	// FormatModern produces an ECMAScript module bundle targeting engines
	// with native async/generator support.
	FormatModern Format = "modern"
)

// DefaultFormats is the format list used when none is configured.
var DefaultFormats = []Format{FormatModern, FormatES, FormatCJS, FormatUMD}

// IsESM reports whether the format emits ECMAScript module syntax.
func (f Format) IsESM() bool {
	return f == FormatES || f == FormatModern
}

// String returns the canonical format name.
func (f Format) String() string {
	return string(f)
}

// ParseFormat normalizes a single format name, resolving the accepted
// aliases ("esm" and "module" for es, "commonjs" for cjs).
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cjs", "commonjs":
		return FormatCJS, nil
	case "umd":
		return FormatUMD, nil
	case "es", "esm", "module":
		return FormatES, nil
	case "modern":
		return FormatModern, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// ParseFormats normalizes a list of format names. Each element may itself
// be a comma-separated list. Duplicates collapse to their first occurrence.
// An empty input yields DefaultFormats.
func ParseFormats(names []string) ([]Format, error) {
	var flat []string
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			if strings.TrimSpace(part) != "" {
				flat = append(flat, part)
			}
		}
	}
	if len(flat) == 0 {
		return append([]Format(nil), DefaultFormats...), nil
	}

	seen := make(map[Format]bool, len(flat))
	formats := make([]Format, 0, len(flat))
	for _, name := range flat {
		f, err := ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats, nil
}

// ScheduleFormats orders formats for sequential execution: cjs runs first
// so its metadata pass completes before dependent outputs, and the rest
// follow in lexical order. The input slice is not modified.
func ScheduleFormats(formats []Format) []Format {
	scheduled := append([]Format(nil), formats...)
	sort.SliceStable(scheduled, func(i, j int) bool {
		if scheduled[i] == FormatCJS || scheduled[j] == FormatCJS {
			return scheduled[i] == FormatCJS && scheduled[j] != FormatCJS
		}
		return scheduled[i] < scheduled[j]
	})
	return scheduled
}
