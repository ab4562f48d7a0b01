package transform

import (
	"path/filepath"
	"strings"
)

// Kind distinguishes plugin and preset name resolution.
type Kind string

const (
	// KindPlugin resolves names against the plugin naming convention.
	KindPlugin Kind = "plugin"
	// KindPreset resolves names against the preset naming convention.
	KindPreset Kind = "preset"
)

// PresetEnv is the canonical path of the environment-targeting preset.
const PresetEnv = "@babel/preset-env"

// CanonicalName expands a shorthand plugin or preset request to its
// canonical module path, which serves as the merge identity key:
// "env" becomes "@babel/preset-env", "@babel/env" likewise, and a bare
// "transform-x" gains the community prefix. Filesystem paths pass
// through untouched; a "module:" prefix strips to the bare name.
func CanonicalName(kind Kind, name string) string {
	if name == "" || filepath.IsAbs(name) ||
		strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../") {
		return name
	}
	if rest, ok := strings.CutPrefix(name, "module:"); ok {
		return rest
	}

	kindPrefix := string(kind) + "-"

	if scope, rest, ok := splitScope(name); ok {
		if rest == "" || strings.HasPrefix(rest, kindPrefix) ||
			strings.Contains(rest, "babel-"+string(kind)) {
			return name
		}
		return scope + "/" + kindPrefix + rest
	}

	communityPrefix := "babel-" + kindPrefix
	if strings.Contains(name, "/") || strings.HasPrefix(name, communityPrefix) {
		return name
	}
	return communityPrefix + name
}

// splitScope splits "@scope/rest" into its parts.
func splitScope(name string) (scope, rest string, ok bool) {
	if !strings.HasPrefix(name, "@") {
		return "", "", false
	}
	if i := strings.Index(name, "/"); i >= 0 {
		return name[:i], name[i+1:], true
	}
	return name, "", true
}
