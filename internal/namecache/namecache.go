// Package namecache persists the minifier's identifier cache so mangled
// member names stay stable across runs.
package namecache

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileName is the cache file kept at the project root.
const FileName = "mangle.json"

// document is the file shape: renamed properties under one key, mapping
// original names to minified ones (or false to pin a name).
type document struct {
	Props map[string]any `json:"props"`
}

// Load reads the cache from cwd. Every failure mode (missing file, bad
// JSON, wrong shape) yields an empty cache, never an error.
func Load(cwd string) map[string]any {
	data, err := os.ReadFile(filepath.Join(cwd, FileName))
	if err != nil {
		return map[string]any{}
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil || doc.Props == nil {
		return map[string]any{}
	}
	return doc.Props
}

// Save writes the cache to cwd, pretty-printed for diffability.
func Save(cwd string, props map[string]any) error {
	data, err := json.MarshalIndent(document{Props: props}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cwd, FileName), append(data, '\n'), 0o644)
}
