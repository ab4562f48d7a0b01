// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestProject creates a temporary package with a manifest and a
// small bundleable source tree, and returns its directory.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	manifest := `{
  "name": "acme",
  "source": "src/index.js",
  "main": "dist/acme.js",
  "module": "dist/acme.module.js"
}`
	if err := os.WriteFile(filepath.Join(tmpDir, "package.json"), []byte(manifest), 0644); err != nil {
		t.Fatalf("failed to create package.json: %v", err)
	}

	if err := os.MkdirAll(filepath.Join(tmpDir, "src"), 0755); err != nil {
		t.Fatalf("failed to create src directory: %v", err)
	}

	source := `export default function add(a, b) {
  return a + b;
}

export const VERSION = "1.0.0";
`
	if err := os.WriteFile(filepath.Join(tmpDir, "src", "index.js"), []byte(source), 0644); err != nil {
		t.Fatalf("failed to create src/index.js: %v", err)
	}

	return tmpDir
}
