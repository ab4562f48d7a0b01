package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestRead_FullManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{
		"name": "@acme/widgets",
		"amdName": "Widgets",
		"source": "src/index.js",
		"main": "dist/widgets.js",
		"module": "dist/widgets.module.js",
		"jsnext:main": "dist/widgets.jsnext.js",
		"cjs:main": "dist/widgets.cjs",
		"umd:main": "dist/widgets.umd.js",
		"dependencies": {"left-pad": "^1.0.0"},
		"peerDependencies": {"react": "^18.0.0"},
		"mangle": {"regex": "^_", "reserved": ["__esModule"]}
	}`)

	pkg, err := Read(filepath.Join(dir, FileName))
	require.NoError(t, err)

	assert.Equal(t, "@acme/widgets", pkg.Name)
	assert.Equal(t, "Widgets", pkg.AmdName)
	assert.Equal(t, []string{"src/index.js"}, pkg.Source)
	assert.Equal(t, "dist/widgets.js", pkg.Main)
	assert.Equal(t, "dist/widgets.module.js", pkg.Module)
	assert.Equal(t, "dist/widgets.jsnext.js", pkg.JSNextMain)
	assert.Equal(t, "dist/widgets.cjs", pkg.CJSMain)
	assert.Equal(t, "dist/widgets.umd.js", pkg.UMDMain)
	assert.Equal(t, map[string]string{"left-pad": "^1.0.0"}, pkg.Dependencies)
	assert.Equal(t, map[string]string{"react": "^18.0.0"}, pkg.PeerDependencies)
	require.NotNil(t, pkg.Mangle)
	assert.Equal(t, "^_", pkg.Mangle.Regex)
	assert.Equal(t, []string{"__esModule"}, pkg.Mangle.Reserved)
}

func TestRead_SourceArray(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"name": "multi", "source": ["src/a.js", "src/b.js"]}`)

	pkg, err := Read(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.js", "src/b.js"}, pkg.Source)
}

func TestRead_Missing(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, FileName))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrManifestNotFound))
}

func TestRead_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{not json`)

	_, err := Read(filepath.Join(dir, FileName))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrManifestInvalid))
}

func TestResolve_MissingManifestDegrades(t *testing.T) {
	dir := t.TempDir()

	pkg, warnings := Resolve(dir)
	require.NotNil(t, pkg)
	assert.Equal(t, filepath.Base(dir), pkg.Name)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "no valid package.json")
	assert.Contains(t, warnings[1], "assuming")
}

func TestResolve_MissingNameWarns(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"main": "dist/x.js"}`)

	pkg, warnings := Resolve(dir)
	assert.Equal(t, filepath.Base(dir), pkg.Name)
	assert.Equal(t, "dist/x.js", pkg.Main)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"name"`)
}

func TestResolve_CompleteManifestNoWarnings(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"name": "acme"}`)

	pkg, warnings := Resolve(dir)
	assert.Equal(t, "acme", pkg.Name)
	assert.Empty(t, warnings)
}
