package entry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("export default 1\n"), 0o644))
	}
}

func TestResolve_ExplicitEntries(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "src/foo.js", "src/bar.js")

	got, err := Resolve(dir, []string{"src/foo.js"}, &core.PackageManifest{})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "src", "foo.js")}, got)
}

func TestResolve_GlobPattern(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "src/a.js", "src/b.js", "src/nested/c.js")

	got, err := Resolve(dir, []string{"src/*.js"}, &core.PackageManifest{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "src", "a.js"),
		filepath.Join(dir, "src", "b.js"),
	}, got)
}

func TestResolve_DeduplicatesFirstOccurrence(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "src/a.js", "src/b.js")

	got, err := Resolve(dir, []string{"src/b.js", "src/*.js"}, &core.PackageManifest{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "src", "b.js"),
		filepath.Join(dir, "src", "a.js"),
	}, got)
}

func TestResolve_SourceField(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "lib/main.js")

	pkg := &core.PackageManifest{Source: []string{"lib/main.js"}}
	got, err := Resolve(dir, nil, pkg)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "lib", "main.js")}, got)
}

func TestResolve_SourceArrayKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "src/b.js", "src/a.js")

	pkg := &core.PackageManifest{Source: []string{"src/b.js", "src/a.js"}}
	got, err := Resolve(dir, nil, pkg)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "src", "b.js"),
		filepath.Join(dir, "src", "a.js"),
	}, got)
}

func TestResolve_SrcIndexProbesTypeScriptFirst(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "src/index.ts", "src/index.js")

	got, err := Resolve(dir, nil, &core.PackageManifest{})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "src", "index.ts")}, got)
}

func TestResolve_RootIndexFallback(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "index.js")

	got, err := Resolve(dir, nil, &core.PackageManifest{})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "index.js")}, got)
}

func TestResolve_EmptySrcFallsThrough(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	touch(t, dir, "index.js")

	got, err := Resolve(dir, nil, &core.PackageManifest{})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "index.js")}, got)
}

func TestResolve_ModuleFieldLastResort(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "lib/entry.mjs")

	pkg := &core.PackageManifest{Module: "lib/entry.mjs"}
	got, err := Resolve(dir, nil, pkg)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "lib", "entry.mjs")}, got)
}

func TestResolve_DirectoryRewrittenToIndex(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "src/pages/index.tsx")

	got, err := Resolve(dir, []string{"src/pages"}, &core.PackageManifest{})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "src", "pages", "index.tsx")}, got)
}

func TestResolve_NoEntry(t *testing.T) {
	dir := t.TempDir()

	_, err := Resolve(dir, nil, &core.PackageManifest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNoEntry))
}

func TestResolve_ExplicitPatternWithoutMatchDoesNotFallBack(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "index.js")

	_, err := Resolve(dir, []string{"missing/*.js"}, &core.PackageManifest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNoEntry))
}
