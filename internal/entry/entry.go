// Package entry resolves the compilation roots of a run. Explicit
// patterns win; otherwise candidates are probed in a fixed order:
// manifest "source", a src/ directory index, a root index file, then
// the manifest "module" field.
package entry

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

// probeExtensions are tried in order when a candidate omits its
// extension. The plain .js probe comes last.
var probeExtensions = []string{".ts", ".tsx", ".jsx", ".mjs", ".cjs", ".js"}

// Resolve expands entry patterns into absolute file paths, deduplicated
// in first-occurrence order. When patterns is empty the conventional
// candidates are consulted; the first candidate yielding at least one
// match wins. Stat failures fall through to the next candidate.
func Resolve(cwd string, patterns []string, pkg *core.PackageManifest) ([]string, error) {
	for _, candidate := range candidates(cwd, patterns, pkg) {
		var matched []string
		for _, pattern := range candidate {
			matched = append(matched, expand(cwd, pattern)...)
		}
		if len(matched) == 0 {
			continue
		}
		return normalize(matched), nil
	}
	return nil, fmt.Errorf("%w in %s", core.ErrNoEntry, cwd)
}

// candidates returns the ordered candidate pattern lists for the run.
func candidates(cwd string, patterns []string, pkg *core.PackageManifest) [][]string {
	if len(patterns) > 0 {
		return [][]string{patterns}
	}

	var out [][]string
	if len(pkg.Source) > 0 {
		out = append(out, pkg.Source)
	}
	if isDir(filepath.Join(cwd, "src")) {
		if probed, ok := probe(filepath.Join(cwd, "src", "index")); ok {
			out = append(out, []string{probed})
		}
	}
	if probed, ok := probe(filepath.Join(cwd, "index")); ok {
		out = append(out, []string{probed})
	}
	if pkg.Module != "" {
		out = append(out, []string{pkg.Module})
	}
	return out
}

// expand resolves one pattern to existing paths. Literal paths are
// stat-checked directly; patterns with glob metacharacters are matched
// against a filesystem walk rooted at their static prefix.
func expand(cwd, pattern string) []string {
	pattern = filepath.ToSlash(pattern)
	if !filepath.IsAbs(pattern) {
		pattern = filepath.ToSlash(filepath.Join(cwd, pattern))
	}

	if !hasGlobMeta(pattern) {
		if _, err := os.Stat(filepath.FromSlash(pattern)); err != nil {
			return nil
		}
		return []string{filepath.FromSlash(pattern)}
	}

	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil
	}

	root := staticPrefix(pattern)
	var matches []string
	_ = filepath.WalkDir(filepath.FromSlash(root), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() && (name == "node_modules" || (strings.HasPrefix(name, ".") && path != root)) {
			return filepath.SkipDir
		}
		if matcher.Match(filepath.ToSlash(path)) {
			matches = append(matches, path)
		}
		return nil
	})
	return matches
}

// normalize rewrites directory entries to an index file inside them and
// deduplicates by cleaned absolute path, keeping first occurrences.
func normalize(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = filepath.Clean(p)
		if isDir(p) {
			if probed, ok := probe(filepath.Join(p, "index")); ok {
				p = probed
			} else {
				p = filepath.Join(p, "index.js")
			}
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// probe finds base+ext for the first extension that names a regular
// file. A base that already names a file is returned as-is.
func probe(base string) (string, bool) {
	if isFile(base) {
		return base, true
	}
	for _, ext := range probeExtensions {
		if isFile(base + ext) {
			return base + ext, true
		}
	}
	return "", false
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// staticPrefix returns the deepest directory of pattern that contains no
// glob metacharacters, used as the walk root.
func staticPrefix(pattern string) string {
	segments := strings.Split(pattern, "/")
	var static []string
	for _, seg := range segments {
		if strings.ContainsAny(seg, "*?[{") {
			break
		}
		static = append(static, seg)
	}
	if len(static) == 0 {
		return "."
	}
	prefix := strings.Join(static, "/")
	if prefix == "" {
		return "/"
	}
	if !isDir(filepath.FromSlash(prefix)) {
		prefix = filepath.ToSlash(filepath.Dir(filepath.FromSlash(prefix)))
	}
	return prefix
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
