// Package outpath derives destination paths for produced bundles. One
// canonical "main" path anchors the run; per-format paths swap its
// extension chain, honoring the matching manifest field when present.
package outpath

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

var (
	// lastExtension matches a trailing lowercase file extension.
	lastExtension = regexp.MustCompile(`\.[a-z]+$`)
	// extensionChain matches the format infix and extension of a bundle
	// filename, e.g. ".umd.js" or ".m.js".
	extensionChain = regexp.MustCompile(`(\.(umd|cjs|es|m|modern))?\.(mjs|cjs|[tj]sx?)$`)
	// indexLike matches entry basenames that stand for the package root
	// rather than a named submodule.
	indexLike = regexp.MustCompile(`^index(\.(umd|cjs|es|m|modern))?\.(mjs|cjs|[tj]sx?)$`)
	// leadingName matches everything before a basename's first dot.
	leadingName = regexp.MustCompile(`^[^.]+`)
)

// Main computes the canonical output path: the explicit output, else the
// manifest main field, else the dist directory; when that path has no
// file extension or names a directory, "<unscoped-name>.js" is appended.
func Main(cwd, output string, pkg *core.PackageManifest) string {
	main := output
	if main == "" {
		main = pkg.Main
	}
	if main == "" {
		main = "dist"
	}
	if !filepath.IsAbs(main) {
		main = filepath.Join(cwd, main)
	}
	if !lastExtension.MatchString(main) || isDir(main) {
		main = filepath.Join(main, core.RemoveScope(pkg.Name)+".js")
	}
	return main
}

// Deriver computes per-(entry, format) destination paths around one
// canonical main path.
type Deriver struct {
	pkg             *core.PackageManifest
	main            string
	multipleEntries bool
}

// New returns a Deriver for the run. main must be absolute (see Main).
func New(pkg *core.PackageManifest, main string, multipleEntries bool) *Deriver {
	return &Deriver{pkg: pkg, main: main, multipleEntries: multipleEntries}
}

// Derive returns the absolute destination for one (entry, format) pair.
// In multi-entry runs an index-like entry keeps the shared main basename
// while named entries substitute their own.
func (d *Deriver) Derive(entry string, format core.Format) string {
	stem := d.main
	if d.multipleEntries {
		name := entry
		if indexLike.MatchString(filepath.Base(entry)) {
			name = d.main
		}
		stem = filepath.Join(filepath.Dir(stem), filepath.Base(name))
	}
	stem = extensionChain.ReplaceAllString(stem, "")

	return replaceName(d.fieldFor(format), stem)
}

// fieldFor picks the manifest field value, or the default filename whose
// extension chain defines the format's suffix.
func (d *Deriver) fieldFor(format core.Format) string {
	switch format {
	case core.FormatES:
		if d.pkg.Module != "" && !strings.Contains(d.pkg.Module, "src/") {
			return d.pkg.Module
		}
		if d.pkg.JSNextMain != "" {
			return d.pkg.JSNextMain
		}
		return "x.m.js"
	case core.FormatModern:
		return "x.modern.js"
	case core.FormatUMD:
		if d.pkg.UMDMain != "" {
			return d.pkg.UMDMain
		}
		return "x.umd.js"
	default:
		if d.pkg.CJSMain != "" {
			return d.pkg.CJSMain
		}
		return "x.js"
	}
}

// replaceName keeps stem's directory and base name, taking only the
// extension chain (everything from the basename's first dot) from
// filename.
func replaceName(filename, stem string) string {
	suffix := leadingName.ReplaceAllString(filepath.Base(filename), "")
	return stem + suffix
}

// ValidateUnique surfaces destination collisions across the full run.
func ValidateUnique(paths []string) error {
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		clean := filepath.Clean(p)
		if seen[clean] {
			return fmt.Errorf("%w: %s", core.ErrDuplicateOutput, clean)
		}
		seen[clean] = true
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
