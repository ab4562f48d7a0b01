package bundler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

// moduleBoundariesPlugin enforces the input config's module boundaries:
// aliases rewrite specifiers before resolution, externals stay
// references, and bare specifiers only resolve into installed packages
// when the resolve stage is present.
func moduleBoundariesPlugin(in *core.InputConfig) api.Plugin {
	names := make(map[string]bool)
	absolute := make(map[string]bool)
	for _, ext := range in.Externals {
		if filepath.IsAbs(ext) {
			absolute[filepath.Clean(ext)] = true
		} else {
			names[ext] = true
		}
	}
	resolveDeps := in.HasStage(core.PluginResolve)

	return api.Plugin{
		Name: "module-boundaries",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: `.*`}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				if args.Kind == api.ResolveEntryPoint {
					return api.OnResolveResult{}, nil
				}
				path := args.Path

				if repl, ok := in.Aliases[path]; ok {
					// An aliased external keeps the rewritten specifier
					// verbatim; anything else re-enters resolution.
					if names[path] {
						return api.OnResolveResult{Path: repl, External: true}, nil
					}
					res := build.Resolve(repl, api.ResolveOptions{
						ResolveDir: args.ResolveDir,
						Importer:   args.Importer,
						Kind:       args.Kind,
					})
					if len(res.Errors) > 0 {
						return api.OnResolveResult{}, fmt.Errorf("resolving alias %q: %s", path, res.Errors[0].Text)
					}
					return api.OnResolveResult{Path: res.Path, External: res.External}, nil
				}

				if isRelative(path) {
					abs := filepath.Clean(filepath.Join(args.ResolveDir, path))
					if absolute[abs] {
						return api.OnResolveResult{Path: path, External: true}, nil
					}
					return api.OnResolveResult{}, nil
				}
				if filepath.IsAbs(path) {
					if absolute[filepath.Clean(path)] {
						return api.OnResolveResult{Path: path, External: true}, nil
					}
					return api.OnResolveResult{}, nil
				}

				if externalName(path, names) {
					return api.OnResolveResult{Path: path, External: true}, nil
				}
				if !resolveDeps {
					return api.OnResolveResult{Path: path, External: true}, nil
				}
				return api.OnResolveResult{}, nil
			})
		},
	}
}

// sourceCachePlugin serves module contents from the run cache, sparing
// later formats of the same entry a second disk pass. Stale entries are
// detected by mtime and size.
func sourceCachePlugin(cache *RunCache) api.Plugin {
	return api.Plugin{
		Name: "source-cache",
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: `\.(jsx?|tsx?|mjs|cjs)$`}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				info, err := os.Stat(args.Path)
				if err != nil {
					return api.OnLoadResult{}, nil
				}
				loader := loaderFor(args.Path)
				resolveDir := filepath.Dir(args.Path)

				if data, ok := cache.lookup(args.Path, info.ModTime(), info.Size()); ok {
					contents := string(data)
					return api.OnLoadResult{Contents: &contents, Loader: loader, ResolveDir: resolveDir}, nil
				}

				data, err := os.ReadFile(args.Path)
				if err != nil {
					return api.OnLoadResult{}, nil
				}
				cache.store(args.Path, info.ModTime(), info.Size(), data)
				contents := string(data)
				return api.OnLoadResult{Contents: &contents, Loader: loader, ResolveDir: resolveDir}, nil
			})
		},
	}
}

// externalName matches a bare specifier against external names,
// including subpath imports of an external package.
func externalName(path string, names map[string]bool) bool {
	if names[path] {
		return true
	}
	for name := range names {
		if strings.HasPrefix(path, name+"/") {
			return true
		}
	}
	return false
}

func isRelative(path string) bool {
	return path == "." || path == ".." ||
		strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../")
}

func loaderFor(path string) api.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts":
		return api.LoaderTS
	case ".tsx":
		return api.LoaderTSX
	case ".jsx":
		return api.LoaderJSX
	default:
		return api.LoaderJS
	}
}
