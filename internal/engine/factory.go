package engine

// factory.go - per-(entry, format) build configuration assembly

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/PatrickMcKenzier/microbundle/internal/exports"
	"github.com/PatrickMcKenzier/microbundle/internal/outpath"
	"github.com/PatrickMcKenzier/microbundle/internal/transform"
	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

// builtinExternals are runtime modules that never bundle.
var builtinExternals = []string{"dns", "fs", "path", "url"}

// factory assembles one BuildConfig per (entry, format) pair.
type factory struct {
	opts    *core.BuildOptions
	pkg     *core.PackageManifest
	entries []string
	formats []core.Format
	project *transform.Config
	deriver *outpath.Deriver
	main    string
	name    string
}

func newFactory(opts *core.BuildOptions, pkg *core.PackageManifest, entries []string, formats []core.Format, project *transform.Config) *factory {
	main := outpath.Main(opts.Cwd, opts.Output, pkg)
	return &factory{
		opts:    opts,
		pkg:     pkg,
		entries: entries,
		formats: formats,
		project: project,
		deriver: outpath.New(pkg, main, len(entries) > 1),
		main:    main,
		name:    moduleName(opts, pkg),
	}
}

// configs produces the full run schedule: entries in resolved order,
// formats in scheduled order, the first pair of the run flagged to
// write metadata. Destination collisions fail the run here.
func (f *factory) configs() ([]*core.BuildConfig, error) {
	var configs []*core.BuildConfig
	for i, ent := range f.entries {
		for j, format := range f.formats {
			configs = append(configs, f.config(ent, format, i == 0 && j == 0))
		}
	}

	paths := make([]string, len(configs))
	for i, c := range configs {
		paths[i] = c.Output.File
	}
	if err := outpath.ValidateUnique(paths); err != nil {
		return nil, err
	}
	return configs, nil
}

// config composes the complete configuration of one (entry, format)
// pair.
func (f *factory) config(ent string, format core.Format, writeMeta bool) *core.BuildConfig {
	externals, resolveDeps := f.externals(ent)

	// Formats with native multiple-export support never need the
	// wrapper entry.
	var shape exports.Shape
	if !format.IsESM() {
		shape = exports.Detect(ent)
	}
	exportsMode := ""
	if shape.HasDefault {
		exportsMode = "default"
	}

	tc := transform.Merge(f.project, transform.Params{
		Pragma:     f.opts.JSXPragma,
		PragmaFrag: f.opts.JSXFragment,
		Defines:    f.opts.Defines,
		Targets:    targetsOption(f.opts.Target),
	})

	return &core.BuildConfig{
		Input: core.InputConfig{
			Entry:     ent,
			Wrap:      shape.Mixed(),
			Externals: externals,
			Aliases:   f.aliases(),
			Presets:   tc.Presets,
			Plugins:   tc.Plugins,
			Defines:   f.opts.Defines,
			Pipeline:  f.pipeline(format, writeMeta, resolveDeps),
		},
		Output: core.OutputConfig{
			File:      f.deriver.Derive(ent, format),
			Format:    format,
			Name:      f.name,
			Exports:   exportsMode,
			Sourcemap: f.opts.Sourcemap,
			Strict:    f.opts.Strict,
			Globals:   f.globals(externals),
			WriteMeta: writeMeta,
			Target:    f.target(format),
			Platform:  f.opts.Platform,
			Mangle:    f.pkg.Mangle,
		},
	}
}

// externals computes the never-bundled module set for one entry:
// runtime builtins, peer dependencies and every other entry of the run,
// so entries reference each other's bundles instead of re-bundling.
// The external directive decides whether manifest dependencies join the
// set or stay resolvable.
func (f *factory) externals(ent string) (externals []string, resolveDeps bool) {
	externals = append(externals, builtinExternals...)
	for _, other := range f.entries {
		if other != ent {
			externals = append(externals, other)
		}
	}
	if len(f.entries) > 1 {
		externals = append(externals, ".")
	}
	externals = append(externals, sortedKeys(f.pkg.PeerDependencies)...)

	switch f.opts.External {
	case "none":
		return externals, true
	case "", "all":
		return append(externals, sortedKeys(f.pkg.Dependencies)...), false
	default:
		return append(externals, splitList(f.opts.External)...), true
	}
}

// aliases is the import rewrite map: the caller's own aliases plus, for
// multi-entry runs, the bare "." specifier resolved to the sibling main
// bundle so a root entry imports the built artifact instead of its
// source.
func (f *factory) aliases() map[string]string {
	aliases := make(map[string]string, len(f.opts.Aliases)+1)
	for k, v := range f.opts.Aliases {
		aliases[k] = v
	}
	if len(f.entries) > 1 {
		aliases["."] = "./" + filepath.Base(f.main)
	}
	return aliases
}

// globals maps identifier-named externals to same-named global
// bindings, with the caller's explicit mapping layered on top.
func (f *factory) globals(externals []string) map[string]string {
	globals := map[string]string{}
	for _, name := range externals {
		if core.IsBareIdentifier(name) {
			globals[name] = name
		}
	}
	for name, global := range f.opts.Globals {
		globals[name] = global
	}
	return globals
}

// pipeline assembles the ordered stage list handed to the engine
// adapter.
func (f *factory) pipeline(format core.Format, writeMeta, resolveDeps bool) []core.PluginSpec {
	stages := []core.PluginSpec{{Name: core.PluginAlias}}
	if writeMeta {
		spec := core.PluginSpec{Name: core.PluginCSSExtract}
		if f.opts.CSSModules != nil {
			spec.Options = map[string]any{"modules": *f.opts.CSSModules}
		}
		stages = append(stages, spec)
	}
	stages = append(stages, core.PluginSpec{Name: core.PluginFlowStrip})
	if format != core.FormatModern {
		stages = append(stages, core.PluginSpec{Name: core.PluginAsyncLowering})
	}
	stages = append(stages, core.PluginSpec{Name: core.PluginTransform})
	if resolveDeps {
		stages = append(stages, core.PluginSpec{Name: core.PluginResolve})
	}
	if f.opts.Compress {
		stages = append(stages, core.PluginSpec{Name: core.PluginCompress})
		if f.pkg.Mangle != nil {
			stages = append(stages, core.PluginSpec{Name: core.PluginNameCache})
		}
	}
	return append(stages, core.PluginSpec{Name: core.PluginShebang})
}

// target picks the down-leveling level: the caller's descriptor when
// given, else conservative syntax for legacy formats and current syntax
// for the modern format.
func (f *factory) target(format core.Format) string {
	if f.opts.Target != "" {
		return f.opts.Target
	}
	if format == core.FormatModern {
		return "es2017"
	}
	return "es2015"
}

// moduleName picks the umd global name: explicit flag, manifest
// amdName, else a safe identifier derived from the package name.
func moduleName(opts *core.BuildOptions, pkg *core.PackageManifest) string {
	if opts.Name != "" {
		return opts.Name
	}
	if pkg.AmdName != "" {
		return pkg.AmdName
	}
	return core.SafeModuleName(pkg.Name)
}

func targetsOption(target string) any {
	if target == "" {
		return nil
	}
	return target
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func splitList(csv string) []string {
	var names []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}
