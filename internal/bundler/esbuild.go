package bundler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

// ESBuild drives the embedded esbuild engine.
type ESBuild struct {
	cwd string
	log *slog.Logger
}

// New returns an adapter rooted at the project directory.
func New(cwd string, log *slog.Logger) *ESBuild {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &ESBuild{cwd: cwd, log: log}
}

// Build runs one configuration to completion and writes its outputs.
func (b *ESBuild) Build(ctx context.Context, cfg *core.BuildConfig, cache *RunCache) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts, err := b.options(cfg, cache)
	if err != nil {
		return nil, err
	}
	b.log.Debug("building", "entry", cfg.Input.Entry, "format", cfg.Output.Format, "out", cfg.Output.File)
	res := api.Build(opts)
	if cache != nil {
		cache.absorbMangle(res.MangleCache)
	}
	return b.finish(cfg, res)
}

// Start opens an incremental job for watch mode. Jobs own their engine
// state and share nothing with sibling jobs.
func (b *ESBuild) Start(cfg *core.BuildConfig) (Job, error) {
	opts, err := b.options(cfg, nil)
	if err != nil {
		return nil, err
	}
	engineCtx, ctxErr := api.Context(opts)
	if ctxErr != nil {
		return nil, fmt.Errorf("starting incremental build: %s", formatMessages(ctxErr.Errors))
	}
	return &job{bundler: b, cfg: cfg, ctx: engineCtx}, nil
}

type job struct {
	bundler *ESBuild
	cfg     *core.BuildConfig
	ctx     api.BuildContext
}

func (j *job) Rebuild() (*Result, error) {
	return j.bundler.finish(j.cfg, j.ctx.Rebuild())
}

func (j *job) Close() error {
	j.ctx.Dispose()
	return nil
}

// options lowers a BuildConfig onto engine options. The pipeline decides
// stage inclusion; typed config fields carry the stage parameters.
func (b *ESBuild) options(cfg *core.BuildConfig, cache *RunCache) (api.BuildOptions, error) {
	in, out := &cfg.Input, &cfg.Output

	opts := api.BuildOptions{
		Bundle:        true,
		Write:         false, // outputs are captured and written by finish
		Outfile:       out.File,
		AbsWorkingDir: b.cwd,
		LogLevel:      api.LogLevelSilent,
		TreeShaking:   api.TreeShakingTrue,
		Define:        in.Defines,
		JSX:           api.JSXTransform,
	}

	if out.Sourcemap {
		opts.Sourcemap = api.SourceMapLinked
	}

	if pragma, frag := jsxNames(in.Plugins); pragma != "" {
		opts.JSXFactory = pragma
		opts.JSXFragment = frag
	}

	switch out.Platform {
	case core.PlatformNode:
		opts.Platform = api.PlatformNode
		opts.MainFields = []string{"module", "main"}
	default:
		opts.Platform = api.PlatformBrowser
		opts.MainFields = []string{"browser", "module", "main"}
	}

	switch out.Format {
	case core.FormatCJS:
		opts.Format = api.FormatCommonJS
	case core.FormatUMD:
		opts.Format = api.FormatIIFE
		opts.GlobalName = out.Name
	default:
		opts.Format = api.FormatESModule
	}

	target, engines, err := parseTarget(out.Target)
	if err != nil {
		return api.BuildOptions{}, err
	}
	opts.Target = target
	opts.Engines = engines

	// Async and generator lowering stay off for targets with native
	// support unless the lowering stage demands them.
	if in.HasStage(core.PluginAsyncLowering) {
		opts.Supported = map[string]bool{
			"async-await":     false,
			"async-generator": false,
			"generator":       false,
		}
	}

	if in.HasStage(core.PluginCompress) {
		opts.MinifyWhitespace = true
		opts.MinifyIdentifiers = true
		opts.MinifySyntax = true
		if out.Mangle != nil && out.Mangle.Regex != "" {
			opts.MangleProps = out.Mangle.Regex
			if len(out.Mangle.Reserved) > 0 {
				opts.ReserveProps = reserveRegexp(out.Mangle.Reserved)
			}
			if in.HasStage(core.PluginNameCache) && cache != nil {
				opts.MangleCache = cache.MangleProps()
			}
		}
	}

	if in.Wrap {
		opts.Stdin = &api.StdinOptions{
			Contents:   wrapperSource(in.Entry),
			ResolveDir: filepath.Dir(in.Entry),
			Sourcefile: "wrapper:" + filepath.Base(in.Entry),
			Loader:     api.LoaderJS,
		}
	} else {
		opts.EntryPoints = []string{in.Entry}
	}

	opts.Banner = banner(cfg)
	opts.Footer = footer(out)

	opts.Plugins = []api.Plugin{moduleBoundariesPlugin(in)}
	if cache != nil {
		opts.Plugins = append(opts.Plugins, sourceCachePlugin(cache))
	}

	return opts, nil
}

// banner assembles the prepended output text: a preserved interpreter
// line for wrapped entries, then strict mode when requested on formats
// that do not imply it.
func banner(cfg *core.BuildConfig) map[string]string {
	var lines []string
	if cfg.Input.Wrap && cfg.Input.HasStage(core.PluginShebang) {
		if sh := readShebang(cfg.Input.Entry); sh != "" {
			lines = append(lines, sh)
		}
	}
	if cfg.Output.Strict && !cfg.Output.Format.IsESM() {
		lines = append(lines, `"use strict";`)
	}
	if len(lines) == 0 {
		return nil
	}
	return map[string]string{"js": strings.Join(lines, "\n")}
}

// footer collapses the export object to its default binding for formats
// that hand consumers a single value.
func footer(out *core.OutputConfig) map[string]string {
	if out.Exports != "default" {
		return nil
	}
	switch out.Format {
	case core.FormatCJS:
		return map[string]string{"js": "module.exports = module.exports.default;"}
	case core.FormatUMD:
		return map[string]string{"js": fmt.Sprintf("%s = %s.default;", out.Name, out.Name)}
	}
	return nil
}

// readShebang returns the entry's interpreter line, if any.
func readShebang(path string) string {
	data, err := os.ReadFile(path)
	if err != nil || len(data) < 2 || data[0] != '#' || data[1] != '!' {
		return ""
	}
	line := string(data)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimRight(line, "\r")
}

// jsxNames extracts the JSX factory configuration from the merged
// transform plugins.
func jsxNames(plugins []core.ConfigItem) (pragma, fragment string) {
	for _, p := range plugins {
		if !strings.Contains(p.Path, "transform-react-jsx") {
			continue
		}
		if v, ok := p.Options["pragma"].(string); ok {
			pragma = v
		}
		if v, ok := p.Options["pragmaFrag"].(string); ok {
			fragment = v
		}
		return pragma, fragment
	}
	return "", ""
}

// reserveRegexp builds the reserved-name pattern for the minifier.
func reserveRegexp(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return "^(?:" + strings.Join(quoted, "|") + ")$"
}

// wrapperSource synthesizes the entry that re-exports a mixed export
// shape as one default binding: named exports become properties of the
// default value.
func wrapperSource(entry string) string {
	spec := "./" + filepath.Base(entry)
	return fmt.Sprintf(
		"import def, * as mod from %q;\n"+
			"for (var k in mod) if (k !== \"default\" && !(k in def)) def[k] = mod[k];\n"+
			"export default def;\n",
		spec,
	)
}
