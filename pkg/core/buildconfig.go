package core

// PluginName identifies one stage of the pipeline handed to the external
// bundling engine. Stage order and inclusion are decided by the factory;
// the engine adapter interprets the names.
type PluginName string

const (
	// PluginAlias rewrites import specifiers before resolution.
	PluginAlias PluginName = "alias"
	// PluginCSSExtract emits transitively imported stylesheets to a file.
	PluginCSSExtract PluginName = "css-extract"
	// PluginFlowStrip removes flow type annotations.
	PluginFlowStrip PluginName = "flow-strip"
	// PluginAsyncLowering rewrites async/await to promise chains.
	PluginAsyncLowering PluginName = "async-lowering"
	// PluginTransform runs the merged syntax-downleveling configuration.
	PluginTransform PluginName = "transform"
	// PluginResolve resolves bare specifiers into installed dependencies
	// and applies interop for non-ESM modules.
	PluginResolve PluginName = "resolve"
	// PluginCompress minifies the generated bundle.
	PluginCompress PluginName = "compress"
	// PluginNameCache applies and persists the minifier name cache.
	PluginNameCache PluginName = "name-cache"
	// PluginShebang preserves a leading interpreter line on the output.
	PluginShebang PluginName = "shebang"
)

// PluginSpec is one ordered stage of the engine pipeline.
type PluginSpec struct {
	// Name selects the stage behavior.
	Name PluginName
	// Options carries stage parameters not covered by typed config fields.
	Options map[string]any
}

// InputConfig describes the input side of one build.
type InputConfig struct {
	// Entry is the absolute path of the compilation root.
	Entry string
	// Wrap replaces Entry with a synthetic wrapper module that re-exports
	// the entry's default and named exports as a single default binding.
	Wrap bool
	// Externals are module names the output references instead of
	// bundling.
	Externals []string
	// Aliases maps import specifiers to replacement targets. A key that
	// is also listed in Externals stays external after rewriting.
	Aliases map[string]string
	// Presets is the merged transform preset list, in application order.
	Presets []ConfigItem
	// Plugins is the merged transform plugin list, in application order.
	Plugins []ConfigItem
	// Defines maps compile-time expressions to replacement expressions.
	Defines map[string]string
	// Pipeline is the ordered stage list for the engine adapter. Stage
	// presence is meaningful: a missing resolve stage disables dependency
	// resolution, a missing compress stage disables minification.
	Pipeline []PluginSpec
}

// HasStage reports whether the pipeline includes the named stage.
func (in *InputConfig) HasStage(name PluginName) bool {
	for _, p := range in.Pipeline {
		if p.Name == name {
			return true
		}
	}
	return false
}

// OutputConfig describes the output side of one build.
type OutputConfig struct {
	// File is the absolute destination path of the bundle.
	File string
	// Format is the module convention emitted.
	Format Format
	// Name is the module name used for umd global assignment.
	Name string
	// Exports is empty when the engine decides the export mode, or
	// "default" when a wrapper entry collapses the export shape.
	Exports string
	// Sourcemap emits a source map next to File.
	Sourcemap bool
	// Strict emits strict-mode output.
	Strict bool
	// Globals maps external module names to global variable names.
	Globals map[string]string
	// WriteMeta marks the single pair that persists run metadata: the
	// extracted stylesheet and the minifier name cache.
	WriteMeta bool
	// Target is the environment descriptor for syntax down-leveling.
	Target string
	// Platform mirrors the run platform.
	Platform Platform
	// Mangle constrains property minification for this output.
	Mangle *MangleConfig
}

// BuildConfig is the complete configuration of one (entry, format) pair.
// Configs are independent of each other; only the executor's sequential
// cache handle links consecutive builds.
type BuildConfig struct {
	Input  InputConfig
	Output OutputConfig
}

// Artifact is one produced output: its destination path and the final
// generated text, returned by the build operation for size reporting.
type Artifact struct {
	// File is the absolute destination path.
	File string
	// Code is the generated bundle text.
	Code []byte
}
