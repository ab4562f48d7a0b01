package core

// Platform selects the runtime the bundles target. It steers module
// resolution and the default set of externalized imports.
type Platform string

const (
	// PlatformBrowser resolves browser-oriented package fields.
	PlatformBrowser Platform = "browser"
	// PlatformNode resolves node-oriented fields and keeps builtins external.
	PlatformNode Platform = "node"
)

// BuildOptions is the fully resolved configuration of one invocation,
// after CLI flags, environment and manifest defaults have been layered.
type BuildOptions struct {
	// Cwd is the absolute project directory all paths resolve against.
	Cwd string
	// Entries are the requested entry files or glob patterns. Empty means
	// infer from the manifest and conventional locations.
	Entries []string
	// Formats is the normalized format list, unscheduled.
	Formats []Format
	// Output is the explicit destination path or directory, if any.
	Output string
	// Name overrides the derived module name for umd globals.
	Name string
	// External is the external-module directive: empty or "all" keeps
	// dependencies external, "none" bundles everything, any other value is
	// a comma-separated list of additional external names.
	External string
	// Globals maps external module names to global variable names,
	// supplementing the derived mapping.
	Globals map[string]string
	// Aliases maps import specifiers to replacement targets.
	Aliases map[string]string
	// Defines maps compile-time expressions to replacement expressions.
	Defines map[string]string
	// Platform selects node or browser resolution.
	Platform Platform
	// Target is the environment descriptor handed to the transform layer,
	// for example "es2017" or "node12".
	Target string
	// JSXPragma is the JSX factory name, defaulting to "h".
	JSXPragma string
	// JSXFragment is the JSX fragment factory, defaulting to "Fragment".
	JSXFragment string
	// Compress enables minification. The CLI layer defaults it to the
	// inverse of Watch.
	Compress bool
	// Sourcemap emits source maps next to each bundle. On by default.
	Sourcemap bool
	// Strict emits strict-mode output.
	Strict bool
	// CSSModules forces CSS-module treatment on or off. Nil keeps the
	// filename convention (*.module.css).
	CSSModules *bool
	// Watch rebuilds on file change instead of exiting after one pass.
	Watch bool
	// Verbose enables debug logging.
	Verbose bool
}
