package core

// PackageManifest is the subset of a package.json document that drives
// configuration synthesis. Field names follow the manifest keys, including
// the legacy colon-separated ones.
type PackageManifest struct {
	// Name is the package name, possibly scoped ("@scope/name").
	Name string `json:"name" mapstructure:"name"`
	// AmdName overrides the derived module name for umd output.
	AmdName string `json:"amdName" mapstructure:"amdName"`
	// Source lists the authored entry modules. A bare string in the
	// manifest decodes as a one-element list.
	Source []string `json:"source" mapstructure:"source"`
	// Main is the CommonJS entry consumers resolve by default.
	Main string `json:"main" mapstructure:"main"`
	// Module is the ESM entry field used by bundlers.
	Module string `json:"module" mapstructure:"module"`
	// JSNextMain is the legacy predecessor of Module.
	JSNextMain string `json:"jsnext:main" mapstructure:"jsnext:main"`
	// CJSMain overrides the cjs destination independently of Main.
	CJSMain string `json:"cjs:main" mapstructure:"cjs:main"`
	// UMDMain is the umd destination field.
	UMDMain string `json:"umd:main" mapstructure:"umd:main"`
	// Dependencies are runtime dependencies, name to version range.
	Dependencies map[string]string `json:"dependencies" mapstructure:"dependencies"`
	// PeerDependencies are host-provided dependencies, never bundled.
	PeerDependencies map[string]string `json:"peerDependencies" mapstructure:"peerDependencies"`
	// Mangle constrains property minification, when present.
	Mangle *MangleConfig `json:"mangle" mapstructure:"mangle"`
}

// MangleConfig constrains which member names the minifier may rewrite.
type MangleConfig struct {
	// Regex selects the properties eligible for mangling.
	Regex string `json:"regex" mapstructure:"regex"`
	// Reserved lists property names the minifier must keep verbatim.
	Reserved []string `json:"reserved" mapstructure:"reserved"`
}
