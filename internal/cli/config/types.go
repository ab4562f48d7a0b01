// Package config provides configuration management for the microbundle CLI.
//
// Values are layered from four sources, lowest to highest precedence:
// built-in defaults, a microbundle.yaml project file, MICROBUNDLE_*
// environment variables and explicitly set command-line flags. The merged
// result converts into a core.BuildOptions for the engine.
package config

// Config holds all CLI configuration options.
type Config struct {
	Cwd         string   `koanf:"cwd"`
	Entries     []string `koanf:"entries"`
	Format      string   `koanf:"format"`
	Output      string   `koanf:"output"`
	Name        string   `koanf:"name"`
	External    string   `koanf:"external"`
	Globals     string   `koanf:"globals"`
	Alias       string   `koanf:"alias"`
	Define      string   `koanf:"define"`
	Target      string   `koanf:"target"`
	Platform    string   `koanf:"platform"`
	JSX         string   `koanf:"jsx"`
	JSXFragment string   `koanf:"jsx_fragment"`
	Compress    *bool    `koanf:"compress"`
	Sourcemap   bool     `koanf:"sourcemap"`
	Strict      bool     `koanf:"strict"`
	CSSModules  *bool    `koanf:"css_modules"`
	Verbose     bool     `koanf:"verbose"`
	Report      string   `koanf:"report"`
}

// Default configuration values.
const (
	DefaultCwd      = "."
	DefaultPlatform = "browser"
	DefaultReport   = "auto" // Auto-detect: TTY=styled text, non-TTY=plain
)
