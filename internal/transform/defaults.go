package transform

import "github.com/PatrickMcKenzier/microbundle/pkg/core"

// forcedExcludes are the preset-env transforms this tool always disables:
// async and generator lowering are handled by dedicated plugins instead.
var forcedExcludes = []string{
	"transform-async-to-generator",
	"transform-regenerator",
}

// Params carries the caller-tunable knobs of the default transform set.
type Params struct {
	// Pragma is the JSX factory name. Empty means "h".
	Pragma string
	// PragmaFrag is the JSX fragment factory. Empty means "Fragment".
	PragmaFrag string
	// Defines maps compile-time expressions to replacements. The
	// expression-replacement plugin is only included when non-empty.
	Defines map[string]string
	// Targets is the environment descriptor handed to the
	// environment-targeting preset. Nil omits the option.
	Targets any
}

func (p Params) pragma() string {
	if p.Pragma != "" {
		return p.Pragma
	}
	return "h"
}

func (p Params) pragmaFrag() string {
	if p.PragmaFrag != "" {
		return p.PragmaFrag
	}
	return "Fragment"
}

// DefaultPlugins returns the fixed ordered plugin list applied to every
// build: JSX transform, expression replacement (when defines exist),
// async-to-promise lowering, class properties, and generator lowering
// with its async mode off.
func DefaultPlugins(p Params) []core.ConfigItem {
	plugins := []core.ConfigItem{
		{
			Path: "@babel/plugin-transform-react-jsx",
			Options: map[string]any{
				"pragma":     p.pragma(),
				"pragmaFrag": p.pragmaFrag(),
			},
		},
	}
	if len(p.Defines) > 0 {
		replace := make(map[string]any, len(p.Defines))
		for k, v := range p.Defines {
			replace[k] = v
		}
		plugins = append(plugins, core.ConfigItem{
			Path:    "babel-plugin-transform-replace-expressions",
			Options: map[string]any{"replace": replace},
		})
	}
	plugins = append(plugins,
		core.ConfigItem{
			Path: "babel-plugin-transform-async-to-promises",
			Options: map[string]any{
				"inlineHelpers":   true,
				"externalHelpers": true,
			},
		},
		core.ConfigItem{
			Path:    "@babel/plugin-proposal-class-properties",
			Options: map[string]any{"loose": true},
		},
		core.ConfigItem{
			Path:    "@babel/plugin-transform-regenerator",
			Options: map[string]any{"async": false},
		},
	)
	return plugins
}

// EnvPreset synthesizes the sole environment-targeting preset used when
// the project brings no transform configuration of its own.
func EnvPreset(p Params) core.ConfigItem {
	opts := map[string]any{
		"modules": false,
		"loose":   true,
		"exclude": append([]string(nil), forcedExcludes...),
	}
	if p.Targets != nil {
		opts["targets"] = p.Targets
	}
	return core.ConfigItem{Path: PresetEnv, Options: opts}
}
