// Package transform assembles the syntax-transform configuration of a
// build: a fixed default plugin list merged with the project's own
// configuration by plugin identity, plus an environment-targeting preset
// whose critical options stay under this tool's control.
package transform

import "github.com/PatrickMcKenzier/microbundle/pkg/core"

// Config is a transform configuration: ordered preset and plugin lists.
type Config struct {
	Presets []core.ConfigItem
	Plugins []core.ConfigItem
}

// Merge computes the final transform configuration for one build.
// project is the project's own configuration, nil when it has none: then
// the synthesized environment preset stands alone next to the defaults.
// With a project configuration, its plugins deep-merge over the defaults
// by identity and its environment preset gets the override treatment.
func Merge(project *Config, p Params) Config {
	if project == nil {
		return Config{
			Presets: []core.ConfigItem{EnvPreset(p)},
			Plugins: DefaultPlugins(p),
		}
	}
	return Config{
		Presets: applyEnvOverride(project.Presets, p),
		Plugins: MergeItems(DefaultPlugins(p), project.Plugins),
	}
}

// applyEnvOverride rewrites the environment-targeting preset: loose mode
// and the caller's targets form the base, the project's own options
// deep-merge on top, and two hard overrides apply last: modules stay
// disabled and the forced excludes join any user-declared ones. A
// project that declares no presets gets the synthesized one; a project
// that declares presets without it has opted out of environment
// targeting, and its list passes through unchanged.
func applyEnvOverride(presets []core.ConfigItem, p Params) []core.ConfigItem {
	if len(presets) == 0 {
		return []core.ConfigItem{EnvPreset(p)}
	}

	idx := -1
	for i, preset := range presets {
		if preset.Path == PresetEnv {
			idx = i
			break
		}
	}
	if idx == -1 {
		return append([]core.ConfigItem(nil), presets...)
	}

	base := map[string]any{"loose": true}
	if p.Targets != nil {
		base["targets"] = p.Targets
	}
	opts := mergeOptions(base, presets[idx].Options)
	opts["modules"] = false
	opts["exclude"] = unionStrings(forcedExcludes, opts["exclude"])

	out := append([]core.ConfigItem(nil), presets...)
	out[idx] = core.ConfigItem{Path: PresetEnv, Options: opts}
	return out
}
