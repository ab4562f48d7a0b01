package transform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

// rcNames are the project configuration files probed in order. Only the
// JSON variants are supported; script-based configs cannot be evaluated
// here.
var rcNames = []string{".babelrc", ".babelrc.json", "babel.config.json"}

// LoadProject reads the project's transform configuration, if any.
// Returns nil without error when no configuration file exists; a file
// that exists but cannot be parsed is an error.
func LoadProject(cwd string) (*Config, error) {
	for _, name := range rcNames {
		data, err := os.ReadFile(filepath.Join(cwd, name))
		if err != nil {
			continue
		}
		cfg, err := parseRC(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		return cfg, nil
	}
	return nil, nil
}

// rcDocument is the raw file shape before item normalization.
type rcDocument struct {
	Presets []any `json:"presets"`
	Plugins []any `json:"plugins"`
}

func parseRC(data []byte) (*Config, error) {
	var doc rcDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	presets, err := parseItems(KindPreset, doc.Presets)
	if err != nil {
		return nil, err
	}
	plugins, err := parseItems(KindPlugin, doc.Plugins)
	if err != nil {
		return nil, err
	}
	return &Config{Presets: presets, Plugins: plugins}, nil
}

// parseItems normalizes the two accepted entry shapes: a bare name, or a
// [name, options] tuple (a trailing instance label is tolerated and
// dropped). Names canonicalize to their merge identity.
func parseItems(kind Kind, raw []any) ([]core.ConfigItem, error) {
	items := make([]core.ConfigItem, 0, len(raw))
	for _, el := range raw {
		switch v := el.(type) {
		case string:
			items = append(items, core.ConfigItem{Path: CanonicalName(kind, v)})
		case []any:
			if len(v) == 0 {
				return nil, fmt.Errorf("empty %s entry", kind)
			}
			name, ok := v[0].(string)
			if !ok {
				return nil, fmt.Errorf("%s entry name must be a string, got %T", kind, v[0])
			}
			item := core.ConfigItem{Path: CanonicalName(kind, name)}
			if len(v) > 1 && v[1] != nil {
				opts, ok := v[1].(map[string]any)
				if !ok {
					return nil, fmt.Errorf("%s %q options must be an object, got %T", kind, name, v[1])
				}
				item.Options = opts
			}
			items = append(items, item)
		default:
			return nil, fmt.Errorf("unsupported %s entry of type %T", kind, el)
		}
	}
	return items, nil
}
