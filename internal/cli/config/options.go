package config

import (
	"fmt"
	"strings"

	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

// ToBuildOptions converts the layered configuration into the resolved
// run configuration the engine consumes. Positional entries override the
// config file's entries list. Compression defaults to the inverse of
// watch when not explicitly configured.
func (c *Config) ToBuildOptions(entries []string, watch bool) (*core.BuildOptions, error) {
	var formats []core.Format
	if c.Format != "" {
		var err error
		formats, err = core.ParseFormats([]string{c.Format})
		if err != nil {
			return nil, err
		}
	}

	platform, err := parsePlatform(c.Platform)
	if err != nil {
		return nil, err
	}

	globals, err := parseMappings(c.Globals)
	if err != nil {
		return nil, fmt.Errorf("invalid globals: %w", err)
	}
	aliases, err := parseMappings(c.Alias)
	if err != nil {
		return nil, fmt.Errorf("invalid alias: %w", err)
	}
	defines, err := parseMappings(c.Define)
	if err != nil {
		return nil, fmt.Errorf("invalid define: %w", err)
	}

	if len(entries) == 0 {
		entries = c.Entries
	}

	compress := !watch
	if c.Compress != nil {
		compress = *c.Compress
	}

	return &core.BuildOptions{
		Cwd:         c.Cwd,
		Entries:     entries,
		Formats:     formats,
		Output:      c.Output,
		Name:        c.Name,
		External:    c.External,
		Globals:     globals,
		Aliases:     aliases,
		Defines:     defines,
		Platform:    platform,
		Target:      c.Target,
		JSXPragma:   c.JSX,
		JSXFragment: c.JSXFragment,
		Compress:    compress,
		Sourcemap:   c.Sourcemap,
		Strict:      c.Strict,
		CSSModules:  c.CSSModules,
		Watch:       watch,
		Verbose:     c.Verbose,
	}, nil
}

func parsePlatform(name string) (core.Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "browser", "web":
		return core.PlatformBrowser, nil
	case "node":
		return core.PlatformNode, nil
	default:
		return "", fmt.Errorf("unknown platform %q (expected browser or node)", name)
	}
}

// parseMappings parses a comma-separated list of key=value pairs, the
// shape shared by the globals, alias and define options.
func parseMappings(list string) (map[string]string, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	mappings := make(map[string]string)
	for _, pair := range strings.Split(list, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed mapping %q (expected key=value)", pair)
		}
		mappings[key] = value
	}
	return mappings, nil
}
