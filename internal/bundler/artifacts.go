package bundler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

// finish classifies and writes the engine's in-memory outputs. The
// extracted stylesheet only lands on disk for the metadata-writing pair;
// other pairs transform stylesheets without emitting them.
func (b *ESBuild) finish(cfg *core.BuildConfig, res api.BuildResult) (*Result, error) {
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("bundling %s: %s", cfg.Input.Entry, formatMessages(res.Errors))
	}

	result := &Result{
		Warnings: api.FormatMessages(res.Warnings, api.FormatMessagesOptions{Kind: api.WarningMessage}),
	}

	for _, f := range res.OutputFiles {
		artifact := core.Artifact{File: f.Path, Code: f.Contents}
		if isStylesheet(f.Path) {
			if !cfg.Input.HasStage(core.PluginCSSExtract) {
				continue
			}
			result.Extras = append(result.Extras, artifact)
		} else if filepath.Clean(f.Path) == filepath.Clean(cfg.Output.File) {
			result.Bundle = artifact
		} else {
			result.Extras = append(result.Extras, artifact)
		}
		if err := writeFile(f.Path, f.Contents); err != nil {
			return nil, err
		}
	}

	if result.Bundle.File == "" {
		return nil, fmt.Errorf("bundling %s: no output produced at %s", cfg.Input.Entry, cfg.Output.File)
	}
	return result, nil
}

func isStylesheet(path string) bool {
	return strings.HasSuffix(path, ".css") || strings.HasSuffix(path, ".css.map")
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func formatMessages(msgs []api.Message) string {
	lines := api.FormatMessages(msgs, api.FormatMessagesOptions{Kind: api.ErrorMessage})
	return strings.TrimSpace(strings.Join(lines, ""))
}
