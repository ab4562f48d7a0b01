// Package commands implements the microbundle subcommands.
package commands

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/PatrickMcKenzier/microbundle/internal/cli/config"
	"github.com/PatrickMcKenzier/microbundle/internal/cli/output"
	"github.com/PatrickMcKenzier/microbundle/internal/engine"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the per-invocation dependencies from the
// loaded configuration and the command's streams.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.Report)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration. The root command loads it
// before any subcommand runs; the fallback load covers commands invoked
// outside that lifecycle, as tests do.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	cfg, err := config.LoadConfig("", nil)
	if err != nil {
		return &config.Config{
			Cwd:       config.DefaultCwd,
			Platform:  config.DefaultPlatform,
			Sourcemap: true,
			Report:    config.DefaultReport,
		}
	}
	return cfg
}

// summarize flattens an engine report for rendering, with artifact paths
// shown relative to the project directory when they sit inside it.
func summarize(rep *engine.Report, cwd string) *output.Summary {
	s := &output.Summary{RunID: rep.RunID, Warnings: rep.Warnings}
	for _, row := range rep.Rows {
		file := row.File
		if rel, err := filepath.Rel(cwd, file); err == nil && !strings.HasPrefix(rel, "..") {
			file = rel
		}
		s.Artifacts = append(s.Artifacts, output.Artifact{
			File:   file,
			Format: row.Format.String(),
			Size:   row.Size,
			Gzip:   row.Gzip,
		})
	}
	return s
}
