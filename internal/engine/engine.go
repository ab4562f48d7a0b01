// Package engine orchestrates full builds. It resolves the project
// inputs, synthesizes one build configuration per (entry, format) pair
// and executes the schedule sequentially or as concurrent watchers.
package engine

import (
	"log/slog"

	"github.com/PatrickMcKenzier/microbundle/internal/bundler"
	"github.com/PatrickMcKenzier/microbundle/internal/entry"
	"github.com/PatrickMcKenzier/microbundle/internal/manifest"
	"github.com/PatrickMcKenzier/microbundle/internal/transform"
	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

// Engine drives the scheduled builds of one project.
type Engine struct {
	opts    *core.BuildOptions
	pkg     *core.PackageManifest
	bundler bundler.Bundler
	logger  *slog.Logger

	steps    []*Step
	warnings []string
}

// Config holds engine construction inputs.
type Config struct {
	// Options is the resolved run configuration.
	Options *core.BuildOptions
	// Bundler overrides the engine adapter. Nil selects the embedded one.
	Bundler bundler.Bundler
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// New resolves the project inputs and prepares one step per
// (entry, format) pair. A missing manifest degrades to warnings; a run
// with no resolvable entry fails here, before any build starts.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts := cfg.Options

	pkg, warnings := manifest.Resolve(opts.Cwd)

	entries, err := entry.Resolve(opts.Cwd, opts.Entries, pkg)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved entries", "entries", entries)

	project, err := transform.LoadProject(opts.Cwd)
	if err != nil {
		return nil, err
	}

	formats := opts.Formats
	if len(formats) == 0 {
		formats = core.DefaultFormats
	}
	formats = core.ScheduleFormats(formats)

	configs, err := newFactory(opts, pkg, entries, formats, project).configs()
	if err != nil {
		return nil, err
	}

	steps := make([]*Step, len(configs))
	for i, c := range configs {
		steps[i] = &Step{Config: c, Status: StepIdle}
	}
	logger.Debug("prepared schedule", "steps", len(steps), "formats", len(formats))

	b := cfg.Bundler
	if b == nil {
		b = bundler.New(opts.Cwd, logger)
	}

	return &Engine{
		opts:     opts,
		pkg:      pkg,
		bundler:  b,
		logger:   logger,
		steps:    steps,
		warnings: warnings,
	}, nil
}

// Warnings returns the recoverable configuration gaps found during
// resolution, for display before the run proceeds.
func (e *Engine) Warnings() []string {
	return e.warnings
}

// Steps returns the run schedule in execution order.
func (e *Engine) Steps() []*Step {
	return e.steps
}
