package engine

// run.go - sequential build execution

import (
	"context"

	"github.com/google/uuid"

	"github.com/PatrickMcKenzier/microbundle/internal/bundler"
	"github.com/PatrickMcKenzier/microbundle/internal/namecache"
	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

// StepStatus is the lifecycle state of one scheduled build.
type StepStatus string

const (
	StepIdle      StepStatus = "idle"
	StepScheduled StepStatus = "scheduled"
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
)

// Step is one (entry, format) build in the run schedule. Transitions
// are one-way: idle → scheduled → running → completed or failed.
type Step struct {
	Config *core.BuildConfig
	Status StepStatus
}

// generateID creates a new run identifier.
func generateID() string {
	return uuid.New().String()
}

// Run executes every scheduled step strictly in order, handing one
// shared cache from step to step so later formats reuse the loaded
// sources and minified names of earlier ones. The first failure aborts
// the run with no partial report.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	runID := generateID()
	e.logger.Info("starting run", "run_id", runID, "steps", len(e.steps))

	for _, step := range e.steps {
		step.Status = StepScheduled
	}

	cache := bundler.NewRunCache(e.loadNameCache())
	report := newReport(runID)

	for _, step := range e.steps {
		step.Status = StepRunning
		out := &step.Config.Output
		e.logger.Debug("building", "out", out.File, "format", out.Format)

		res, err := e.bundler.Build(ctx, step.Config, cache)
		if err != nil {
			step.Status = StepFailed
			e.logger.Error("run failed", "run_id", runID, "out", out.File, "error", err)
			return nil, err
		}
		step.Status = StepCompleted
		report.add(out.Format, res)

		if out.WriteMeta {
			e.persistNameCache(step, cache)
		}
	}

	e.logger.Info("run completed", "run_id", runID, "artifacts", len(report.Rows))
	return report, nil
}

// loadNameCache reads the persisted minifier names when any step will
// mangle. Absent or unreadable caches degrade to empty.
func (e *Engine) loadNameCache() map[string]any {
	for _, step := range e.steps {
		if step.Config.Input.HasStage(core.PluginNameCache) {
			return namecache.Load(e.opts.Cwd)
		}
	}
	return nil
}

// persistNameCache writes the updated names after the metadata pass.
// Write failures lose name stability for the next run, nothing more.
func (e *Engine) persistNameCache(step *Step, cache *bundler.RunCache) {
	if !step.Config.Input.HasStage(core.PluginNameCache) {
		return
	}
	if err := namecache.Save(e.opts.Cwd, cache.MangleProps()); err != nil {
		e.logger.Warn("failed to write name cache", "error", err)
	}
}
