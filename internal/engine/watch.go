package engine

// watch.go - concurrent watch execution

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/PatrickMcKenzier/microbundle/internal/bundler"
)

const debounceInterval = 100 * time.Millisecond

// watchedExtensions are the source kinds that trigger a rebuild.
var watchedExtensions = map[string]bool{
	".js":   true,
	".jsx":  true,
	".ts":   true,
	".tsx":  true,
	".mjs":  true,
	".cjs":  true,
	".css":  true,
	".json": true,
}

// EventKind classifies watcher notifications.
type EventKind string

const (
	// EventStart marks a build beginning after a change.
	EventStart EventKind = "start"
	// EventEnd carries a completed rebuild's result.
	EventEnd EventKind = "end"
	// EventError reports a failed rebuild.
	EventError EventKind = "error"
	// EventFatal reports a watcher that cannot continue.
	EventFatal EventKind = "fatal"
)

// Event is one watcher notification flowing to the aggregator.
type Event struct {
	Kind   EventKind
	Step   *Step
	Result *bundler.Result
	Err    error
}

// Watch starts one independent watcher per step and blocks until the
// context is cancelled or any watcher reports an error. Watchers share
// no state; every completed rebuild emits its size report through
// onReport. There is no terminal success state.
func (e *Engine) Watch(ctx context.Context, onReport func(*Report)) error {
	runID := generateID()
	e.logger.Info("starting watchers", "run_id", runID, "steps", len(e.steps))

	for _, step := range e.steps {
		step.Status = StepScheduled
	}

	events := make(chan Event)
	eg, egctx := errgroup.WithContext(ctx)

	for _, step := range e.steps {
		eg.Go(func() error {
			return e.watchStep(egctx, step, events)
		})
	}

	eg.Go(func() error {
		return e.aggregate(egctx, runID, events, onReport)
	})

	return eg.Wait()
}

// aggregate is the single listener deciding the run's fate: an error or
// fatal event from any watcher fails the whole run, an end event
// reports the rebuilt sizes.
func (e *Engine) aggregate(ctx context.Context, runID string, events <-chan Event, onReport func(*Report)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			out := &ev.Step.Config.Output
			switch ev.Kind {
			case EventStart:
				e.logger.Debug("building", "out", out.File, "format", out.Format)
			case EventEnd:
				e.logger.Info("rebuilt", "out", out.File)
				if onReport != nil {
					report := newReport(runID)
					report.add(out.Format, ev.Result)
					onReport(report)
				}
			case EventError, EventFatal:
				ev.Step.Status = StepFailed
				e.logger.Error("watch failed", "run_id", runID, "out", out.File, "error", ev.Err)
				return ev.Err
			}
		}
	}
}

// watchStep owns one incremental job: it builds once, then rebuilds on
// debounced source changes until the context ends. Failures surface as
// events; the aggregator decides the run's fate.
func (e *Engine) watchStep(ctx context.Context, step *Step, events chan<- Event) error {
	job, err := e.bundler.Start(step.Config)
	if err != nil {
		send(ctx, events, Event{Kind: EventFatal, Step: step, Err: err})
		return nil
	}
	defer func() { _ = job.Close() }()

	step.Status = StepRunning
	if !e.rebuild(ctx, step, job, events) {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		send(ctx, events, Event{Kind: EventFatal, Step: step, Err: err})
		return nil
	}
	defer func() { _ = watcher.Close() }()

	outDir := filepath.Dir(step.Config.Output.File)
	if err := watchTree(watcher, filepath.Dir(step.Config.Input.Entry), outDir); err != nil {
		send(ctx, events, Event{Kind: EventFatal, Step: step, Err: err})
		return nil
	}

	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !watchedExtensions[filepath.Ext(ev.Name)] || underDir(ev.Name, outDir) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceInterval)
			} else {
				debounce.Reset(debounceInterval)
			}
			fire = debounce.C
		case <-fire:
			debounce, fire = nil, nil
			if !e.rebuild(ctx, step, job, events) {
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("watcher error", "error", err)
		}
	}
}

// rebuild runs the job once and reports the outcome. It returns false
// when the step failed and the run is ending.
func (e *Engine) rebuild(ctx context.Context, step *Step, job bundler.Job, events chan<- Event) bool {
	send(ctx, events, Event{Kind: EventStart, Step: step})
	res, err := job.Rebuild()
	if err != nil {
		send(ctx, events, Event{Kind: EventError, Step: step, Err: err})
		return false
	}
	send(ctx, events, Event{Kind: EventEnd, Step: step, Result: res})
	return true
}

func send(ctx context.Context, events chan<- Event, ev Event) {
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}

// watchTree recursively adds root's directories to the watcher,
// skipping dependency directories, hidden directories and the output
// tree so written bundles do not retrigger their own build.
func watchTree(w *fsnotify.Watcher, root, outDir string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root {
			name := d.Name()
			if name == "node_modules" || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if filepath.Clean(path) == filepath.Clean(outDir) {
				return filepath.SkipDir
			}
		}
		return w.Add(path)
	})
}

// underDir reports whether path sits inside dir.
func underDir(path, dir string) bool {
	return strings.HasPrefix(filepath.Clean(path), filepath.Clean(dir)+string(filepath.Separator))
}
