// Package bundler adapts build configurations to the embedded esbuild
// engine. It owns the narrow interface the executor drives: one-shot
// builds that may share an incremental cache, and long-lived jobs that
// rebuild on demand in watch mode.
package bundler

import (
	"context"
	"sync"
	"time"

	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

// Result is one completed build, returned rather than collected through
// engine side effects so the caller can measure what was produced.
type Result struct {
	// Bundle is the primary artifact: the generated module text at its
	// destination path.
	Bundle core.Artifact
	// Extras are companion outputs written alongside the bundle: the
	// source map and, on the metadata-writing pair, the extracted
	// stylesheet.
	Extras []core.Artifact
	// Warnings are engine diagnostics that did not fail the build.
	Warnings []string
}

// Job is one live incremental build session used in watch mode. Rebuild
// reuses the engine's internal graph; Close releases it.
type Job interface {
	Rebuild() (*Result, error)
	Close() error
}

// Bundler runs build configurations against the bundling engine.
type Bundler interface {
	// Build runs one configuration to completion. cache, when non-nil,
	// is the run's shared incremental state; the bundler both reads and
	// updates it. Sequential callers pass the same handle to every step.
	Build(ctx context.Context, cfg *core.BuildConfig, cache *RunCache) (*Result, error)
	// Start opens an incremental job for one configuration. Watch jobs
	// never share state with each other.
	Start(cfg *core.BuildConfig) (Job, error)
}

// RunCache is the mutable state threaded across the sequential steps of
// one run: loaded source files, reused by later formats of the same
// entry, and the minifier name cache, which keeps mangled member names
// identical across sibling formats. Steps hand it forward one at a time;
// the mutex only covers the engine's parallel module loading within a
// single build.
type RunCache struct {
	mangle  map[string]any
	mu      sync.Mutex
	sources map[string]sourceEntry
}

type sourceEntry struct {
	mtime time.Time
	size  int64
	data  []byte
}

// NewRunCache seeds a cache with the persisted minifier names.
func NewRunCache(mangle map[string]any) *RunCache {
	if mangle == nil {
		mangle = map[string]any{}
	}
	return &RunCache{
		mangle:  mangle,
		sources: map[string]sourceEntry{},
	}
}

// MangleProps is the minifier name map handed to the next build.
// Persist it after the metadata-writing pass.
func (c *RunCache) MangleProps() map[string]any {
	return c.mangle
}

// absorbMangle replaces the name map with the engine's updated copy.
// The engine never mutates its input map in place.
func (c *RunCache) absorbMangle(mangle map[string]any) {
	if mangle != nil {
		c.mangle = mangle
	}
}

// lookup returns cached file contents when the file is unchanged.
func (c *RunCache) lookup(path string, mtime time.Time, size int64) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.sources[path]
	if !ok || !e.mtime.Equal(mtime) || e.size != size {
		return nil, false
	}
	return e.data, true
}

// store records file contents for reuse by subsequent steps.
func (c *RunCache) store(path string, mtime time.Time, size int64, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[path] = sourceEntry{mtime: mtime, size: size, data: data}
}
