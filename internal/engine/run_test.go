package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/PatrickMcKenzier/microbundle/internal/bundler"
	"github.com/PatrickMcKenzier/microbundle/internal/testutil"
	"github.com/PatrickMcKenzier/microbundle/pkg/core"
)

// stubBundler records invocations and returns canned results, so
// executor tests never touch the real engine.
type stubBundler struct {
	mu     sync.Mutex
	builds []*core.BuildConfig
	caches []*bundler.RunCache
	failOn string // basename of the output whose build fails
	jobErr error  // error every started job returns on rebuild
}

func (s *stubBundler) Build(_ context.Context, cfg *core.BuildConfig, cache *bundler.RunCache) (*bundler.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds = append(s.builds, cfg)
	s.caches = append(s.caches, cache)
	if s.failOn != "" && filepath.Base(cfg.Output.File) == s.failOn {
		return nil, errors.New("engine exploded")
	}
	return stubResult(cfg), nil
}

func (s *stubBundler) Start(cfg *core.BuildConfig) (bundler.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds = append(s.builds, cfg)
	return &stubJob{cfg: cfg, err: s.jobErr}, nil
}

func (s *stubBundler) built() []*core.BuildConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*core.BuildConfig(nil), s.builds...)
}

type stubJob struct {
	cfg *core.BuildConfig
	err error
}

func (j *stubJob) Rebuild() (*bundler.Result, error) {
	if j.err != nil {
		return nil, j.err
	}
	return stubResult(j.cfg), nil
}

func (j *stubJob) Close() error { return nil }

func stubResult(cfg *core.BuildConfig) *bundler.Result {
	return &bundler.Result{
		Bundle: core.Artifact{File: cfg.Output.File, Code: []byte("module.exports=42;\n")},
		Extras: []core.Artifact{{File: cfg.Output.File + ".map", Code: []byte("{}")}},
	}
}

// writeProject lays out a throwaway package directory.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeFile(t, filepath.Join(dir, name), content)
	}
	return dir
}

func acmeProject(t *testing.T) string {
	return writeProject(t, map[string]string{
		"package.json": `{"name":"acme","main":"dist/acme.js","module":"dist/acme.module.js"}`,
		"src/index.js": "export default 42;\n",
	})
}

func newTestEngine(t *testing.T, opts *core.BuildOptions, stub *stubBundler) *Engine {
	t.Helper()
	eng, err := New(Config{Options: opts, Bundler: stub, Logger: testutil.NewTestLogger(t)})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return eng
}

func TestNew_AcmeSchedule(t *testing.T) {
	dir := acmeProject(t)
	formats, err := core.ParseFormats([]string{"es,cjs"})
	if err != nil {
		t.Fatalf("ParseFormats failed: %v", err)
	}

	opts := testOptions(dir)
	opts.Formats = formats
	eng := newTestEngine(t, opts, &stubBundler{})

	steps := eng.Steps()
	if len(steps) != 2 {
		t.Fatalf("len(steps) = %d, want 2", len(steps))
	}
	first, second := steps[0].Config, steps[1].Config

	if first.Output.Format != core.FormatCJS || second.Output.Format != core.FormatES {
		t.Errorf("schedule = [%s, %s], want [cjs, es]", first.Output.Format, second.Output.Format)
	}
	if want := filepath.Join(dir, "dist", "acme.js"); first.Output.File != want {
		t.Errorf("cjs output = %q, want %q", first.Output.File, want)
	}
	if want := filepath.Join(dir, "dist", "acme.module.js"); second.Output.File != want {
		t.Errorf("es output = %q, want %q", second.Output.File, want)
	}
	if !first.Output.WriteMeta || second.Output.WriteMeta {
		t.Error("exactly the first scheduled pair writes metadata")
	}
	if steps[0].Status != StepIdle {
		t.Errorf("fresh step status = %q, want idle", steps[0].Status)
	}
}

func TestNew_NoEntryFailsBeforeBuilds(t *testing.T) {
	stub := &stubBundler{}
	_, err := New(Config{
		Options: testOptions(t.TempDir()),
		Bundler: stub,
	})
	if !errors.Is(err, core.ErrNoEntry) {
		t.Fatalf("err = %v, want ErrNoEntry", err)
	}
	if len(stub.built()) != 0 {
		t.Error("no build may start without entries")
	}
}

func TestNew_MissingManifestWarns(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"src/index.js": "export default 1;\n",
	})
	eng := newTestEngine(t, testOptions(dir), &stubBundler{})

	if len(eng.Warnings()) != 2 {
		t.Fatalf("warnings = %v, want missing-manifest and missing-name", eng.Warnings())
	}
}

func TestRun_SequentialSharedCache(t *testing.T) {
	dir := acmeProject(t)
	formats, _ := core.ParseFormats([]string{"es,cjs"})
	opts := testOptions(dir)
	opts.Formats = formats

	stub := &stubBundler{}
	eng := newTestEngine(t, opts, stub)

	report, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	builds := stub.built()
	if len(builds) != 2 {
		t.Fatalf("len(builds) = %d, want 2", len(builds))
	}
	if builds[0].Output.Format != core.FormatCJS {
		t.Errorf("first build = %s, want cjs", builds[0].Output.Format)
	}
	if stub.caches[0] == nil || stub.caches[0] != stub.caches[1] {
		t.Error("sequential steps must share one cache handle")
	}
	for i, step := range eng.Steps() {
		if step.Status != StepCompleted {
			t.Errorf("steps[%d].Status = %q, want completed", i, step.Status)
		}
	}

	if report.RunID == "" {
		t.Error("report carries a run id")
	}
	if len(report.Rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2 (source maps unreported)", len(report.Rows))
	}
	for _, row := range report.Rows {
		if row.Size <= 0 || row.Gzip <= 0 {
			t.Errorf("row %q sizes = (%d, %d), want positive", row.File, row.Size, row.Gzip)
		}
	}
}

func TestRun_FailFast(t *testing.T) {
	dir := acmeProject(t)
	formats, _ := core.ParseFormats([]string{"es,cjs"})
	opts := testOptions(dir)
	opts.Formats = formats

	stub := &stubBundler{failOn: "acme.js"}
	eng := newTestEngine(t, opts, stub)

	report, err := eng.Run(context.Background())
	if err == nil {
		t.Fatal("Run() must fail when a step fails")
	}
	if report != nil {
		t.Error("failed runs report nothing")
	}
	if len(stub.built()) != 1 {
		t.Errorf("len(builds) = %d, want 1 (no continuation past a failure)", len(stub.built()))
	}
	steps := eng.Steps()
	if steps[0].Status != StepFailed {
		t.Errorf("steps[0].Status = %q, want failed", steps[0].Status)
	}
	if steps[1].Status != StepScheduled {
		t.Errorf("steps[1].Status = %q, want scheduled", steps[1].Status)
	}
}

func TestRun_PersistsNameCache(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"package.json": `{"name":"acme","main":"dist/acme.js","mangle":{"regex":"^_"}}`,
		"src/index.js": "export default 42;\n",
	})
	formats, _ := core.ParseFormats([]string{"cjs"})
	opts := testOptions(dir)
	opts.Formats = formats
	opts.Compress = true

	eng := newTestEngine(t, opts, &stubBundler{})
	if _, err := eng.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "mangle.json")); err != nil {
		t.Fatalf("name cache not written: %v", err)
	}
}

func TestWatch_ErrorFailsRun(t *testing.T) {
	dir := acmeProject(t)
	formats, _ := core.ParseFormats([]string{"es,cjs"})
	opts := testOptions(dir)
	opts.Formats = formats
	opts.Watch = true

	stub := &stubBundler{jobErr: errors.New("boom")}
	eng := newTestEngine(t, opts, stub)

	done := make(chan error, 1)
	go func() { done <- eng.Watch(context.Background(), nil) }()

	select {
	case err := <-done:
		if err == nil || err.Error() != "boom" {
			t.Fatalf("Watch() = %v, want boom", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch() did not fail on a watcher error")
	}
}

func TestWatch_ReportsEachBuild(t *testing.T) {
	dir := acmeProject(t)
	formats, _ := core.ParseFormats([]string{"es,cjs"})
	opts := testOptions(dir)
	opts.Formats = formats
	opts.Watch = true

	eng := newTestEngine(t, opts, &stubBundler{})

	reports := make(chan *Report, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- eng.Watch(ctx, func(r *Report) { reports <- r })
	}()

	for i := 0; i < 2; i++ {
		select {
		case r := <-reports:
			if len(r.Rows) != 1 {
				t.Errorf("watch report rows = %d, want 1", len(r.Rows))
			}
		case <-time.After(5 * time.Second):
			t.Fatal("initial watch builds did not report")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch() after cancel = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch() did not stop on cancellation")
	}
}
