// Package main provides tests for the microbundle CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PatrickMcKenzier/microbundle/internal/cli"
	"github.com/PatrickMcKenzier/microbundle/internal/cli/config"
	"github.com/PatrickMcKenzier/microbundle/internal/cli/output"
	"github.com/PatrickMcKenzier/microbundle/internal/cli/testutil"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()

	cmd := cli.NewRootCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(out, "microbundle") {
		t.Errorf("version output should contain 'microbundle', got: %s", out)
	}
}

func TestHelpCommand(t *testing.T) {
	out, _, err := execute(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	expectedCommands := []string{"build", "watch", "version"}
	for _, expected := range expectedCommands {
		if !strings.Contains(out, expected) {
			t.Errorf("help output should contain %q, got: %s", expected, out)
		}
	}
}

func TestBuildCommand(t *testing.T) {
	project := testutil.SetupTestProject(t)

	out, _, err := execute(t,
		"build",
		"--cwd", project,
		"--format", "es,cjs",
	)
	if err != nil {
		t.Fatalf("build command error = %v", err)
	}

	for _, rel := range []string{"dist/acme.js", "dist/acme.js.map", "dist/acme.module.js"} {
		if _, err := os.Stat(filepath.Join(project, rel)); err != nil {
			t.Errorf("expected %s to be written: %v", rel, err)
		}
	}

	if !strings.Contains(out, "dist/acme.js") {
		t.Errorf("size report should mention dist/acme.js, got: %s", out)
	}
	if !strings.Contains(out, "cjs") {
		t.Errorf("size report should mention the cjs format, got: %s", out)
	}
}

func TestBuildCommandJSONReport(t *testing.T) {
	project := testutil.SetupTestProject(t)

	out, _, err := execute(t,
		"build",
		"--cwd", project,
		"--format", "cjs",
		"--compress=false",
		"--report", "json",
	)
	if err != nil {
		t.Fatalf("build command error = %v", err)
	}

	var summary output.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("report should be valid JSON: %v\noutput: %s", err, out)
	}
	if summary.RunID == "" {
		t.Error("report should carry a run id")
	}
	if len(summary.Artifacts) != 1 {
		t.Fatalf("expected one reported artifact, got %d", len(summary.Artifacts))
	}
	if summary.Artifacts[0].File != "dist/acme.js" {
		t.Errorf("artifact file = %q, want dist/acme.js", summary.Artifacts[0].File)
	}
	if summary.Artifacts[0].Gzip <= 0 {
		t.Errorf("artifact gzip size should be positive, got %d", summary.Artifacts[0].Gzip)
	}
}

func TestBuildCommandNoEntry(t *testing.T) {
	empty := t.TempDir()

	_, _, err := execute(t, "build", "--cwd", empty)
	if err == nil {
		t.Fatal("build in an empty directory should fail")
	}
	if !strings.Contains(err.Error(), "entry") {
		t.Errorf("error should mention the missing entry, got: %v", err)
	}
}

func TestBuildCommandMissingProjectDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, _, err := execute(t, "build", "--cwd", missing)
	if err == nil {
		t.Fatal("build in a nonexistent directory should fail")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("error should name the missing directory, got: %v", err)
	}
}

func TestBuildCommandInvalidFormat(t *testing.T) {
	project := testutil.SetupTestProject(t)

	_, _, err := execute(t, "build", "--cwd", project, "--format", "wasm")
	if err == nil {
		t.Fatal("unknown format should fail")
	}
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := execute(t, "unknown-command")
	if err == nil {
		t.Error("unknown command should return an error")
	}
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
