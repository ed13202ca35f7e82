package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/advdv/preflight/cmd/preflight/internal/config"
	"github.com/advdv/preflight/cmd/preflight/internal/pipeline"
)

func TestPipelineStepsOrder(t *testing.T) {
	t.Parallel()

	cfg, err := config.ForPreset(config.PresetRust)
	if err != nil {
		t.Fatal(err)
	}

	steps := pipelineSteps(cfg)
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}

	wantNames := []string{"fmt", "lint", "tests"}
	for i, want := range wantNames {
		if steps[i].Name != want {
			t.Errorf("step %d: expected %q, got %q", i, want, steps[i].Name)
		}
	}

	wantLint := []string{"cargo", "clippy", "--", "-D", "warnings"}
	if !reflect.DeepEqual(steps[1].Argv, wantLint) {
		t.Errorf("expected lint argv %v, got %v", wantLint, steps[1].Argv)
	}
}

func TestWrapperPrefixesStepCommands(t *testing.T) {
	t.Parallel()

	content := `version: "1"
wrapper: [env]
steps:
  fmt:
    command: [echo, fmt-ok]
  lint:
    command: [echo, lint-ok]
  tests:
    command: [echo, tests-ok]
`
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.NewLoader().Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	steps := pipelineSteps(cfg)
	wantFmt := []string{"env", "echo", "fmt-ok"}
	if !reflect.DeepEqual(steps[0].Argv, wantFmt) {
		t.Errorf("expected fmt argv %v, got %v", wantFmt, steps[0].Argv)
	}

	// The runner must execute and trace the wrapped command line.
	var stdout, stderr bytes.Buffer
	proj := config.Project{Config: cfg, Dir: dir}
	runner := buildRunner(proj, &stdout, &stderr)

	if err := runner.Run(context.Background(), []pipeline.Step{steps[0]}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stdout.String() != "fmt-ok\n" {
		t.Errorf("expected 'fmt-ok\\n', got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "+ env echo fmt-ok") {
		t.Errorf("expected trace of the wrapped command, got %q", stderr.String())
	}
}

func TestSkipEnvVar(t *testing.T) {
	t.Parallel()

	if got := skipEnvVar("tests"); got != "PREFLIGHT_SKIP_TESTS" {
		t.Errorf("expected PREFLIGHT_SKIP_TESTS, got %q", got)
	}
}

func TestSkipFromEnv(t *testing.T) {
	if skipFromEnv("lint") {
		t.Error("expected lint not skipped without env var")
	}

	t.Setenv("PREFLIGHT_SKIP_LINT", "1")
	if !skipFromEnv("lint") {
		t.Error("expected lint skipped with PREFLIGHT_SKIP_LINT=1")
	}

	t.Setenv("PREFLIGHT_SKIP_LINT", "false")
	if skipFromEnv("lint") {
		t.Error("expected lint not skipped with PREFLIGHT_SKIP_LINT=false")
	}
}

func skipTestProject(t *testing.T) config.Project {
	t.Helper()

	return config.Project{
		Dir: t.TempDir(),
		Config: config.Config{
			Version: "1",
			Steps: config.Steps{
				Fmt:   config.Step{Command: []string{"sh", "-c", "exit 7"}},
				Lint:  config.LintStep{Command: []string{"true"}},
				Tests: config.Step{Command: []string{"true"}},
			},
		},
	}
}

func TestSingleStepCommandsIgnoreSkipEnv(t *testing.T) {
	t.Setenv("PREFLIGHT_SKIP_FMT", "1")

	err := checkFmt(context.Background(), nil, skipTestProject(t))
	if err == nil {
		t.Fatal("expected explicit check fmt to run the fmt command and fail")
	}

	if got := pipeline.ExitCode(err); got != 7 {
		t.Errorf("expected exit code 7, got %d", got)
	}
}

func TestRunAllHonorsSkipEnv(t *testing.T) {
	t.Setenv("PREFLIGHT_SKIP_FMT", "1")

	if err := runAll(context.Background(), skipTestProject(t), false); err != nil {
		t.Fatalf("expected fmt to be skipped in the full pipeline, got %v", err)
	}
}
