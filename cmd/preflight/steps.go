package main

import (
	"io"
	"os"

	"github.com/advdv/preflight/cmd/preflight/internal/cmdexec"
	"github.com/advdv/preflight/cmd/preflight/internal/config"
	"github.com/advdv/preflight/cmd/preflight/internal/pipeline"
	"github.com/iancoleman/strcase"
)

// Step names double as subcommand names and as the suffix of the
// PREFLIGHT_SKIP_* environment variables.
const (
	stepFmt   = "fmt"
	stepLint  = "lint"
	stepTests = "tests"
)

func fmtStep(cfg config.Config) pipeline.Step {
	return pipeline.Step{Name: stepFmt, Argv: wrapArgv(cfg.Wrapper, cfg.Steps.Fmt.Command)}
}

func lintStep(cfg config.Config) pipeline.Step {
	return pipeline.Step{Name: stepLint, Argv: wrapArgv(cfg.Wrapper, cfg.Steps.Lint.Argv())}
}

func testsStep(cfg config.Config) pipeline.Step {
	return pipeline.Step{Name: stepTests, Argv: wrapArgv(cfg.Wrapper, cfg.Steps.Tests.Command)}
}

// wrapArgv prepends the configured wrapper so the step argv is the command
// that actually executes, and the trace echoes it verbatim.
func wrapArgv(wrapper, argv []string) []string {
	if len(wrapper) == 0 {
		return argv
	}

	wrapped := make([]string, 0, len(wrapper)+len(argv))
	wrapped = append(wrapped, wrapper...)
	wrapped = append(wrapped, argv...)
	return wrapped
}

// pipelineSteps fixes the order of the full pipeline: fmt, then lint, then
// tests. The order is not configurable.
func pipelineSteps(cfg config.Config) []pipeline.Step {
	return []pipeline.Step{
		fmtStep(cfg),
		lintStep(cfg),
		testsStep(cfg),
	}
}

// newRunner builds the runner for a check command. Extra options come from
// the caller; notably only "check all" passes the skip predicate, so an
// explicitly requested step always runs.
func newRunner(proj config.Project, opts ...pipeline.Option) *pipeline.Runner {
	return buildRunner(proj, os.Stdout, os.Stderr, opts...)
}

func buildRunner(proj config.Project, stdout, stderr io.Writer, opts ...pipeline.Option) *pipeline.Runner {
	exec := cmdexec.New(proj).WithOutput(stdout, stderr)

	runnerOpts := make([]pipeline.Option, 0, 1+len(opts))
	runnerOpts = append(runnerOpts, pipeline.WithTrace(stderr))
	runnerOpts = append(runnerOpts, opts...)

	return pipeline.NewRunner(exec, runnerOpts...)
}

// skipFromEnv reports whether a step is disabled through its
// PREFLIGHT_SKIP_<STEP> environment variable.
func skipFromEnv(step string) bool {
	v := os.Getenv(skipEnvVar(step))
	return v == "1" || v == "true"
}

func skipEnvVar(step string) string {
	return "PREFLIGHT_SKIP_" + strcase.ToScreamingSnake(step)
}
