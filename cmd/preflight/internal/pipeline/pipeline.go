// Package pipeline runs an ordered sequence of external check commands with
// shell-style fail-fast semantics: every command is traced before it runs,
// the first non-zero exit aborts the sequence, and that exit code becomes
// the exit code of the whole run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Step is one stage of a check pipeline.
type Step struct {
	Name string
	Argv []string
}

// StepError reports the first failing step and the exit code of its command.
type StepError struct {
	Step string
	Code int
	err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step failed with exit code %d", e.Step, e.Code)
}

func (e *StepError) Unwrap() error {
	return e.err
}

// Executor runs a single external command. Satisfied by cmdexec.Executor.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) error
}

// Runner executes steps strictly in the order given, never in parallel.
type Runner struct {
	exec  Executor
	trace io.Writer
	skip  func(step string) bool
}

type Option func(*Runner)

// WithTrace echoes each command line to w before it runs.
func WithTrace(w io.Writer) Option {
	return func(r *Runner) {
		r.trace = w
	}
}

// WithSkip marks steps as skipped; a skipped step counts as success.
func WithSkip(skip func(step string) bool) Option {
	return func(r *Runner) {
		r.skip = skip
	}
}

func NewRunner(exec Executor, opts ...Option) *Runner {
	r := &Runner{exec: exec}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the steps one after another, each blocking until its command
// exits. It stops at the first failure and returns a StepError carrying the
// command's exit code; later steps never run.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		if len(step.Argv) == 0 {
			return errors.Newf("step %s has no command", step.Name)
		}

		if r.skip != nil && r.skip(step.Name) {
			r.tracef("~ %s (skipped)", step.Name)
			continue
		}

		r.tracef("+ %s", strings.Join(step.Argv, " "))

		if err := r.exec.Run(ctx, step.Argv[0], step.Argv[1:]...); err != nil {
			return &StepError{
				Step: step.Name,
				Code: commandExitCode(err),
				err:  err,
			}
		}
	}

	return nil
}

func (r *Runner) tracef(format string, args ...any) {
	if r.trace == nil {
		return
	}
	fmt.Fprintf(r.trace, format+"\n", args...)
}

// ExitCode maps an error returned by Run to a process exit code, so the
// failing step's exit code propagates unchanged to the caller's environment.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Code
	}

	return 1
}

func commandExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
