package config

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
)

type contextKey struct{}

// Project is a loaded config together with the directory it was found in.
type Project struct {
	Config Config
	Dir    string
}

func WithContext(ctx context.Context, proj Project) context.Context {
	return context.WithValue(ctx, contextKey{}, proj)
}

func FromContext(ctx context.Context) (Project, bool) {
	proj, ok := ctx.Value(contextKey{}).(Project)
	return proj, ok
}

var defaultFinder = NewFinder(NewLoader())

// Ensure returns the project from context if present, otherwise loads it
// from disk. This enables lazy config loading - config is only loaded when
// an action needs it.
func Ensure(ctx context.Context) (context.Context, Project, error) {
	if proj, ok := FromContext(ctx); ok {
		return ctx, proj, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ctx, Project{}, err
	}

	cfg, projectDir, err := defaultFinder.Find(cwd)
	if err != nil {
		return ctx, Project{}, err
	}

	proj := Project{Config: cfg, Dir: projectDir}
	return WithContext(ctx, proj), proj, nil
}

// ActionFunc is a command action that receives the project.
type ActionFunc func(ctx context.Context, cmd *cli.Command, proj Project) error

// RunWithConfig wraps an ActionFunc to lazily load config when the action
// runs. Config is only loaded when an actual command action executes, not
// when showing help.
func RunWithConfig(fn ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		ctx, proj, err := Ensure(ctx)
		if err != nil {
			return err
		}
		return fn(ctx, cmd, proj)
	}
}
