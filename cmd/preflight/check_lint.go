package main

import (
	"context"

	"github.com/advdv/preflight/cmd/preflight/internal/config"
	"github.com/advdv/preflight/cmd/preflight/internal/pipeline"
	"github.com/urfave/cli/v3"
)

func checkLint(ctx context.Context, _ *cli.Command, proj config.Project) error {
	return newRunner(proj).Run(ctx, []pipeline.Step{lintStep(proj.Config)})
}
