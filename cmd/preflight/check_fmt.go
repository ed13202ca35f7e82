package main

import (
	"context"

	"github.com/advdv/preflight/cmd/preflight/internal/config"
	"github.com/advdv/preflight/cmd/preflight/internal/pipeline"
	"github.com/urfave/cli/v3"
)

func checkFmt(ctx context.Context, _ *cli.Command, proj config.Project) error {
	return newRunner(proj).Run(ctx, []pipeline.Step{fmtStep(proj.Config)})
}
