package main

import (
	"context"
	"os"

	"github.com/advdv/preflight/cmd/preflight/internal/cmdexec"
	"github.com/urfave/cli/v3"
)

func selfUpgradeCmd() *cli.Command {
	return &cli.Command{
		Name:  "self-upgrade",
		Usage: "Upgrade the preflight CLI to the latest version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}

			// GOPROXY=direct bypasses the module proxy cache, which can
			// serve a version up to 24 hours stale.
			exec := cmdexec.NewWithDir(dir).
				WithOutput(os.Stdout, os.Stderr).
				WithEnv("GOPROXY", "direct")

			return exec.Run(ctx, "go", "install", "github.com/advdv/preflight/cmd/preflight@latest")
		},
	}
}
