package main

import (
	"github.com/advdv/preflight/cmd/preflight/internal/config"
	"github.com/urfave/cli/v3"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Run project checks",
		Commands: []*cli.Command{
			{
				Name:  "all",
				Usage: "Run the fmt, lint and tests pipeline, stopping at the first failure",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "cache",
						Usage: "skip the pipeline when the tree is unchanged since the last green run",
					},
				},
				Action: config.RunWithConfig(checkAll),
			},
			{
				Name:   "fmt",
				Usage:  "Check formatting without modifying files",
				Action: config.RunWithConfig(checkFmt),
			},
			{
				Name:   "lint",
				Usage:  "Lint with warnings promoted to errors",
				Action: config.RunWithConfig(checkLint),
			},
			{
				Name:   "tests",
				Usage:  "Run the project's tests",
				Action: config.RunWithConfig(checkTests),
			},
			{
				Name:   "uncommitted-changes",
				Usage:  "Check the working tree is clean in CI",
				Action: checkUncommittedChanges,
			},
		},
	}
}
