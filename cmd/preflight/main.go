package main

import (
	"context"
	"fmt"
	"os"

	"github.com/advdv/preflight/cmd/preflight/internal/pipeline"
	"github.com/urfave/cli/v3"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "preflight",
		Usage:   "Fail-fast format, lint and test pipeline for a project",
		Version: Version,
		Commands: []*cli.Command{
			checkCmd(),
			initCmd(),
			selfUpgradeCmd(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(pipeline.ExitCode(err))
	}
}
