package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/advdv/preflight/cmd/preflight/internal/config"
	"github.com/advdv/preflight/cmd/preflight/internal/initwizard"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a .preflight.yml for a project",
		ArgsUsage: "[directory]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "preset",
				Usage: "toolchain preset (go, rust, custom); skips the wizard",
			},
			&cli.BoolFlag{
				Name:  "deny-unwrap",
				Usage: "with --preset rust, also deny clippy::unwrap_used in the lint step",
			},
			&cli.BoolFlag{
				Name:  "accessible",
				Usage: "run the wizard with plain prompts instead of the full-screen form",
			},
		},
		Action: runInit,
	}
}

func runInit(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.Args().First()
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return errors.Wrap(err, "failed to get current working directory")
		}
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return errors.Wrap(err, "failed to get absolute path")
	}
	dir = absDir

	configPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(configPath); err == nil {
		return errors.Newf("%s already exists in %s", config.FileName, dir)
	}

	result, err := initAnswers(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.ForPreset(config.Preset(result.Preset))
	if err != nil {
		return err
	}

	if result.DenyUnwrap && config.Preset(result.Preset) == config.PresetRust {
		cfg.Steps.Lint.Deny = append(cfg.Steps.Lint.Deny, "clippy::unwrap_used")
	}

	if err := config.WriteToFile(dir, cfg, config.NewWriter()); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "preflight: wrote %s (%s preset)\n", configPath, result.Preset)
	return nil
}

func initAnswers(cmd *cli.Command) (initwizard.Result, error) {
	if preset := cmd.String("preset"); preset != "" {
		if err := config.ValidatePreset(preset); err != nil {
			return initwizard.Result{}, err
		}
		return initwizard.Result{
			Preset:     preset,
			DenyUnwrap: cmd.Bool("deny-unwrap"),
		}, nil
	}

	var runner initwizard.FormRunner = initwizard.NewInteractiveRunner()
	if cmd.Bool("accessible") {
		runner = initwizard.NewAccessibleRunner(os.Stdout, os.Stdin)
	}

	wizard := initwizard.New(initwizard.NewFormBuilder(), runner)
	result, err := wizard.Run()
	if err != nil {
		return initwizard.Result{}, errors.Wrap(err, "init wizard failed")
	}

	return result, nil
}
