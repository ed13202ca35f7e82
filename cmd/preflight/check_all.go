package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/advdv/preflight/cmd/preflight/internal/config"
	"github.com/advdv/preflight/cmd/preflight/internal/dirhash"
	"github.com/advdv/preflight/cmd/preflight/internal/pipeline"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
)

func checkAll(ctx context.Context, cmd *cli.Command, proj config.Project) error {
	return runAll(ctx, proj, cmd.Bool("cache"))
}

func runAll(ctx context.Context, proj config.Project, useCache bool) error {
	// Skipping via PREFLIGHT_SKIP_* only applies to the full pipeline;
	// the single-step check commands always run what was asked for.
	runner := newRunner(proj, pipeline.WithSkip(skipFromEnv))

	if !useCache {
		return runner.Run(ctx, pipelineSteps(proj.Config))
	}

	// The hash is taken before the run; the pipeline is check-only so the
	// tree it validated is the tree that was hashed.
	hash, err := dirhash.Hash(proj.Dir)
	if err != nil {
		return err
	}

	if hash == lastGreenHash(proj.Dir) {
		fmt.Fprintln(os.Stderr, "preflight: tree unchanged since last green run")
		return nil
	}

	if err := runner.Run(ctx, pipelineSteps(proj.Config)); err != nil {
		return err
	}

	return writeLastGreenHash(proj.Dir, hash)
}

const (
	cacheDirName      = ".preflight"
	lastGreenFileName = "last-green"
)

func lastGreenHash(projectDir string) string {
	data, err := os.ReadFile(filepath.Join(projectDir, cacheDirName, lastGreenFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func writeLastGreenHash(projectDir, hash string) error {
	dir := filepath.Join(projectDir, cacheDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create cache directory")
	}

	path := filepath.Join(dir, lastGreenFileName)
	if err := os.WriteFile(path, []byte(hash+"\n"), 0o644); err != nil { //nolint:gosec // cache file needs to be readable
		return errors.Wrap(err, "failed to write last-green hash")
	}

	return nil
}
