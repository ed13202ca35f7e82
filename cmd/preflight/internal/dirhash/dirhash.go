// Package dirhash computes a content-based hash of a project tree so a
// check run can be skipped when nothing changed since the last green run.
// Paths are filtered with dockerignore-style patterns from .preflightignore.
package dirhash

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/moby/patternmatcher"
)

// IgnoreFileName holds the patterns excluded from the hash, one per line.
const IgnoreFileName = ".preflightignore"

// Build output and VCS bookkeeping never participate in the hash.
var alwaysSkipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	".preflight":   {},
	"target":       {},
	"node_modules": {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	"__pycache__":  {},
}

// Hash walks the tree rooted at dir and returns a hex digest over the
// relative path and content of every file that survives filtering. The walk
// order is lexical, so the digest is stable for an unchanged tree.
func Hash(dir string) (string, error) {
	patterns, err := readIgnorePatterns(filepath.Join(dir, IgnoreFileName))
	if err != nil {
		return "", err
	}

	matcher, err := patternmatcher.New(patterns)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse ignore patterns")
	}

	sum := sha256.New()

	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}

		if entry.IsDir() {
			if _, skip := alwaysSkipDirs[entry.Name()]; skip {
				return filepath.SkipDir
			}

			matched, matchErr := matcher.MatchesOrParentMatches(rel)
			if matchErr != nil {
				return matchErr
			}
			// A negation pattern may re-include files below an
			// excluded directory, so only prune when none exist.
			if matched && !matcher.Exclusions() {
				return filepath.SkipDir
			}
			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		matched, matchErr := matcher.MatchesOrParentMatches(rel)
		if matchErr != nil {
			return matchErr
		}
		if matched {
			return nil
		}

		fileSum, hashErr := hashFile(path)
		if hashErr != nil {
			return hashErr
		}

		fmt.Fprintf(sum, "%s %s\n", filepath.ToSlash(rel), fileSum)
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to hash directory")
	}

	return hex.EncodeToString(sum.Sum(nil)), nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	sum := sha256.New()
	if _, err := io.Copy(sum, f); err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}

	return hex.EncodeToString(sum.Sum(nil)), nil
}

func readIgnorePatterns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to open ignore file")
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read ignore file")
	}

	return patterns, nil
}
