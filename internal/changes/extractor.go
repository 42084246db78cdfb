// Package changes inspects a working directory's git state and produces a
// structured snapshot of tracked diffs and untracked file captures.
package changes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"

	"workbench/internal/container"
	"workbench/internal/errors"
	"workbench/internal/logger"
	"workbench/internal/types"
)

// Extractor produces RepositoryChanges snapshots from a working directory
type Extractor struct {
	executor container.CommandExecutor
}

// New creates a new extractor. A nil executor uses the real git CLI for
// diff computation.
func New(executor container.CommandExecutor) *Extractor {
	if executor == nil {
		executor = &container.DefaultCommandExecutor{}
	}
	return &Extractor{executor: executor}
}

// Extract returns a point-in-time snapshot of the repository's mutations:
// tracked files as diffs against the last commit, untracked files with their
// full content. An empty workDir yields an empty snapshot. Per-file read
// failures on untracked files are logged and skipped, never fatal.
func (e *Extractor) Extract(ctx context.Context, workDir string) (types.RepositoryChanges, error) {
	result := types.EmptyRepositoryChanges()

	if workDir == "" {
		return result, nil
	}

	repo, err := git.PlainOpen(workDir)
	if err != nil {
		return result, errors.GitRepoNotFound(workDir).WithCause(err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return result, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return result, fmt.Errorf("failed to get worktree status: %w", err)
	}

	if status.IsClean() {
		return result, nil
	}

	// Union of paths changed against the index and against the last commit.
	// Iteration order of the status map is not meaningful, so changed paths
	// are sorted to keep the snapshot reproducible.
	var changedPaths []string
	var untrackedPaths []string
	for path, fileStatus := range status {
		if fileStatus.Worktree == git.Untracked {
			untrackedPaths = append(untrackedPaths, path)
			continue
		}
		if fileStatus.Staging == git.Unmodified && fileStatus.Worktree == git.Unmodified {
			continue
		}
		changedPaths = append(changedPaths, path)
	}
	sort.Strings(changedPaths)
	sort.Strings(untrackedPaths)

	for _, path := range changedPaths {
		diff, err := e.diffAgainstHead(ctx, workDir, path)
		if err != nil {
			return result, err
		}
		if strings.TrimSpace(diff) != "" {
			result.TrackedChanges = append(result.TrackedChanges, types.TrackedChange{
				Path: path,
				Diff: diff,
			})
		}
	}

	for _, path := range untrackedPaths {
		content, err := os.ReadFile(filepath.Join(workDir, path))
		if err != nil {
			logger.WithFields(logger.Fields{
				"path":      path,
				"operation": "extract",
			}).WithError(err).Warn("Could not read untracked file, skipping")
			continue
		}
		result.UntrackedChanges = append(result.UntrackedChanges, types.UntrackedChange{
			Path:    path,
			Content: string(content),
		})
	}

	return result, nil
}

// diffAgainstHead computes the textual diff of a single path against the
// last commit. go-git has no porcelain diff, so this shells out to git the
// same way worktree plumbing does.
func (e *Extractor) diffAgainstHead(ctx context.Context, workDir, path string) (string, error) {
	cmd := e.executor.CommandContext(ctx, "git", "-C", workDir, "diff", "HEAD", "--", path)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to diff %s against HEAD: %w", path, err)
	}
	return string(output), nil
}
