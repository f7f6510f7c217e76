// Package vcs exposes the version-control queries the change-set
// resolver needs: the files changed but not committed, and the files
// staged for commit.
package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// defaultTimeout bounds each git invocation.
const defaultTimeout = 30 * time.Second

// GitClient lists changed files by shelling out to the git binary.
type GitClient struct {
	repoRoot string
	timeout  time.Duration
}

// NewGitClient creates a client that executes git commands in the given
// repository root. The root must be an absolute path.
func NewGitClient(repoRoot string) (*GitClient, error) {
	if !filepath.IsAbs(repoRoot) {
		return nil, fmt.Errorf("repo root must be absolute: %s", repoRoot)
	}
	return &GitClient{
		repoRoot: repoRoot,
		timeout:  defaultTimeout,
	}, nil
}

// run executes a git command and returns stdout.
func (g *GitClient) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.repoRoot

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("git %s: timeout after %v", args[0], g.timeout)
		}
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, stderr.String())
	}
	return stdout.String(), nil
}

// IsRepository checks whether the root is inside a git work tree.
func (g *GitClient) IsRepository(ctx context.Context) bool {
	if info, err := os.Stat(filepath.Join(g.repoRoot, ".git")); err == nil && info.IsDir() {
		return true
	}
	_, err := g.run(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// ChangedFiles returns the paths of files changed but not staged, in
// git's listing order, relative to the repository root.
func (g *GitClient) ChangedFiles(ctx context.Context) ([]string, error) {
	out, err := g.run(ctx, "diff", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// StagedFiles returns the paths of files staged for commit, filtered to
// added, copied and modified entries, in git's listing order.
func (g *GitClient) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := g.run(ctx, "diff", "--cached", "--name-only", "--diff-filter=ACM")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// splitLines splits command output into non-empty lines, preserving order.
func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
