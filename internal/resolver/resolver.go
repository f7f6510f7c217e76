// Package resolver builds the candidate set of file paths for one run.
//
// The candidate set comes from one of three sources: a single explicit
// file, a recursive walk of an explicit directory, or the version-control
// change set (unstaged changes followed by staged added/copied/modified
// files). It is computed once per run and never mutated afterwards.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrPathNotFound means the explicit path passed to the run does not
// exist. This is a fatal precondition failure: nothing is linted.
var ErrPathNotFound = errors.New("path not found")

// ChangeLister is the version-control interface the resolver needs.
type ChangeLister interface {
	// ChangedFiles lists files changed but not staged, in listing order.
	ChangedFiles(ctx context.Context) ([]string, error)
	// StagedFiles lists files staged for commit, filtered to
	// added/copied/modified entries, in listing order.
	StagedFiles(ctx context.Context) ([]string, error)
}

// Resolver produces candidate sets anchored at an explicit project root.
type Resolver struct {
	rootDir string
	changes ChangeLister
	logger  *slog.Logger
}

// New creates a resolver. The root directory anchors all relative paths;
// changes may be nil when change-set resolution is never requested.
func New(rootDir string, changes ChangeLister, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		rootDir: rootDir,
		changes: changes,
		logger:  logger,
	}
}

// Resolve builds the candidate set.
//
// With an explicit path the set is that single file, or every file under
// that directory, paths relative to the project root. Without one, the
// set is the unstaged change list followed by the staged list, with no
// de-duplication: a file appearing in both lists appears twice, and
// downstream stages tolerate linting it twice.
func (r *Resolver) Resolve(ctx context.Context, explicit string) ([]string, error) {
	if explicit != "" {
		return r.resolveExplicit(explicit)
	}
	return r.resolveChangeSet(ctx)
}

func (r *Resolver) resolveExplicit(path string) ([]string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(r.rootDir, path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		rel, err := r.relToRoot(abs)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("resolved explicit file", "path", rel)
		return []string{rel}, nil
	}

	files, err := r.walkDirectory(abs)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("resolved explicit directory", "path", path, "files", len(files))
	return files, nil
}

// walkDirectory collects every file under dir in walk order, paths
// relative to the project root.
func (r *Resolver) walkDirectory(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := r.relToRoot(path)
		if relErr != nil {
			return relErr
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}

func (r *Resolver) resolveChangeSet(ctx context.Context) ([]string, error) {
	if r.changes == nil {
		return nil, errors.New("no version-control backend configured")
	}

	unstaged, err := r.changes.ChangedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing unstaged changes: %w", err)
	}
	staged, err := r.changes.StagedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing staged changes: %w", err)
	}

	candidates := make([]string, 0, len(unstaged)+len(staged))
	candidates = append(candidates, unstaged...)
	candidates = append(candidates, staged...)

	r.logger.Debug("resolved change set",
		"unstaged", len(unstaged),
		"staged", len(staged),
	)
	return candidates, nil
}

func (r *Resolver) relToRoot(abs string) (string, error) {
	rel, err := filepath.Rel(r.rootDir, abs)
	if err != nil {
		return "", fmt.Errorf("relativizing %s: %w", abs, err)
	}
	return rel, nil
}
