// Package engine orchestrates one lintgate run: resolve the candidate
// set, partition it into language buckets, drive the external linter for
// each bucket, and aggregate the outcomes into a report.
//
// Data flows strictly forward through those stages; no stage re-enters
// an earlier one.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/lintgate/internal/linter"
	"github.com/leapstack-labs/lintgate/internal/resolver"
	"github.com/leapstack-labs/lintgate/pkg/core"
)

// Engine runs the lint pipeline.
type Engine struct {
	rootDir  string
	registry *linter.Registry
	resolver *resolver.Resolver
	runner   *linter.Runner
	logger   *slog.Logger
	out      io.Writer
}

// Config holds engine configuration.
type Config struct {
	// RootDir is the project root. All candidate paths are expressed
	// relative to it and linter processes run in it.
	RootDir string
	// Registry holds the linter configurations and routing table.
	// A default registry is created when nil.
	Registry *linter.Registry
	// Changes is the version-control backend for change-set resolution.
	// May be nil when runs always pass an explicit path.
	Changes resolver.ChangeLister
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
	// Out receives progress lines and raw linter diagnostics as they
	// are produced. Defaults to os.Stdout.
	Out io.Writer
}

// New creates an engine anchored at the configured project root.
func New(cfg Config) (*Engine, error) {
	if cfg.RootDir == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	rootDir, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root directory: %w", err)
	}
	if info, statErr := os.Stat(rootDir); statErr != nil || !info.IsDir() {
		return nil, fmt.Errorf("root directory does not exist: %s", cfg.RootDir)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	registry := cfg.Registry
	if registry == nil {
		registry = linter.NewRegistry()
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	logger.Debug("initializing engine", "root_dir", rootDir)

	return &Engine{
		rootDir:  rootDir,
		registry: registry,
		resolver: resolver.New(rootDir, cfg.Changes, logger),
		runner: linter.NewRunner(
			linter.WithWorkingDir(rootDir),
			linter.WithLogger(logger),
		),
		logger: logger,
		out:    out,
	}, nil
}

// Registry returns the engine's linter registry.
func (e *Engine) Registry() *linter.Registry {
	return e.registry
}

// RootDir returns the absolute project root the engine is anchored at.
func (e *Engine) RootDir() string {
	return e.rootDir
}

// partition splits the candidate set into one bucket per registered
// language. Routing is an exact extension match; files with unrecognized
// extensions are dropped silently. Bucket order preserves candidate-set
// order.
func (e *Engine) partition(candidates []string) map[core.Language][]string {
	buckets := make(map[core.Language][]string, len(e.registry.Languages()))
	for _, lang := range e.registry.Languages() {
		buckets[lang] = nil
	}
	for _, path := range candidates {
		lang, ok := e.registry.LanguageForPath(path)
		if !ok {
			continue
		}
		buckets[lang] = append(buckets[lang], path)
	}
	return buckets
}
