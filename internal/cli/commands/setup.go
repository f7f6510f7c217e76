package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/lintgate/internal/cli/config"
	"github.com/leapstack-labs/lintgate/internal/cli/output"
	"github.com/leapstack-labs/lintgate/internal/engine"
	"github.com/leapstack-labs/lintgate/internal/linter"
	"github.com/leapstack-labs/lintgate/internal/resolver"
	"github.com/leapstack-labs/lintgate/internal/vcs"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	eng, err := createEngine(cmd.Context(), cfg, logger, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: r,
	}, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an
// engine. Useful for commands that never run linters.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back
// to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	rootDir := os.Getenv("LINTGATE_ROOT_DIR")
	if rootDir == "" {
		rootDir, _ = os.Getwd()
	}
	return &config.Config{
		RootDir:      rootDir,
		OutputFormat: getEnvOrDefault("LINTGATE_OUTPUT", config.DefaultOutput),
		Verbose:      os.Getenv("LINTGATE_VERBOSE") == "true",
		Parallel:     os.Getenv("LINTGATE_PARALLEL") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// buildRegistry creates a linter registry with project overrides applied
// and config file paths anchored at the project root.
func buildRegistry(cfg *config.Config) *linter.Registry {
	reg := linter.NewRegistry()
	reg.ResolveConfigFiles(cfg.RootDir)
	if len(cfg.Linters) > 0 {
		reg.ApplySettings(cfg.RootDir, cfg.Linters)
	}
	return reg
}

func createEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) (*engine.Engine, error) {
	if err := cfg.ValidateRoot(); err != nil {
		return nil, err
	}

	// Only wire the git backend when the root is actually a repository;
	// explicit-path runs work fine without one.
	var changes resolver.ChangeLister
	if git, err := vcs.NewGitClient(cfg.RootDir); err == nil && git.IsRepository(ctx) {
		changes = git
	}

	return engine.New(engine.Config{
		RootDir:  cfg.RootDir,
		Registry: buildRegistry(cfg),
		Changes:  changes,
		Logger:   logger,
		Out:      out,
	})
}
