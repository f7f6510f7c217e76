package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/lintgate/internal/cli/output"
	"github.com/leapstack-labs/lintgate/internal/engine"
	"github.com/leapstack-labs/lintgate/internal/linter"
	"github.com/leapstack-labs/lintgate/internal/resolver"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Path     string // File or directory path restricting the run
	Format   string // Output format: text, markdown, json
	Parallel bool   // Run language buckets concurrently
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Lint the current change set or an explicit path",
		Long: `Run every configured linter over the relevant files and report a
single pass/fail verdict.

Without a path, the candidate set is the version-control change set:
files changed but not staged, followed by files staged for commit
(added, copied or modified). With a file path, only that file is
linted; with a directory path, every file under it.

Files whose extension matches no configured linter are skipped
silently. The command exits non-zero when any language bucket fails.`,
		Example: `  # Lint the files touched by the current change
  lintgate check

  # Lint one file, regardless of version-control state
  lintgate check core/storage.py

  # Lint everything under a directory
  lintgate check core/templates/

  # Run language buckets concurrently
  lintgate check --parallel

  # Machine-readable report for CI
  lintgate check --format json`,
		Aliases: []string{"lint", "run"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false, "Lint language buckets concurrently")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	// JSON mode keeps stdout clean for the report; progress lines and
	// raw linter diagnostics are suppressed.
	engineOut := cmd.OutOrStdout()
	if r.EffectiveMode() == output.ModeJSON {
		engineOut = io.Discard
	}

	eng, err := createEngine(cmd.Context(), cmdCtx.Cfg, cmdCtx.Logger, engineOut)
	if err != nil {
		return err
	}

	// Explicit paths are given relative to where the user ran the
	// command, not the inferred project root.
	if opts.Path != "" && !filepath.IsAbs(opts.Path) {
		if abs, absErr := filepath.Abs(opts.Path); absErr == nil {
			opts.Path = abs
		}
	}

	report, err := eng.Run(cmd.Context(), engine.RunOptions{
		Path:     opts.Path,
		Parallel: opts.Parallel || cmdCtx.Cfg.Parallel,
	})
	if err != nil {
		// Precondition failures abort before any linting
		switch {
		case errors.Is(err, resolver.ErrPathNotFound):
			return fmt.Errorf("could not locate file or directory %s", opts.Path)
		case errors.Is(err, linter.ErrNotInstalled):
			return fmt.Errorf("%w\nHint: install the linter or disable its language in lintgate.yaml", err)
		default:
			return err
		}
	}

	if renderErr := r.RenderReport(report); renderErr != nil {
		return renderErr
	}

	if report.Failed() {
		return fmt.Errorf("lint checks failed")
	}
	return nil
}
