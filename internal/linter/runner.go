// Package linter invokes external lint tools and classifies their results.
//
// Each invocation follows the convention
//
//	<tool> <config-flag>=<config-path> <file-path>
//
// with stdout treated as lint-violation text and stderr as tool-failure
// text. The package never inspects the content of linted files; it is a
// dispatch layer over opaque external validators.
package linter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/leapstack-labs/lintgate/pkg/core"
)

// Sentinel errors returned by the runner.
var (
	// ErrNotInstalled means the linter command was not found on PATH.
	ErrNotInstalled = errors.New("linter not installed")
	// ErrUnsupportedLanguage means no linter is registered for the language.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Runner executes external linters and classifies each invocation.
//
// Thread safety: safe for concurrent use.
type Runner struct {
	workingDir string
	logger     *slog.Logger
}

// Option configures the Runner.
type Option func(*Runner)

// WithWorkingDir sets the directory linter processes run in. Candidate
// paths are interpreted relative to it.
func WithWorkingDir(dir string) Option {
	return func(r *Runner) {
		r.workingDir = dir
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DetectAvailable probes the system PATH for every registered linter and
// records availability on the registry. Returns a map of language to
// availability.
func (r *Runner) DetectAvailable(reg *Registry) map[core.Language]bool {
	result := make(map[core.Language]bool)
	for _, lang := range reg.Languages() {
		cfg := reg.Get(lang)
		if cfg == nil {
			continue
		}

		probe := cfg.Command
		if cfg.Interpreter != "" {
			probe = cfg.Interpreter
		}
		_, err := exec.LookPath(probe)
		available := err == nil

		reg.SetAvailable(lang, available)
		result[lang] = available

		if available {
			r.logger.Debug("linter available", "language", lang, "command", cfg.Command)
		} else {
			r.logger.Warn("linter not installed", "language", lang, "command", probe)
		}
	}
	return result
}

// LintFile runs the linter on a single file and classifies the outcome.
//
// Classification:
//   - stderr received bytes: the linter infrastructure itself failed,
//     the outcome is a tool error.
//   - the process failed with nothing on stdout: tool error.
//   - stdout received bytes: lint violations.
//   - otherwise: clean.
//
// The returned error is non-nil only for invocation plumbing failures
// (nil config, process could not be started at all is folded into the
// tool-error outcome).
func (r *Runner) LintFile(ctx context.Context, cfg *Config, file string) (core.Outcome, error) {
	if cfg == nil {
		return core.Outcome{}, ErrUnsupportedLanguage
	}

	stdout, stderr, runErr := r.execute(ctx, cfg, []string{file})
	outcome := classify(stdout, stderr, runErr)
	outcome.File = file

	r.logger.Debug("lint invocation finished",
		"language", cfg.Language,
		"file", file,
		"outcome", outcome.Kind.String(),
	)
	return outcome, ctx.Err()
}

// LintBatch runs the linter once over the whole file list. Files are not
// individually distinguished: the outcome is an aggregate pass/fail for
// the batch, classified by exit status and diagnostic output.
func (r *Runner) LintBatch(ctx context.Context, cfg *Config, files []string) (core.Outcome, error) {
	if cfg == nil {
		return core.Outcome{}, ErrUnsupportedLanguage
	}

	stdout, stderr, runErr := r.execute(ctx, cfg, files)
	outcome := classify(stdout, stderr, runErr)

	r.logger.Debug("batch lint invocation finished",
		"language", cfg.Language,
		"files", len(files),
		"outcome", outcome.Kind.String(),
	)
	return outcome, ctx.Err()
}

// execute spawns the linter process and drains both streams.
func (r *Runner) execute(ctx context.Context, cfg *Config, files []string) (stdout, stderr []byte, err error) {
	name := cfg.Command
	args := make([]string, 0, len(files)+2)
	if cfg.Interpreter != "" {
		name = cfg.Interpreter
		args = append(args, cfg.Command)
	}
	args = append(args, cfg.configArg())
	args = append(args, files...)

	cmd := exec.CommandContext(ctx, name, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// classify maps process streams and exit status to an outcome.
//
// The error stream is the primary tool-failure signal: misconfigured
// linter infrastructure reports there, lint findings do not. The exit
// status backs it up for tools that crash without writing to stderr.
func classify(stdout, stderr []byte, runErr error) core.Outcome {
	if len(bytes.TrimSpace(stderr)) > 0 {
		return core.Outcome{Kind: core.OutcomeToolError, Diagnostics: string(stderr)}
	}
	if runErr != nil && len(bytes.TrimSpace(stdout)) == 0 {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// The process could not be started at all.
			return core.Outcome{Kind: core.OutcomeToolError, Diagnostics: runErr.Error()}
		}
		return core.Outcome{
			Kind:        core.OutcomeToolError,
			Diagnostics: fmt.Sprintf("linter exited with %d and no output", exitErr.ExitCode()),
		}
	}
	if len(bytes.TrimSpace(stdout)) > 0 || runErr != nil {
		return core.Outcome{Kind: core.OutcomeViolations, Diagnostics: string(stdout)}
	}
	return core.Outcome{Kind: core.OutcomeClean}
}

// StreamDiagnostics writes an outcome's raw diagnostic text to w
// immediately, independent of the final aggregated summary.
func StreamDiagnostics(w io.Writer, outcome core.Outcome) {
	if outcome.Diagnostics == "" {
		return
	}
	fmt.Fprintln(w, outcome.Diagnostics)
}
