package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/lintgate/internal/linter"
	"github.com/leapstack-labs/lintgate/pkg/core"
)

// divider separates per-bucket output sections.
const divider = "----------------------------------------"

// RunOptions holds options for one run.
type RunOptions struct {
	// Path restricts the run to an explicit file or directory. Empty
	// means "lint the current version-control change set".
	Path string
	// Parallel runs independent language buckets concurrently. Bucket
	// output is buffered so diagnostic ordering within each bucket is
	// preserved.
	Parallel bool
}

// Run executes the full pipeline and returns the aggregated report.
//
// A non-nil error is a fatal precondition failure (explicit path not
// found, required linter not installed, version control unavailable):
// nothing was linted. Lint violations and tool errors are not errors
// here; they surface as Failure summaries in the report.
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*core.Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	e.logger.Info("starting run", "run_id", runID, "path", opts.Path)

	candidates, err := e.resolver.Resolve(ctx, opts.Path)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("candidate set resolved", "run_id", runID, "files", len(candidates))

	buckets := e.partition(candidates)

	// Every language with work to do must have its tool installed
	// before any linting begins.
	available := e.runner.DetectAvailable(e.registry)
	for _, lang := range e.registry.Languages() {
		if len(buckets[lang]) > 0 && !available[lang] {
			cfg := e.registry.Get(lang)
			return nil, fmt.Errorf("%w: %s (%s)", linter.ErrNotInstalled, cfg.Command, lang)
		}
	}

	langs := e.registry.Languages()
	summaries := make([]core.RunSummary, len(langs))

	if opts.Parallel {
		buffers := make([]bytes.Buffer, len(langs))
		eg, egctx := errgroup.WithContext(ctx)
		for i, lang := range langs {
			eg.Go(func() error {
				summaries[i] = e.lintBucket(egctx, lang, buckets[lang], &buffers[i])
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		for i := range buffers {
			_, _ = io.Copy(e.out, &buffers[i])
		}
	} else {
		for i, lang := range langs {
			summaries[i] = e.lintBucket(ctx, lang, buckets[lang], e.out)
		}
	}

	report := &core.Report{
		RunID:     runID,
		StartedAt: start,
		Elapsed:   time.Since(start),
		Summaries: summaries,
	}

	if report.Failed() {
		e.logger.Info("run failed", "run_id", runID, "elapsed", report.Elapsed)
	} else {
		e.logger.Info("run completed", "run_id", runID, "elapsed", report.Elapsed)
	}
	return report, nil
}

// lintBucket drives the linter over one language bucket and folds the
// per-invocation outcomes into a summary. Raw diagnostics and progress
// lines go to w as they are produced.
func (e *Engine) lintBucket(ctx context.Context, lang core.Language, files []string, w io.Writer) core.RunSummary {
	cfg := e.registry.Get(lang)
	summary := core.RunSummary{Language: lang}

	fmt.Fprintln(w, divider)
	if len(files) == 0 {
		summary.Status = core.StatusNotApplicable
		fmt.Fprintf(w, "There are no %s files to lint.\n", lang.Title())
		fmt.Fprintln(w, divider)
		return summary
	}

	start := time.Now()
	if cfg.Batch {
		e.lintBatch(ctx, cfg, files, w, &summary)
	} else {
		e.lintPerFile(ctx, cfg, files, w, &summary)
	}
	summary.Elapsed = time.Since(start)

	fmt.Fprintln(w, divider)
	return summary
}

// lintPerFile spawns one linter process per file, in candidate order.
// A tool error is fatal to the bucket: remaining files are never invoked.
func (e *Engine) lintPerFile(ctx context.Context, cfg *linter.Config, files []string, w io.Writer, summary *core.RunSummary) {
	for i, file := range files {
		fmt.Fprintf(w, "Linting file %d/%d: %s ...\n", i+1, len(files), file)

		outcome, err := e.runner.LintFile(ctx, cfg, file)
		if err != nil {
			summary.FilesExamined++
			summary.Status = core.StatusFailure
			summary.ToolError = err.Error()
			fmt.Fprintln(w, "LINTER FAILED")
			fmt.Fprintln(w, err.Error())
			return
		}
		summary.FilesExamined++

		switch outcome.Kind {
		case core.OutcomeToolError:
			summary.Status = core.StatusFailure
			summary.ToolError = outcome.Diagnostics
			fmt.Fprintln(w, "LINTER FAILED")
			linter.StreamDiagnostics(w, outcome)
			return
		case core.OutcomeViolations:
			summary.FilesWithViolations++
			linter.StreamDiagnostics(w, outcome)
		case core.OutcomeClean:
		}
	}

	if summary.FilesWithViolations > 0 {
		summary.Status = core.StatusFailure
	} else {
		summary.Status = core.StatusSuccess
	}
}

// lintBatch runs the linter once over the whole bucket. Files are not
// individually distinguished; only an aggregate pass/fail is produced.
func (e *Engine) lintBatch(ctx context.Context, cfg *linter.Config, files []string, w io.Writer, summary *core.RunSummary) {
	fmt.Fprintf(w, "Linting %d files\n\n", len(files))
	summary.FilesExamined = len(files)

	outcome, err := e.runner.LintBatch(ctx, cfg, files)
	if err != nil {
		summary.Status = core.StatusFailure
		summary.ToolError = err.Error()
		fmt.Fprintln(w, "LINTER FAILED")
		fmt.Fprintln(w, err.Error())
		return
	}

	switch outcome.Kind {
	case core.OutcomeToolError:
		summary.Status = core.StatusFailure
		summary.ToolError = outcome.Diagnostics
		fmt.Fprintln(w, "LINTER FAILED")
		linter.StreamDiagnostics(w, outcome)
	case core.OutcomeViolations:
		// Batch mode cannot attribute findings to individual files,
		// so only the aggregate verdict is recorded.
		summary.Status = core.StatusFailure
		linter.StreamDiagnostics(w, outcome)
	case core.OutcomeClean:
		summary.Status = core.StatusSuccess
	}
}
