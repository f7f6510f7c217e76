package core

import "time"

// =============================================================================
// Language
// =============================================================================

// Language identifies one of the recognized linting languages.
type Language string

// Recognized languages. The set is closed: files whose extension maps to
// none of these are excluded from every run.
const (
	LanguageJavaScript Language = "javascript"
	LanguagePython     Language = "python"
)

// Title returns a human-readable name for the language.
func (l Language) Title() string {
	switch l {
	case LanguageJavaScript:
		return "JavaScript"
	case LanguagePython:
		return "Python"
	default:
		return string(l)
	}
}

// =============================================================================
// Outcome
// =============================================================================

// OutcomeKind classifies the result of one lint invocation.
type OutcomeKind int

// Outcome kinds for a single invocation.
const (
	// OutcomeClean means the tool produced no diagnostics and exited cleanly.
	OutcomeClean OutcomeKind = iota
	// OutcomeViolations means the tool ran and reported lint findings.
	OutcomeViolations
	// OutcomeToolError means the tool itself failed to execute or crashed.
	OutcomeToolError
)

// String returns the string representation of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeClean:
		return "clean"
	case OutcomeViolations:
		return "violations"
	case OutcomeToolError:
		return "tool_error"
	default:
		return "unknown"
	}
}

// Outcome is the result of linting one file (or one batch invocation).
// Outcomes are transient: they are folded into the bucket's RunSummary as
// soon as they are produced and are not retained afterwards.
type Outcome struct {
	File        string
	Kind        OutcomeKind
	Diagnostics string
}

// =============================================================================
// RunSummary
// =============================================================================

// BucketStatus is the aggregate verdict for one language bucket.
type BucketStatus int

// Bucket statuses.
const (
	// StatusNotApplicable means the bucket contained no files.
	StatusNotApplicable BucketStatus = iota
	// StatusSuccess means every file in the bucket came back clean.
	StatusSuccess
	// StatusFailure means at least one file had violations or a tool error
	// aborted the bucket.
	StatusFailure
)

// String returns the string representation of the bucket status.
func (s BucketStatus) String() string {
	switch s {
	case StatusNotApplicable:
		return "not_applicable"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// RunSummary aggregates the outcomes of one language bucket.
type RunSummary struct {
	Language            Language
	FilesExamined       int
	FilesWithViolations int
	Elapsed             time.Duration
	Status              BucketStatus

	// ToolError carries the diagnostic text of the tool failure that
	// aborted the bucket, if any.
	ToolError string
}

// =============================================================================
// Report
// =============================================================================

// Report is the final result of one lintgate run: one RunSummary per
// recognized language, in a fixed language order.
type Report struct {
	RunID     string
	StartedAt time.Time
	Elapsed   time.Duration
	Summaries []RunSummary
}

// Failed reports whether any bucket in the run failed.
func (r *Report) Failed() bool {
	for _, s := range r.Summaries {
		if s.Status == StatusFailure {
			return true
		}
	}
	return false
}

// Summary returns the run summary for the given language, or nil if the
// report does not contain one.
func (r *Report) Summary(lang Language) *RunSummary {
	for i := range r.Summaries {
		if r.Summaries[i].Language == lang {
			return &r.Summaries[i]
		}
	}
	return nil
}
