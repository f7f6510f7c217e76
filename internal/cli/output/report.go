package output

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/lintgate/pkg/core"
)

// ReportOutput is the JSON shape of a run report.
type ReportOutput struct {
	RunID     string          `json:"run_id"`
	StartedAt time.Time       `json:"started_at"`
	ElapsedMS int64           `json:"elapsed_ms"`
	Failed    bool            `json:"failed"`
	Buckets   []SummaryOutput `json:"buckets"`
}

// SummaryOutput is the JSON shape of one bucket summary.
type SummaryOutput struct {
	Language            string `json:"language"`
	Status              string `json:"status"`
	FilesExamined       int    `json:"files_examined"`
	FilesWithViolations int    `json:"files_with_violations"`
	ElapsedMS           int64  `json:"elapsed_ms"`
	ToolError           string `json:"tool_error,omitempty"`
}

// NewReportOutput converts a report to its JSON shape.
func NewReportOutput(report *core.Report) ReportOutput {
	out := ReportOutput{
		RunID:     report.RunID,
		StartedAt: report.StartedAt,
		ElapsedMS: report.Elapsed.Milliseconds(),
		Failed:    report.Failed(),
	}
	for _, s := range report.Summaries {
		out.Buckets = append(out.Buckets, SummaryOutput{
			Language:            string(s.Language),
			Status:              s.Status.String(),
			FilesExamined:       s.FilesExamined,
			FilesWithViolations: s.FilesWithViolations,
			ElapsedMS:           s.Elapsed.Milliseconds(),
			ToolError:           s.ToolError,
		})
	}
	return out
}

// RenderReport writes the aggregated report in the renderer's mode: one
// line per language, with empty buckets reported as having nothing to
// lint. JSON mode emits the full machine-readable shape instead.
func (r *Renderer) RenderReport(report *core.Report) error {
	if r.EffectiveMode() == ModeJSON {
		return r.JSON(NewReportOutput(report))
	}

	r.Println()
	for _, s := range report.Summaries {
		r.Println(summaryLine(s))
	}

	if r.EffectiveMode() == ModeText && report.Failed() {
		r.Println()
		r.renderSummaryTable(report)
	}
	r.Println()
	return nil
}

// summaryLine renders one bucket summary as a single report line.
func summaryLine(s core.RunSummary) string {
	switch s.Status {
	case core.StatusNotApplicable:
		return fmt.Sprintf("SKIPPED   No %s files to lint", s.Language.Title())
	case core.StatusSuccess:
		return fmt.Sprintf("SUCCESS   %d %s files linted (%.1f secs)",
			s.FilesExamined, s.Language.Title(), s.Elapsed.Seconds())
	default:
		if s.ToolError != "" {
			return fmt.Sprintf("FAILED    %s linting aborted: linter failed", s.Language.Title())
		}
		if s.FilesWithViolations == 0 {
			// Batch buckets report an aggregate verdict only.
			return fmt.Sprintf("FAILED    %s linting failed", s.Language.Title())
		}
		return fmt.Sprintf("FAILED    %d %s files", s.FilesWithViolations, s.Language.Title())
	}
}

// renderSummaryTable prints a per-language breakdown table for failed
// terminal runs.
func (r *Renderer) renderSummaryTable(report *core.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Language", "Files", "With Violations", "Status", "Elapsed"})
	for _, s := range report.Summaries {
		if s.Status == core.StatusNotApplicable {
			continue
		}
		t.AppendRow(table.Row{
			s.Language.Title(),
			s.FilesExamined,
			s.FilesWithViolations,
			s.Status.String(),
			s.Elapsed.Round(time.Millisecond).String(),
		})
	}
	t.Render()
}
