package output

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lintgate/pkg/core"
)

func sampleReport() *core.Report {
	return &core.Report{
		RunID:     "run-1",
		StartedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Elapsed:   3 * time.Second,
		Summaries: []core.RunSummary{
			{
				Language:      core.LanguageJavaScript,
				FilesExamined: 0,
				Status:        core.StatusNotApplicable,
			},
			{
				Language:      core.LanguagePython,
				FilesExamined: 4,
				Elapsed:       2500 * time.Millisecond,
				Status:        core.StatusSuccess,
			},
		},
	}
}

func TestSummaryLine(t *testing.T) {
	tests := []struct {
		name    string
		summary core.RunSummary
		want    string
	}{
		{
			"not applicable",
			core.RunSummary{Language: core.LanguageJavaScript, Status: core.StatusNotApplicable},
			"SKIPPED   No JavaScript files to lint",
		},
		{
			"success",
			core.RunSummary{
				Language:      core.LanguagePython,
				FilesExamined: 4,
				Elapsed:       2500 * time.Millisecond,
				Status:        core.StatusSuccess,
			},
			"SUCCESS   4 Python files linted (2.5 secs)",
		},
		{
			"violations",
			core.RunSummary{
				Language:            core.LanguageJavaScript,
				FilesExamined:       3,
				FilesWithViolations: 2,
				Status:              core.StatusFailure,
			},
			"FAILED    2 JavaScript files",
		},
		{
			"tool error",
			core.RunSummary{
				Language:  core.LanguagePython,
				Status:    core.StatusFailure,
				ToolError: "pylint exited with 32 and no output",
			},
			"FAILED    Python linting aborted: linter failed",
		},
		{
			"batch failure",
			core.RunSummary{
				Language:      core.LanguagePython,
				FilesExamined: 4,
				Status:        core.StatusFailure,
			},
			"FAILED    Python linting failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summaryLine(tt.summary))
		})
	}
}

func TestRenderReportText(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown)
	require.NoError(t, r.RenderReport(sampleReport()))

	assert.Contains(t, out.String(), "SKIPPED   No JavaScript files to lint")
	assert.Contains(t, out.String(), "SUCCESS   4 Python files linted (2.5 secs)")
}

func TestRenderReportJSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON)
	report := sampleReport()
	report.Summaries[0] = core.RunSummary{
		Language:  core.LanguageJavaScript,
		Status:    core.StatusFailure,
		ToolError: "jscs crashed",
	}
	require.NoError(t, r.RenderReport(report))

	var decoded ReportOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))

	assert.Equal(t, "run-1", decoded.RunID)
	assert.Equal(t, int64(3000), decoded.ElapsedMS)
	assert.True(t, decoded.Failed)
	require.Len(t, decoded.Buckets, 2)
	assert.Equal(t, "javascript", decoded.Buckets[0].Language)
	assert.Equal(t, "failure", decoded.Buckets[0].Status)
	assert.Equal(t, "jscs crashed", decoded.Buckets[0].ToolError)
	assert.Equal(t, "python", decoded.Buckets[1].Language)
	assert.Equal(t, "success", decoded.Buckets[1].Status)
}

func TestNewReportOutputOmitsEmptyToolError(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON)
	require.NoError(t, r.RenderReport(sampleReport()))
	assert.NotContains(t, out.String(), "tool_error")
}
