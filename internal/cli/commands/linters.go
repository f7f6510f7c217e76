package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/lintgate/internal/cli/output"
	"github.com/leapstack-labs/lintgate/internal/linter"
)

// LintersOptions holds options for the linters command.
type LintersOptions struct {
	Format string // Output format: text, markdown, json
}

// LinterInfo is the JSON shape of one linter entry.
type LinterInfo struct {
	Language    string   `json:"language"`
	Command     string   `json:"command"`
	Interpreter string   `json:"interpreter,omitempty"`
	ConfigFile  string   `json:"config_file"`
	Extensions  []string `json:"extensions"`
	Batch       bool     `json:"batch"`
	Available   bool     `json:"available"`
}

// NewLintersCommand creates the linters command.
func NewLintersCommand() *cobra.Command {
	opts := &LintersOptions{}
	cmd := &cobra.Command{
		Use:   "linters",
		Short: "List configured linters",
		Long: `Show every configured linter, the extensions routed to it, its
configuration file, and whether its command is installed.`,
		Example: `  # List linters
  lintgate linters

  # Output as JSON
  lintgate linters --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLinters(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runLinters(cmd *cobra.Command, opts *LintersOptions) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	reg := buildRegistry(cmdCtx.Cfg)
	runner := linter.NewRunner(linter.WithLogger(cmdCtx.Logger))
	runner.DetectAvailable(reg)

	var infos []LinterInfo
	for _, lang := range reg.Languages() {
		cfg := reg.Get(lang)
		infos = append(infos, LinterInfo{
			Language:    string(cfg.Language),
			Command:     cfg.Command,
			Interpreter: cfg.Interpreter,
			ConfigFile:  cfg.ConfigFile,
			Extensions:  cfg.Extensions,
			Batch:       cfg.Batch,
			Available:   cfg.Available,
		})
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	r.Header("Configured linters")
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Language", "Command", "Extensions", "Config", "Mode", "Installed"})
	for _, info := range infos {
		command := info.Command
		if info.Interpreter != "" {
			command = info.Interpreter + " " + command
		}
		mode := "per-file"
		if info.Batch {
			mode = "batch"
		}
		installed := "no"
		if info.Available {
			installed = "yes"
		}
		t.AppendRow(table.Row{
			info.Language,
			command,
			strings.Join(info.Extensions, ", "),
			info.ConfigFile,
			mode,
			installed,
		})
	}
	t.Render()
	return nil
}
