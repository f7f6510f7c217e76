package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/lintgate/internal/cli/config"
	"github.com/leapstack-labs/lintgate/internal/cli/output"
	"github.com/leapstack-labs/lintgate/internal/linter"
	"github.com/leapstack-labs/lintgate/internal/vcs"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, markdown, json
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	RootDir    string        `json:"root_dir"`
	ConfigFile string        `json:"config_file,omitempty"`
	GitRepo    bool          `json:"git_repository"`
	Checks     []HealthCheck `json:"checks"`
	IssueCount int           `json:"issue_count"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "pass", "warn", "fail"
	Details string `json:"details,omitempty"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that lintgate can run in this project",
		Long: `Verify the preconditions of a lintgate run: the project root exists,
each configured linter is installed, each linter configuration file is
present, and the version-control backend answers change-set queries.

Nothing is linted; doctor only reports what a run would find.`,
		Example: `  # Run the health check
  lintgate doctor

  # Output as JSON
  lintgate doctor --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	cfg := cmdCtx.Cfg

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	doctorOut := buildDoctorOutput(cmd.Context(), cmdCtx)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(doctorOut)
	}

	titler := cases.Title(language.English)
	r.Header("lintgate doctor")
	r.Printf("Project root: %s\n", cfg.RootDir)
	if doctorOut.ConfigFile != "" {
		r.Printf("Config file:  %s\n", doctorOut.ConfigFile)
	}
	r.Println()

	for _, check := range doctorOut.Checks {
		marker := "✓"
		if check.Status == "fail" {
			marker = "✗"
		} else if check.Status == "warn" {
			marker = "!"
		}
		line := fmt.Sprintf("%s %s", marker, titler.String(check.Name))
		if check.Details != "" {
			line += " — " + check.Details
		}
		r.Println(line)
	}

	r.Println()
	if doctorOut.IssueCount > 0 {
		return fmt.Errorf("%d issue(s) found", doctorOut.IssueCount)
	}
	r.Success("No issues found")
	return nil
}

func buildDoctorOutput(ctx context.Context, cmdCtx *CommandContext) DoctorOutput {
	cfg := cmdCtx.Cfg
	out := DoctorOutput{RootDir: cfg.RootDir}

	if configFile := config.GetConfigFileUsed(); configFile != "" {
		out.ConfigFile = configFile
	}

	// Project root
	if err := cfg.ValidateRoot(); err != nil {
		out.Checks = append(out.Checks, HealthCheck{
			Name: "project root", Status: "fail", Details: err.Error(),
		})
		out.IssueCount++
		return out
	}
	out.Checks = append(out.Checks, HealthCheck{Name: "project root", Status: "pass"})

	// Linter installation and configuration files
	reg := buildRegistry(cfg)
	runner := linter.NewRunner(linter.WithLogger(cmdCtx.Logger))
	available := runner.DetectAvailable(reg)

	for _, lang := range reg.Languages() {
		lcfg := reg.Get(lang)
		name := fmt.Sprintf("%s linter (%s)", lang, lcfg.Command)

		if !available[lang] {
			out.Checks = append(out.Checks, HealthCheck{
				Name: name, Status: "fail", Details: "command not found on PATH",
			})
			out.IssueCount++
			continue
		}
		out.Checks = append(out.Checks, HealthCheck{Name: name, Status: "pass"})

		if lcfg.ConfigFile != "" {
			if _, err := os.Stat(lcfg.ConfigFile); err != nil {
				out.Checks = append(out.Checks, HealthCheck{
					Name:    fmt.Sprintf("%s config file", lang),
					Status:  "warn",
					Details: fmt.Sprintf("%s not found", lcfg.ConfigFile),
				})
			}
		}
	}

	// Version control
	git, err := vcs.NewGitClient(cfg.RootDir)
	if err == nil && git.IsRepository(ctx) {
		out.GitRepo = true
		out.Checks = append(out.Checks, HealthCheck{Name: "git repository", Status: "pass"})
	} else {
		out.Checks = append(out.Checks, HealthCheck{
			Name:    "git repository",
			Status:  "warn",
			Details: "not a git repository; change-set runs will not work",
		})
	}

	return out
}
