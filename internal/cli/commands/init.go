package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/lintgate/internal/linter"
)

// initFileConfig is the YAML shape written by lintgate init.
type initFileConfig struct {
	Output  string                      `yaml:"output"`
	Linters map[string]initLinterConfig `yaml:"linters"`
}

type initLinterConfig struct {
	Command     string   `yaml:"command"`
	Interpreter string   `yaml:"interpreter,omitempty"`
	ConfigFlag  string   `yaml:"config_flag"`
	ConfigFile  string   `yaml:"config_file"`
	Extensions  []string `yaml:"extensions"`
	Batch       bool     `yaml:"batch,omitempty"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter lintgate.yaml",
		Long: `Create a lintgate.yaml in the project root pre-filled with the
built-in linter table, ready to be edited.`,
		Example: `  # Scaffold a config file in the current project
  lintgate init`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContextWithoutEngine(cmd)
			return runInit(cmdCtx, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing lintgate.yaml")

	return cmd
}

func runInit(cmdCtx *CommandContext, force bool) error {
	target := filepath.Join(cmdCtx.Cfg.RootDir, "lintgate.yaml")
	if _, err := os.Stat(target); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", target)
	}

	fileCfg := initFileConfig{
		Output:  "auto",
		Linters: make(map[string]initLinterConfig),
	}
	reg := linter.NewRegistry()
	for _, lang := range reg.Languages() {
		cfg := reg.Get(lang)
		fileCfg.Linters[string(lang)] = initLinterConfig{
			Command:     cfg.Command,
			Interpreter: cfg.Interpreter,
			ConfigFlag:  cfg.ConfigFlag,
			ConfigFile:  cfg.ConfigFile,
			Extensions:  cfg.Extensions,
			Batch:       cfg.Batch,
		}
	}

	data, err := yaml.Marshal(&fileCfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	cmdCtx.Renderer.Success("Created " + target)
	return nil
}
