package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lintgate/internal/cli/config"
	"github.com/leapstack-labs/lintgate/internal/cli/output"
)

// writeScript creates an executable shell script acting as a fake linter.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake linter scripts require a POSIX shell")
	}
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// setupProject builds a project root with one Python file, a fake pylint
// replacement, and a lintgate.yaml wiring it in. The loaded config is
// installed as the current one for the duration of the test.
func setupProject(t *testing.T, linterBody string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.py"), []byte("x = 1\n"), 0o644))

	script := writeScript(t, root, "fake-pylint", linterBody)
	yaml := fmt.Sprintf(`linters:
  python:
    command: %s
    batch: false
  javascript:
    disabled: true
`, script)
	cfgPath := filepath.Join(root, "lintgate.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o644))

	t.Cleanup(config.ResetConfig)
	_, err := config.LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	return root
}

func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	// The production root command sets SilenceUsage; mirror it so usage
	// text is not appended to stdout when the command errors.
	cmd.SilenceUsage = true
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()

	assert.Equal(t, "check [path]", cmd.Use)
	assert.Contains(t, cmd.Aliases, "lint")
	assert.Contains(t, cmd.Aliases, "run")
	assert.NotNil(t, cmd.Flags().Lookup("format"))
	assert.NotNil(t, cmd.Flags().Lookup("parallel"))

	// At most one positional argument
	assert.Error(t, cmd.Args(cmd, []string{"a", "b"}))
	assert.NoError(t, cmd.Args(cmd, []string{"a"}))
	assert.NoError(t, cmd.Args(cmd, nil))
}

func TestCheckCleanRun(t *testing.T) {
	root := setupProject(t, "exit 0")

	out, _, err := executeCommand(t, NewCheckCommand(),
		filepath.Join(root, "src"), "--format", "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "Linting file 1/1")
	assert.Contains(t, out, "SUCCESS   1 Python files linted")
	assert.Contains(t, out, "SKIPPED   No JavaScript files to lint")
}

func TestCheckFailingRun(t *testing.T) {
	root := setupProject(t, `echo "a.py:1: bad indentation"`)

	out, _, err := executeCommand(t, NewCheckCommand(),
		filepath.Join(root, "src"), "--format", "markdown")
	require.Error(t, err)
	assert.EqualError(t, err, "lint checks failed")

	assert.Contains(t, out, "bad indentation")
	assert.Contains(t, out, "FAILED    1 Python files")
}

func TestCheckJSONKeepsStdoutClean(t *testing.T) {
	root := setupProject(t, `echo "a.py:1: bad indentation"`)

	out, _, err := executeCommand(t, NewCheckCommand(),
		filepath.Join(root, "src"), "--format", "json")
	require.Error(t, err)

	// Stdout holds exactly the JSON report, no progress lines
	var report output.ReportOutput
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Failed)
	assert.NotContains(t, out, "Linting file")
}

func TestCheckPathNotFound(t *testing.T) {
	root := setupProject(t, "exit 0")

	_, _, err := executeCommand(t, NewCheckCommand(),
		filepath.Join(root, "no-such-dir"), "--format", "markdown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not locate file or directory")
}

func TestCheckMissingLinterHint(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.py"), []byte("x = 1\n"), 0o644))

	yaml := fmt.Sprintf(`linters:
  python:
    command: %s
  javascript:
    disabled: true
`, filepath.Join(root, "definitely-not-installed"))
	cfgPath := filepath.Join(root, "lintgate.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o644))

	t.Cleanup(config.ResetConfig)
	_, err := config.LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	_, _, err = executeCommand(t, NewCheckCommand(),
		filepath.Join(root, "src"), "--format", "markdown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "linter not installed")
	assert.Contains(t, err.Error(), "Hint:")
}
