package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lintgate/internal/cli/config"
)

func TestLintersJSON(t *testing.T) {
	config.ResetConfig()
	root := t.TempDir()
	t.Setenv("LINTGATE_ROOT_DIR", root)

	out, _, err := executeCommand(t, NewLintersCommand(), "--format", "json")
	require.NoError(t, err)

	var infos []LinterInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 2)

	assert.Equal(t, "javascript", infos[0].Language)
	assert.Equal(t, "jscs", infos[0].Command)
	assert.Equal(t, "node", infos[0].Interpreter)
	assert.Equal(t, filepath.Join(root, ".jscsrc"), infos[0].ConfigFile)
	assert.False(t, infos[0].Batch)

	assert.Equal(t, "python", infos[1].Language)
	assert.Equal(t, "pylint", infos[1].Command)
	assert.Equal(t, filepath.Join(root, ".pylintrc"), infos[1].ConfigFile)
	assert.True(t, infos[1].Batch)
}

func TestLintersTable(t *testing.T) {
	config.ResetConfig()
	root := t.TempDir()
	t.Setenv("LINTGATE_ROOT_DIR", root)

	out, _, err := executeCommand(t, NewLintersCommand(), "--format", "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "Configured linters")
	assert.Contains(t, out, "node jscs")
	assert.Contains(t, out, "pylint")
	assert.Contains(t, out, "batch")
	assert.Contains(t, out, "per-file")
}
