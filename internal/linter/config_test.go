package linter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lintgate/pkg/core"
)

func TestNewRegistryDefaults(t *testing.T) {
	reg := NewRegistry()

	assert.Equal(t, []core.Language{core.LanguageJavaScript, core.LanguagePython}, reg.Languages())

	js := reg.Get(core.LanguageJavaScript)
	require.NotNil(t, js)
	assert.Equal(t, "jscs", js.Command)
	assert.Equal(t, "node", js.Interpreter)
	assert.False(t, js.Batch)

	py := reg.Get(core.LanguagePython)
	require.NotNil(t, py)
	assert.Equal(t, "pylint", py.Command)
	assert.True(t, py.Batch)
}

func TestLanguageForPath(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		path string
		want core.Language
		ok   bool
	}{
		{"app/main.js", core.LanguageJavaScript, true},
		{"core/storage.py", core.LanguagePython, true},
		{"README.md", "", false},
		{"notes.txt", "", false},
		{"Makefile", "", false},
		{"weird.JS", "", false}, // extension match is case-sensitive
	}
	for _, tt := range tests {
		lang, ok := reg.LanguageForPath(tt.path)
		assert.Equal(t, tt.ok, ok, "path %q", tt.path)
		assert.Equal(t, tt.want, lang, "path %q", tt.path)
	}
}

func TestRegisterReplacesExtensions(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&Config{
		Language:   core.LanguageJavaScript,
		Command:    "eslint",
		ConfigFlag: "--config",
		Extensions: []string{".jsx"},
	})

	// Old extension no longer routes
	_, ok := reg.LanguageForPath("a.js")
	assert.False(t, ok)

	lang, ok := reg.LanguageForPath("a.jsx")
	require.True(t, ok)
	assert.Equal(t, core.LanguageJavaScript, lang)
}

func TestRemove(t *testing.T) {
	reg := NewRegistry()
	reg.Remove(core.LanguagePython)

	assert.Nil(t, reg.Get(core.LanguagePython))
	_, ok := reg.LanguageForPath("a.py")
	assert.False(t, ok)
	assert.Equal(t, []core.Language{core.LanguageJavaScript}, reg.Languages())
}

func TestApplySettings(t *testing.T) {
	root := t.TempDir()

	t.Run("override existing", func(t *testing.T) {
		reg := NewRegistry()
		batch := false
		reg.ApplySettings(root, map[string]core.LinterSettings{
			"python": {
				Command:    "ruff",
				ConfigFlag: "--config",
				ConfigFile: "ruff.toml",
				Batch:      &batch,
			},
		})

		py := reg.Get(core.LanguagePython)
		require.NotNil(t, py)
		assert.Equal(t, "ruff", py.Command)
		assert.Equal(t, "--config", py.ConfigFlag)
		assert.Equal(t, filepath.Join(root, "ruff.toml"), py.ConfigFile)
		assert.False(t, py.Batch)
		// Extensions kept from the default
		assert.Equal(t, []string{".py"}, py.Extensions)
	})

	t.Run("disable removes language", func(t *testing.T) {
		reg := NewRegistry()
		reg.ApplySettings(root, map[string]core.LinterSettings{
			"javascript": {Disabled: true},
		})
		assert.Nil(t, reg.Get(core.LanguageJavaScript))
	})

	t.Run("new language needs command and extensions", func(t *testing.T) {
		reg := NewRegistry()
		reg.ApplySettings(root, map[string]core.LinterSettings{
			"rust": {Command: "clippy-driver"},
		})
		assert.Nil(t, reg.Get(core.Language("rust")))

		reg.ApplySettings(root, map[string]core.LinterSettings{
			"rust": {Command: "clippy-driver", Extensions: []string{".rs"}},
		})
		rust := reg.Get(core.Language("rust"))
		require.NotNil(t, rust)
		lang, ok := reg.LanguageForPath("lib.rs")
		assert.True(t, ok)
		assert.Equal(t, core.Language("rust"), lang)
	})
}

func TestConfigArg(t *testing.T) {
	cfg := &Config{ConfigFlag: "--rcfile", ConfigFile: "/repo/.pylintrc"}
	assert.Equal(t, "--rcfile=/repo/.pylintrc", cfg.configArg())
}
