package linter

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/lintgate/pkg/core"
)

// Config describes how to invoke one external linter.
type Config struct {
	// Language is the bucket this linter serves.
	Language core.Language

	// Command is the linter executable name or path.
	Command string

	// Interpreter, when set, is the binary the command runs under
	// (e.g. node for linters distributed as scripts).
	Interpreter string

	// ConfigFlag is the flag used to pass the configuration file.
	ConfigFlag string

	// ConfigFile is the path to the linter's configuration file.
	ConfigFile string

	// Extensions are the file extensions routed to this linter,
	// matched exactly and case-sensitively.
	Extensions []string

	// Batch runs the linter once over the whole bucket instead of
	// one process per file. Files are not individually distinguished
	// in that mode.
	Batch bool

	// Available records whether the command was found on the system.
	// Set by Runner.DetectAvailable.
	Available bool
}

// configArg renders the configuration argument in the tool's
// <flag>=<path> convention.
func (c *Config) configArg() string {
	return c.ConfigFlag + "=" + c.ConfigFile
}

// DefaultJavaScriptConfig is the configuration for jscs.
//
// jscs is distributed as a node script, so the command runs under the
// node interpreter. One process is spawned per file.
var DefaultJavaScriptConfig = Config{
	Language:    core.LanguageJavaScript,
	Command:     "jscs",
	Interpreter: "node",
	ConfigFlag:  "--config",
	ConfigFile:  ".jscsrc",
	Extensions:  []string{".js"},
}

// DefaultPythonConfig is the configuration for pylint.
//
// pylint accepts the whole file list in one invocation, so the bucket
// runs in batch mode: only an aggregate pass/fail is produced.
var DefaultPythonConfig = Config{
	Language:   core.LanguagePython,
	Command:    "pylint",
	ConfigFlag: "--rcfile",
	ConfigFile: ".pylintrc",
	Extensions: []string{".py"},
	Batch:      true,
}

// Registry manages linter configurations and the extension routing table.
//
// Thread safety: safe for concurrent use after initialization.
type Registry struct {
	mu      sync.RWMutex
	configs map[core.Language]*Config
	byExt   map[string]core.Language
}

// NewRegistry creates a registry pre-populated with the default linters.
func NewRegistry() *Registry {
	r := &Registry{
		configs: make(map[core.Language]*Config),
		byExt:   make(map[string]core.Language),
	}
	for _, def := range []Config{DefaultJavaScriptConfig, DefaultPythonConfig} {
		cfg := def
		r.register(&cfg)
	}
	return r
}

// Register adds or replaces the configuration for a language and rebuilds
// its extension routing entries.
func (r *Registry) Register(cfg *Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(cfg)
}

func (r *Registry) register(cfg *Config) {
	if old, ok := r.configs[cfg.Language]; ok {
		for _, ext := range old.Extensions {
			delete(r.byExt, ext)
		}
	}
	r.configs[cfg.Language] = cfg
	for _, ext := range cfg.Extensions {
		r.byExt[ext] = cfg.Language
	}
}

// Remove deletes a language's configuration and routing entries.
func (r *Registry) Remove(lang core.Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.configs[lang]
	if !ok {
		return
	}
	for _, ext := range cfg.Extensions {
		delete(r.byExt, ext)
	}
	delete(r.configs, lang)
}

// Get returns the configuration for a language, or nil if unknown.
func (r *Registry) Get(lang core.Language) *Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.configs[lang]
}

// Languages returns all registered languages in deterministic order.
func (r *Registry) Languages() []core.Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	langs := make([]core.Language, 0, len(r.configs))
	for lang := range r.configs {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// LanguageForPath routes a file path to a language by exact extension
// match. The second return value is false for unrecognized extensions,
// which are deliberately excluded from every bucket.
func (r *Registry) LanguageForPath(path string) (core.Language, bool) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	lang, ok := r.byExt[ext]
	return lang, ok
}

// SetAvailable records whether a language's linter command was found.
func (r *Registry) SetAvailable(lang core.Language, available bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cfg, ok := r.configs[lang]; ok {
		cfg.Available = available
	}
}

// ApplySettings overlays user configuration from lintgate.yaml onto the
// registry defaults. Keys are language tags; unknown keys create new
// entries only when they carry a command and extensions.
func (r *Registry) ApplySettings(rootDir string, settings map[string]core.LinterSettings) {
	for key, s := range settings {
		lang := core.Language(strings.ToLower(key))
		if s.Disabled {
			r.Remove(lang)
			continue
		}

		cfg := r.Get(lang)
		if cfg == nil {
			if s.Command == "" || len(s.Extensions) == 0 {
				continue
			}
			cfg = &Config{Language: lang, ConfigFlag: "--config"}
		}
		next := *cfg

		if s.Command != "" {
			next.Command = s.Command
		}
		if s.Interpreter != "" {
			next.Interpreter = s.Interpreter
		}
		if s.ConfigFlag != "" {
			next.ConfigFlag = s.ConfigFlag
		}
		if s.ConfigFile != "" {
			next.ConfigFile = s.ConfigFile
		}
		if len(s.Extensions) > 0 {
			next.Extensions = s.Extensions
		}
		if s.Batch != nil {
			next.Batch = *s.Batch
		}

		if next.ConfigFile != "" && !filepath.IsAbs(next.ConfigFile) {
			next.ConfigFile = filepath.Join(rootDir, next.ConfigFile)
		}

		r.Register(&next)
	}
}

// ResolveConfigFiles makes relative config file paths absolute against
// the project root.
func (r *Registry) ResolveConfigFiles(rootDir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cfg := range r.configs {
		if cfg.ConfigFile != "" && !filepath.IsAbs(cfg.ConfigFile) {
			cfg.ConfigFile = filepath.Join(rootDir, cfg.ConfigFile)
		}
	}
}
