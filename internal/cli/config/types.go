// Package config provides configuration management for the lintgate CLI.
//
// Configuration is layered: built-in defaults, then lintgate.yaml, then
// LINTGATE_* environment variables, then CLI flags, each layer
// overriding the one below it.
package config

import "github.com/leapstack-labs/lintgate/pkg/core"

// LinterSettings is an alias for the shared linter settings type.
// This allows CLI code to use config.LinterSettings without importing
// pkg/core.
type LinterSettings = core.LinterSettings

// Config holds all CLI configuration options.
type Config struct {
	// RootDir is the project root. All candidate paths, linter config
	// files and linter processes are anchored here; the CLI never
	// relies on the ambient working directory beyond inferring this
	// value once at startup.
	RootDir string `koanf:"root_dir"`

	// OutputFormat selects the rendering mode (auto|text|markdown|json).
	OutputFormat string `koanf:"output"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// Parallel runs independent language buckets concurrently.
	Parallel bool `koanf:"parallel"`

	// Linters overlays per-language linter settings onto the built-in
	// defaults, keyed by language tag.
	Linters map[string]LinterSettings `koanf:"linters"`
}

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
