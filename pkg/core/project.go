package core

// ProjectConfig holds project-level configuration.
type ProjectConfig struct {
	RootDir string                    `koanf:"root_dir"`
	Linters map[string]LinterSettings `koanf:"linters"`
}

// LinterSettings holds the user-configurable parts of one linter entry in
// lintgate.yaml. Zero values mean "keep the built-in default".
type LinterSettings struct {
	// Command is the linter executable name or path.
	Command string `koanf:"command"`

	// Interpreter runs the command under another binary (e.g. node for
	// linters shipped as scripts). Empty means the command runs directly.
	Interpreter string `koanf:"interpreter"`

	// ConfigFlag is the flag used to pass the configuration file,
	// e.g. "--config" or "--rcfile".
	ConfigFlag string `koanf:"config_flag"`

	// ConfigFile is the path to the linter's configuration file,
	// resolved relative to the project root when not absolute.
	ConfigFile string `koanf:"config_file"`

	// Extensions overrides the file extensions routed to this linter.
	Extensions []string `koanf:"extensions"`

	// Batch runs the linter once over the whole bucket instead of once
	// per file.
	Batch *bool `koanf:"batch"`

	// Disabled removes the linter from the run entirely.
	Disabled bool `koanf:"disabled"`
}
