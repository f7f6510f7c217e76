package config

import (
	"fmt"
	"os"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.RootDir == "" {
		return fmt.Errorf("root_dir is required")
	}
	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("invalid output format: %s", c.OutputFormat)
	}
	return nil
}

// ValidateRoot checks if the project root exists.
func (c *Config) ValidateRoot() error {
	info, err := os.Stat(c.RootDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("project root does not exist: %s\nHint: Use --root to specify the project directory", c.RootDir)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("project root is not a directory: %s", c.RootDir)
	}
	return nil
}
