// Package core defines the shared language of the lintgate system.
//
// This package contains:
//   - Domain entities (Language, Outcome, RunSummary, Report)
//   - Configuration types (ProjectConfig, LinterSettings)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
