// Package main is the entry point for the lintgate CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/lintgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
