// Package main is the entry point for the vfx-cost CLI.
package main

import (
	"os"

	"vfx-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
