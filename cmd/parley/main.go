// Package main is the entry point for the parley CLI.
package main

import (
	"os"

	"github.com/f3rmion/parley/cmd/parley/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
