// Package main is the entry point for the hachtel CLI.
package main

import (
	"os"

	"github.com/katalvlaran/hachtel/cmd/hachtel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
