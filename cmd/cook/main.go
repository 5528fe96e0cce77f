// ABOUTME: Command line entry point for cooking recipes against local files
// ABOUTME: Subcommands live in the cmd package

package main

import (
	"os"

	"recipe-cook-api/cmd/cook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
