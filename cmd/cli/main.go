// Package main is the entry point for the tourcost CLI.
package main

import (
	"os"

	"tourcost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
