// Package main provides the entry point for the smartmonitoring CLI.
package main

import (
	"os"

	"github.com/noahnc/smartmonitoring-cli/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
