// Package main is the entry point for the chamicore-catalog service.
package main

import (
	"fmt"
	"os"

	"git.cscs.ch/openchami/chamicore-catalog/internal/cli"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, BuildDate: buildDate})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "chamicore-catalog: %v\n", err)
		os.Exit(1)
	}
}
