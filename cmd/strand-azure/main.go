// Package main is the entry point for the strand-azure CLI.
//
// strand-azure provisions the Strand platform on Microsoft Azure: an AKS
// cluster with a dedicated workspaces node pool, a container registry, a
// MySQL Flexible Server, a storage account and optionally a DNS zone, then
// deploys the platform chart on top. Configuration comes from environment
// variables or a .env file; the tool is stateless and safe to re-run.
//
// Commands: install, uninstall, auth-update, render.
//
// For detailed usage information, run:
//
//	strand-azure --help
package main

import (
	"fmt"
	"os"

	"github.com/strandhq/strand-azure/cmd/strand-azure/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
