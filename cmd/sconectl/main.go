// Package main is the entry point for the sconectl CLI.
//
// sconectl runs the SCONE toolchain from a container image. It delegates all
// functionality to the internal/cli package.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release process. During development, they default to "dev",
// "none", and "unknown" respectively.
package main

import (
	"github.com/scontain/sconectl/internal/cli"
)

// version, commit, and date are set at build time via ldflags
// (-X main.version=...). They are shown by --version.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Inject build-time version info into the CLI package.
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// Create the root command, then execute it. Execute handles error
	// formatting and exit codes.
	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
