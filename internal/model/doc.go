// Package model defines the domain types and value objects for the
// sconectl launcher.
//
// This package contains plain data structures. All entities (HostEndpoint,
// CasConfig, KubeMount, ArgumentSet, ExecutionResult) live for a single
// launcher run; nothing is persisted apart from the directories the
// config resolver and host probe create on the filesystem.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
// Mount specifications reuse the Docker Engine API mount type so the
// invocation builder and the probe share one representation.
package model
