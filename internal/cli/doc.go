// Package cli defines the Cobra command tree for the packwix CLI. Each file
// in this package registers one top-level command (list, deps, package, etc.)
// with the root command. Command implementations delegate to internal packages
// for business logic and only handle flag parsing and output formatting.
package cli
