// Package version holds the agent's own build version, stamped into the
// status file and printed by the CLI's --version flag.
package version

// Version is overridden at build time via -ldflags
// "-X github.com/noahnc/smartmonitoring-cli/internal/version.Version=...".
var Version = "dev"
