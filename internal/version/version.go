// Package version carries the release identity printed by the
// `numdoc version` subcommand.
package version

import "github.com/fatih/color"

const (
	major = "0"
	minor = "1"
	patch = "0"
	pre   = "-dev"
)

// Overridable at build time via
// -ldflags "-X numdoc/internal/version.GitCommit=...".
var (
	// Version is the semantic version, each component tinted so the
	// terminal output separates visually.
	Version = color.New(color.FgYellow, color.Bold).Sprint(major) + "." +
		color.New(color.FgGreen, color.Bold).Sprint(minor) + "." +
		color.New(color.FgBlue, color.Bold).Sprint(patch) + pre

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)
