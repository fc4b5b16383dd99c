// Package version holds build information set with -ldflags.
package version

var (
	Version = "dev"
	Date    = "unknown"
)
