// Package version holds the portal build metadata, injected via ldflags:
//
//	-X github.com/kailas-cloud/portal/internal/version.Version=v1.2.0
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build line printed by `portal version` and logged at
// server start.
func String() string {
	return fmt.Sprintf("portal %s (commit %s, built %s)", Version, Commit, Date)
}

// IsRelease reports whether the binary was built with a version tag.
func IsRelease() bool {
	return Version != "dev" && Version != ""
}
