// Package version provides build-time version information for the client.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the client version (e.g., git tag or "dev")
	Version = "dev"
	// Commit is the git commit hash
	Commit = "dev"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// UserAgent identifies this client on every request, e.g.
// "lingopher/dev (go1.25; linux/amd64)". The service uses it to attribute
// traffic, so the format stays stable.
func UserAgent() string {
	return fmt.Sprintf("lingopher/%s (%s; %s/%s)",
		Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// String returns a human-readable version line for --version output.
func String() string {
	return fmt.Sprintf("lingopher %s (commit %s, built %s)", Version, Commit, BuildTime)
}
