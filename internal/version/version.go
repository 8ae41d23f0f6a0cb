// Package version holds build metadata injected with -ldflags.
package version

// Build information. Overridden at build time, e.g.
// -ldflags "-X github.com/mj1618/win-ctrl/internal/version.Version=v0.3.0".
var (
	Version   = "development"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns the version including the commit hash when known.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}
