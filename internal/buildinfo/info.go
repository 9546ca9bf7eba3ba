// Package buildinfo carries version metadata injected at build time.
package buildinfo

// Set via -ldflags "-X github.com/finchat-dev/finchat/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
