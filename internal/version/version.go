package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/ezconfig/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/ezconfig/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/ezconfig/internal/version.Date={{.Date}}
)

// String is the one-line version banner.
func String() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
