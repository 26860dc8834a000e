// Package buildinfo carries the version stamped into release binaries.
//
// Release builds inject the values with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/sphaso/treap/pkg/buildinfo.Version=$(git describe --tags) \
//	  -X github.com/sphaso/treap/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/sphaso/treap/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Development builds report "dev".
package buildinfo

import "fmt"

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"

	// Commit is the git revision the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String formats the full build information for `treap version`.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template used for --version.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
