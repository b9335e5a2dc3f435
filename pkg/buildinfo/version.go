// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/screenflow/pkg/buildinfo.version=v1.0.0 \
//	    -X github.com/matzehuels/screenflow/pkg/buildinfo.commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/screenflow/pkg/buildinfo.date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// AppName is the canonical service name used in logs and API responses.
const AppName = "screenflow"

var (
	// version is the semantic version (e.g., "v1.2.3").
	version = "dev"

	// commit is the git commit SHA.
	commit = "none"

	// date is the build timestamp.
	date = "unknown"
)

// Version returns the semantic version string.
func Version() string { return version }

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", version, commit, date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
}
