// Package version holds build metadata, set with -ldflags at link time:
//
//	go build -ldflags "-X timestamp-bot/internal/version.Version=1.2.0 -X timestamp-bot/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

import "fmt"

const AppName = "timestamp-bot"

var (
	Version = "dev"
	Commit  = ""
)

// String renders the version for logs and the health endpoint.
func String() string {
	if Commit == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
