package version

import (
	"runtime"
)

const DevVersionValue = "dev"

// Set by ldflags, eg. -X github.com/sfpd/picklist-dependency/internal/pkg/version.BuildVersion=v1.0.0.
var (
	BuildVersion = DevVersionValue
	GitCommit    = "-"
	BuildDate    = "-"
)

// Version for --version flag.
func Version() string {
	return "Version:    " + BuildVersion + "\n" +
		"Git commit: " + GitCommit + "\n" +
		"Build date: " + BuildDate + "\n" +
		"Go version: " + runtime.Version() + "\n" +
		"Os/Arch:    " + runtime.GOOS + "/" + runtime.GOARCH + "\n"
}
