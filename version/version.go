// Package version provides the jenkins-tail version strings.
package version

import (
	_ "embed"
	"runtime"
	"strings"
)

// You can override buildVersion at compile time by using:
//
//	go run -ldflags "-X github.com/buildkite/jenkins-tail/version.buildVersion=abc" . --version
//
// Release binaries are always built with the buildVersion variable set.

//go:embed VERSION
var baseVersion string
var buildVersion string

func Version() string {
	return strings.TrimSpace(baseVersion)
}

func BuildVersion() string {
	if buildVersion == "" {
		return "x"
	}
	return buildVersion
}

// FullVersion is the version and build version joined with a dot, as shown by
// --version.
func FullVersion() string {
	return Version() + "." + BuildVersion()
}

func UserAgent() string {
	return "jenkins-tail/" + FullVersion() + " (" + runtime.GOOS + "; " + runtime.GOARCH + ")"
}
