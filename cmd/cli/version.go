package cli

import (
	"context"
	"runtime/debug"
	"strings"
)

const (
	developmentVersionConstant = "dev"
	develVersionMarkerConstant = "(devel)"
)

// Version is set at build time with -ldflags "-X github.com/temirov/cleanmybranch/cmd/cli.Version=v1.2.3".
var Version = ""

func resolveVersion(context.Context) string {
	if trimmedVersion := strings.TrimSpace(Version); len(trimmedVersion) > 0 {
		return trimmedVersion
	}

	buildInfo, available := debug.ReadBuildInfo()
	if !available {
		return developmentVersionConstant
	}
	moduleVersion := strings.TrimSpace(buildInfo.Main.Version)
	if len(moduleVersion) == 0 || moduleVersion == develVersionMarkerConstant {
		return developmentVersionConstant
	}
	return moduleVersion
}
