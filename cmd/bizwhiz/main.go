package main

import (
	"github.com/bizwhiz/bizwhiz/internal/cmd"
	"github.com/bizwhiz/bizwhiz/internal/observability"
	"github.com/bizwhiz/bizwhiz/internal/server/handlers"
)

// Version information set via ldflags during build
// Example: go build -ldflags="-X main.version=1.0.0 -X main.commit=abc123 -X main.buildDate=2026-10-15"
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, buildDate)
	handlers.SetVersionInfo(version, commit, buildDate)

	if err := cmd.Execute(); err != nil {
		cmd.ExitWithCode(observability.Logger(), cmd.ExitCodeFor(err), "Command failed", err)
	}
}
