package main

import (
	"os"

	"github.com/iudanet/hospctl/internal/client/cli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := cli.Execute(Version, BuildDate, GitCommit); err != nil {
		os.Exit(1)
	}
}
