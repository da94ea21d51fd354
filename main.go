package main

import (
	"os"

	"github.com/t2-labs/create-block/internal/cli"
	"github.com/t2-labs/create-block/internal/output"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		os.Exit(output.GetExitCode(err))
	}
}
