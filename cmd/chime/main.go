package main

import (
	"fmt"
	"os"

	"github.com/chimekit/chime/cmd"
)

// Overridden at build time through ldflags.
var (
	version   = "dev"
	buildType = "unstable"
	date      = "unknown"
	commit    = "unknown"
)

func main() {
	err := cmd.Execute(os.Args, cmd.BuildArgs{
		Version:   version,
		BuildType: buildType,
		Date:      date,
		Commit:    commit,
	})
	if err != nil {
		fmt.Printf("chime: %s\n", err.Error())
		os.Exit(1)
	}
}
