// chimed runs the chime daemon in the foreground without the CLI
// surface, for use under a service manager.
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
	args := append([]string{os.Args[0], "daemon"}, os.Args[1:]...)
	err := cmd.Execute(args, cmd.BuildArgs{
		Version:   version,
		BuildType: buildType,
		Date:      date,
		Commit:    commit,
	})
	if err != nil {
		fmt.Println("chimed:", err.Error())
		os.Exit(1)
	}
}
