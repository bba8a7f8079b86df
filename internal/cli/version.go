package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "version",
		Short:                 "Print the build revision of iss-spotter",
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "iss-spotter version: %s\n", version())
		},
	}
}

// version returns the VCS revision embedded by `go build`, suffixed with
// "-dirty" for uncommitted trees. `go run` and `go test` embed none.
func version() string {
	var revision, modified string
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
	}

	if revision == "" {
		return "devel"
	}
	if modified == "true" {
		return revision + "-dirty"
	}
	return revision
}
