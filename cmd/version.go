package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("quizgen", displayVersion())
	},
}

// displayVersion normalizes release versions ("1.4" -> "v1.4.0") and
// leaves development builds alone.
func displayVersion() string {
	v := version
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return version
	}
	if c := semver.Canonical(v); c != "" {
		return c
	}
	return v
}
