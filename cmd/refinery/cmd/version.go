package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Show version and build information for the refinery CLI.`,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("refinery %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Printf("  module: %s\n", modulePath())
		fmt.Printf("  commit: %s\n", Commit)
		fmt.Printf("  built:  %s by %s\n", Date, BuiltBy)
	},
}

// modulePath reports the main module path from build info, falling back to
// the canonical path for non-module builds.
func modulePath() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Path != "" {
		return info.Main.Path
	}
	return "github.com/lodeworks/refinery"
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
