package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// deriveVersion inspects build info for module version or vcs revision.
// preference order: module semantic version -> short commit hash -> "devel".
func deriveVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			return bi.Main.Version
		}
		var revision string
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				revision = s.Value
				break
			}
		}
		if len(revision) >= 12 { // short hash for readability
			return revision[:12]
		}
		if revision != "" {
			return revision
		}
	}
	return "devel"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the oocgen build version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		name := color.New(color.Bold).Sprint("oocgen")
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, %s/%s)\n",
			name, color.CyanString(deriveVersion()), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
