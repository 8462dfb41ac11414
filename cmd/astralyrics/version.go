package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

// getVersion returns version string.
// Priority: ldflags > debug.ReadBuildInfo > "(devel)"
func getVersion() string {
	if version != "" {
		return version
	}
	if buildInfo, ok := debug.ReadBuildInfo(); ok && buildInfo.Main.Version != "" {
		return buildInfo.Main.Version
	}
	return "(devel)"
}

// getCommit returns the short commit hash.
// Priority: ldflags > vcs.revision > "unknown"
func getCommit() string {
	if commit != "" {
		return commit
	}
	rev := vcsSetting("vcs.revision")
	if len(rev) > 7 {
		return rev[:7]
	}
	if rev == "" {
		return "unknown"
	}
	return rev
}

// getDate returns build date.
// Priority: ldflags > vcs.time > "unknown"
func getDate() string {
	if date != "" {
		return date
	}
	if t := vcsSetting("vcs.time"); t != "" {
		return t
	}
	return "unknown"
}

// vcsSetting returns a VCS value stamped into the binary, or "".
func vcsSetting(key string) string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range buildInfo.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of astralyrics.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "astralyrics version %s\n", getVersion())
			fmt.Fprintf(out, "  commit: %s\n", getCommit())
			fmt.Fprintf(out, "  built:  %s\n", getDate())
		},
	}
}
