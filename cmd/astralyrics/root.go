package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for astralyrics.
// Running it without a subcommand serves requests like "astralyrics serve".
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "astralyrics",
		Short: "Lyrics helper for music players backed by Astraweb",
		Long: `astralyrics looks up song lyrics on the Astraweb lyrics service.

Without a subcommand it reads requests from the music player on stdin
(configure, fetchLyrics, fetchLyricsByUrl) and writes the results to
stdout, or hands them to a display command.

The search and fetch subcommands run a single request from the shell.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runServeCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to configuration file (default: .astralyrics, then XDG config dir, then home)")

	addTransportFlags(cmd)
	addServeFlags(cmd)

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
