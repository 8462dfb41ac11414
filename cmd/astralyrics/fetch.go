package main

import (
	"github.com/spf13/cobra"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <path>",
		Short: "Download the lyrics of a search result",
		Long: `Fetch downloads one lyrics page from the display host and prints the
lyrics. The path is the url of a search result, sent unmodified.

Examples:
  astralyrics fetch "/display.cgi?amy_winehouse..back_to_black..valerie"

  # Read the lyrics in the terminal
  astralyrics fetch "/display.cgi?amy_winehouse..back_to_black..valerie" -f markdown`,
		Args: cobra.ExactArgs(1),
		RunE: runFetchCmd,
	}

	addTransportFlags(cmd)
	addFormatFlag(cmd)

	return cmd
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, args []string) error {
	runner, err := newOneShotRunner(cmd)
	if err != nil {
		return err
	}
	return runner.Fetch(cmd.Context(), args[0])
}
