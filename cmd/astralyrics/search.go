package main

import (
	"fmt"
	"log/slog"

	"github.com/nao1215/astralyrics/internal/model"
	"github.com/nao1215/astralyrics/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <artist> [title]",
		Short: "Search the lyrics service for a song",
		Long: `Search runs one lyrics search and prints the matching songs.

The path of each result can be passed to "astralyrics fetch".

Examples:
  # Print suggestions as XML (the format the player reads)
  astralyrics search "Amy Winehouse" Valerie

  # Print a Markdown table
  astralyrics search "Amy Winehouse" Valerie --format markdown`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runSearchCmd,
	}

	addTransportFlags(cmd)
	addFormatFlag(cmd)

	return cmd
}

// runSearchCmd executes the search command.
func runSearchCmd(cmd *cobra.Command, args []string) error {
	runner, err := newOneShotRunner(cmd)
	if err != nil {
		return err
	}

	title := ""
	if len(args) > 1 {
		title = args[1]
	}
	return runner.Search(cmd.Context(), model.NewQuery(args[0], title))
}

// newOneShotRunner builds a Runner printing to stdout in the --format format.
func newOneShotRunner(cmd *cobra.Command) (*pipeline.Runner, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}
	out, err := newFormatSink(format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	client, err := newClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	return pipeline.New(client, out,
		pipeline.WithLogger(logger),
		pipeline.WithTimeout(cfg.Timeout),
	), nil
}
