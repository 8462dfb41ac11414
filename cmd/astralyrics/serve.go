package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nao1215/astralyrics/internal/config"
	"github.com/nao1215/astralyrics/internal/host"
	"github.com/nao1215/astralyrics/internal/pipeline"
	"github.com/nao1215/astralyrics/internal/sink"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve lyrics requests from the music player on stdin",
		Long: `Serve reads one request per line from stdin until EOF:

  configure                      show the "no configuration options" notice
  fetchLyrics <artist> <title>   search (arguments are percent-encoded)
  fetchLyricsByUrl <path>        download the lyrics of a search result

With the default stream sink every result is printed to stdout as one line
of XML. With --sink command the display command is run for every result,
with the XML document as its last argument.

Examples:
  # Serve on stdin/stdout
  astralyrics serve

  # Hand results to the player over DCOP
  astralyrics serve --sink command --display-command "dcop amarok contextbrowser showLyrics"

  # Route through a local SOCKS5 proxy with a shorter timeout
  astralyrics serve --proxy 127.0.0.1:9050 --timeout 10s`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addTransportFlags(cmd)
	addServeFlags(cmd)

	return cmd
}

// addServeFlags registers the flags that select the serve sink.
func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("sink", "s", config.DefaultSink,
		"Where results go: stream (stdout) or command")
	cmd.Flags().StringP("display-command", "d", "",
		"Command run for every result, split on whitespace (the result is appended)")
	cmd.Flags().String("notice-command", "",
		"Command run for notices (default: the display command)")
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyServeFlags(cmd, cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cmd, cfg, logger)
}

// applyServeFlags copies the sink flags the user set onto cfg.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("sink") {
		s, err := flags.GetString("sink")
		if err != nil {
			return err
		}
		cfg.Sink = s
	}
	if flags.Changed("display-command") {
		s, err := flags.GetString("display-command")
		if err != nil {
			return err
		}
		cfg.DisplayCommand = strings.Fields(s)
	}
	if flags.Changed("notice-command") {
		s, err := flags.GetString("notice-command")
		if err != nil {
			return err
		}
		cfg.NoticeCommand = strings.Fields(s)
	}
	return nil
}

// serve wires the request loop and runs it until stdin is closed or ctx is done.
func serve(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	out, err := newServeSink(cmd, cfg)
	if err != nil {
		return err
	}

	runner := pipeline.New(client, out,
		pipeline.WithLogger(logger),
		pipeline.WithTimeout(cfg.Timeout),
	)
	server := host.NewServer(runner, host.WithLogger(logger))

	logger.Info("serving requests",
		"sink", cfg.Sink,
		"search_addr", cfg.SearchAddress,
		"detail_addr", cfg.DetailAddress,
		"timeout", cfg.Timeout,
	)
	return server.Serve(ctx, cmd.InOrStdin())
}

// newServeSink creates the sink selected by cfg.
func newServeSink(cmd *cobra.Command, cfg *config.Config) (sink.Sink, error) {
	if cfg.Sink == config.SinkCommand {
		s, err := sink.NewCommandSink(cfg.DisplayCommand, sink.WithNoticeCommand(cfg.NoticeCommand))
		if err != nil {
			return nil, fmt.Errorf("failed to create command sink: %w", err)
		}
		return s, nil
	}
	return sink.NewStreamSink(cmd.OutOrStdout()), nil
}
