package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/astralyrics/internal/astraweb"
	"github.com/nao1215/astralyrics/internal/config"
	"github.com/nao1215/astralyrics/internal/log"
	"github.com/nao1215/astralyrics/internal/protocol"
	"github.com/nao1215/astralyrics/internal/sink"
	"github.com/spf13/cobra"
)

// Output formats for the one-shot commands.
const (
	formatXML      = "xml"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

// errInvalidFormat is returned for an unknown --format value.
var errInvalidFormat = errors.New("invalid format: must be 'xml', 'json' or 'markdown'")

// addTransportFlags registers the flags shared by every command that talks
// to the lyrics service.
func addTransportFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each request (0 disables the timeout)")
	cmd.Flags().String("search-addr", config.DefaultSearchAddress,
		"Search host (host:port)")
	cmd.Flags().String("detail-addr", config.DefaultDetailAddress,
		"Lyrics display host (host:port)")
	cmd.Flags().StringP("proxy", "x", "",
		"SOCKS5 proxy for all connections ([user:pass@]host:port)")
}

// addFormatFlag registers --format for the one-shot commands.
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", formatXML,
		"Output format: xml, json or markdown")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the defaults, the configuration file,
// and the flags the user set, in that order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		cfg.ConfigFilePath, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return nil, err
		}
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use the defaults if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := file.Apply(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if err := applyTransportFlags(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyTransportFlags copies the transport flags the user set onto cfg.
func applyTransportFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("search-addr") {
		if cfg.SearchAddress, err = flags.GetString("search-addr"); err != nil {
			return err
		}
	}
	if flags.Changed("detail-addr") {
		if cfg.DetailAddress, err = flags.GetString("detail-addr"); err != nil {
			return err
		}
	}
	if flags.Changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return err
		}
	}
	return nil
}

// setupLogger creates the application logger writing to w.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	return log.NewLogger(w, verbose)
}

// newClient creates the lyrics service client described by cfg.
func newClient(cfg *config.Config, logger *slog.Logger) (*astraweb.Client, error) {
	dialer, err := protocol.NewDialer(cfg.ProxyAddress, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create dialer: %w", err)
	}

	if cfg.ProxyAddress != "" {
		logger.Debug("using SOCKS5 proxy", "proxy", cfg.ProxyAddress)
	}

	search := protocol.NewHTTPFetcher(dialer,
		protocol.WithUserAgent(cfg.UserAgent),
		protocol.WithMaxBodySize(cfg.MaxBodySize),
	)
	detail := protocol.NewRawFetcher(dialer,
		protocol.WithRawMaxBodySize(cfg.MaxBodySize),
	)

	return astraweb.NewClient(search, detail,
		astraweb.WithSearchAddress(cfg.SearchAddress),
		astraweb.WithDetailAddress(cfg.DetailAddress),
		astraweb.WithLogger(logger),
	), nil
}

// newFormatSink returns the sink that prints one-shot results in format.
func newFormatSink(format string, w io.Writer) (sink.Sink, error) {
	switch format {
	case formatXML:
		return sink.NewStreamSink(w), nil
	case formatJSON:
		return sink.NewJSONSink(w), nil
	case formatMarkdown:
		return sink.NewMarkdownSink(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", errInvalidFormat, format)
	}
}
