package config

import (
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/astralyrics/internal/astraweb"
	"github.com/nao1215/astralyrics/internal/protocol"
)

// Sink names accepted by Config.Sink.
const (
	// SinkStream writes payloads to standard output, one per line.
	SinkStream = "stream"

	// SinkCommand runs the display command for every payload.
	SinkCommand = "command"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "astralyrics"

	// DefaultSearchAddress is the search host of the lyrics service.
	DefaultSearchAddress = astraweb.DefaultSearchAddress

	// DefaultDetailAddress is the lyrics display host.
	DefaultDetailAddress = astraweb.DefaultDetailAddress

	// DefaultTimeout bounds one request, covering connect, send, and read.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies astralyrics in HTTP requests.
	DefaultUserAgent = protocol.DefaultUserAgent

	// DefaultMaxBodySize limits the maximum response body size to read.
	DefaultMaxBodySize = protocol.DefaultMaxBodySize

	// DefaultSink is the sink used by the serve command.
	DefaultSink = SinkStream
)

// Config holds all configuration options for astralyrics.
// It is populated from defaults, then the config file, then CLI flags, and
// passed to the components that need it.
type Config struct {
	// SearchAddress is the search host in "host:port" format.
	SearchAddress string

	// DetailAddress is the lyrics display host in "host:port" format.
	DetailAddress string

	// Timeout bounds each request. Zero disables the timeout.
	Timeout time.Duration

	// ProxyAddress is an optional SOCKS5 proxy ("[user:pass@]host:port").
	// Both transports dial through it when set.
	ProxyAddress string

	// UserAgent is the User-Agent header sent to the search host.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default (2MB).
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// Sink selects where serve delivers payloads: SinkStream or SinkCommand.
	Sink string

	// DisplayCommand is the argv run by the command sink. The payload is
	// appended as the last argument.
	DisplayCommand []string

	// NoticeCommand is the argv used for notices. Falls back to DisplayCommand.
	NoticeCommand []string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		SearchAddress: DefaultSearchAddress,
		DetailAddress: DefaultDetailAddress,
		Timeout:       DefaultTimeout,
		UserAgent:     DefaultUserAgent,
		MaxBodySize:   DefaultMaxBodySize,
		Sink:          DefaultSink,
	}
}

// XDGConfigDir returns the XDG config directory for astralyrics.
// On Linux: ~/.config/astralyrics
// On macOS: ~/Library/Application Support/astralyrics
// On Windows: %APPDATA%\astralyrics
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if err := protocol.ValidateAddress(c.SearchAddress); err != nil {
		return ErrInvalidSearchAddress
	}

	if err := protocol.ValidateAddress(c.DetailAddress); err != nil {
		return ErrInvalidDetailAddress
	}

	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if !slices.Contains([]string{SinkStream, SinkCommand}, c.Sink) {
		return ErrInvalidSink
	}

	if c.Sink == SinkCommand && (len(c.DisplayCommand) == 0 || c.DisplayCommand[0] == "") {
		return ErrNoDisplayCommand
	}

	return nil
}
