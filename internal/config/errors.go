package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() while still printing a human-readable message.
var (
	// ErrInvalidSearchAddress is returned when the search host is not "host:port".
	ErrInvalidSearchAddress = errors.New("invalid search address: must be host:port")

	// ErrInvalidDetailAddress is returned when the lyrics display host is not "host:port".
	ErrInvalidDetailAddress = errors.New("invalid detail address: must be host:port")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Zero is allowed and disables the per-request timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// A negative body size is invalid; use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidSink is returned when the sink is neither "stream" nor "command".
	ErrInvalidSink = errors.New("invalid sink: must be 'stream' or 'command'")

	// ErrNoDisplayCommand is returned when the command sink is selected
	// without a display command.
	ErrNoDisplayCommand = errors.New("no display command: the command sink requires display_command")

	// ErrInvalidConfigFile is returned when the configuration file cannot be parsed.
	ErrInvalidConfigFile = errors.New("invalid configuration file")
)
