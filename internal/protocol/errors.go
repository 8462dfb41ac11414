package protocol

import "errors"

// Transport errors.
var (
	// ErrInvalidAddress is returned when a remote address is not in "host:port" format.
	ErrInvalidAddress = errors.New("invalid address format: expected host:port")

	// ErrInvalidProxyAddress is returned when the SOCKS5 proxy address cannot be parsed.
	// Expected format is "host:port" or "user:password@host:port".
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected [user:password@]host:port")

	// ErrEmptyResponse is returned when the remote closed the connection without sending data.
	ErrEmptyResponse = errors.New("empty response")
)
