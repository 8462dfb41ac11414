// Package log provides the application logger, built on top of the standard
// slog package.
//
// This package extends slog to provide:
//   - Masking of sensitive values (proxy credentials, auth headers, tokens)
//   - Truncation of oversized values such as raw HTML pages
//   - Configurable log levels with verbose mode support
//
// Logs are written to stderr because stdout carries the payloads for the
// music player. In verbose mode the pipeline logs the pages it downloads;
// those values are cut to MaxValueLen runes so that a single request does
// not flood the terminal.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("dialing",
//	    "proxy", "user:secret@127.0.0.1:9050", // logged as ***REDACTED***@127.0.0.1:9050
//	)
//
//	slog.SetDefault(logger)
package log
