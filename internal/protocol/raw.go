package protocol

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"syscall"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/net/proxy"
)

// RawFetcher retrieves a document by writing a bare request line to a TCP
// connection and reading until the server closes it. No HTTP validation is
// performed on the response.
type RawFetcher struct {
	// dialer establishes the TCP connection, directly or through SOCKS5.
	dialer proxy.ContextDialer

	// maxBodySize limits the number of bytes read from the connection.
	maxBodySize int64
}

// RawFetcherOption configures a RawFetcher.
type RawFetcherOption func(*RawFetcher)

// WithRawMaxBodySize sets the maximum number of bytes read per response.
func WithRawMaxBodySize(size int64) RawFetcherOption {
	return func(f *RawFetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// NewRawFetcher creates a RawFetcher that connects with dialer.
func NewRawFetcher(dialer proxy.ContextDialer, opts ...RawFetcherOption) *RawFetcher {
	f := &RawFetcher{
		dialer:      dialer,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch sends "GET <path>\n" to address and returns the response body
// decoded to UTF-8. If the response starts with an HTTP status line, the
// header block is dropped; a header without a terminating blank line is kept
// as part of the body.
//
// The connection honours ctx: its deadline becomes the I/O deadline and
// cancellation closes the connection.
func (f *RawFetcher) Fetch(ctx context.Context, address, path string) ([]byte, error) {
	if err := ValidateAddress(address); err != nil {
		return nil, fmt.Errorf("%s: %w", address, err)
	}

	conn, err := f.dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("failed to set deadline: %w", err)
		}
	}

	if _, err := io.WriteString(conn, "GET "+path+"\n"); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	raw, err := io.ReadAll(io.LimitReader(conn, f.maxBodySize))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("read %s: %w", address, ctxErr)
		}
		// Servers of this kind often reset the connection instead of
		// closing it once the page is sent.
		if len(raw) == 0 || !errors.Is(err, syscall.ECONNRESET) {
			return nil, fmt.Errorf("read %s: %w", address, err)
		}
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w", address, ErrEmptyResponse)
	}

	body := stripHeader(raw)
	return decodeRaw(body), nil
}

// stripHeader removes a leading HTTP header block from a raw response.
func stripHeader(raw []byte) []byte {
	if !bytes.HasPrefix(raw, []byte("HTTP/")) {
		return raw
	}
	end := -1
	for _, sep := range [][]byte{[]byte("\r\n\r\n"), []byte("\n\n")} {
		if i := bytes.Index(raw, sep); i >= 0 && (end < 0 || i+len(sep) < end) {
			end = i + len(sep)
		}
	}
	if end < 0 {
		return raw
	}
	return raw[end:]
}

// decodeRaw converts a body without a trustworthy Content-Type to UTF-8.
// Valid UTF-8 is returned unchanged.
func decodeRaw(body []byte) []byte {
	if utf8.Valid(body) {
		return body
	}
	enc, _, _ := charset.DetermineEncoding(body, "")
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return body
	}
	return decoded
}
