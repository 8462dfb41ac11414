package protocol

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/net/proxy"
)

const (
	// DefaultUserAgent is sent with every HTTP request.
	DefaultUserAgent = "astralyrics/1.0 (+https://github.com/nao1215/astralyrics)"

	// DefaultMaxBodySize limits how much of a response is read.
	DefaultMaxBodySize = 2 * 1024 * 1024 // 2MB
)

// Response is a fully read HTTP response.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Header holds the response headers.
	Header http.Header

	// Body is the response body decoded to UTF-8.
	Body []byte
}

// HTTPFetcher issues plain HTTP GET requests.
type HTTPFetcher struct {
	// client is the HTTP client; its transport dials through the shared dialer.
	client *http.Client

	// userAgent is the User-Agent header value.
	userAgent string

	// maxBodySize limits the response body size to prevent memory exhaustion.
	maxBodySize int64
}

// HTTPFetcherOption configures an HTTPFetcher.
type HTTPFetcherOption func(*HTTPFetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// NewHTTPFetcher creates an HTTPFetcher whose connections are made by dialer.
func NewHTTPFetcher(dialer proxy.ContextDialer, opts ...HTTPFetcherOption) *HTTPFetcher {
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		DisableKeepAlives:   true,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	f := &HTTPFetcher{
		client:      &http.Client{Transport: transport},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Get requests path from the server at address ("host:port").
// Any status code is returned as a Response; only transport failures are errors.
func (f *HTTPFetcher) Get(ctx context.Context, address, path string) (*Response, error) {
	if err := ValidateAddress(address); err != nil {
		return nil, fmt.Errorf("%s: %w", address, err)
	}

	target := "http://" + address + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Connection", "close")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       decodeBody(raw, resp.Header.Get("Content-Type")),
	}, nil
}

// decodeBody converts body to UTF-8 using the declared content type, a
// <meta charset> tag, or content sniffing, in that order. Valid UTF-8 without
// a declared charset is returned as is. If decoding fails the raw bytes are
// returned unchanged.
func decodeBody(body []byte, contentType string) []byte {
	if utf8.Valid(body) && !declaresCharset(contentType) {
		return body
	}
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return body
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return body
	}
	return decoded
}

// declaresCharset reports whether contentType carries a charset parameter.
func declaresCharset(contentType string) bool {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return params["charset"] != ""
}
