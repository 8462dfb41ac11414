package astraweb

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nao1215/astralyrics/internal/model"
	"github.com/nao1215/astralyrics/internal/protocol"
)

const (
	// DefaultSearchAddress is the search host of the lyrics service.
	DefaultSearchAddress = "search.lyrics.astraweb.com:80"

	// DefaultDetailAddress is the lyrics display host. It answers raw
	// "GET <path>" lines with a malformed HTTP header.
	DefaultDetailAddress = "display.lyrics.astraweb.com:2000"
)

// PageGetter retrieves a page over HTTP. *protocol.HTTPFetcher implements it.
type PageGetter interface {
	Get(ctx context.Context, address, path string) (*protocol.Response, error)
}

// RawGetter retrieves a page over a raw socket. *protocol.RawFetcher implements it.
type RawGetter interface {
	Fetch(ctx context.Context, address, path string) ([]byte, error)
}

// Client talks to both hosts of the lyrics service.
type Client struct {
	search        PageGetter
	detail        RawGetter
	searchAddress string
	detailAddress string
	logger        *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithSearchAddress overrides the search host ("host:port").
func WithSearchAddress(address string) ClientOption {
	return func(c *Client) {
		if address != "" {
			c.searchAddress = address
		}
	}
}

// WithDetailAddress overrides the lyrics display host ("host:port").
func WithDetailAddress(address string) ClientOption {
	return func(c *Client) {
		if address != "" {
			c.detailAddress = address
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client that searches with search and fetches lyrics
// pages with detail.
func NewClient(search PageGetter, detail RawGetter, opts ...ClientOption) *Client {
	c := &Client{
		search:        search,
		detail:        detail,
		searchAddress: DefaultSearchAddress,
		detailAddress: DefaultDetailAddress,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Search queries the search host and parses the result table.
//
// Transport failures are returned as is and a non-200 answer as
// ErrUnexpectedStatus. A page without a result table yields ErrNoResultTable.
func (c *Client) Search(ctx context.Context, q model.Query) ([]model.Candidate, error) {
	path := SearchPath(q)
	c.logger.Debug("searching", "address", c.searchAddress, "path", path)

	resp, err := c.search.Get(ctx, c.searchAddress, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	c.logger.Debug("search page received", "bytes", len(resp.Body), "page", string(resp.Body))

	candidates, err := ParseSearch(string(resp.Body))
	if err != nil {
		return nil, err
	}

	c.logger.Debug("search parsed", "query", q.String(), "candidates", len(candidates))
	return candidates, nil
}

// Lyrics fetches the detail page at path from the display host and parses it.
// The path is sent unmodified.
func (c *Client) Lyrics(ctx context.Context, path string) (*model.LyricsResult, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	c.logger.Debug("fetching lyrics", "address", c.detailAddress, "path", path)

	page, err := c.detail.Fetch(ctx, c.detailAddress, path)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("lyrics page received", "bytes", len(page), "page", string(page))

	result, err := ParseLyricsPage(string(page))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}
