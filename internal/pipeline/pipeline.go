package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/astralyrics/internal/astraweb"
	"github.com/nao1215/astralyrics/internal/model"
	"github.com/nao1215/astralyrics/internal/sink"
)

// ConfigureNotice is shown when the host asks to configure the helper.
const ConfigureNotice = "This script does not have configuration options."

// Client is the lyrics service as seen by the Runner.
// *astraweb.Client implements it.
type Client interface {
	// Search returns the candidates for a query.
	Search(ctx context.Context, q model.Query) ([]model.Candidate, error)

	// Lyrics returns the lyrics on the detail page at path.
	Lyrics(ctx context.Context, path string) (*model.LyricsResult, error)
}

// Runner executes requests and hands the results to a sink.
type Runner struct {
	// client talks to the lyrics service.
	client Client

	// sink receives every payload.
	sink sink.Sink

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// timeout bounds the network part of each request. Zero disables it.
	timeout time.Duration
}

// Option is a function that configures a Runner.
type Option func(*Runner)

// WithLogger sets a custom logger for the runner.
// If not set, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithTimeout sets the per-request timeout. Zero or negative disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.timeout = timeout
	}
}

// New creates a Runner that queries client and shows results on s.
func New(client Client, s sink.Sink, opts ...Option) *Runner {
	r := &Runner{
		client: client,
		sink:   s,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Search looks up q and shows the candidates as a Suggestions payload.
//
// If the search host cannot be reached or answers with an error status, the
// empty state is shown and nil is returned. A page that does not contain the
// result table is an error and nothing is shown, as is a search interrupted by
// cancellation of ctx.
func (r *Runner) Search(ctx context.Context, q model.Query) error {
	reqCtx, cancel := r.requestContext(ctx)
	defer cancel()

	start := time.Now()
	candidates, err := r.client.Search(reqCtx, q)
	if err != nil {
		if errors.Is(err, astraweb.ErrNoResultTable) {
			return fmt.Errorf("search %q: %w", q.String(), err)
		}
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			return fmt.Errorf("search %q: %w", q.String(), err)
		}
		r.logger.Warn("search failed, showing empty result",
			"query", q.String(),
			"error", err,
		)
		return r.show(ctx, sink.Empty{})
	}

	r.logger.Info("search completed",
		"query", q.String(),
		"candidates", len(candidates),
		"duration", time.Since(start),
	)
	return r.show(ctx, sink.NewSuggestions(candidates))
}

// Fetch retrieves the lyrics at the detail-page path and shows them as a
// Lyrics payload. Any failure is returned and nothing is shown.
func (r *Runner) Fetch(ctx context.Context, path string) error {
	reqCtx, cancel := r.requestContext(ctx)
	defer cancel()

	start := time.Now()
	result, err := r.client.Lyrics(reqCtx, path)
	if err != nil {
		return fmt.Errorf("fetch lyrics: %w", err)
	}

	r.logger.Info("lyrics fetched",
		"path", path,
		"artist", result.Artist,
		"title", result.Title,
		"duration", time.Since(start),
	)
	return r.show(ctx, sink.NewLyrics(result))
}

// Notice shows the fixed configuration notice.
func (r *Runner) Notice(ctx context.Context) error {
	return r.show(ctx, sink.NewNotice(ConfigureNotice))
}

func (r *Runner) show(ctx context.Context, p sink.Payload) error {
	if err := r.sink.Show(ctx, p); err != nil {
		return fmt.Errorf("show %s: %w", p.Kind(), err)
	}
	r.logger.Debug("payload shown", "kind", p.Kind().String())
	return nil
}

func (r *Runner) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}
