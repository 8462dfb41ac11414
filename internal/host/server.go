package host

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/nao1215/astralyrics/internal/model"
)

// maxLineSize bounds a single request line.
const maxLineSize = 1024 * 1024

var (
	// ErrMissingArgument is returned for a request without its required argument.
	ErrMissingArgument = errors.New("missing request argument")

	// ErrPanic is returned when handling a request panicked.
	ErrPanic = errors.New("request handler panicked")
)

// Handler performs the requests. *pipeline.Runner implements it.
type Handler interface {
	Search(ctx context.Context, q model.Query) error
	Fetch(ctx context.Context, path string) error
	Notice(ctx context.Context) error
}

// Server reads requests and dispatches them to a Handler one at a time.
type Server struct {
	handler Handler
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server that dispatches to h.
func NewServer(h Handler, opts ...Option) *Server {
	s := &Server{handler: h}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Serve reads request lines from r until EOF or until ctx is cancelled.
// Request failures are logged and do not stop the loop. Only a read error
// on r is returned.
func (s *Server) Serve(ctx context.Context, r io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.logger.Debug("waiting for requests")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("request loop stopped", "reason", ctx.Err())
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read requests: %w", err)
				}
				s.logger.Debug("request stream closed")
				return nil
			}
			if err := s.Handle(ctx, line); err != nil {
				s.logger.Error("request failed", "request", line, "error", err)
			}
		}
	}
}

// Handle parses and performs a single request line.
func (s *Server) Handle(ctx context.Context, line string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Debug("panic stack", "stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()

	req := ParseRequest(line)
	switch req.Command {
	case CommandConfigure:
		return s.handler.Notice(ctx)

	case CommandFetchLyrics:
		artist, ok := req.Arg(0)
		if !ok {
			s.logger.Warn("malformed request", "command", req.Command, "error", ErrMissingArgument)
			return nil
		}
		title, _ := req.Arg(1)
		q := model.NewQuery(decodeArg(artist), decodeArg(title))
		s.logger.Debug("search requested", "query", q.String())
		return s.handler.Search(ctx, q)

	case CommandFetchLyricsByURL:
		path, ok := req.Arg(0)
		if !ok {
			s.logger.Warn("malformed request", "command", req.Command, "error", ErrMissingArgument)
			return nil
		}
		s.logger.Debug("lyrics requested", "path", path)
		return s.handler.Fetch(ctx, path)

	default:
		s.logger.Debug("ignoring request", "command", req.Command)
		return nil
	}
}
