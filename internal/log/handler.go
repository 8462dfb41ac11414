package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// MaxValueLen is the number of runes of a string value kept in the output.
const MaxValueLen = 512

// sensitiveKeys contains attribute keys that should always be masked.
var sensitiveKeys = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"cookie":              true,
	"set-cookie":          true,
	"password":            true,
	"passwd":              true,
	"secret":              true,
	"token":               true,
	"credentials":         true,
}

// sensitiveKeywords mark keys that contain sensitive data anywhere in the name.
var sensitiveKeywords = []string{"password", "passwd", "secret", "token", "credential"}

// credentialsRegex matches the "user:pass@" part of a proxy address or URL.
var credentialsRegex = regexp.MustCompile(`([A-Za-z][A-Za-z0-9+.-]*://)?[^\s/@:]+:[^\s/@]*@`)

// sensitivePatterns contains regex patterns that indicate sensitive values.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
}

// Handler wraps an slog.Handler to mask sensitive information and shorten
// oversized values before they reach the underlying handler.
type Handler struct {
	// handler is the underlying slog handler that receives cleaned records.
	handler slog.Handler

	// maxLen is the number of runes kept per string value. Zero disables truncation.
	maxLen int
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMaxValueLen sets the truncation limit. Zero disables truncation.
func WithMaxValueLen(n int) HandlerOption {
	return func(h *Handler) {
		if n >= 0 {
			h.maxLen = n
		}
	}
}

// NewHandler creates a Handler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewHandler(handler slog.Handler, opts ...HandlerOption) *Handler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &Handler{handler: handler, maxLen: MaxValueLen}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle cleans the record's attributes and passes it to the underlying handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	cleaned := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		cleaned.AddAttrs(h.cleanAttr(a))
		return true
	})
	return h.handler.Handle(ctx, cleaned)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cleaned := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		cleaned[i] = h.cleanAttr(a)
	}
	return &Handler{handler: h.handler.WithAttrs(cleaned), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

func (h *Handler) cleanAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		cleaned := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			cleaned[i] = h.cleanAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(cleaned...)}
	}

	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.cleanString(a.Value.String()))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, h.cleanString(err.Error()))
		}
		if s, ok := a.Value.Any().(fmt.Stringer); ok {
			return slog.String(a.Key, h.cleanString(s.String()))
		}
	}
	return a
}

func (h *Handler) cleanString(s string) string {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return MaskValue
		}
	}
	s = MaskCredentials(s)
	return truncate(s, h.maxLen)
}

// MaskCredentials replaces "user:pass@" in proxy addresses and URLs with the mask.
func MaskCredentials(s string) string {
	if !strings.Contains(s, "@") {
		return s
	}
	return credentialsRegex.ReplaceAllString(s, "${1}"+MaskValue+"@")
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	if sensitiveKeys[key] {
		return true
	}
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

// truncate keeps the first n runes of s and notes how many bytes were cut.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	cut := 0
	for i := 0; i < n; i++ {
		_, size := utf8.DecodeRuneInString(s[cut:])
		cut += size
	}
	return fmt.Sprintf("%s...(%d bytes truncated)", s[:cut], len(s)-cut)
}

// NewLogger creates a new slog.Logger writing text records through a Handler.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a new slog.Logger that outputs JSON records through
// a Handler. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
