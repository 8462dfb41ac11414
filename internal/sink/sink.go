package sink

import (
	"context"
	"errors"
	"strings"
)

// ErrUnknownPayload is returned when a sink receives a payload type it cannot render.
var ErrUnknownPayload = errors.New("unknown payload type")

// Sink displays payloads to the user.
type Sink interface {
	// Show renders p and hands it to the destination.
	Show(ctx context.Context, p Payload) error
}

// quoteReplacer maps every character that could end a quoted argument of
// the host's display command to a single quote.
var quoteReplacer = strings.NewReplacer(`"`, "'", "`", "'")

// Sanitize replaces every double quote and backtick in s with a single quote.
// The result has the same length as s and differs only at those positions.
func Sanitize(s string) string {
	return quoteReplacer.Replace(s)
}
