package sink

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// StreamSink writes one sanitized payload per line to an io.Writer.
type StreamSink struct {
	w io.Writer
}

// NewStreamSink creates a StreamSink that writes to w.
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: w}
}

// Show implements Sink.
func (s *StreamSink) Show(_ context.Context, p Payload) error {
	text, err := Render(p)
	if err != nil {
		return err
	}
	// Notices are free text; keep the one-payload-per-line framing.
	text = strings.ReplaceAll(Sanitize(text), "\n", " ")
	if _, err := fmt.Fprintln(s.w, text); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}
