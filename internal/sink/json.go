package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// JSONSink writes payloads as indented JSON documents.
type JSONSink struct {
	w io.Writer
}

// NewJSONSink creates a JSONSink that writes to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w}
}

type jsonEnvelope struct {
	Kind    string  `json:"kind"`
	Payload Payload `json:"payload,omitempty"`
}

// Show implements Sink.
func (s *JSONSink) Show(_ context.Context, p Payload) error {
	env := jsonEnvelope{Kind: p.Kind().String()}
	switch p.(type) {
	case *Suggestions, *Lyrics, *Notice:
		env.Payload = p
	case Empty, *Empty:
	default:
		return fmt.Errorf("%w: %T", ErrUnknownPayload, p)
	}

	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("failed to encode JSON payload: %w", err)
	}
	return nil
}
