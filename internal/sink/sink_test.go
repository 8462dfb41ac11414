package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/nao1215/astralyrics/internal/model"
)

// unknownPayload is a Payload that no sink knows how to render.
type unknownPayload struct{}

func (unknownPayload) Kind() Kind { return Kind(99) }

// TestKindString tests Kind names.
func TestKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{KindEmpty, "empty"},
		{KindSuggestions, "suggestions"},
		{KindLyrics, "lyrics"},
		{KindNotice, "notice"},
		{Kind(42), "unknown"},
	}
	for _, tt := range tests {
		tt := tt
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

// TestRender tests the host-facing text form of each payload.
func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload Payload
		want    string
	}{
		{
			name: "suggestions",
			payload: NewSuggestions([]model.Candidate{
				{URL: "/display/a/amy_winehouse/valerie.html", Artist: "Amy Winehouse", Title: "Valerie"},
			}),
			want: `<suggestions><suggestion url="/display/a/amy_winehouse/valerie.html" artist="Amy Winehouse" title="Valerie"></suggestion></suggestions>`,
		},
		{
			name:    "no suggestions",
			payload: NewSuggestions(nil),
			want:    `<suggestions></suggestions>`,
		},
		{
			name:    "lyrics",
			payload: NewLyrics(model.NewLyricsResult("Blur", "Song 2", "Woo hoo")),
			want:    `<lyrics site="Astraweb" site_url="http://lyrics.astraweb.com" artist="Blur" title="Song 2">Woo hoo</lyrics>`,
		},
		{
			name:    "lyrics body newlines are escaped",
			payload: NewLyrics(model.NewLyricsResult("A", "B", "one\ntwo")),
			want:    `<lyrics site="Astraweb" site_url="http://lyrics.astraweb.com" artist="A" title="B">one&#xA;two</lyrics>`,
		},
		{
			name:    "notice",
			payload: NewNotice("hello"),
			want:    "hello",
		},
		{
			name:    "empty",
			payload: Empty{},
			want:    "",
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Render(tt.payload)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}

	t.Run("unknown payload", func(t *testing.T) {
		t.Parallel()

		_, err := Render(unknownPayload{})
		if !errors.Is(err, ErrUnknownPayload) {
			t.Errorf("expected ErrUnknownPayload, got %v", err)
		}
	})
}

// TestSanitize tests quote replacement.
func TestSanitize(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain text",
		`say "hi"`,
		"run `ls`",
		`mixed "double" 'single' ` + "`back`",
		`Beyoncé "Halo"`,
	}

	for _, in := range inputs {
		got := Sanitize(in)
		if len(got) != len(in) {
			t.Errorf("Sanitize(%q) changed length: %d -> %d", in, len(in), len(got))
		}
		if strings.ContainsAny(got, "\"`") {
			t.Errorf("Sanitize(%q) = %q still contains a double quote or backtick", in, got)
		}
		for i := 0; i < len(in); i++ {
			switch in[i] {
			case '"', '`':
				if got[i] != '\'' {
					t.Errorf("Sanitize(%q)[%d] = %q, want single quote", in, i, got[i])
				}
			default:
				if got[i] != in[i] {
					t.Errorf("Sanitize(%q)[%d] = %q, want %q", in, i, got[i], in[i])
				}
			}
		}
		if !utf8.ValidString(got) {
			t.Errorf("Sanitize(%q) produced invalid UTF-8", in)
		}
	}
}

// TestStreamSink tests line-oriented output.
func TestStreamSink(t *testing.T) {
	t.Parallel()

	t.Run("sanitized suggestions decode back to the same candidates", func(t *testing.T) {
		t.Parallel()

		candidates := []model.Candidate{
			{URL: "/display/a/amy_winehouse/valerie.html", Artist: "Amy Winehouse", Title: "Valerie"},
			{URL: "/display/m/mark_ronson/valerie.html", Artist: `Mark "Mr." Ronson`, Title: "Valerie (feat. Amy Winehouse) & Friends"},
			{URL: "/display/x/x/y.html", Artist: "", Title: "Don't Stop"},
		}

		var buf bytes.Buffer
		sink := NewStreamSink(&buf)
		if err := sink.Show(context.Background(), NewSuggestions(candidates)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		line := buf.String()
		if !strings.HasSuffix(line, "\n") || strings.Count(line, "\n") != 1 {
			t.Fatalf("expected exactly one line, got %q", line)
		}
		if strings.ContainsAny(line, "\"`") {
			t.Errorf("output is not sanitized: %q", line)
		}

		var decoded Suggestions
		if err := xml.Unmarshal([]byte(line), &decoded); err != nil {
			t.Fatalf("sanitized XML does not decode: %v\n%s", err, line)
		}
		if len(decoded.Items) != len(candidates) {
			t.Fatalf("expected %d suggestions, got %d", len(candidates), len(decoded.Items))
		}
		for i, c := range candidates {
			got := decoded.Items[i]
			if got.URL != c.URL || got.Artist != c.Artist || got.Title != c.Title {
				t.Errorf("suggestion %d = %+v, want %+v", i, got, c)
			}
		}
	})

	t.Run("lyrics stay on one line", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		sink := NewStreamSink(&buf)
		body := "I'm \"not\" here\nsecond line"
		if err := sink.Show(context.Background(), NewLyrics(model.NewLyricsResult("A", "B", body))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Fatalf("expected one line, got %q", buf.String())
		}

		var decoded Lyrics
		if err := xml.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if decoded.Body != body {
			t.Errorf("body = %q, want %q", decoded.Body, body)
		}
	})

	t.Run("notice and empty", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		sink := NewStreamSink(&buf)
		if err := sink.Show(context.Background(), NewNotice("a \"quoted\"\nnotice")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := sink.Show(context.Background(), Empty{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "a 'quoted' notice\n\n"
		if buf.String() != want {
			t.Errorf("output = %q, want %q", buf.String(), want)
		}
	})

	t.Run("unknown payload", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := NewStreamSink(&buf).Show(context.Background(), unknownPayload{})
		if !errors.Is(err, ErrUnknownPayload) {
			t.Errorf("expected ErrUnknownPayload, got %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}

// TestCommandSink tests argv construction for the display command.
func TestCommandSink(t *testing.T) {
	t.Parallel()

	display := []string{"dcop", "amarok", "contextbrowser", "showLyrics"}

	newRecorder := func() (*[][]string, Runner) {
		var calls [][]string
		return &calls, func(_ context.Context, argv []string) error {
			calls = append(calls, argv)
			return nil
		}
	}

	t.Run("payload is the final argument", func(t *testing.T) {
		t.Parallel()

		calls, run := newRecorder()
		sink, err := NewCommandSink(display, WithRunner(run))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		payload := NewSuggestions([]model.Candidate{{URL: "/x", Artist: "A", Title: "B"}})
		if err := sink.Show(context.Background(), payload); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(*calls) != 1 {
			t.Fatalf("expected 1 call, got %d", len(*calls))
		}
		argv := (*calls)[0]
		if len(argv) != len(display)+1 {
			t.Fatalf("argv = %q", argv)
		}
		want := `<suggestions><suggestion url='/x' artist='A' title='B'></suggestion></suggestions>`
		if argv[len(argv)-1] != want {
			t.Errorf("last argument = %q, want %q", argv[len(argv)-1], want)
		}
	})

	t.Run("empty payload has no argument", func(t *testing.T) {
		t.Parallel()

		calls, run := newRecorder()
		sink, err := NewCommandSink(display, WithRunner(run))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := sink.Show(context.Background(), Empty{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := (*calls)[0]; strings.Join(got, " ") != strings.Join(display, " ") {
			t.Errorf("argv = %q, want %q", got, display)
		}
	})

	t.Run("notice uses notice command", func(t *testing.T) {
		t.Parallel()

		calls, run := newRecorder()
		sink, err := NewCommandSink(display,
			WithRunner(run),
			WithNoticeCommand([]string{"kdialog", "--msgbox"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := sink.Show(context.Background(), NewNotice("hi")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.Join((*calls)[0], " "); got != "kdialog --msgbox hi" {
			t.Errorf("argv = %q", got)
		}
	})

	t.Run("notice falls back to display command", func(t *testing.T) {
		t.Parallel()

		calls, run := newRecorder()
		sink, err := NewCommandSink(display, WithRunner(run))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := sink.Show(context.Background(), NewNotice("hi")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := (*calls)[0]; got[0] != "dcop" || got[len(got)-1] != "hi" {
			t.Errorf("argv = %q", got)
		}
	})

	t.Run("runner error is wrapped", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		sink, err := NewCommandSink(display, WithRunner(func(context.Context, []string) error { return errBoom }))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := sink.Show(context.Background(), NewNotice("x")); !errors.Is(err, errBoom) {
			t.Errorf("expected wrapped runner error, got %v", err)
		}
	})

	t.Run("display command is required", func(t *testing.T) {
		t.Parallel()

		if _, err := NewCommandSink(nil); !errors.Is(err, ErrNoCommand) {
			t.Errorf("expected ErrNoCommand, got %v", err)
		}
		if _, err := NewCommandSink([]string{""}); !errors.Is(err, ErrNoCommand) {
			t.Errorf("expected ErrNoCommand, got %v", err)
		}
	})

	t.Run("configured argv is not modified", func(t *testing.T) {
		t.Parallel()

		argv := []string{"show", "lyrics"}
		_, run := newRecorder()
		sink, err := NewCommandSink(argv, WithRunner(run))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		argv[0] = "changed"
		if err := sink.Show(context.Background(), NewNotice("x")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sink.display[0] != "show" {
			t.Errorf("display command was aliased: %q", sink.display)
		}
	})
}

// TestJSONSink tests the JSON envelope.
func TestJSONSink(t *testing.T) {
	t.Parallel()

	t.Run("lyrics", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := NewJSONSink(&buf).Show(context.Background(), NewLyrics(model.NewLyricsResult("Blur", "Song 2", "Woo hoo"))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got struct {
			Kind    string `json:"kind"`
			Payload Lyrics `json:"payload"`
		}
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Kind != "lyrics" || got.Payload.Artist != "Blur" || got.Payload.Body != "Woo hoo" || got.Payload.Site != model.SiteName {
			t.Errorf("unexpected document: %+v", got)
		}
	})

	t.Run("suggestions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		payload := NewSuggestions([]model.Candidate{{URL: "/a", Artist: "A", Title: `"T"`}})
		if err := NewJSONSink(&buf).Show(context.Background(), payload); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got struct {
			Kind    string      `json:"kind"`
			Payload Suggestions `json:"payload"`
		}
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Kind != "suggestions" || len(got.Payload.Items) != 1 || got.Payload.Items[0].Title != `"T"` {
			t.Errorf("unexpected document: %+v", got)
		}
	})

	t.Run("empty has no payload", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := NewJSONSink(&buf).Show(context.Background(), Empty{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "payload") {
			t.Errorf("expected no payload field, got %s", buf.String())
		}
		if !strings.Contains(buf.String(), `"kind": "empty"`) {
			t.Errorf("expected empty kind, got %s", buf.String())
		}
	})

	t.Run("unknown payload", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := NewJSONSink(&buf).Show(context.Background(), unknownPayload{}); !errors.Is(err, ErrUnknownPayload) {
			t.Errorf("expected ErrUnknownPayload, got %v", err)
		}
	})
}

// TestMarkdownSink tests the Markdown rendering.
func TestMarkdownSink(t *testing.T) {
	t.Parallel()

	t.Run("suggestions table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		payload := NewSuggestions([]model.Candidate{
			{URL: "/display/a/amy_winehouse/valerie.html", Artist: "amy winehouse", Title: "Valerie"},
			{URL: "/display/b/blur/song2.html", Artist: "Blur", Title: "Song 2"},
		})
		if err := NewMarkdownSink(&buf).Show(context.Background(), payload); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Search Results",
			"2 songs found.",
			"Amy Winehouse",
			"/display/a/amy_winehouse/valerie.html",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output does not contain %q:\n%s", want, out)
			}
		}
	})

	t.Run("no suggestions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := NewMarkdownSink(&buf).Show(context.Background(), NewSuggestions(nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No songs matched the query.") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})

	t.Run("lyrics", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		payload := NewLyrics(model.NewLyricsResult("Blur", "Song 2", "Woo hoo\nWhen I feel heavy metal"))
		if err := NewMarkdownSink(&buf).Show(context.Background(), payload); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Blur - Song 2",
			"Source: [Astraweb](http://lyrics.astraweb.com)",
			"Woo hoo  \nWhen I feel heavy metal",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output does not contain %q:\n%s", want, out)
			}
		}
	})

	t.Run("lyrics without title", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := NewMarkdownSink(&buf).Show(context.Background(), NewLyrics(model.NewLyricsResult("Blur", "", "x"))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "# Blur\n") {
			t.Errorf("unexpected heading:\n%s", buf.String())
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := NewMarkdownSink(&buf).Show(context.Background(), Empty{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No results.") {
			t.Errorf("unexpected output:\n%s", buf.String())
		}
	})
}
