package sink

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkdownSink writes payloads as Markdown documents.
type MarkdownSink struct {
	w     io.Writer
	title cases.Caser
}

// NewMarkdownSink creates a MarkdownSink that writes to w.
func NewMarkdownSink(w io.Writer) *MarkdownSink {
	return &MarkdownSink{
		w:     w,
		title: cases.Title(language.English),
	}
}

// Show implements Sink.
func (s *MarkdownSink) Show(_ context.Context, p Payload) error {
	md := markdown.NewMarkdown(s.w)

	switch v := p.(type) {
	case *Suggestions:
		s.writeSuggestions(md, v)
	case *Lyrics:
		s.writeLyrics(md, v)
	case *Notice:
		md.Note(v.Message)
	case Empty, *Empty:
		md.PlainText("No results.")
	default:
		return fmt.Errorf("%w: %T", ErrUnknownPayload, p)
	}

	if err := md.Build(); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

func (s *MarkdownSink) writeSuggestions(md *markdown.Markdown, v *Suggestions) {
	md.H1("Search Results")
	md.PlainText("")
	if len(v.Items) == 0 {
		md.PlainText("No songs matched the query.")
		return
	}
	md.PlainTextf("%d songs found.", len(v.Items))
	md.PlainText("")

	rows := make([][]string, 0, len(v.Items))
	for i, item := range v.Items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			escapeCell(s.name(item.Artist)),
			escapeCell(s.name(item.Title)),
			escapeCell(item.URL),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Artist", "Title", "Path"},
		Rows:   rows,
	})
}

func (s *MarkdownSink) writeLyrics(md *markdown.Markdown, v *Lyrics) {
	heading := s.name(v.Artist)
	if v.Title != "" {
		heading += " - " + s.name(v.Title)
	}
	md.H1(heading)
	md.PlainText("")
	md.PlainTextf("Source: [%s](%s)", v.Site, v.SiteURL)
	md.PlainText("")
	md.HorizontalRule()
	md.PlainText("")

	// A trailing double space keeps each lyric line as a hard line break.
	lines := strings.Split(strings.TrimSpace(v.Body), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		if i < len(lines)-1 && line != "" {
			line += "  "
		}
		lines[i] = line
	}
	md.PlainText(strings.Join(lines, "\n"))
}

// name title-cases names that the site returned entirely in lower case.
func (s *MarkdownSink) name(n string) string {
	if n == "" || n != strings.ToLower(n) {
		return n
	}
	return s.title.String(n)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
