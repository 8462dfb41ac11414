// Package extract provides marker-based text extraction for scraped HTML.
//
// Remote pages are located by the literal text surrounding the data of
// interest rather than by document structure. Every locating function here
// fails with ErrMarkerNotFound when a marker is absent, so callers never act
// on a partial match.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// ErrMarkerNotFound is returned when a start or end marker is absent.
var ErrMarkerNotFound = errors.New("marker not found")

// lineBreakRegex matches <br>, <BR>, <br/>, <br class="x"> and similar tags.
var lineBreakRegex = regexp.MustCompile(`(?i)<br[^>]*>`)

// newlineReplacer removes line terminators from markup.
var newlineReplacer = strings.NewReplacer("\r", "", "\n", "")

// StripNewlines removes every newline and carriage return from s.
// The scraped pages are not line oriented, so line terminators only get in
// the way of marker matching.
func StripNewlines(s string) string {
	return newlineReplacer.Replace(s)
}

// Span returns the part of s that starts at the first occurrence of start and
// ends just before the last occurrence of end. The start marker is included in
// the result, the end marker is not.
func Span(s, start, end string) (string, error) {
	from := strings.Index(s, start)
	if from < 0 {
		return "", fmt.Errorf("start %q: %w", start, ErrMarkerNotFound)
	}
	to := strings.LastIndex(s[from+len(start):], end)
	if to < 0 {
		return "", fmt.Errorf("end %q: %w", end, ErrMarkerNotFound)
	}
	return s[from : from+len(start)+to], nil
}

// Between returns the text between the first occurrence of start and the
// last occurrence of end that follows it. Neither marker is included.
func Between(s, start, end string) (string, error) {
	span, err := Span(s, start, end)
	if err != nil {
		return "", err
	}
	return span[len(start):], nil
}

// Fragments splits s at every occurrence of sep and discards the text before
// the first separator. Each returned fragment is the text following one
// separator, up to the next one.
func Fragments(s, sep string) []string {
	parts := strings.Split(s, sep)
	if len(parts) <= 1 {
		return nil
	}
	return parts[1:]
}

// Submatch returns capture group n of the first match of re in s.
// It returns an empty string when re does not match.
func Submatch(re *regexp.Regexp, s string, n int) string {
	m := re.FindStringSubmatch(s)
	if n >= len(m) {
		return ""
	}
	return m[n]
}

// BreaksToNewlines replaces every <br> tag in s with a newline.
//
// Example: "Line one<BR>Line two<br />Line three" becomes
// "Line one\nLine two\nLine three".
func BreaksToNewlines(s string) string {
	return lineBreakRegex.ReplaceAllString(s, "\n")
}

// Text unescapes HTML character references (&amp;, &#39;, ...) in s and trims
// surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}

// Unescape unescapes HTML character references in s without trimming it.
func Unescape(s string) string {
	return html.UnescapeString(s)
}
