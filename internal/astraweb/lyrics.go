package astraweb

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/astralyrics/internal/extract"
	"github.com/nao1215/astralyrics/internal/model"
)

const (
	// pageTitlePrefix starts the <title> of every lyrics page.
	pageTitlePrefix = "Lyrics: "

	// artistTitleSeparator separates artist and title inside the page title.
	artistTitleSeparator = " - "

	// lyricsStartMarker opens the lyrics block.
	lyricsStartMarker = "<font face=arial size=2>"

	// lyricsEndMarker closes the lyrics block.
	lyricsEndMarker = "<br><br><br><center>"
)

// ParseLyricsPage extracts artist, title, and lyrics from a detail page.
//
// Artist and title come from the page title ("Lyrics: Artist - Title"). A
// title without the separator yields the whole text as artist and an empty
// title; a missing page title yields both empty. Neither case is an error.
//
// The lyrics block is required: without it ParseLyricsPage returns an error
// wrapping ErrNoLyricsBody. Inside the block, <br> tags become newlines and
// HTML character references are unescaped.
func ParseLyricsPage(page string) (*model.LyricsResult, error) {
	page = extract.StripNewlines(page)

	block, err := extract.Between(page, lyricsStartMarker, lyricsEndMarker)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoLyricsBody, err)
	}
	body := extract.Unescape(extract.BreaksToNewlines(block))

	artist, title := splitArtistTitle(pageTitle(page))
	return model.NewLyricsResult(artist, title, body), nil
}

// pageTitle returns the text of the page's <title> element after the
// "Lyrics: " prefix, or "" when the element or prefix is absent.
func pageTitle(page string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return ""
	}
	text := doc.Find("title").First().Text()
	rest, ok := strings.CutPrefix(strings.TrimLeft(text, " \t"), pageTitlePrefix)
	if !ok {
		return ""
	}
	return rest
}

// splitArtistTitle splits "Artist - Title" at the first separator.
func splitArtistTitle(s string) (string, string) {
	artist, title, _ := strings.Cut(s, artistTitleSeparator)
	return strings.TrimSpace(artist), strings.TrimSpace(title)
}
