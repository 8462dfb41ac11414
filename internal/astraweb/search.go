package astraweb

import (
	"fmt"
	"regexp"

	"github.com/nao1215/astralyrics/internal/extract"
	"github.com/nao1215/astralyrics/internal/model"
)

const (
	// resultRowMarker opens every row of the search result table.
	resultRowMarker = `<tr><td bgcolor="#BBBBBB"`

	// resultTableTrailer follows the last row of the search result table.
	resultTableTrailer = "More Songs &gt"
)

var (
	// detailURLRegex captures the path that follows the display host locator.
	detailURLRegex = regexp.MustCompile(`display\.lyrics\.astraweb\.com:2000([^"]*)`)

	// artistRegex captures the text of the first link after "Artist:".
	artistRegex = regexp.MustCompile(`Artist:.*?html">([^<]*)`)

	// titleRegex captures the text of the first link to the display host.
	titleRegex = regexp.MustCompile(`display\.lyrics.*?>([^<]*)`)
)

// SearchPath returns the request path that searches for q.
//
// Example: SearchPath(Query{"Amy Winehouse", "Valerie"}) == "/?word=Amy+Winehouse+Valerie"
func SearchPath(q model.Query) string {
	return "/?word=" + q.Words()
}

// ParseSearch extracts the candidate songs from a search result page.
// Candidates are returned in the order they appear on the page. Rows without
// a detail-page link are skipped; rows missing an artist or title yield
// candidates with that field empty.
//
// If the result table cannot be located, ParseSearch returns an error
// wrapping ErrNoResultTable and no candidates.
func ParseSearch(page string) ([]model.Candidate, error) {
	page = extract.StripNewlines(page)

	table, err := extract.Span(page, resultRowMarker, resultTableTrailer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoResultTable, err)
	}

	rows := extract.Fragments(table, resultRowMarker)
	candidates := make([]model.Candidate, 0, len(rows))
	for _, row := range rows {
		c, ok := parseRow(row)
		if !ok {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// parseRow extracts one candidate from a result row.
func parseRow(row string) (model.Candidate, bool) {
	url := extract.Text(extract.Submatch(detailURLRegex, row, 1))
	if url == "" {
		return model.Candidate{}, false
	}
	return model.Candidate{
		URL:    url,
		Artist: extract.Text(extract.Submatch(artistRegex, row, 1)),
		Title:  extract.Text(extract.Submatch(titleRegex, row, 1)),
	}, true
}
