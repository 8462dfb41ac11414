package astraweb

import "errors"

// Scraping errors.
var (
	// ErrNoResultTable is returned when a search page does not contain the
	// result table (row marker or "More Songs" trailer is absent).
	ErrNoResultTable = errors.New("search result table not found")

	// ErrNoLyricsBody is returned when a detail page does not contain the
	// lyrics block.
	ErrNoLyricsBody = errors.New("lyrics body not found")

	// ErrUnexpectedStatus is returned when the search host answers with a
	// status other than 200 OK.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrEmptyPath is returned when a lyrics fetch is requested without a
	// detail-page path.
	ErrEmptyPath = errors.New("detail page path is empty")
)
