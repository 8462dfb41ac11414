package model

import "net/url"

// queryJoiner joins words in the search service's query string.
const queryJoiner = "+"

// Query is a free-text search request for a song.
// Artist and Title may contain spaces; they are expected to be percent-decoded.
type Query struct {
	// Artist is the performing artist as reported by the host player.
	Artist string `json:"artist"`

	// Title is the song title as reported by the host player.
	Title string `json:"title"`
}

// NewQuery creates a Query from an artist and a title.
func NewQuery(artist, title string) Query {
	return Query{Artist: artist, Title: title}
}

// Words returns the query as the search service expects it: artist and title
// with every space replaced by "+", joined by "+". Characters that would break
// the query string (&, #, non-ASCII) are percent-encoded.
//
// Example: Query{"Amy Winehouse", "Valerie"}.Words() == "Amy+Winehouse+Valerie"
func (q Query) Words() string {
	return url.QueryEscape(q.Artist) + queryJoiner + url.QueryEscape(q.Title)
}

// String returns a human-readable form of the query for logging.
func (q Query) String() string {
	if q.Title == "" {
		return q.Artist
	}
	return q.Artist + " - " + q.Title
}
