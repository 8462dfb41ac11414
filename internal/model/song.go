package model

const (
	// SiteName is the label shown to the user for the lyrics source.
	SiteName = "Astraweb"

	// SiteURL is the public homepage of the lyrics source.
	SiteURL = "http://lyrics.astraweb.com"
)

// Candidate is one song returned by the search service.
// Candidates are kept in the order the service returned them (relevance order).
type Candidate struct {
	// URL is the detail-page path on the lyrics display host.
	// It is never empty for candidates produced by the search parser.
	URL string `json:"url"`

	// Artist is the artist name shown in the result row. May be empty.
	Artist string `json:"artist"`

	// Title is the song title shown in the result row. May be empty.
	Title string `json:"title"`
}

// LyricsResult holds the lyrics of one song.
type LyricsResult struct {
	// Site is the display name of the lyrics source.
	Site string `json:"site"`

	// SiteURL is the homepage of the lyrics source.
	SiteURL string `json:"site_url"`

	// Artist is the artist parsed from the detail page title.
	Artist string `json:"artist"`

	// Title is the song title parsed from the detail page title.
	// Empty when the page title has no "Artist - Title" separator.
	Title string `json:"title"`

	// Body is the plain-text lyrics, one line per verse line.
	Body string `json:"body"`
}

// NewLyricsResult creates a LyricsResult labelled with the fixed site information.
func NewLyricsResult(artist, title, body string) *LyricsResult {
	return &LyricsResult{
		Site:    SiteName,
		SiteURL: SiteURL,
		Artist:  artist,
		Title:   title,
		Body:    body,
	}
}
