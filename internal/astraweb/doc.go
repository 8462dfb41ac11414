// Package astraweb scrapes song search results and lyrics from the Astraweb
// lyrics service.
//
// The service has two hosts. The search host answers an HTTP query with an
// HTML table of matching songs; ParseSearch turns that table into Candidates.
// The display host serves one lyrics page per song over a connection that
// does not speak valid HTTP; ParseLyricsPage turns such a page into a
// LyricsResult.
//
// Both parsers locate data by the literal markup around it (see package
// extract). When the outer markers are missing the page is rejected with
// ErrNoResultTable or ErrNoLyricsBody. Missing inner fields are tolerated and
// left empty.
package astraweb
