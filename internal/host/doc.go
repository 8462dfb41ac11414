// Package host implements the request loop between the music player and the
// lyrics pipeline.
//
// The player writes one request per line on standard input:
//
//	configure
//	fetchLyrics <artist> <title>
//	fetchLyricsByUrl <path>
//
// Artist and title are percent-encoded so that each fits in one
// whitespace-separated token. The detail path is passed on unmodified.
// Unknown commands are ignored. A failing or panicking request is logged
// and the loop moves on to the next line.
package host
