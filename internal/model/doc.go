// Package model defines the data structures shared by the lyrics pipeline.
//
// This package contains the following main types:
//   - Query: An artist/title pair submitted by the host player
//   - Candidate: One row of the remote search result table
//   - LyricsResult: The lyrics of one song, extracted from a detail page
//
// None of these values outlive a single request. They are plain structs so that
// the sink package can render them as XML, JSON, or Markdown without adapters.
package model
