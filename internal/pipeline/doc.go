// Package pipeline runs the two request stages of the lyrics helper.
//
// A Runner ties the lyrics service client to a display sink:
//
//   - Search: query -> search page -> candidates -> Suggestions payload
//   - Fetch: detail path -> lyrics page -> LyricsResult -> Lyrics payload
//   - Notice: the fixed "no configuration" message
//
// Each call is independent. The Runner keeps no state between requests and
// applies the configured timeout to the network part of every request.
//
// Failure handling differs per stage. A search that cannot reach the service
// shows the empty state, so the player stops waiting. Every other failure is
// returned to the caller and nothing is shown.
package pipeline
