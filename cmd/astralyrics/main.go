// Package main provides the entry point for the astralyrics CLI.
//
// astralyrics is a lyrics helper for music players. It searches the Astraweb
// lyrics service for an artist and title, then downloads and cleans up the
// lyrics of the chosen song.
//
// Usage:
//
//	astralyrics                      # serve requests from the player on stdin
//	astralyrics search <artist> <title>
//	astralyrics fetch <path>
//
// See --help for all available options.
package main

// main is the entry point for astralyrics.
func main() {
	Execute()
}
