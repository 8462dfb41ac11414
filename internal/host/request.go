package host

import (
	"net/url"
	"strings"
)

// Commands understood by the loop.
const (
	CommandConfigure        = "configure"
	CommandFetchLyrics      = "fetchLyrics"
	CommandFetchLyricsByURL = "fetchLyricsByUrl"
)

// Request is one parsed line of the request protocol.
type Request struct {
	// Command is the leading run of ASCII letters on the line.
	Command string

	// Args are the whitespace-separated tokens after the command.
	Args []string
}

// ParseRequest splits a request line into its command and arguments.
// A line that does not start with a letter has an empty command.
func ParseRequest(line string) Request {
	line = strings.TrimLeft(line, " \t")
	end := 0
	for end < len(line) && isASCIILetter(line[end]) {
		end++
	}
	return Request{
		Command: line[:end],
		Args:    strings.Fields(line[end:]),
	}
}

// Arg returns the i-th argument, or "" and false when it is absent.
func (r Request) Arg(i int) (string, bool) {
	if i < 0 || i >= len(r.Args) {
		return "", false
	}
	return r.Args[i], true
}

func isASCIILetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// decodeArg percent-decodes a token. A token with a malformed escape is
// returned as is.
func decodeArg(token string) string {
	decoded, err := url.PathUnescape(token)
	if err != nil {
		return token
	}
	return decoded
}
