// Package protocol provides the two transports used to talk to the lyrics
// service.
//
// # Transports
//
//   - HTTPFetcher: a regular HTTP GET over net/http, used for the search host.
//   - RawFetcher: a degraded mode for the detail host. It writes a bare
//     "GET <path>\n" request line to a TCP connection and reads until the
//     server closes it. The detail host answers with a malformed HTTP header
//     that net/http refuses, so the response is parsed leniently instead.
//
// Both transports dial through a golang.org/x/net/proxy dialer. When a SOCKS5
// proxy is configured every connection goes through it; otherwise connections
// are direct.
//
// Response bodies are decoded to UTF-8 with golang.org/x/net/html/charset,
// since the lyrics pages are served in legacy encodings.
//
// # Usage
//
//	dialer, err := protocol.NewDialer("", 30*time.Second)
//	httpFetcher := protocol.NewHTTPFetcher(dialer)
//	resp, err := httpFetcher.Get(ctx, "search.lyrics.astraweb.com:80", "/?word=blur+song+2")
//
//	rawFetcher := protocol.NewRawFetcher(dialer)
//	body, err := rawFetcher.Fetch(ctx, "display.lyrics.astraweb.com:2000", "/display.cgi?...")
package protocol
