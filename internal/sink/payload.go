package sink

import (
	"encoding/xml"
	"fmt"

	"github.com/nao1215/astralyrics/internal/model"
)

// Kind identifies the type of a Payload.
type Kind int

const (
	// KindEmpty is the empty state shown when a search could not be performed.
	KindEmpty Kind = iota
	// KindSuggestions is a list of candidate songs.
	KindSuggestions
	// KindLyrics is the lyrics of one song.
	KindLyrics
	// KindNotice is a plain popup message.
	KindNotice
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindSuggestions:
		return "suggestions"
	case KindLyrics:
		return "lyrics"
	case KindNotice:
		return "notice"
	default:
		return "unknown"
	}
}

// Payload is a result handed to a Sink.
type Payload interface {
	Kind() Kind
}

// Suggestion is one candidate song in a Suggestions payload.
type Suggestion struct {
	URL    string `xml:"url,attr" json:"url"`
	Artist string `xml:"artist,attr" json:"artist"`
	Title  string `xml:"title,attr" json:"title"`
}

// Suggestions lists the candidates returned by a search.
type Suggestions struct {
	XMLName xml.Name     `xml:"suggestions" json:"-"`
	Items   []Suggestion `xml:"suggestion" json:"suggestions"`
}

// NewSuggestions creates a Suggestions payload preserving candidate order.
func NewSuggestions(candidates []model.Candidate) *Suggestions {
	items := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, Suggestion{URL: c.URL, Artist: c.Artist, Title: c.Title})
	}
	return &Suggestions{Items: items}
}

// Kind implements Payload.
func (*Suggestions) Kind() Kind { return KindSuggestions }

// Lyrics carries the lyrics of one song.
type Lyrics struct {
	XMLName xml.Name `xml:"lyrics" json:"-"`
	Site    string   `xml:"site,attr" json:"site"`
	SiteURL string   `xml:"site_url,attr" json:"site_url"`
	Artist  string   `xml:"artist,attr" json:"artist"`
	Title   string   `xml:"title,attr" json:"title"`
	Body    string   `xml:",chardata" json:"body"`
}

// NewLyrics creates a Lyrics payload from a lyrics result.
func NewLyrics(r *model.LyricsResult) *Lyrics {
	return &Lyrics{
		Site:    r.Site,
		SiteURL: r.SiteURL,
		Artist:  r.Artist,
		Title:   r.Title,
		Body:    r.Body,
	}
}

// Kind implements Payload.
func (*Lyrics) Kind() Kind { return KindLyrics }

// Notice is a plain message for the user.
type Notice struct {
	Message string `json:"message"`
}

// NewNotice creates a Notice payload.
func NewNotice(message string) *Notice {
	return &Notice{Message: message}
}

// Kind implements Payload.
func (*Notice) Kind() Kind { return KindNotice }

// Empty is the payload for "nothing to show".
type Empty struct{}

// Kind implements Payload.
func (Empty) Kind() Kind { return KindEmpty }

// Render returns the host-facing text form of p: an XML document for
// suggestions and lyrics, the message itself for a notice, and an empty
// string for the empty state. The result is not sanitized.
func Render(p Payload) (string, error) {
	switch v := p.(type) {
	case *Suggestions, *Lyrics:
		out, err := xml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to render %s payload: %w", p.Kind(), err)
		}
		return string(out), nil
	case *Notice:
		return v.Message, nil
	case Empty, *Empty:
		return "", nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnknownPayload, p)
	}
}
