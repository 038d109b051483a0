package act

import (
	"encoding/json"
	"time"

	"github.com/lawtext/gazette/internal/phrase"
)

// elementJSON is the wire form of an Element. Kind is rendered as its
// string name; the parent back-reference is never serialized.
type elementJSON struct {
	Kind     string        `json:"kind"`
	ID       string        `json:"id,omitempty"`
	Text     string        `json:"text,omitempty"`
	Intro    string        `json:"intro,omitempty"`
	WrapUp   string        `json:"wrap_up,omitempty"`
	Children []*Element    `json:"children,omitempty"`
	Spans    []phrase.Span `json:"spans,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(elementJSON{
		Kind:     e.Kind.String(),
		ID:       e.ID,
		Text:     e.Text,
		Intro:    e.Intro,
		WrapUp:   e.WrapUp,
		Children: e.Children,
		Spans:    e.Spans,
	})
}

// actJSON is the wire form of an Act.
type actJSON struct {
	Year      int        `json:"year"`
	Serial    string     `json:"serial"`
	Subject   string     `json:"subject,omitempty"`
	Published string     `json:"published,omitempty"`
	Children  []*Element `json:"children"`
	Headings  []Heading  `json:"headings,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (a *Act) MarshalJSON() ([]byte, error) {
	out := actJSON{
		Year:     a.ID.Year,
		Serial:   a.ID.Serial,
		Subject:  a.Subject,
		Children: a.Children,
		Headings: a.Headings,
	}
	if !a.Published.IsZero() {
		out.Published = a.Published.Format(time.DateOnly)
	}
	return json.Marshal(out)
}
