package markup

import (
	"io"

	"golang.org/x/net/html"
)

// Tokenizer adapts golang.org/x/net/html tokenizer to EventSource. It does not
// build a tree and does not try to repair the document, every tag is reported
// as it is met in the source.
type Tokenizer struct {
	z       *html.Tokenizer
	pending []Event
}

// NewTokenizer expects UTF-8 input, use golang.org/x/net/html/charset to get
// there from anything else.
func NewTokenizer(r io.Reader) *Tokenizer {
	return &Tokenizer{z: html.NewTokenizer(r)}
}

// Next returns next event of interest. Comments and doctype are skipped.
// Self-closing non-void elements (`<div/>`) are reported as start tag
// followed by end tag, void elements only as start tag since renderer never
// expects end tag for them.
func (t *Tokenizer) Next() (Event, error) {
	if len(t.pending) > 0 {
		ev := t.pending[0]
		t.pending = t.pending[1:]
		return ev, nil
	}

	for {
		tt := t.z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF at the end of the input
			return Event{}, t.z.Err()

		case html.TextToken:
			return NewText(string(t.z.Text())), nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := t.z.Token()
			attrs := make(Attrs, 0, len(tok.Attr))
			for _, a := range tok.Attr {
				attrs = append(attrs, Attr{Name: a.Key, Value: a.Val})
			}
			ev := NewStartTag(tok.Data, attrs...)
			if tt == html.SelfClosingTagToken && !isVoidElement(ev.Name) {
				t.pending = append(t.pending, NewEndTag(ev.Name))
			}
			return ev, nil

		case html.EndTagToken:
			name, _ := t.z.TagName()
			return NewEndTag(string(name)), nil
		}
	}
}
