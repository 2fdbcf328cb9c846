// Package markup turns a stream of HTML tag and text events into annotated
// plain text suitable for UI regression testing.
package markup

import (
	"fmt"
	"io"
	"strings"
)

// EventKind tells which variant of Event is populated.
type EventKind int

const (
	StartTag EventKind = iota
	EndTag
	Text
)

// Attr is a single element attribute as delivered by the tokenizer.
type Attr struct {
	Name  string
	Value string
}

// Attrs keeps attributes in document order. Lookups always return the first
// occurrence.
type Attrs []Attr

// Get returns attribute value and whether attribute is present at all.
// Attributes without value (`<div hidden>`) are present with empty value.
func (a Attrs) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Value returns attribute value or empty string when absent.
func (a Attrs) Value(name string) string {
	v, _ := a.Get(name)
	return v
}

// Has reports whether attribute is present.
func (a Attrs) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

func (a Attrs) String() string {
	parts := make([]string, 0, len(a))
	for _, attr := range a {
		parts = append(parts, fmt.Sprintf("%s=%q", attr.Name, attr.Value))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Event is one notification from the markup scanner.
type Event struct {
	Kind  EventKind
	Name  string // StartTag, EndTag
	Attrs Attrs  // StartTag
	Data  string // Text
}

func NewStartTag(name string, attrs ...Attr) Event {
	return Event{Kind: StartTag, Name: strings.ToLower(name), Attrs: attrs}
}

func NewEndTag(name string) Event {
	return Event{Kind: EndTag, Name: strings.ToLower(name)}
}

func NewText(data string) Event {
	return Event{Kind: Text, Data: data}
}

func (e Event) String() string {
	switch e.Kind {
	case StartTag:
		return "<" + e.Name + " " + e.Attrs.String() + ">"
	case EndTag:
		return "</" + e.Name + ">"
	default:
		return fmt.Sprintf("text(%q)", e.Data)
	}
}

// EventSource delivers events one at a time. Next returns io.EOF when the
// document is exhausted, any other error is a scanner failure.
type EventSource interface {
	Next() (Event, error)
}

// Events is an EventSource over already prepared slice of events, mostly
// useful for tests and for callers with their own scanner.
type Events struct {
	list []Event
	pos  int
}

func NewEvents(events ...Event) *Events {
	return &Events{list: events}
}

func (e *Events) Next() (Event, error) {
	if e.pos >= len(e.list) {
		return Event{}, io.EOF
	}
	ev := e.list[e.pos]
	e.pos++
	return ev, nil
}
