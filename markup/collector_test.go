package markup

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

type cellEvent struct {
	start, end, text string
	attrs          Attrs
	inFlex         bool
}

func feed(c CellCollector, events []cellEvent) string {
	for _, ev := range events {
		switch {
		case ev.start != "":
			c.StartElement(ev.start, ev.attrs, ev.inFlex)
		case ev.end != "":
			c.EndElement(ev.end)
		default:
			c.AddText(ev.text)
		}
	}
	return c.FinishText()
}

func TestTableCollector(t *testing.T) {
	tests := []struct {
		name   string
		events []cellEvent
		want   string
	}{
		{
			name: "colspan",
			events: []cellEvent{
				{start: "tr"}, {start: "td", attrs: Attrs{{Name: "colspan", Value: "2"}}}, {text: "wide"}, {end: "td"}, {end: "tr"},
				{start: "tr"}, {start: "td"}, {text: "a"}, {end: "td"}, {start: "td"}, {text: "b"}, {end: "td"}, {end: "tr"},
			},
			want: "wide\na    b",
		},
		{
			name: "bad colspan",
			events: []cellEvent{
				{start: "tr"}, {start: "td", attrs: Attrs{{Name: "colspan", Value: "x"}}}, {text: "x"}, {end: "td"}, {end: "tr"},
				{start: "tr"}, {start: "td"}, {text: "a"}, {end: "td"}, {start: "td"}, {text: "b"}, {end: "td"}, {end: "tr"},
			},
			want: "x\na  b",
		},
		{
			name:   "cell outside of row",
			events: []cellEvent{{start: "td"}, {text: "lost"}, {end: "td"}},
			want:   "",
		},
		{
			name: "explicit header section",
			events: []cellEvent{
				{start: "thead"}, {start: "tr"}, {start: "td"}, {text: "H"}, {end: "td"}, {end: "tr"}, {end: "thead"},
				{start: "tbody"}, {start: "tr"}, {start: "td"}, {text: "v"}, {end: "td"}, {end: "tr"}, {end: "tbody"},
			},
			want: "_\nH\n_\nv\n_\n",
		},
		{
			name: "block child breaks cell",
			events: []cellEvent{
				{start: "tr"}, {start: "td"}, {text: "one"}, {start: "div"}, {text: "two"}, {end: "div"}, {end: "td"}, {end: "tr"},
			},
			want: "one\ntwo",
		},
		{
			name: "block child in flex row",
			events: []cellEvent{
				{start: "tr"}, {start: "td"}, {text: "one"}, {start: "div", inFlex: true}, {text: "two"}, {end: "div"}, {end: "td"}, {end: "tr"},
			},
			want: "one two",
		},
		{
			name:   "text before first cell",
			events: []cellEvent{{start: "tr"}, {text: "loose"}, {end: "tr"}},
			want:   "loose",
		},
		{
			name: "heading in cell",
			events: []cellEvent{
				{start: "tr"}, {start: "th"}, {start: "h2"}, {text: "Title"}, {end: "h2"}, {end: "th"}, {end: "tr"},
			},
			want: "_____\nTitle\n=====\n_____\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := feed(NewTableCollector(zaptest.NewLogger(t)), tt.events)
			if got != tt.want {
				t.Errorf("FinishText() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestDropdownCollector(t *testing.T) {
	tests := []struct {
		name   string
		events []cellEvent
		want   string
	}{
		{
			name: "options",
			events: []cellEvent{
				{start: "option"}, {text: "a"}, {end: "option"},
				{text: "ignored"},
				{start: "option"}, {text: "b"}, {end: "option"},
			},
			want: "Dropdown (a, b)",
		},
		{
			name: "empty",
			want: "Dropdown ()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := feed(NewDropdownCollector(), tt.events); got != tt.want {
				t.Errorf("FinishText() = %q, want %q", got, tt.want)
			}
		})
	}
}
