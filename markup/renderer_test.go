package markup

import (
	"errors"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func start(name string, attrs ...string) Event {
	var list []Attr
	for i := 0; i+1 < len(attrs); i += 2 {
		list = append(list, Attr{Name: attrs[i], Value: attrs[i+1]})
	}
	return NewStartTag(name, list...)
}

func end(name string) Event {
	return NewEndTag(name)
}

func text(s string) Event {
	return NewText(s)
}

// body wraps events into body element.
func body(events ...Event) []Event {
	return append(append([]Event{start("body")}, events...), end("body"))
}

func TestRender(t *testing.T) {
	underscores := strings.Repeat("_", 50)

	tests := []struct {
		name   string
		opts   Options
		events []Event
		want   string
	}{
		{
			name:   "heading",
			events: body(start("h1"), text("Title"), end("h1")),
			want:   "Title\n=====\n\n",
		},
		{
			name:   "heading after text",
			events: body(text("intro"), start("h2"), text("Sub"), end("h2")),
			want:   "intro\n\nSub\n===\n\n",
		},
		{
			name:   "outside of body",
			events: []Event{start("head"), start("title"), text("Page"), end("title"), end("head")},
			want:   "",
		},
		{
			name:   "multi-line link",
			events: body(start("a", "href", "#"), text("first"), start("br"), text("second"), end("a")),
			want:   "\nfirst ->\nsecond->\n",
		},
		{
			name:   "inline link",
			events: body(text("see"), start("a"), text("docs"), end("a"), text("now")),
			want:   "seedocs->  now",
		},
		{
			name: "modal dialog",
			opts: Options{Modals: NewClassSet("modal")},
			events: body(
				text("Before"),
				start("div", "class", "modal"), text("Inside"), end("div"),
				text("After"),
			),
			want: "\n" + strings.Repeat("_", 18) + " Modal dialog " + strings.Repeat("_", 18) + "\n" +
				"Inside\n" + underscores,
		},
		{
			name:   "open dialog",
			events: body(text("x"), start("dialog", "open", ""), text("Hi"), end("dialog"), text("y")),
			want: "\n" + strings.Repeat("_", 21) + " Dialog " + strings.Repeat("_", 21) + "\n" +
				"Hi\n" + underscores,
		},
		{
			name:   "closed dialog",
			events: body(text("x"), start("dialog"), text("Hi"), end("dialog")),
			want:   "x",
		},
		{
			name: "nested lists",
			events: body(
				start("ul"),
				start("li"), text("one"), end("li"),
				start("li"), text("two"),
				start("ul"), start("li"), text("nested"), end("li"), end("ul"),
				end("li"),
				end("ul"),
			),
			want: "- one\n- two\n  - nested\n",
		},
		{
			name: "form controls",
			events: body(
				start("input", "type", "text", "placeholder", "Name"),
				start("input", "type", "checkbox"),
				text("Agree"),
				start("input", "type", "submit", "value", "Go"),
				start("input", "type", "hidden", "value", "secret"),
			),
			want: "=== _Name_ === [ ] Agree Button 'Go' (submit)",
		},
		{
			name:   "password input",
			events: body(start("input", "type", "password")),
			want:   "=== === (password)",
		},
		{
			name:   "radio",
			events: body(start("input", "type", "radio"), text("Yes")),
			want:   "( ) Yes",
		},
		{
			name:   "button",
			events: body(start("button"), text("OK"), end("button")),
			want:   "Button 'OK'",
		},
		{
			name:   "bold",
			events: body(text("a"), start("b"), text("bold"), end("b"), text("c")),
			want:   "a *bold* c",
		},
		{
			name:   "superscript",
			events: body(text("x"), start("sup"), text(" 2 "), end("sup")),
			want:   "x^2",
		},
		{
			name:   "horizontal rule",
			events: body(text("x"), start("hr"), text("y")),
			want:   "x\n" + strings.Repeat("_", 100) + "\ny",
		},
		{
			name:   "paragraphs",
			events: body(start("p"), text("One"), end("p"), start("p"), text("Two"), end("p")),
			want:   "One\n\nTwo\n\n",
		},
		{
			name:   "navigation",
			events: body(start("nav"), start("a"), text("Home"), end("a"), end("nav")),
			want:   "\n(Navigation:\nHome->  )",
		},
		{
			name:   "image and iframe",
			events: body(start("img", "src", "/static/img/logo.png"), start("iframe", "src", "frame.html"), end("iframe")),
			want:   "Image 'logo.png' IFrame 'frame.html'",
		},
		{
			name:   "textarea",
			events: body(start("textarea"), end("textarea")),
			want:   "\n==========\n\n==========",
		},
		{
			name:   "table",
			events: body(
				start("table"),
				start("tr"), start("th"), text("Name"), end("th"), start("th"), text("Age"), end("th"), end("tr"),
				start("tr"), start("td"), text("Bob"), end("td"), start("td"), text("42"), end("td"), end("tr"),
				end("table"),
			),
			want: "\n_________\nName  Age\n_________\nBob   42\n_________\n",
		},
		{
			name: "nested table merges into parent cell",
			events: body(
				start("table"), start("tr"),
				start("td"), text("outer"),
				start("table"), start("tr"),
				start("td"), text("in1"), end("td"), start("td"), text("in2"), end("td"),
				end("tr"), end("table"),
				end("td"),
				start("td"), text("x"), end("td"),
				end("tr"), end("table"),
			),
			want: "\nouter     x\nin1  in2\n",
		},
		{
			name: "dropdown",
			events: body(
				text("Pick"),
				start("select"),
				start("option"), text("A"), end("option"),
				start("option"), text("B"), end("option"),
				end("select"),
			),
			want: "Pick\nDropdown (A, B)\n",
		},
		{
			name: "ignored class",
			opts: Options{Ignore: NewClassSet("secret")},
			events: body(
				text("Shown"),
				start("div", "class", "x secret"), start("div"), text("Hidden"), end("div"), end("div"),
				text("Tail"),
			),
			want: "Shown Tail",
		},
		{
			name:   "hidden attribute",
			events: body(text("a"), start("span", "hidden", ""), text("b"), end("span"), text("c")),
			want:   "a c",
		},
		{
			name:   "display none",
			events: body(text("a"), start("span", "style", "display: none"), text("b"), end("span")),
			want:   "a",
		},
		{
			name:   "visibility hidden",
			events: body(text("a"), start("span", "style", "color: red; visibility: hidden !important"), text("b"), end("span")),
			want:   "a",
		},
		{
			name:   "off screen",
			events: body(text("a"), start("span", "style", "position: absolute; left: -9999px"), text("b"), end("span")),
			want:   "a",
		},
		{
			name:   "show invisible",
			opts:   Options{ShowInvisible: true},
			events: body(text("a"), start("span", "hidden", ""), text("b"), end("span")),
			want:   "a b",
		},
		{
			name:   "noscript",
			events: body(text("a"), start("noscript"), text("enable javascript"), end("noscript")),
			want:   "a",
		},
		{
			name:   "script",
			events: body(text("a"), start("script"), text("var x = 1;"), end("script"), text("b")),
			want:   "a b",
		},
		{
			name: "collapsed slider",
			events: []Event{
				start("style"), text(".panel { width: 0px } .panel.open { width: 200px }"), end("style"),
				start("body"),
				start("div", "class", "panel"), text("Secret"), end("div"),
				start("div", "class", "panel open"), text("Visible"), end("div"),
				end("body"),
			},
			want: "Visible\n",
		},
		{
			name:   "icon element",
			events: body(start("i", "class", "fa fa-check"), end("i"), text("Done")),
			want:   ":fa-check: Done",
		},
		{
			name:   "configured icon id",
			opts:   Options{Icons: NewClassSet("close-btn")},
			events: body(start("span", "id", "close-btn"), end("span")),
			want:   ":close-btn:",
		},
		{
			name:   "kendo text",
			events: body(text("k-i-close")),
			want:   ":k-i-close:",
		},
		{
			name: "flex row",
			events: body(
				start("div", "style", "display:flex"),
				start("div"), text("A"), end("div"),
				start("div"), text("B"), end("div"),
				end("div"),
				text("after"),
			),
			want: "A B\nafter",
		},
		{
			name: "block row",
			events: body(
				start("div"),
				start("div"), text("A"), end("div"),
				start("div"), text("B"), end("div"),
				end("div"),
				text("after"),
			),
			want: "A\nB\nafter",
		},
		{
			name:   "stray end tags",
			events: body(text("a"), end("table"), end("a"), end("li"), text("b")),
			want:   "a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.opts, zaptest.NewLogger(t)).Render(NewEvents(tt.events...))
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

type failingSource struct {
	events []Event
	err    error
}

func (s *failingSource) Next() (Event, error) {
	if len(s.events) == 0 {
		return Event{}, s.err
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

func TestRenderPartialOnError(t *testing.T) {
	boom := errors.New("boom")
	src := &failingSource{events: []Event{start("body"), text("partial")}, err: boom}

	got, err := New(Options{}, nil).Render(src)
	if !errors.Is(err, boom) {
		t.Fatalf("Render() error = %v, want %v", err, boom)
	}
	if got != "partial" {
		t.Errorf("Render() = %q, want %q", got, "partial")
	}
}

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "heading",
			in:   "<html><head><title>x</title></head><body><h1>Title</h1></body></html>",
			want: "Title\n=====\n\n",
		},
		{
			name: "non-breaking space",
			in:   "<body><span>a</span>&nbsp;<span>b</span></body>",
			want: "a b",
		},
		{
			name: "self-closing div",
			in:   "<body>a<div/>b</body>",
			want: "a\nb",
		},
	}

	r := New(Options{}, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderHTML(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("RenderHTML() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderHTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEventsExhausted(t *testing.T) {
	src := NewEvents(text("x"))
	if _, err := src.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
}
