package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"snaptext/css"
	"snaptext/grid"
)

// Renderer converts markup event streams to text. It keeps only immutable
// settings, every Render call works on its own document state, so single
// Renderer could be used from several goroutines.
type Renderer struct {
	opts Options
	log  *zap.Logger
}

func New(opts Options, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{opts: opts, log: log.Named("markup")}
}

// Render consumes events until source is exhausted or a dialog is complete.
// On scanner failure text rendered so far is returned together with error.
func (r *Renderer) Render(src EventSource) (string, error) {
	d := newDocument(r)
	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return d.out.String(), fmt.Errorf("unable to read markup: %w", err)
		}
		if d.handle(ev) == dialogComplete {
			d.log.Debug("Dialog complete, rest of the document skipped")
			break
		}
	}
	return d.out.String(), nil
}

// RenderHTML tokenizes UTF-8 HTML from rd and renders it.
func (r *Renderer) RenderHTML(rd io.Reader) (string, error) {
	return r.Render(NewTokenizer(rd))
}

// step is the outcome of a single event.
type step int

const (
	proceed step = iota
	dialogComplete
)

// flexGroup remembers where flex container started. hadDivs is set when a
// div child was closed inside, so the group needs line break at the end.
type flexGroup struct {
	tag     string
	start   int
	hadDivs bool
}

// suppression is the scope of an ignored element. depth counts nested
// elements with the same name so the first inner end tag does not close it.
type suppression struct {
	tag   string
	depth int
}

func (s *suppression) active() bool {
	return s.tag != ""
}

// document is the state of a single Render call.
type document struct {
	opts *Options
	log  *zap.Logger
	css  *css.Parser

	out    buffer
	before string // flushed before next text
	after  string // flushed after next text or at next end tag

	collectors []CellCollector
	ignore     suppression
	sliders    []Slider
	flex       map[int]*flexGroup

	inBody        bool
	inScript      bool
	inStyle       bool
	inSuperscript bool

	level      int
	listLevel  int
	linkStart  int // -1 outside of anchor
	modalLevel int // 0 outside of modal div
	dialogOpen bool
}

func newDocument(r *Renderer) *document {
	return &document{
		opts:      &r.opts,
		log:       r.log,
		css:       css.NewParser(r.log),
		flex:      make(map[int]*flexGroup),
		linkStart: -1,
	}
}

func (d *document) handle(ev Event) step {
	switch ev.Kind {
	case StartTag:
		return d.startTag(ev.Name, ev.Attrs)
	case EndTag:
		return d.endTag(ev.Name)
	default:
		d.handleData(ev.Data)
		return proceed
	}
}

func (d *document) collector() CellCollector {
	if len(d.collectors) == 0 {
		return nil
	}
	return d.collectors[len(d.collectors)-1]
}

func (d *document) newTableCollector() *TableCollector {
	return NewTableCollector(d.log.Named("table"), d.opts.Grid...)
}

// addText routes text to the stylesheet analyzer, innermost collector or
// document body. Whitespace only text is added when it changes layout.
func (d *document) addText(text string) {
	switch {
	case d.inStyle:
		d.learnSliders(text)
	case len(d.collectors) > 0:
		d.collector().AddText(text)
	case d.inBody && !d.inScript:
		existing := d.out.Tail()
		if !isSpaceOnly(text) || ShouldAddWhitespace(text, existing) {
			d.out.Append(AdaptSpaces(strings.Trim(text, " "), existing))
		}
	}
}

// ensureNewline terminates current line directly, bypassing body checks.
func (d *document) ensureNewline() {
	if !d.out.HasSuffix("\n") {
		d.out.Append("\n")
	}
}

func (d *document) flushAfter() {
	if d.after == "" {
		return
	}
	if strings.HasSuffix(d.after, "\n\n") {
		d.after = strings.TrimRightFunc(d.after, unicode.IsSpace) + "\n"
	}
	d.addText(d.after)
	d.after = ""
}

func (d *document) fixWhitespace(line string) string {
	if d.inSuperscript {
		return strings.TrimSpace(line)
	}
	for strings.Contains(line, "  ") {
		line = strings.ReplaceAll(line, "  ", " ")
	}
	return line
}

// handleData processes text content. Line breaks in source text are not
// significant and become spaces, runs of spaces are collapsed.
func (d *document) handleData(content string) {
	if d.ignore.active() {
		return
	}

	if content == "\u00a0" {
		// lone non-breaking space glues neighbours, drop pending line breaks
		d.addText(" ")
		d.after = strings.TrimRightFunc(d.after, unicode.IsSpace)
		d.flushAfter()
	}
	if strings.HasPrefix(content, "k-i-") {
		content = ":" + content + ":"
	}
	if isBlank(content) {
		return
	}

	lines := grid.SplitLines(content)
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\t\r\n")
	}
	text := d.fixWhitespace(strings.Join(lines, " "))

	if d.before != "" {
		d.addText(d.before)
		d.before = ""
	}
	d.addText(text)
	if text != "" {
		d.flushAfter()
	}
}

// inFlex reports whether we are directly inside flex container which so far
// rendered on a single line.
func (d *document) inFlex() bool {
	g, ok := d.flex[d.level-1]
	if !ok {
		return false
	}
	return !d.out.multiline(g.start)
}

func (d *document) enterDialog(modal bool) {
	d.out.Reset()
	clear(d.flex)
	d.before, d.after = "", ""

	title := " Dialog "
	if modal {
		title = " Modal dialog "
	}
	d.addText("\n" + grid.Center(title, 50, "_") + "\n")
}

func (d *document) endDialog() step {
	d.ensureNewline()
	d.handleData(strings.Repeat("_", 50))
	return dialogComplete
}

func (d *document) hasModalClass(props ClassSet) bool {
	return props.Intersects(d.opts.Modals)
}

// elementClasses collects element classes together with its id and test id
// when those are configured as icons.
func (d *document) elementClasses(attrs Attrs) ClassSet {
	props := NewClassSet(strings.Fields(attrs.Value("class"))...)
	for _, name := range []string{"id", "data-test-id"} {
		if id, ok := attrs.Get(name); ok && d.opts.Icons.Has(id) {
			props.Add(id)
		}
	}
	return props
}
