package markup

import (
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"snaptext/grid"
)

// TableCollector gathers table cells into header and body grids. Rows are
// header rows until the first data cell outside of thead, after that every
// row belongs to the body.
type TableCollector struct {
	log  *zap.Logger
	opts []grid.Option

	header   grid.Grid
	body     grid.Grid
	row      []string
	inRow    bool
	isHeader bool
	// attributes of currently open elements by name, needed for colspan
	active map[string]Attrs
}

// NewTableCollector creates collector, header rows may overlap into empty
// columns unless opts say otherwise.
func NewTableCollector(log *zap.Logger, opts ...grid.Option) *TableCollector {
	if log == nil {
		log = zap.NewNop()
	}
	return &TableCollector{
		log:      log,
		opts:     append([]grid.Option{grid.WithHeaderOverlap(true)}, opts...),
		isHeader: true,
		active:   make(map[string]Attrs),
	}
}

func (c *TableCollector) lastCell() *string {
	return &c.row[len(c.row)-1]
}

func (c *TableCollector) StartElement(name string, attrs Attrs, inFlex bool) {
	c.active[name] = attrs
	switch {
	case name == "tr":
		c.row, c.inRow = []string{}, true

	case isCell(name):
		if !c.inRow {
			c.log.Warn("Table cell outside of table row, skipping",
				zap.String("element", name), zap.Stringer("attrs", attrs),
				zap.String("grid", grid.Dump(c.header, c.body)))
			return
		}
		c.row = append(c.row, "")
		if _, inHead := c.active["thead"]; name == "td" && !inHead {
			c.isHeader = false
		}

	case name == "div" && c.inRow && len(c.row) > 0 && !inFlex:
		last := c.lastCell()
		if !isBlank(*last) && !strings.HasSuffix(*last, "\n") {
			*last += "\n"
		}
	}
}

func (c *TableCollector) EndElement(name string) {
	attrs, ok := c.active[name]
	if !ok {
		// duplicated or stray end tag
		return
	}

	if c.inRow && isCell(name) && len(c.row) > 0 {
		last := c.lastCell()
		if strings.HasSuffix(*last, "\n") {
			*last = strings.TrimRightFunc(*last, unicode.IsSpace)
		}
		if span, ok := attrs.Get("colspan"); ok && span != "" {
			n, err := strconv.Atoi(strings.TrimSpace(span))
			if err != nil {
				c.log.Warn("Bad colspan, ignoring", zap.String("colspan", span), zap.Error(err))
			}
			for i := 1; i < n; i++ {
				c.row = append(c.row, "")
			}
		}
	}
	delete(c.active, name)

	if name == "tr" && c.inRow {
		if len(c.row) > 0 {
			if c.isHeader {
				c.header = append(c.header, c.row)
			} else {
				c.body = append(c.body, c.row)
			}
		}
		c.row, c.inRow = nil, false
	}

	if isHeading(name) && c.inRow && len(c.row) > 0 {
		c.AddText(underline(*c.lastCell()))
	}
}

func (c *TableCollector) AddText(text string) {
	if !c.inRow {
		return
	}
	if len(c.row) > 0 {
		last := c.lastCell()
		if !isBlank(text) || ShouldAddWhitespace(text, *last) {
			*last += AdaptSpaces(text, *last)
		}
		return
	}
	if !isBlank(text) {
		c.isHeader = false
		c.row = append(c.row, text)
	}
}

// FinishText lays out collected rows, empty table produces no text.
func (c *TableCollector) FinishText() string {
	if len(c.header) == 0 && len(c.body) == 0 {
		return ""
	}

	columns := c.body.Columns()
	if len(c.body) == 0 {
		columns = c.header.Columns()
	}
	if len(c.header) > 0 {
		columns = max(columns, c.header.Columns())
		return grid.NewHeaderFormatter(c.header, c.body, columns, c.opts...).String()
	}
	return grid.NewFormatter(c.body, columns, c.opts...).String()
}
