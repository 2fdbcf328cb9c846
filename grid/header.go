package grid

import (
	"strings"
)

// HeaderFormatter renders header block and body block sharing column widths
// and separated by underscore lines.
type HeaderFormatter struct {
	settings
	header  Grid
	body    Grid
	columns int
}

// NewHeaderFormatter prepares formatter. By default body rows may overlap
// into empty columns while header rows may not.
func NewHeaderFormatter(header, body Grid, columns int, opts ...Option) *HeaderFormatter {
	h := &HeaderFormatter{settings: defaultSettings(), header: header, body: body, columns: columns}
	for _, opt := range opts {
		opt(&h.settings)
	}
	return h
}

// ColumnWidths computes widths over header and body rows combined and applies
// minimum width overrides.
func (h *HeaderFormatter) ColumnWidths() []int {
	rows := make(Grid, 0, len(h.header)+len(h.body))
	rows = append(rows, h.header...)
	rows = append(rows, h.body...)

	headerRows, userFilter := len(h.header), h.filter
	filter := func(row, col int, cell string) bool {
		allowed := h.overlap
		if row < headerRows {
			allowed = h.headerOverlap
		}
		if allowed && userFilter != nil {
			allowed = userFilter(row, col, cell)
		}
		return allowed
	}

	widths := NewFormatter(rows, h.columns,
		WithColumnSpacing(h.spacing),
		WithOverlap(h.overlap || h.headerOverlap),
		WithOverlapFilter(filter),
	).ColumnWidths()
	h.applyMinWidths(widths)
	return widths
}

func (h *HeaderFormatter) applyMinWidths(widths []int) {
	if len(h.minWidths) == 0 || len(h.header) == 0 {
		return
	}
	for i, label := range h.header[0] {
		if i >= len(widths) {
			break
		}
		if w, ok := h.minWidth(label); ok && w > widths[i] {
			widths[i] = w
		}
	}
}

// minWidth looks up override by full label first, then by the part of the
// label preceding parenthesis: "Price (EUR)" falls back to "Price".
func (h *HeaderFormatter) minWidth(label string) (int, bool) {
	if w, ok := h.minWidths[label]; ok {
		return w, true
	}
	prefix, _, found := strings.Cut(label, "(")
	if !found {
		return 0, false
	}
	if w, ok := h.minWidths[prefix]; ok {
		return w, true
	}
	w, ok := h.minWidths[strings.TrimSpace(prefix)]
	return w, ok
}

// String renders header and body blocks. Without body rows only bracketed
// header is produced.
func (h *HeaderFormatter) String() string {
	widths := h.ColumnWidths()
	total := 0
	for _, w := range widths {
		total += w
	}
	line := strings.Repeat("_", total) + "\n"

	header := NewFormatter(h.header, h.columns).FormatCells(widths)
	if len(h.body) == 0 {
		return line + header + "\n" + line
	}
	body := NewFormatter(h.body, h.columns).FormatCells(widths)
	return line + header + "\n" + line + body + "\n" + line
}
