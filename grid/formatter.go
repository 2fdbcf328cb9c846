// Package grid lays out rectangular collections of multi-line text cells as
// aligned plain text columns.
package grid

import (
	"strconv"
	"strings"
)

// Grid is a sequence of rows of cell texts. Cells may contain newlines. Rows
// shorter than the declared column count have empty trailing cells.
type Grid [][]string

// Columns returns the length of the longest row.
func (g Grid) Columns() int {
	n := 0
	for _, row := range g {
		n = max(n, len(row))
	}
	return n
}

// DefaultColumnSpacing is the padding inserted after every non-final cell.
const DefaultColumnSpacing = 2

// OverlapFilter decides whether text of a particular cell may spill into the
// empty cells following it on the same row.
type OverlapFilter func(row, col int, cell string) bool

type settings struct {
	maxWidth      int
	spacing       int
	overlap       bool
	headerOverlap bool
	filter        OverlapFilter
	minWidths     map[string]int
}

func defaultSettings() settings {
	return settings{
		spacing: DefaultColumnSpacing,
		overlap: true,
	}
}

// Option changes formatting behavior.
type Option func(*settings)

// WithMaxWidth sets width above which single row grid is presented
// vertically, zero disables the check.
func WithMaxWidth(n int) Option {
	return func(s *settings) {
		s.maxWidth = max(n, 0)
	}
}

// WithColumnSpacing sets padding added after every non-final cell.
func WithColumnSpacing(n int) Option {
	return func(s *settings) {
		s.spacing = max(n, 0)
	}
}

// WithOverlap allows or forbids cell text to spill into following empty
// columns. For HeaderFormatter it applies to body rows only.
func WithOverlap(allow bool) Option {
	return func(s *settings) {
		s.overlap = allow
	}
}

// WithHeaderOverlap allows or forbids overlap in header rows. Ignored by plain
// Formatter.
func WithHeaderOverlap(allow bool) Option {
	return func(s *settings) {
		s.headerOverlap = allow
	}
}

// WithOverlapFilter installs additional per cell overlap restriction.
func WithOverlapFilter(fn OverlapFilter) Option {
	return func(s *settings) {
		s.filter = fn
	}
}

// WithMinWidths sets minimum column widths keyed by header column label. Used
// by HeaderFormatter only.
func WithMinWidths(widths map[string]int) Option {
	return func(s *settings) {
		s.minWidths = widths
	}
}

// Formatter renders a grid as aligned text columns.
type Formatter struct {
	settings
	grid    Grid
	columns int
}

// NewFormatter prepares formatter for the grid with declared number of
// columns. Rows longer than that are truncated for width computations.
func NewFormatter(g Grid, columns int, opts ...Option) *Formatter {
	f := &Formatter{settings: defaultSettings(), grid: g, columns: columns}
	for _, opt := range opts {
		opt(&f.settings)
	}
	return f
}

// String renders the grid. A single row which does not fit into configured
// maximum width is presented vertically, column after column.
func (f *Formatter) String() string {
	widths := f.ColumnWidths()
	total := 0
	for _, w := range widths {
		total += w
	}
	if f.maxWidth > 0 && len(f.grid) == 1 && total > f.maxWidth {
		header := strings.Repeat(".", 6) + " " + strconv.Itoa(f.columns) + "-Column Layout " + strings.Repeat(".", 6)
		return header + "\n" + f.FormatColumns() + "\n" + strings.Repeat(".", Width(header))
	}
	return f.FormatCells(widths)
}

// ColumnWidths computes width of every column. Columns are processed from the
// last to the first so overlap into following empty columns could use their
// already resolved widths. The order matters, this cannot be parallelized.
func (f *Formatter) ColumnWidths() []int {
	widths := make([]int, f.columns)
	contributions := make([]width, len(f.grid))
	for col := f.columns - 1; col >= 0; col-- {
		for i, row := range f.grid {
			contributions[i] = f.cellWidth(i, row, col, widths)
		}
		widths[col] = resolveWidth(contributions)
	}
	return widths
}

func (f *Formatter) cellWidth(rowIdx int, row []string, col int, widths []int) width {
	if col >= len(row) {
		return plainWidth(0)
	}
	cell := row[col]
	if len(SplitLines(cell)) == 0 {
		return plainWidth(0)
	}

	natural := MaxLineWidth(cell)
	if col != len(row)-1 && natural > 0 {
		natural += f.spacing
	}
	if !f.overlap || (f.filter != nil && !f.filter(rowIdx, col, cell)) {
		return plainWidth(natural)
	}

	// following empty columns could take part of our text
	need := natural
	for c := col + 1; need > 0 && c < f.columns && (c >= len(row) || len(row[c]) == 0); c++ {
		need -= widths[c]
	}
	need = max(need, 0)
	if natural > 0 && need == 0 {
		return forcedWidth(natural)
	}
	return plainWidth(need)
}

// FormatCells renders rows side by side using provided column widths. Every
// row takes as many lines as its tallest cell. Text of a non-empty cell
// always starts at its column position: whatever previous cells left beyond
// that point (padding of a cell wider than its column) is cut off.
func (f *Formatter) FormatCells(widths []int) string {
	var lines []string
	for _, row := range f.grid {
		height := 1
		cells := make([][]string, len(row))
		for i, cell := range row {
			height = max(height, strings.Count(cell, "\n")+1)
			cells[i] = SplitLines(cell)
		}
		for n := range height {
			var (
				line []rune
				pos  int
			)
			for col, cellLines := range cells {
				w := 0
				if col < len(widths) {
					w = widths[col]
				}
				var text string
				if n < len(cellLines) {
					text = cellLines[n]
				}
				if len(text) > 0 && len(line) > pos {
					line = line[:pos]
				}
				line = append(line, []rune(PadRight(text, w))...)
				pos += w
			}
			lines = append(lines, strings.TrimRight(string(line), " "))
		}
	}
	return strings.Join(lines, "\n")
}

// FormatColumns lists cells column by column, one paragraph per column.
func (f *Formatter) FormatColumns() string {
	var sb strings.Builder
	for col := range f.columns {
		for _, row := range f.grid {
			if col < len(row) {
				sb.WriteString(row[col])
				sb.WriteByte('\n')
			}
		}
		sb.WriteByte('\n')
	}
	return strings.TrimRight(sb.String(), " \t\r\n")
}
