package xlsx

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// CellKind is the type of cell value. Rows of the same shape have the same
// kinds column by column.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindDateTime
	KindTime
)

// Cell is a single sheet cell.
type Cell struct {
	Text   string
	Kind   CellKind
	Style  int
	Styled bool
}

// Sheet is a rectangular range of cells from the first row and column to the
// last ones having cells.
type Sheet struct {
	Title    string
	TabColor string
	MaxRow   int
	MaxCol   int
	// Rows has MaxRow rows of MaxCol cells each, empty when sheet has no cells.
	Rows [][]Cell
}

// Description is the sheet summary line.
func (s *Sheet) Description() string {
	desc := fmt.Sprintf("Sheet '%s' - %d rows %d columns", s.Title, s.MaxRow, s.MaxCol)
	if s.TabColor != "" {
		desc += ", tab color " + s.TabColor
	}
	return desc
}

type cellPos struct {
	row, col int
}

// sharedFormula is the master cell text other cells of the group are
// translated from.
type sharedFormula struct {
	text string
	pos  cellPos
}

type sheetReader struct {
	shared   []string
	styles   *styleSheet
	date1904 bool
	log      *zap.Logger

	formulas map[string]sharedFormula
}

func (r *sheetReader) read(title string, doc *etree.Document) *Sheet {
	s := &Sheet{Title: title, MaxRow: 1, MaxCol: 1}
	if tc := doc.FindElement("//sheetPr/tabColor"); tc != nil {
		s.TabColor = rgb(tc)
	}
	r.formulas = make(map[string]sharedFormula)

	cells := make(map[cellPos]Cell)
	rowIdx := 0
	for _, row := range doc.FindElements("//sheetData/row") {
		if n, err := strconv.Atoi(row.SelectAttrValue("r", "")); err == nil {
			rowIdx = n
		} else {
			rowIdx++
		}
		colIdx := 0
		for _, c := range row.SelectElements("c") {
			pos := cellPos{row: rowIdx, col: colIdx + 1}
			if ref := c.SelectAttrValue("r", ""); ref != "" {
				p, err := parseRef(ref)
				if err != nil {
					r.log.Warn("Bad cell reference, using position", zap.String("ref", ref), zap.Error(err))
				} else {
					pos = p
				}
			}
			colIdx = pos.col
			cells[pos] = r.cell(c, pos)
			s.MaxRow, s.MaxCol = max(s.MaxRow, pos.row), max(s.MaxCol, pos.col)
		}
	}
	if len(cells) == 0 {
		return s
	}

	s.Rows = make([][]Cell, s.MaxRow)
	for i := range s.Rows {
		s.Rows[i] = make([]Cell, s.MaxCol)
		for j := range s.Rows[i] {
			s.Rows[i][j] = cells[cellPos{row: i + 1, col: j + 1}]
		}
	}
	return s
}

func (r *sheetReader) cell(c *etree.Element, pos cellPos) Cell {
	cell := Cell{Style: attrInt(c, "s")}
	if f, ok := r.styles.format(cell.Style); ok {
		cell.Styled = f.styled()
	}

	kind := c.SelectAttrValue("t", "n")
	var value string
	if v := c.SelectElement("v"); v != nil && kind != "inlineStr" {
		value = v.Text()
	}

	if f := c.SelectElement("f"); f != nil {
		cell.Text, cell.Kind = r.formula(f, pos, value), KindString
		return cell
	}

	if value == "" {
		if is := c.SelectElement("is"); kind == "inlineStr" && is != nil {
			cell.Text, cell.Kind = richText(is), KindString
		}
		return cell
	}

	switch kind {
	case "n":
		cell.Text, cell.Kind = r.number(value, cell.Style)
	case "s":
		idx, err := strconv.Atoi(value)
		if err != nil || idx < 0 || idx >= len(r.shared) {
			r.log.Warn("Bad shared string index", zap.String("index", value))
			return cell
		}
		cell.Text, cell.Kind = r.shared[idx], KindString
	case "b":
		cell.Text, cell.Kind = "False", KindBool
		if n, _ := strconv.Atoi(value); n != 0 {
			cell.Text = "True"
		}
	case "d":
		cell.Text, cell.Kind = isoDate(value)
	default:
		// "str" formula results and "e" errors
		cell.Text, cell.Kind = value, KindString
	}
	return cell
}

// number keeps integers as they are, floats are printed in the shortest
// form, numbers with date formats become dates or times.
func (r *sheetReader) number(value string, style int) (string, CellKind) {
	isFloat := strings.ContainsAny(value, ".eE")
	if !isFloat && !r.styles.isDate(style) {
		return value, KindInt
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		r.log.Warn("Bad numeric value", zap.String("value", value), zap.Error(err))
		return value, KindString
	}
	if r.styles.isDate(style) {
		return fromSerial(f, r.date1904)
	}
	return formatFloat(f), KindFloat
}

// formula returns formula text. Cells of a shared formula group only refer to
// the master cell, their text is the master formula moved to their place.
func (r *sheetReader) formula(f *etree.Element, pos cellPos, cached string) string {
	text := f.Text()
	if f.SelectAttrValue("t", "") != "shared" {
		return "=" + text
	}
	si := f.SelectAttrValue("si", "")
	if master, ok := r.formulas[si]; ok {
		return "=" + translateFormula(master.text, pos.row-master.pos.row, pos.col-master.pos.col)
	}
	if text != "" {
		r.formulas[si] = sharedFormula{text: text, pos: pos}
		return "=" + text
	}
	r.log.Debug("Shared formula without master, using cached value", zap.String("si", si))
	return cached
}

var cellRefRE = regexp.MustCompile(`(\$?)([A-Z]{1,3})(\$?)([0-9]+)`)

// translateFormula moves relative cell references by the offset, absolute
// ($) parts stay. References which would move off the sheet are kept as is.
func translateFormula(formula string, drow, dcol int) string {
	var sb strings.Builder
	last := 0
	for _, m := range cellRefRE.FindAllStringSubmatchIndex(formula, -1) {
		start, stop := m[0], m[1]
		if strings.Count(formula[:start], `"`)%2 != 0 || !refBoundary(formula, start, stop) {
			continue
		}
		colAbs, rowAbs := formula[m[2]:m[3]], formula[m[6]:m[7]]
		col := columnIndex(formula[m[4]:m[5]])
		row, _ := strconv.Atoi(formula[m[8]:m[9]])
		if colAbs == "" {
			col += dcol
		}
		if rowAbs == "" {
			row += drow
		}
		if col < 1 || row < 1 {
			continue
		}
		sb.WriteString(formula[last:start])
		sb.WriteString(colAbs + columnName(col) + rowAbs + strconv.Itoa(row))
		last = stop
	}
	sb.WriteString(formula[last:])
	return sb.String()
}

func isNameChar(b byte) bool {
	return b == '_' || b == '.' || (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// refBoundary rejects matches inside of names and function calls (LOG10).
func refBoundary(s string, start, stop int) bool {
	if start > 0 && isNameChar(s[start-1]) {
		return false
	}
	if stop < len(s) && (isNameChar(s[stop]) || s[stop] == '(') {
		return false
	}
	return true
}

// parseRef splits "AB12" into row 12 and column 28.
func parseRef(ref string) (cellPos, error) {
	i := strings.IndexAny(ref, "0123456789")
	if i <= 0 {
		return cellPos{}, fmt.Errorf("bad cell reference %q", ref)
	}
	col := columnIndex(strings.ToUpper(ref[:i]))
	row, err := strconv.Atoi(ref[i:])
	if err != nil || col < 1 || row < 1 {
		return cellPos{}, fmt.Errorf("bad cell reference %q", ref)
	}
	return cellPos{row: row, col: col}, nil
}

func columnIndex(letters string) int {
	n := 0
	for i := 0; i < len(letters); i++ {
		if letters[i] < 'A' || letters[i] > 'Z' {
			return 0
		}
		n = n*26 + int(letters[i]-'A'+1)
	}
	return n
}

func columnName(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// formatFloat prints float the way Python's repr does: fixed notation with
// at least one decimal for moderate exponents, scientific otherwise.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	e := strconv.FormatFloat(f, 'e', -1, 64)
	_, expStr, _ := strings.Cut(e, "e")
	exp, _ := strconv.Atoi(expStr)
	if exp < -4 || exp >= 16 {
		return e
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

var (
	epoch1900 = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	epoch1904 = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
)

const msPerDay = 24 * 60 * 60 * 1000

// fromSerial converts spreadsheet serial date. Values below one day are
// times, 1900 based serials before March 1900 account for the phantom
// February 29th.
func fromSerial(v float64, date1904 bool) (string, CellKind) {
	day := math.Floor(v)
	diff := time.Duration(math.RoundToEven((v-day)*msPerDay)) * time.Millisecond
	if v >= 0 && v < 1 && diff < 24*time.Hour {
		return formatClock(time.Time{}.Add(diff)), KindTime
	}
	epoch := epoch1900
	if date1904 {
		epoch = epoch1904
	} else if v > 0 && v < 60 {
		day++
	}
	t := epoch.AddDate(0, 0, int(day)).Add(diff)
	return t.Format("2006-01-02") + " " + formatClock(t), KindDateTime
}

func formatClock(t time.Time) string {
	s := t.Format("15:04:05")
	if us := t.Nanosecond() / 1000; us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}

func isoDate(value string) (string, CellKind) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02") + " " + formatClock(t), KindDateTime
		}
	}
	return value, KindString
}
