package xlsx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

type font struct {
	name      string
	size      float64
	bold      bool
	italic    bool
	underline bool
	color     string
}

type fill struct {
	pattern string
	color   string
}

type borderSide struct {
	style string
	color string
}

// borderSides lists sides in the order they are described.
var borderSides = []string{"top", "bottom", "left", "right", "diagonal"}

type border map[string]borderSide

// cellFormat is a single entry of cellXfs, cells refer to it by index.
type cellFormat struct {
	numFmt, font, fill, border, xf int
	alignment, protection          bool
	quotePrefix, pivotButton       bool
}

// styled mirrors spreadsheet libraries: a cell has style when any part of
// its format differs from default.
func (f cellFormat) styled() bool {
	return f.numFmt != 0 || f.font != 0 || f.fill != 0 || f.border != 0 || f.xf != 0 ||
		f.alignment || f.protection || f.quotePrefix || f.pivotButton
}

type styleSheet struct {
	numFmts map[int]string
	fonts   []font
	fills   []fill
	borders []border
	formats []cellFormat
}

func parseStyles(doc *etree.Document) *styleSheet {
	s := &styleSheet{numFmts: make(map[int]string)}
	for _, e := range doc.FindElements("//numFmts/numFmt") {
		s.numFmts[attrInt(e, "numFmtId")] = e.SelectAttrValue("formatCode", "")
	}
	for _, e := range doc.FindElements("//fonts/font") {
		s.fonts = append(s.fonts, font{
			name:      childVal(e, "name", ""),
			size:      attrFloat(e.SelectElement("sz"), "val"),
			bold:      flag(e, "b"),
			italic:    flag(e, "i"),
			underline: e.SelectElement("u") != nil && childVal(e, "u", "single") != "none",
			color:     rgb(e.SelectElement("color")),
		})
	}
	for _, e := range doc.FindElements("//fills/fill") {
		var f fill
		if p := e.SelectElement("patternFill"); p != nil {
			f.pattern = p.SelectAttrValue("patternType", "")
			f.color = rgb(p.SelectElement("fgColor"))
		} else if g := e.SelectElement("gradientFill"); g != nil {
			f.pattern = g.SelectAttrValue("type", "linear")
		}
		if f.pattern == "none" {
			f.pattern = ""
		}
		s.fills = append(s.fills, f)
	}
	for _, e := range doc.FindElements("//borders/border") {
		b := make(border)
		for _, side := range borderSides {
			if el := e.SelectElement(side); el != nil {
				b[side] = borderSide{style: el.SelectAttrValue("style", ""), color: rgb(el.SelectElement("color"))}
			}
		}
		s.borders = append(s.borders, b)
	}
	for _, e := range doc.FindElements("//cellXfs/xf") {
		s.formats = append(s.formats, cellFormat{
			numFmt:      attrInt(e, "numFmtId"),
			font:        attrInt(e, "fontId"),
			fill:        attrInt(e, "fillId"),
			border:      attrInt(e, "borderId"),
			xf:          attrInt(e, "xfId"),
			alignment:   hasAttrs(e.SelectElement("alignment")),
			protection:  hasAttrs(e.SelectElement("protection")),
			quotePrefix: isTrue(e.SelectAttrValue("quotePrefix", "0")),
			pivotButton: isTrue(e.SelectAttrValue("pivotButton", "0")),
		})
	}
	return s
}

func (s *styleSheet) format(id int) (cellFormat, bool) {
	if s == nil || id < 0 || id >= len(s.formats) {
		return cellFormat{}, false
	}
	return s.formats[id], true
}

// isDate reports whether numbers with this style are dates or times.
func (s *styleSheet) isDate(id int) bool {
	f, ok := s.format(id)
	if !ok {
		return false
	}
	if code, ok := s.numFmts[f.numFmt]; ok {
		return isDateFormat(code)
	}
	return isBuiltinDate(f.numFmt)
}

// describe produces style legend entry: font, fill and border.
func (s *styleSheet) describe(id int) string {
	f, ok := s.format(id)
	if !ok {
		return ""
	}
	parts := []string{s.describeFont(f.font)}
	if f.fill < len(s.fills) && s.fills[f.fill].pattern != "" {
		fl := s.fills[f.fill]
		desc := "fill " + fl.pattern
		if fl.color != "" {
			desc += " (" + fl.color + ")"
		}
		parts = append(parts, desc)
	}
	if f.border < len(s.borders) {
		if desc := describeBorder(s.borders[f.border]); desc != "" {
			parts = append(parts, desc)
		}
	}
	return strings.Join(parts, ", ")
}

func (s *styleSheet) describeFont(id int) string {
	if id >= len(s.fonts) {
		return ""
	}
	fn := s.fonts[id]
	desc := fn.name + " " + strconv.Itoa(int(fn.size))
	var parts []string
	if fn.bold {
		parts = append(parts, "bold")
	}
	if fn.italic {
		parts = append(parts, "italic")
	}
	if fn.underline {
		parts = append(parts, "underline")
	}
	if fn.color != "" {
		parts = append(parts, fn.color)
	}
	if len(parts) > 0 {
		desc += " (" + strings.Join(parts, ",") + ")"
	}
	return desc
}

func describeBorder(b border) string {
	var parts []string
	for _, side := range borderSides {
		bs, ok := b[side]
		if !ok || bs.style == "" {
			continue
		}
		desc := side + " " + bs.style
		if bs.color != "" {
			desc += " " + bs.color
		}
		parts = append(parts, desc)
	}
	if len(parts) == 0 {
		return ""
	}
	return "border " + strings.Join(parts, " + ")
}

// rgb returns explicit color, theme and indexed colors as well as fully
// transparent black are not described.
func rgb(e *etree.Element) string {
	if e == nil {
		return ""
	}
	if v := e.SelectAttrValue("rgb", ""); v != "00000000" {
		return v
	}
	return ""
}

// flag handles boolean font properties: present element is true unless its
// val says otherwise.
func flag(e *etree.Element, name string) bool {
	c := e.SelectElement(name)
	return c != nil && c.SelectAttrValue("val", "1") != "0" && c.SelectAttrValue("val", "1") != "false"
}

func childVal(e *etree.Element, name, def string) string {
	if c := e.SelectElement(name); c != nil {
		return c.SelectAttrValue("val", def)
	}
	return def
}

func attrInt(e *etree.Element, name string) int {
	n, _ := strconv.Atoi(e.SelectAttrValue(name, "0"))
	return n
}

func attrFloat(e *etree.Element, name string) float64 {
	if e == nil {
		return 0
	}
	f, _ := strconv.ParseFloat(e.SelectAttrValue(name, "0"), 64)
	return f
}

func hasAttrs(e *etree.Element) bool {
	return e != nil && len(e.Attr) > 0
}

// builtin date and time formats
func isBuiltinDate(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 45 && id <= 47)
}

// isDateFormat looks for date or time placeholders in the first section of
// number format code ignoring literals, escapes and bracketed modifiers other
// than elapsed time.
func isDateFormat(code string) bool {
	code, _, _ = strings.Cut(code, ";")
	if strings.EqualFold(code, "general") {
		return false
	}
	var sb strings.Builder
	inQuote := false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case ch == '"':
			inQuote = !inQuote
		case inQuote:
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		case ch == '[':
			j := strings.IndexByte(code[i:], ']')
			if j < 0 {
				i = len(code)
				continue
			}
			if inner := strings.ToLower(code[i+1 : i+j]); inner != "" && strings.Trim(inner, "hms") == "" {
				return true
			}
			i += j
		default:
			sb.WriteByte(ch)
		}
	}
	return strings.ContainsAny(sb.String(), "dmyhsDMYHS")
}
