package xlsx

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

const (
	rootRels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`

	workbookXML = `<?xml version="1.0" encoding="UTF-8"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<workbookPr/>
<sheets>
<sheet name="Fruit" sheetId="1" r:id="rId1"/>
<sheet name="Chart" sheetId="3" r:id="rId5"/>
<sheet name="Notes" sheetId="2" r:id="rId2"/>
</sheets>
</workbook>`

	workbookRels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="/xl/worksheets/sheet2.xml"/>
<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="sharedStrings.xml"/>
<Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
<Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/chartsheet" Target="chartsheets/sheet1.xml"/>
</Relationships>`

	sharedStringsXML = `<?xml version="1.0" encoding="UTF-8"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="4" uniqueCount="4">
<si><t>Name</t></si>
<si><t>Qty</t></si>
<si><r><t>app</t></r><r><rPr><b/></rPr><t>le</t></r><rPh><t>x</t></rPh></si>
<si><t>kiwi</t></si>
</sst>`

	stylesXML = `<?xml version="1.0" encoding="UTF-8"?>
<styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<fonts count="2">
<font><sz val="11"/><name val="Calibri"/></font>
<font><b/><sz val="11"/><color rgb="FFFF0000"/><name val="Calibri"/></font>
</fonts>
<fills count="3">
<fill><patternFill patternType="none"/></fill>
<fill><patternFill patternType="gray125"/></fill>
<fill><patternFill patternType="solid"><fgColor rgb="FFFFFF00"/></patternFill></fill>
</fills>
<borders count="2">
<border><left/><right/><top/><bottom/><diagonal/></border>
<border><left style="thin"><color rgb="FF000000"/></left><right/><top style="thick"/><bottom/><diagonal/></border>
</borders>
<cellXfs count="4">
<xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/>
<xf numFmtId="0" fontId="1" fillId="0" borderId="0" xfId="0" applyFont="1"/>
<xf numFmtId="14" fontId="0" fillId="0" borderId="0" xfId="0" applyNumberFormat="1"/>
<xf numFmtId="0" fontId="0" fillId="2" borderId="1" xfId="0"/>
</cellXfs>
</styleSheet>`

	sheet1XML = `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetPr><tabColor rgb="FFFF0000"/></sheetPr>
<sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
<row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2" s="1"><v>3</v></c></row>
<row r="3"><c r="A3" t="s"><v>3</v></c><c r="B3"><v>12</v></c></row>
</sheetData>
</worksheet>`

	sheet2XML = `<?xml version="1.0" encoding="UTF-8"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row><c t="inlineStr"><is><t>hello</t></is></c><c t="b"><v>1</v></c><c s="2"><v>45000</v></c></row>
</sheetData>
</worksheet>`
)

func buildWorkbook(t *testing.T, parts map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("unable to create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("unable to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("unable to close archive: %v", err)
	}
	return buf.Bytes()
}

func testParts() map[string]string {
	return map[string]string{
		"_rels/.rels":                rootRels,
		"xl/workbook.xml":            workbookXML,
		"xl/_rels/workbook.xml.rels": workbookRels,
		"xl/sharedStrings.xml":       sharedStringsXML,
		"xl/styles.xml":              stylesXML,
		"xl/worksheets/sheet1.xml":   sheet1XML,
		"xl/worksheets/sheet2.xml":   sheet2XML,
	}
}

func TestOpenAndRender(t *testing.T) {
	name := filepath.Join(t.TempDir(), "book.xlsx")
	if err := os.WriteFile(name, buildWorkbook(t, testParts()), 0644); err != nil {
		t.Fatal(err)
	}

	wb, err := Open(name, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(wb.Sheets) != 2 {
		t.Fatalf("got %d sheets, want 2 (chart sheet skipped)", len(wb.Sheets))
	}

	want := "Sheet 'Fruit' - 3 rows 2 columns, tab color FFFF0000\n" +
		"__________\n" +
		"Name   Qty\n" +
		"__________\n" +
		"apple  3*\n" +
		"kiwi   12\n" +
		"__________\n" +
		"\n" +
		"Sheet 'Notes' - 1 rows 3 columns\n" +
		"hello  True  2023-03-15 00:00:00**\n" +
		"\n" +
		"* Calibri 11 (bold,FFFF0000)\n" +
		"\n" +
		"** Calibri 11\n" +
		"\n"

	got := New(Options{StyleLegend: true}, zaptest.NewLogger(t)).Render(wb)
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}

	got = New(Options{}, nil).Render(wb)
	if want := want[:len(want)-len("* Calibri 11 (bold,FFFF0000)\n\n** Calibri 11\n\n")]; got != want {
		t.Errorf("Render() without legend =\n%s\nwant\n%s", got, want)
	}
}

func TestReadNotWorkbook(t *testing.T) {
	data := buildWorkbook(t, map[string]string{"mimetype": "application/epub+zip"})
	if _, err := Read(bytes.NewReader(data), int64(len(data)), nil); !errors.Is(err, ErrNotWorkbook) {
		t.Errorf("Read() error = %v, want %v", err, ErrNotWorkbook)
	}
}

func TestReadWithoutPackageRelationships(t *testing.T) {
	parts := testParts()
	delete(parts, "_rels/.rels")
	data := buildWorkbook(t, parts)

	wb, err := Read(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	sh := wb.Sheets[0]
	if sh.MaxRow != 3 || sh.MaxCol != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", sh.MaxRow, sh.MaxCol)
	}
	if c := sh.Rows[1][1]; c.Text != "3" || c.Kind != KindInt || !c.Styled || c.Style != 1 {
		t.Errorf("cell B2 = %+v", c)
	}
	if c := sh.Rows[0][0]; c.Styled {
		t.Errorf("cell A1 with default style reported as styled")
	}
}

func TestDescribe(t *testing.T) {
	data := buildWorkbook(t, testParts())
	wb, err := Read(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	tests := []struct {
		style int
		want  string
	}{
		{0, "Calibri 11"},
		{1, "Calibri 11 (bold,FFFF0000)"},
		{3, "Calibri 11, fill solid (FFFFFF00), border top thick + left thin FF000000"},
		{7, ""},
	}
	for _, tt := range tests {
		if got := wb.Describe(tt.style); got != tt.want {
			t.Errorf("Describe(%d) = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestSheetCells(t *testing.T) {
	sheet := `<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>
<row r="2"><c r="B2"><v>2.5</v></c><c r="C2"><f>SUM(A1:B1)</f><v>3</v></c><c r="D2" t="e"><v>#DIV/0!</v></c></row>
<row r="3"><c r="C3"><f t="shared" si="0" ref="C3:C4">A3+$B$1</f><v>1</v></c></row>
<row r="4"><c r="C4"><f t="shared" si="0"/><v>1</v></c><c r="D4" t="str"><v>text</v></c></row>
</sheetData></worksheet>`
	parts := testParts()
	parts["xl/worksheets/sheet1.xml"] = sheet
	data := buildWorkbook(t, parts)

	wb, err := Read(bytes.NewReader(data), int64(len(data)), nil)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	sh := wb.Sheets[0]
	if sh.MaxRow != 4 || sh.MaxCol != 4 {
		t.Fatalf("dimensions = %dx%d, want 4x4", sh.MaxRow, sh.MaxCol)
	}

	tests := []struct {
		row, col int
		text     string
		kind     CellKind
	}{
		{0, 0, "", KindEmpty},
		{1, 1, "2.5", KindFloat},
		{1, 2, "=SUM(A1:B1)", KindString},
		{1, 3, "#DIV/0!", KindString},
		{2, 2, "=A3+$B$1", KindString},
		{3, 2, "=A4+$B$1", KindString},
		{3, 3, "text", KindString},
	}
	for _, tt := range tests {
		c := sh.Rows[tt.row][tt.col]
		if c.Text != tt.text || c.Kind != tt.kind {
			t.Errorf("cell [%d,%d] = %q (%d), want %q (%d)", tt.row, tt.col, c.Text, c.Kind, tt.text, tt.kind)
		}
	}
}

func TestTranslateFormula(t *testing.T) {
	tests := []struct {
		formula    string
		drow, dcol int
		want       string
	}{
		{"A1+$B$2+SUM(C3:C4)", 1, 1, "B2+$B$2+SUM(D4:D5)"},
		{"LOG10(A1)", 1, 0, "LOG10(A2)"},
		{`"A1"&A1`, 2, 0, `"A1"&A3`},
		{"Sheet1!A1*$A1*A$1", 1, 1, "Sheet1!B2*$A2*B$1"},
		{"A1", -1, 0, "A1"},
		{"Z1", 0, 1, "AA1"},
	}
	for _, tt := range tests {
		if got := translateFormula(tt.formula, tt.drow, tt.dcol); got != tt.want {
			t.Errorf("translateFormula(%q, %d, %d) = %q, want %q", tt.formula, tt.drow, tt.dcol, got, tt.want)
		}
	}
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		ref     string
		want    cellPos
		wantErr bool
	}{
		{ref: "A1", want: cellPos{row: 1, col: 1}},
		{ref: "AB12", want: cellPos{row: 12, col: 28}},
		{ref: "XFD1048576", want: cellPos{row: 1048576, col: 16384}},
		{ref: "12", wantErr: true},
		{ref: "A", wantErr: true},
		{ref: "A0", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseRef(tt.ref)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseRef(%q) = %v, %v", tt.ref, got, err)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2.5, "2.5"},
		{3, "3.0"},
		{1234567, "1234567.0"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1e16, "1e+16"},
		{-0.5, "-0.5"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFromSerial(t *testing.T) {
	tests := []struct {
		in       float64
		date1904 bool
		want     string
		kind     CellKind
	}{
		{45000, false, "2023-03-15 00:00:00", KindDateTime},
		{45000.75, false, "2023-03-15 18:00:00", KindDateTime},
		{0.5, false, "12:00:00", KindTime},
		{1, false, "1900-01-01 00:00:00", KindDateTime},
		{61, false, "1900-03-01 00:00:00", KindDateTime},
		{0, true, "00:00:00", KindTime},
		{1, true, "1904-01-02 00:00:00", KindDateTime},
	}
	for _, tt := range tests {
		got, kind := fromSerial(tt.in, tt.date1904)
		if got != tt.want || kind != tt.kind {
			t.Errorf("fromSerial(%v, %v) = %q (%d), want %q (%d)", tt.in, tt.date1904, got, kind, tt.want, tt.kind)
		}
	}
}

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"General", false},
		{"0.00", false},
		{"yyyy-mm-dd", true},
		{"[h]:mm", true},
		{`[Red]0.00`, false},
		{`0.00 "days"`, false},
		{`#,##0\h`, false},
		{"dd/mm/yyyy;@", true},
		{"0;[Red]-0", false},
	}
	for _, tt := range tests {
		if got := isDateFormat(tt.code); got != tt.want {
			t.Errorf("isDateFormat(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
