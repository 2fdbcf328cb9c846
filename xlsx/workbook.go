// Package xlsx reads spreadsheet workbooks just enough to present their cells
// as text grids: values as a spreadsheet library would report them, cell
// styles and sheet properties.
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/hidez8891/zip"
	"go.uber.org/zap"
)

// ErrNotWorkbook is returned when archive does not contain workbook part.
var ErrNotWorkbook = errors.New("not a spreadsheet workbook")

const (
	relOfficeDocument = "/officeDocument"
	relWorksheet      = "/worksheet"
	relSharedStrings  = "/sharedStrings"
	relStyles         = "/styles"
)

// Workbook is a loaded spreadsheet.
type Workbook struct {
	Sheets   []*Sheet
	Date1904 bool

	styles *styleSheet
}

// Open loads workbook from file.
func Open(name string, log *zap.Logger) (*Workbook, error) {
	r, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook (%s): %w", name, err)
	}
	defer r.Close()

	wb, err := read(&r.Reader, log)
	if err != nil {
		return nil, fmt.Errorf("unable to read workbook (%s): %w", name, err)
	}
	return wb, nil
}

// Read loads workbook from archive data.
func Read(r io.ReaderAt, size int64, log *zap.Logger) (*Workbook, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook archive: %w", err)
	}
	return read(zr, log)
}

// Describe returns human readable description of the cell style with given
// index, empty for unknown styles.
func (wb *Workbook) Describe(style int) string {
	return wb.styles.describe(style)
}

type relationship struct {
	Type   string
	Target string
}

// pkg is the package of xml parts inside of workbook archive.
type pkg struct {
	parts map[string]*zip.File
	log   *zap.Logger
}

func read(zr *zip.Reader, log *zap.Logger) (*Workbook, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &pkg{parts: make(map[string]*zip.File, len(zr.File)), log: log.Named("xlsx")}
	for _, f := range zr.File {
		p.parts[strings.TrimPrefix(f.Name, "/")] = f
	}

	wbPath := p.officeDocument()
	if _, ok := p.parts[wbPath]; !ok {
		return nil, ErrNotWorkbook
	}
	doc, err := p.load(wbPath)
	if err != nil {
		return nil, err
	}
	rels, err := p.relationships(wbPath)
	if err != nil {
		return nil, err
	}

	wb := &Workbook{}
	if pr := doc.FindElement("//workbookPr"); pr != nil {
		wb.Date1904 = isTrue(pr.SelectAttrValue("date1904", "0"))
	}

	shared, err := p.sharedStrings(rels)
	if err != nil {
		return nil, err
	}
	if wb.styles, err = p.styles(rels); err != nil {
		return nil, err
	}

	for _, s := range doc.FindElements("//sheets/sheet") {
		name := s.SelectAttrValue("name", "")
		rel, ok := rels[s.SelectAttrValue("id", "")]
		if !ok || !strings.HasSuffix(rel.Type, relWorksheet) {
			p.log.Debug("Skipping sheet which is not a worksheet", zap.String("sheet", name))
			continue
		}
		sd, err := p.load(rel.Target)
		if err != nil {
			return nil, err
		}
		r := &sheetReader{shared: shared, styles: wb.styles, date1904: wb.Date1904, log: p.log.With(zap.String("sheet", name))}
		wb.Sheets = append(wb.Sheets, r.read(name, sd))
	}
	return wb, nil
}

func (p *pkg) load(name string) (*etree.Document, error) {
	f, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("missing workbook part (%s)", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook part (%s): %w", name, err)
	}
	defer rc.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(rc); err != nil {
		return nil, fmt.Errorf("unable to parse workbook part (%s): %w", name, err)
	}
	return doc, nil
}

// officeDocument finds main workbook part through package relationships.
func (p *pkg) officeDocument() string {
	rels, err := p.relationships("")
	if err == nil {
		for _, rel := range rels {
			if strings.HasSuffix(rel.Type, relOfficeDocument) {
				return rel.Target
			}
		}
	}
	return "xl/workbook.xml"
}

// relationships loads relationships of the part, keyed by id. Targets are
// resolved to part names.
func (p *pkg) relationships(part string) (map[string]relationship, error) {
	name := path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
	if part == "" {
		name = "_rels/.rels"
	}
	rels := make(map[string]relationship)
	if _, ok := p.parts[name]; !ok {
		return rels, nil
	}
	doc, err := p.load(name)
	if err != nil {
		return nil, err
	}
	for _, r := range doc.FindElements("//Relationship") {
		if r.SelectAttrValue("TargetMode", "") == "External" {
			continue
		}
		rels[r.SelectAttrValue("Id", "")] = relationship{
			Type:   r.SelectAttrValue("Type", ""),
			Target: resolveTarget(part, r.SelectAttrValue("Target", "")),
		}
	}
	return rels, nil
}

func resolveTarget(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return target[1:]
	}
	return path.Join(path.Dir(base), target)
}

func findRelationship(rels map[string]relationship, kind string) (string, bool) {
	for _, rel := range rels {
		if strings.HasSuffix(rel.Type, kind) {
			return rel.Target, true
		}
	}
	return "", false
}

func (p *pkg) sharedStrings(rels map[string]relationship) ([]string, error) {
	name, ok := findRelationship(rels, relSharedStrings)
	if !ok {
		return nil, nil
	}
	doc, err := p.load(name)
	if err != nil {
		return nil, err
	}
	var list []string
	for _, si := range doc.FindElements("//sst/si") {
		list = append(list, richText(si))
	}
	return list, nil
}

// richText concatenates text runs skipping phonetic hints.
func richText(e *etree.Element) string {
	var sb strings.Builder
	for _, c := range e.ChildElements() {
		switch c.Tag {
		case "t":
			sb.WriteString(c.Text())
		case "r":
			if t := c.SelectElement("t"); t != nil {
				sb.WriteString(t.Text())
			}
		}
	}
	return sb.String()
}

func (p *pkg) styles(rels map[string]relationship) (*styleSheet, error) {
	name, ok := findRelationship(rels, relStyles)
	if !ok {
		return &styleSheet{}, nil
	}
	doc, err := p.load(name)
	if err != nil {
		return nil, err
	}
	return parseStyles(doc), nil
}

func isTrue(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
