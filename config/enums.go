package config

//go:generate go tool go-enum --marshal --names --nocase --mustparse

// Kind of rendered document.
// ENUM(html, xlsx)
type SourceFmt int

// Describe is used in command help.
func (s SourceFmt) Describe() string {
	switch s {
	case SourceFmtHtml:
		return "HTML snapshot"
	case SourceFmtXlsx:
		return "spreadsheet workbook"
	default:
		// this should never happen
		panic("unsupported source format")
	}
}
