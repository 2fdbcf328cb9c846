package markup

import (
	"strings"
)

// CellCollector reduces events scoped to a single container element (table,
// select) to a block of text. Renderer forwards to the innermost collector
// everything it does not handle itself.
type CellCollector interface {
	StartElement(name string, attrs Attrs, inFlex bool)
	EndElement(name string)
	AddText(text string)
	FinishText() string
}

// DropdownCollector renders select element as list of its options.
type DropdownCollector struct {
	options  []string
	inOption bool
}

func NewDropdownCollector() *DropdownCollector {
	return &DropdownCollector{}
}

func (c *DropdownCollector) StartElement(name string, _ Attrs, _ bool) {
	if name == "option" {
		c.options = append(c.options, "")
		c.inOption = true
	}
}

func (c *DropdownCollector) EndElement(name string) {
	if name == "option" {
		c.inOption = false
	}
}

func (c *DropdownCollector) AddText(text string) {
	if c.inOption {
		c.options[len(c.options)-1] += text
	}
}

func (c *DropdownCollector) FinishText() string {
	return "Dropdown (" + strings.Join(c.options, ", ") + ")"
}
