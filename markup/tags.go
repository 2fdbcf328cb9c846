package markup

// tagCategory groups element names which get the same treatment.
type tagCategory int

const (
	tagOther tagCategory = iota
	tagTable
	tagSelect
	tagButton
	tagNavigation
	tagListItem
	tagLineBreak
	tagParagraph
	tagInput
	tagTextArea
	tagBold
	tagSuperscript
	tagBody
	tagScript
	tagNoScript
	tagStyle
	tagRule
	tagAnchor
	tagFooter
	tagDiv
	tagDialog
	tagHeading
	tagImage
	tagIFrame
	tagIcon
)

var tagCategories = map[string]tagCategory{
	"table":        tagTable,
	"select":       tagSelect,
	"button":       tagButton,
	"nav":          tagNavigation,
	"app-nav-menu": tagNavigation,
	"li":           tagListItem,
	"br":           tagLineBreak,
	"p":            tagParagraph,
	"input":        tagInput,
	"textarea":     tagTextArea,
	"b":            tagBold,
	"sup":          tagSuperscript,
	"body":         tagBody,
	"script":       tagScript,
	"noscript":     tagNoScript,
	"style":        tagStyle,
	"hr":           tagRule,
	"a":            tagAnchor,
	"footer":       tagFooter,
	"div":          tagDiv,
	"dialog":       tagDialog,
	"h1":           tagHeading,
	"h2":           tagHeading,
	"h3":           tagHeading,
	"h4":           tagHeading,
	"img":          tagImage,
	"iframe":       tagIFrame,
	"i":            tagIcon,
}

func categorize(name string) tagCategory {
	return tagCategories[name]
}

// Elements which never have content and never get end tag.
var voidElements = map[string]bool{
	"area":    true,
	"base":    true,
	"br":      true,
	"col":     true,
	"command": true,
	"embed":   true,
	"hr":      true,
	"img":     true,
	"input":   true,
	"keygen":  true,
	"link":    true,
	"meta":    true,
	"param":   true,
	"source":  true,
	"track":   true,
	"wbr":     true,
}

func isVoidElement(name string) bool {
	return voidElements[name]
}

// Elements for which block display does not need extra line break, they are
// taken care of by their own rules.
var selfBreaking = map[string]bool{
	"div":    true,
	"h1":     true,
	"h2":     true,
	"h3":     true,
	"h4":     true,
	"span":   true,
	"button": true,
	"th":     true,
	"td":     true,
	"input":  true,
}

func isBlockDisplay(name string, display DisplayMode) bool {
	return !selfBreaking[name] && display == DisplayModeBlock
}

func isCell(name string) bool {
	return name == "td" || name == "th"
}

func isHeading(name string) bool {
	return categorize(name) == tagHeading
}
