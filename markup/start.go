package markup

import (
	"strings"
	"unicode"
)

const (
	ruleWidth     = 100
	textAreaFence = "=========="
)

func (d *document) startTag(name string, attrs Attrs) step {
	d.after = strings.TrimRightFunc(d.after, unicode.IsSpace)
	void := isVoidElement(name)
	if !void {
		d.level++
	}

	props := d.elementClasses(attrs)
	style := d.css.ParseInline(attrs.Value("style"))
	display := d.display(attrs, style)
	cat := categorize(name)

	switch {
	case d.ignore.active():
		if d.ignore.tag == name {
			d.ignore.depth++
		}
		return proceed

	case props.Intersects(d.opts.Ignore) || d.isInvisible(attrs, style, display, props) || cat == tagNoScript:
		if !void {
			d.suppress(name)
		}
		return proceed

	case cat == tagTable:
		if c := d.collector(); c != nil {
			c.AddText("\n")
		} else {
			d.ensureNewline()
		}
		d.collectors = append(d.collectors, d.newTableCollector())
		return proceed

	case cat == tagSelect:
		d.ensureNewline()
		d.collectors = append(d.collectors, NewDropdownCollector())
		return proceed
	}

	switch {
	case len(props) > 0 && (cat == tagIcon || d.opts.hasIcon(props)):
		d.after += d.opts.iconName(props)
	case cat == tagImage:
		src := attrs.Value("src")
		d.handleData("Image '" + src[strings.LastIndexByte(src, '/')+1:] + "'")
	case cat == tagIFrame:
		d.handleData("IFrame '" + attrs.Value("src") + "'")
	}

	switch {
	case isBlockDisplay(name, display):
		d.after += "\n"
	case display == DisplayModeFlex:
		d.flex[d.level] = &flexGroup{tag: name, start: d.out.Len()}
	}

	switch cat {
	case tagButton:
		d.handleData("Button '")
	case tagNavigation:
		d.addText("\n(Navigation:\n")
	case tagListItem:
		d.startListItem()
	case tagLineBreak:
		d.addText("\n")
	case tagParagraph:
		if !d.out.HasSuffix("\n\n") {
			d.addText("\n\n")
		}
	case tagInput:
		d.input(attrs)
	case tagTextArea:
		d.addText("\n" + textAreaFence + "\n")
	case tagBold:
		d.addText("*")
	case tagSuperscript:
		d.inSuperscript = true
		d.addText("^")
	default:
		if c := d.collector(); c != nil {
			c.StartElement(name, attrs, d.inFlex())
			return proceed
		}
		d.startStructural(cat, attrs, props)
	}
	return proceed
}

// startStructural handles elements which have no meaning inside of a
// collector.
func (d *document) startStructural(cat tagCategory, attrs Attrs, props ClassSet) {
	switch cat {
	case tagBody:
		d.inBody = true
	case tagScript:
		d.inScript = true
	case tagRule:
		d.ensureNewline()
		d.out.Append(strings.Repeat("_", ruleWidth) + "\n")
	case tagAnchor:
		d.linkStart = d.out.Len()
	case tagFooter:
		d.addText("\n")
	case tagDiv:
		if !d.inFlex() && !d.out.HasSuffix("\n") {
			d.before = "\n"
		}
		if d.hasModalClass(props) {
			d.modalLevel = d.level
			d.enterDialog(true)
		}
	case tagStyle:
		d.inStyle = true
	case tagDialog:
		if !attrs.Has("open") {
			d.suppress("dialog")
			return
		}
		d.dialogOpen = true
		d.enterDialog(d.hasModalClass(props))
	case tagHeading:
		if !d.out.IsBlank() {
			for !d.out.HasSuffix("\n\n") {
				d.out.Append("\n")
			}
		}
	}
}

func (d *document) suppress(name string) {
	d.ignore = suppression{tag: name, depth: 1}
}

func (d *document) startListItem() {
	var text strings.Builder
	if d.listLevel > 0 {
		if !d.out.HasSuffix("\n") {
			text.WriteString("\n")
		}
		text.WriteString(strings.Repeat("  ", d.listLevel))
	}
	text.WriteString("- ")
	d.before = text.String()
	d.listLevel++
}

// input renders form controls. Buttons carry their value, text fields their
// placeholder.
func (d *document) input(attrs Attrs) {
	switch kind := attrs.Value("type"); kind {
	case "button", "submit":
		data := "Button '" + attrs.Value("value") + "'"
		if kind == "submit" {
			data += " (submit)"
		}
		d.handleData(data)
	case "radio":
		d.handleData("( ) ")
	case "checkbox":
		d.handleData("[ ] ")
	case "hidden":
	default:
		text := "=== "
		if placeholder := attrs.Value("placeholder"); placeholder != "" {
			text += "_" + placeholder + "_"
		}
		text += " ==="
		if kind == "password" || kind == "datetime-local" {
			text += " (" + kind + ")"
		}
		d.handleData(text)
	}
}
