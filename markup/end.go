package markup

import (
	"strings"

	"go.uber.org/zap"

	"snaptext/grid"
)

func (d *document) endTag(name string) step {
	d.before = ""
	d.flushAfter()

	if g, ok := d.flex[d.level]; ok && g.tag == name {
		delete(d.flex, d.level)
		if !d.inFlex() && g.hadDivs {
			d.addText("\n")
		}
	}

	res := d.closeElement(name)
	if !isVoidElement(name) {
		d.level--
	}
	return res
}

func (d *document) closeElement(name string) step {
	if d.ignore.active() {
		if d.ignore.tag == name {
			d.ignore.depth--
			if d.ignore.depth == 0 {
				d.ignore = suppression{}
			}
		}
		return proceed
	}

	cat := categorize(name)
	switch cat {
	case tagTable, tagSelect:
		d.finishCollector(name)
		return proceed
	case tagButton:
		d.handleData("'")
		return proceed
	case tagSuperscript:
		d.inSuperscript = false
		return proceed
	case tagBold:
		d.addText("*")
		return proceed
	case tagListItem:
		if d.listLevel == 0 {
			d.log.Warn("List item end without start, ignoring")
			return proceed
		}
		d.listLevel--
		if d.listLevel == 0 {
			d.ensureNewline()
		}
		return proceed
	}

	if c := d.collector(); c != nil && cat != tagImage {
		c.EndElement(name)
		return proceed
	}

	switch cat {
	case tagParagraph:
		if !d.out.HasSuffix("\n\n") {
			d.addText("\n\n")
		}
	case tagDiv:
		if d.modalLevel != 0 && d.level == d.modalLevel {
			d.modalLevel = 0
			return d.endDialog()
		}
		if d.inFlex() {
			d.out.TrimRight("\n")
			d.flex[d.level-1].hadDivs = true
		} else if !d.out.HasSuffix("\n") {
			d.addText("\n")
		}
	case tagDialog:
		if !d.dialogOpen {
			d.log.Debug("Dialog end without open dialog, ignoring")
			return proceed
		}
		return d.endDialog()
	case tagNavigation:
		d.addText(")")
	case tagTextArea:
		d.addText("\n" + textAreaFence)
	case tagScript:
		d.inScript = false
	case tagStyle:
		d.inStyle = false
	case tagHeading:
		d.out.Append(underline(d.out.Tail()))
	case tagAnchor:
		d.finishLink()
	}
	return proceed
}

// finishCollector lays out completed table or dropdown and merges resulting
// block into enclosing collector or document.
func (d *document) finishCollector(name string) {
	c := d.collector()
	if c == nil {
		d.log.Warn("End tag without open container, ignoring", zap.String("element", name))
		return
	}
	d.collectors = d.collectors[:len(d.collectors)-1]

	text := c.FinishText()
	if parent := d.collector(); parent != nil {
		parent.AddText(text)
		return
	}
	d.out.Append(text)
	if !strings.HasSuffix(text, "\n") {
		d.out.Append("\n")
	}
}

// finishLink marks anchor text with an arrow. Multi-line anchors are moved to
// their own lines, padded to the same width, so the arrows line up.
func (d *document) finishLink() {
	if d.linkStart < 0 {
		d.log.Warn("Anchor end without start, ignoring")
		return
	}
	text := strings.TrimSpace(d.out.Since(d.linkStart))
	d.out.Truncate(d.linkStart)
	d.linkStart = -1

	if !strings.Contains(text, "\n") {
		// separator in front of the first word is dropped with the rest of
		// surrounding whitespace
		d.out.Append(text + "->  ")
		return
	}

	lines := grid.SplitLines(text)
	width := 0
	for _, line := range lines {
		width = max(width, grid.Width(line))
	}
	d.out.Append("\n")
	for _, line := range lines {
		d.out.Append(grid.PadRight(line, width) + "->\n")
	}
}
