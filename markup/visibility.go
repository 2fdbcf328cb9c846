package markup

import (
	"go.uber.org/zap"

	"snaptext/css"
)

// Slider describes a collapsible panel learned from page stylesheet: element
// having all Classes, lacking Expanded class (and carrying Attr when set) has
// zero width or height and so is not visible.
type Slider struct {
	Attr     string
	Classes  ClassSet
	Expanded string
}

// sliderDimensions are properties which collapse panels.
var sliderDimensions = []string{"width", "height"}

// inferSliders pairs zero sized class combinations with later rules for the
// same attribute which add exactly one class and give the panel its size.
func inferSliders(sheet *css.Stylesheet) []Slider {
	var sliders []Slider
	for _, dim := range sliderDimensions {
		rules := sheet.RulesWithProperty(dim)
		for i, collapsed := range rules {
			if v, _ := collapsed.GetProperty(dim); !collapsed.Selector.IsClassOnly() || !v.IsZero() {
				continue
			}
			classes := NewClassSet(collapsed.Selector.Classes...)
			for _, expanded := range rules[i+1:] {
				if v, _ := expanded.GetProperty(dim); !expanded.Selector.IsClassOnly() || v.IsZero() {
					continue
				}
				if expanded.Selector.Attr != collapsed.Selector.Attr {
					continue
				}
				wider := NewClassSet(expanded.Selector.Classes...)
				if len(wider) != len(classes)+1 || !wider.ContainsAll(classes) {
					continue
				}
				for c := range wider {
					if !classes.Has(c) {
						sliders = append(sliders, Slider{Attr: collapsed.Selector.Attr, Classes: classes, Expanded: c})
					}
				}
			}
		}
	}
	return sliders
}

// learnSliders parses stylesheet text met in the document.
func (d *document) learnSliders(text string) {
	sheet := d.css.Parse([]byte(text), "style element")
	if len(sheet.Rules) > 0 {
		d.log.Debug("Stylesheet learned", zap.Stringer("css", sheet))
	}
	found := inferSliders(sheet)
	for _, s := range found {
		d.log.Debug("Slider detected", zap.String("attr", s.Attr), zap.Stringer("classes", s.Classes), zap.String("expanded", s.Expanded))
	}
	d.sliders = append(d.sliders, found...)
}

func (d *document) isHiddenSlider(attrs Attrs, props ClassSet) bool {
	for _, s := range d.sliders {
		if s.Attr != "" && !attrs.Has(s.Attr) {
			continue
		}
		if !props.Has(s.Expanded) && props.ContainsAll(s.Classes) {
			return true
		}
	}
	return false
}

// display computes element display from explicit test attribute or inline
// style. Element moved off screen with absolute positioning is as good as not
// displayed.
func (d *document) display(attrs Attrs, style css.Declarations) DisplayMode {
	if explicit := attrs.Value("data-test-explicit-display"); explicit != "" {
		return parseDisplay(explicit)
	}
	if v, ok := style.Get("display"); ok && v.Raw != "" {
		return parseDisplay(v.Raw)
	}
	if style.Keyword("position") == "absolute" {
		left, _ := style.Get("left")
		top, _ := style.Get("top")
		if left.IsNegative() || top.IsNegative() {
			return DisplayModeNone
		}
	}
	return DisplayModeUnknown
}

func (d *document) isInvisible(attrs Attrs, style css.Declarations, display DisplayMode, props ClassSet) bool {
	if d.opts.ShowInvisible {
		return false
	}
	return display == DisplayModeNone ||
		attrs.Value("visibility") == "hidden" ||
		style.Keyword("visibility") == "hidden" ||
		attrs.Has("hidden") ||
		d.isHiddenSlider(attrs, props)
}
