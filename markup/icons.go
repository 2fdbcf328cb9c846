package markup

import (
	"sort"
	"strings"
)

const iconMarker = "icon"

func isKendoIcon(class string) bool {
	return strings.HasPrefix(class, "k-i-") || strings.HasPrefix(class, "k-svg-i-") || strings.HasPrefix(class, "icon-")
}

func isFontAwesomeIcon(class string) bool {
	return strings.HasPrefix(class, "fa-") && class != "fa-icon" && !strings.HasPrefix(class, "fa-w-")
}

// iconClasses selects classes which name an icon.
func (o *Options) iconClasses(props ClassSet) ClassSet {
	icons := ClassSet{}
	for p := range props {
		if o.Icons.Has(p) || isFontAwesomeIcon(p) || isKendoIcon(p) {
			icons.Add(p)
		}
	}
	return icons
}

func (o *Options) hasIcon(props ClassSet) bool {
	for p := range props {
		if o.Icons.Has(p) || isFontAwesomeIcon(p) || isKendoIcon(p) {
			return true
		}
	}
	return false
}

// iconName renders icon glyph like ":chevron-down:". Element explicitly
// marked with "icon" class and no recognizable icon classes uses all of its
// classes. BEM style names are shortened to the last "__" segment.
func (o *Options) iconName(props ClassSet) string {
	props = props.Clone()
	marked := props.Has(iconMarker)
	delete(props, iconMarker)

	chosen := o.iconClasses(props)
	if !marked || len(chosen) > 0 {
		props = chosen
	}
	if len(props) == 0 {
		return ""
	}

	short := make([]string, 0, len(props))
	for p := range props {
		parts := strings.Split(p, "__")
		short = append(short, parts[len(parts)-1])
	}
	sort.Strings(short)
	return ":" + strings.Join(short, " ") + ":"
}
