package markup

//go:generate go tool go-enum --marshal --names --nocase --mustparse

// Element display as far as rendering cares. Anything not listed is unknown.
// ENUM(unknown, block, flex, inline-block, none)
type DisplayMode int

// parseDisplay never fails: unrecognized display values are unknown.
func parseDisplay(s string) DisplayMode {
	if d, err := ParseDisplayMode(s); err == nil {
		return d
	}
	return DisplayModeUnknown
}
