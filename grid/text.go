package grid

import (
	"strings"
	"unicode/utf8"
)

// Width is the display width of a single line of text. We count code points,
// no attempt is made to handle wide characters or grapheme clusters.
func Width(s string) int {
	return utf8.RuneCountInString(s)
}

// SplitLines splits text on line boundaries dropping the terminators. Trailing
// line terminator does not produce an empty last line and empty text has no
// lines at all.
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch r {
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				size++
			}
			start = i + size
		case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			lines = append(lines, s[start:i])
			start = i + size
		}
		i += size
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// MaxLineWidth returns width of the widest line of a (possibly multi-line)
// text.
func MaxLineWidth(s string) int {
	w := 0
	for _, line := range SplitLines(s) {
		w = max(w, Width(line))
	}
	return w
}

// PadRight left-justifies s in a field of width characters. Longer strings
// are returned unchanged.
func PadRight(s string, width int) string {
	if n := Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// Center centers s in a field of width characters using fill. When padding
// cannot be split evenly the extra character goes to the right, unless both
// padding and width are odd.
func Center(s string, width int, fill string) string {
	n := Width(s)
	if n >= width {
		return s
	}
	pad := width - n
	left := pad/2 + (pad & width & 1)
	return strings.Repeat(fill, left) + s + strings.Repeat(fill, pad-left)
}
