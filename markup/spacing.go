package markup

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// characters which glue to alphanumerics on the right and on the left
	contentOpeners = "[(:=-"
	contentClosers = ")]:=-"
	// markers which come in pairs within a line: quotes and bold
	pairedMarkers = "'*"
)

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// ShouldAddWhitespace decides if whitespace-only text is worth appending to
// existing text: newline is added unless we are already at the line start,
// anything else unless existing text already ends with whitespace.
func ShouldAddWhitespace(text, existing string) bool {
	if len(existing) == 0 {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(existing)
	if strings.HasPrefix(text, "\n") {
		return last != '\n'
	}
	return !unicode.IsSpace(last)
}

// AdaptSpaces returns text prepared for appending to existing text. It adds a
// separating space when both boundary characters are "content" (alphanumeric
// or gluing punctuation), drops leading spaces when both sides are already
// whitespace and for quote and bold markers adds space only when the marker is
// balanced on the current line so that quoted and bold runs stay together.
func AdaptSpaces(text, existing string) string {
	if len(existing) == 0 || len(text) == 0 {
		return text
	}

	first, _ := utf8.DecodeRuneInString(text)
	last, _ := utf8.DecodeLastRuneInString(existing)
	if unicode.IsSpace(first) && unicode.IsSpace(last) {
		// only blanks collapse, line breaks in new text are kept
		return strings.TrimLeft(text, " \t")
	}

	firstContent := isAlnum(first) || strings.ContainsRune(contentOpeners, first)
	lastContent := isAlnum(last) || strings.ContainsRune(contentClosers, last)
	if firstContent == lastContent {
		if firstContent {
			return " " + text
		}
		return text
	}

	marker, ok := findMarker(first, last)
	if !ok {
		return text
	}
	if markerBalanced(existing, marker) {
		return " " + text
	}
	return text
}

func findMarker(first, last rune) (rune, bool) {
	for _, m := range pairedMarkers {
		if first == m || last == m {
			return m, true
		}
	}
	return 0, false
}

// markerBalanced reports whether marker appears even number of times on the
// last line of text.
func markerBalanced(text string, marker rune) bool {
	line := text[strings.LastIndexByte(text, '\n')+1:]
	return strings.Count(line, string(marker))%2 == 0
}

// isBlank is true for empty and whitespace-only strings.
func isBlank(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// isSpaceOnly is true for non-empty strings consisting only of whitespace.
func isSpaceOnly(s string) bool {
	return len(s) > 0 && isBlank(s)
}

// lineWidth is the number of characters on the last line of text.
func lineWidth(text string) int {
	return utf8.RuneCountInString(text[strings.LastIndexByte(text, '\n')+1:])
}

// underline produces heading underline matching the last line of text.
func underline(text string) string {
	return "\n" + strings.Repeat("=", lineWidth(text)) + "\n\n"
}
