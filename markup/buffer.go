package markup

import (
	"bytes"
	"strings"
)

// buffer is the renderer output. Positions are byte offsets, they are only
// ever taken from len() of the same buffer so they always fall on rune
// boundaries.
type buffer struct {
	b []byte
}

func (b *buffer) String() string {
	return string(b.b)
}

func (b *buffer) Len() int {
	return len(b.b)
}

func (b *buffer) Append(s string) {
	b.b = append(b.b, s...)
}

func (b *buffer) HasSuffix(s string) bool {
	return bytes.HasSuffix(b.b, []byte(s))
}

func (b *buffer) Reset() {
	b.b = b.b[:0]
}

// Truncate cuts buffer to n bytes, out of range n is ignored.
func (b *buffer) Truncate(n int) {
	if n >= 0 && n < len(b.b) {
		b.b = b.b[:n]
	}
}

// TrimRight removes all trailing characters contained in cutset.
func (b *buffer) TrimRight(cutset string) {
	b.b = bytes.TrimRight(b.b, cutset)
}

// Since returns text written after position pos, empty when pos is beyond
// current end (buffer was reset in between).
func (b *buffer) Since(pos int) string {
	if pos < 0 || pos >= len(b.b) {
		return ""
	}
	return string(b.b[pos:])
}

// Tail returns the current line preceded by the line break ending the
// previous one, enough context for spacing decisions.
func (b *buffer) Tail() string {
	i := bytes.LastIndexByte(b.b, '\n')
	if i < 0 {
		return string(b.b)
	}
	return string(b.b[i:])
}

// IsBlank reports whether buffer has nothing but whitespace.
func (b *buffer) IsBlank() bool {
	return len(bytes.TrimSpace(b.b)) == 0
}

// multiline reports whether text after pos, once trimmed, spans several
// lines.
func (b *buffer) multiline(pos int) bool {
	return strings.Contains(strings.TrimSpace(b.Since(pos)), "\n")
}
