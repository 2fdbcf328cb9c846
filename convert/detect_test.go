package convert

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"snaptext/config"
)

func TestDetectUTF(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want srcEncoding
	}{
		{
			name: "UTF-8 BOM",
			buf:  []byte{0xEF, 0xBB, 0xBF, 0x00},
			want: encUTF8,
		},
		{
			name: "UTF-16 Big Endian BOM",
			buf:  []byte{0xFE, 0xFF, 0x00, 0x00},
			want: encUTF16BigEndian,
		},
		{
			name: "UTF-16 Little Endian BOM",
			buf:  []byte{0xFF, 0xFE, 0x01, 0x00}, // Different from UTF-32LE
			want: encUTF16LittleEndian,
		},
		{
			name: "UTF-32 Big Endian BOM",
			buf:  []byte{0x00, 0x00, 0xFE, 0xFF},
			want: encUTF32BigEndian,
		},
		{
			name: "UTF-32 Little Endian BOM",
			buf:  []byte{0xFF, 0xFE, 0x00, 0x00},
			want: encUTF32LittleEndian,
		},
		{
			name: "No BOM",
			buf:  []byte("<html>"),
			want: encUnknown,
		},
		{
			name: "Too short",
			buf:  []byte{0xEF},
			want: encUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectUTF(tt.buf)
			if got != tt.want {
				t.Errorf("detectUTF() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestBOMDetectionFunctions tests individual BOM detection functions
func TestBOMDetectionFunctions(t *testing.T) {
	t.Run("isUTF8BOM3", func(t *testing.T) {
		if !isUTF8BOM3([]byte{0xEF, 0xBB, 0xBF}) {
			t.Error("Expected true for UTF-8 BOM")
		}
		if isUTF8BOM3([]byte{0x00, 0x00, 0x00}) {
			t.Error("Expected false for non-BOM")
		}
	})

	t.Run("isUTF16BigEndianBOM2", func(t *testing.T) {
		if !isUTF16BigEndianBOM2([]byte{0xFE, 0xFF}) {
			t.Error("Expected true for UTF-16 BE BOM")
		}
		if isUTF16BigEndianBOM2([]byte{0xFF, 0xFE}) {
			t.Error("Expected false for UTF-16 LE BOM")
		}
	})

	t.Run("isUTF16LittleEndianBOM2", func(t *testing.T) {
		if !isUTF16LittleEndianBOM2([]byte{0xFF, 0xFE}) {
			t.Error("Expected true for UTF-16 LE BOM")
		}
		if isUTF16LittleEndianBOM2([]byte{0xFE, 0xFF}) {
			t.Error("Expected false for UTF-16 BE BOM")
		}
	})

	t.Run("isUTF32BigEndianBOM4", func(t *testing.T) {
		if !isUTF32BigEndianBOM4([]byte{0x00, 0x00, 0xFE, 0xFF}) {
			t.Error("Expected true for UTF-32 BE BOM")
		}
		if isUTF32BigEndianBOM4([]byte{0xFF, 0xFE, 0x00, 0x00}) {
			t.Error("Expected false for UTF-32 LE BOM")
		}
	})

	t.Run("isUTF32LittleEndianBOM4", func(t *testing.T) {
		if !isUTF32LittleEndianBOM4([]byte{0xFF, 0xFE, 0x00, 0x00}) {
			t.Error("Expected true for UTF-32 LE BOM")
		}
		if isUTF32LittleEndianBOM4([]byte{0x00, 0x00, 0xFE, 0xFF}) {
			t.Error("Expected false for UTF-32 BE BOM")
		}
	})
}

func encode(t *testing.T, s string, tr transform.Transformer) []byte {
	t.Helper()
	out, _, err := transform.Bytes(tr, []byte(s))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return out
}

func TestSelectReader(t *testing.T) {
	const text = "<p>snapshot</p>"
	tests := []struct {
		name string
		data []byte
		enc  srcEncoding
	}{
		{"none", []byte(text), encUnknown},
		{"utf8", append([]byte{0xEF, 0xBB, 0xBF}, text...), encUTF8},
		{"utf16be", encode(t, text, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()), encUTF16BigEndian},
		{"utf16le", encode(t, text, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()), encUTF16LittleEndian},
		{"utf32be", encode(t, text, utf32.UTF32(utf32.BigEndian, utf32.UseBOM).NewEncoder()), encUTF32BigEndian},
		{"utf32le", encode(t, text, utf32.UTF32(utf32.LittleEndian, utf32.UseBOM).NewEncoder()), encUTF32LittleEndian},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectUTF(tt.data); got != tt.enc {
				t.Fatalf("detectUTF() = %v, want %v", got, tt.enc)
			}
			out, err := io.ReadAll(selectReader(bytes.NewReader(tt.data), tt.enc))
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(out) != text {
				t.Errorf("decoded %q, want %q", out, text)
			}
		})
	}
}

// TestSelectReader_Panic tests that invalid encoding causes panic
func TestSelectReader_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for invalid encoding, but didn't panic")
		}
	}()

	r := bytes.NewReader([]byte("test"))
	// Use an invalid encoding value
	selectReader(r, srcEncoding(999))
}

func TestHTMLReader(t *testing.T) {
	latin := append([]byte(`<html><head><meta charset="windows-1252"></head><body>caf`), 0xE9, '<')
	tests := []struct {
		name     string
		data     []byte
		forced   bool
		wantName string
		want     string
	}{
		{"bom", encode(t, "<p>café</p>", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()), false, "bom", "<p>café</p>"},
		{"meta", latin, false, "windows-1252", `<html><head><meta charset="windows-1252"></head><body>café<`},
		{"utf8", []byte("<p>café</p>"), false, "utf-8", "<p>café</p>"},
		{"forced", []byte{'<', 'p', '>', 0xE9}, true, "forced", "<p>é"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rd io.Reader
			var name string
			if tt.forced {
				rd, name = htmlReader(tt.data, charmap.ISO8859_1)
			} else {
				rd, name = htmlReader(tt.data, nil)
			}
			if name != tt.wantName {
				t.Errorf("encoding name = %q, want %q", name, tt.wantName)
			}
			out, err := io.ReadAll(rd)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("decoded %q, want %q", out, tt.want)
			}
		})
	}
}

func TestMatchHTML(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"<!DOCTYPE html><html>", true},
		{"\xEF\xBB\xBF\n  <HTML lang=en>", true},
		{"<body><p>x</p></body>", true},
		{"<!-- saved from url -->", true},
		{"<p>fragment</p>", false},
		{"plain text", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := matchHTML([]byte(tt.in)); got != tt.want {
			t.Errorf("matchHTML(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetectKind(t *testing.T) {
	pages := zipBytes(t, map[string]string{"page.html": "<html></html>"})

	tests := []struct {
		name        string
		head        []byte
		file        string
		wantKind    config.SourceFmt
		wantArchive bool
		wantOK      bool
	}{
		{"html content", []byte("<!doctype html><p>x"), "snapshot", config.SourceFmtHtml, false, true},
		{"html extension", []byte("<p>x</p>"), "001_start.HTML", config.SourceFmtHtml, false, true},
		{"xhtml extension", []byte("<p>x</p>"), "page.xhtml", config.SourceFmtHtml, false, true},
		{"zip named xlsx", pages, "book.xlsx", config.SourceFmtXlsx, false, true},
		{"zip archive", pages, "pages.zip", 0, true, false},
		{"text", []byte("hello"), "notes.txt", 0, false, false},
		{"empty", nil, "empty", 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, archive, ok := detectKind(tt.head, tt.file)
			if ok != tt.wantOK || archive != tt.wantArchive || (ok && kind != tt.wantKind) {
				t.Errorf("detectKind() = %v, %v, %v; want %v, %v, %v", kind, archive, ok, tt.wantKind, tt.wantArchive, tt.wantOK)
			}
		})
	}
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()
	html := filepath.Join(dir, "page")
	if err := os.WriteFile(html, []byte("<html><body>x</body></html>"), 0644); err != nil {
		t.Fatal(err)
	}
	kind, archive, ok, err := detectFile(html)
	if err != nil || !ok || archive || kind != config.SourceFmtHtml {
		t.Errorf("detectFile() = %v, %v, %v, %v", kind, archive, ok, err)
	}

	if _, _, _, err := detectFile(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
