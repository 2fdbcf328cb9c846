package convert

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"snaptext/config"
)

// enough for office documents detection which looks past first zip entry
const headerSize = 8192

var htmlType = filetype.NewType("html", "text/html")

func init() {
	filetype.AddMatcher(htmlType, matchHTML)
}

// matchHTML looks for markup at the beginning of a buffer: doctype, html or
// comment, possibly after BOM and white space.
func matchHTML(buf []byte) bool {
	buf = bytes.TrimLeft(bytes.TrimPrefix(buf, []byte{0xEF, 0xBB, 0xBF}), " \t\r\n\f")
	if len(buf) > 64 {
		buf = buf[:64]
	}
	lower := bytes.ToLower(buf)
	for _, prefix := range []string{"<!doctype html", "<html", "<head", "<body", "<!--"} {
		if bytes.HasPrefix(lower, []byte(prefix)) {
			return true
		}
	}
	return false
}

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// detectUTF looks at byte order mark. UTF-32 LE must be checked before UTF-16
// LE, they share first two bytes.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectReader returns reader producing UTF-8 with BOM removed.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		return r
	case encUTF8:
		return unicode.UTF8BOM.NewDecoder().Reader(r)
	case encUTF16BigEndian:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Reader(r)
	case encUTF16LittleEndian:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Reader(r)
	case encUTF32BigEndian:
		return utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder().Reader(r)
	case encUTF32LittleEndian:
		return utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder().Reader(r)
	default:
		// this should never happen
		panic("unsupported encoding requested")
	}
}

// htmlReader decodes markup to UTF-8. Forced encoding wins, then byte order
// mark, then meta declarations and content sniffing.
func htmlReader(data []byte, forced encoding.Encoding) (io.Reader, string) {
	r := bytes.NewReader(data)
	if forced != nil {
		return forced.NewDecoder().Reader(r), "forced"
	}
	if enc := detectUTF(data); enc != encUnknown {
		return selectReader(r, enc), "bom"
	}
	e, name, _ := charset.DetermineEncoding(data, "text/html")
	return e.NewDecoder().Reader(r), name
}

// detectKind decides what document data holds. Spreadsheets are zip
// archives, so they must be recognized before generic archives.
func detectKind(head []byte, name string) (kind config.SourceFmt, archive, ok bool) {
	ext := strings.ToLower(filepath.Ext(name))
	isZip := filetype.Is(head, "zip")

	switch {
	case filetype.Is(head, "xlsx"), isZip && ext == ".xlsx":
		return config.SourceFmtXlsx, false, true
	case isZip:
		return 0, true, false
	case filetype.IsType(head, htmlType), ext == ".html", ext == ".htm", ext == ".xhtml":
		return config.SourceFmtHtml, false, true
	}
	return 0, false, false
}

func matchType(buf []byte) types.Type {
	kind, err := filetype.Match(buf)
	if err != nil {
		return filetype.Unknown
	}
	return kind
}

func readHead(r io.Reader) ([]byte, error) {
	head := make([]byte, headerSize)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

// detectFile examines file on disk.
func detectFile(path string) (kind config.SourceFmt, archive, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false, false, err
	}
	defer f.Close()

	head, err := readHead(f)
	if err != nil {
		return 0, false, false, err
	}
	kind, archive, ok = detectKind(head, path)
	return kind, archive, ok, nil
}
