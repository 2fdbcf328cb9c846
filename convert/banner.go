package convert

import (
	"path/filepath"
	"strings"

	"snaptext/grid"
)

const bannerWidth = 30

// stageName derives short document name from its file name: everything up to
// the first dot without "NNN_" ordering prefix.
func stageName(name string) string {
	base, _, _ := strings.Cut(filepath.Base(name), ".")
	if len(base) > 3 && base[3] == '_' && isDigits(base[:3]) {
		base = base[4:]
	}
	return base
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// banner separates documents when several of them go to the same output.
func banner(name string) string {
	return grid.Center(" "+stageName(name)+" ", bannerWidth, "-")
}
