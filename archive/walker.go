// Package archive enumerates documents kept in directory trees and zip
// archives. Both are visited in natural name order, so "page2" comes before
// "page10".
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// ErrUnsafePath is returned for archive entries which could escape
// extraction directory.
var ErrUnsafePath = errors.New("unsafe path (absolute or contains path traversal)")

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk, the file argument is the entry which satisfies match condition. If an
// error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk walks all files in the archive whose names start with prefix, calling
// walkFn for each. Archives with Zip Slip entries are rejected before any
// file is visited.
func Walk(archive, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if errors.Is(err, zip.ErrInsecurePath) {
		r.Close()
		return fmt.Errorf("zip archive %q: %w", archive, ErrUnsafePath)
	}
	if err != nil {
		return err
	}
	defer r.Close()

	files := slices.Clone(r.File)
	for _, f := range files {
		if !isSafePath(f.Name) {
			return fmt.Errorf("zip entry %q: %w", f.Name, ErrUnsafePath)
		}
	}
	slices.SortStableFunc(files, func(a, b *zip.File) int {
		return compareNatural(a.Name, b.Name)
	})

	for _, f := range files {
		if f.FileInfo().IsDir() || !strings.HasPrefix(f.Name, prefix) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// DirFunc is called by WalkDir for every regular file.
type DirFunc func(path string, info fs.FileInfo) error

// WalkDir visits regular files under root. Entries of every directory are
// visited in natural order, symbolic links are not followed.
func WalkDir(root string, fn DirFunc) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	slices.SortStableFunc(entries, func(a, b fs.DirEntry) int {
		return compareNatural(a.Name(), b.Name())
	})

	for _, e := range entries {
		p := filepath.Join(root, e.Name())
		switch {
		case e.IsDir():
			if err := WalkDir(p, fn); err != nil {
				return err
			}
		case e.Type().IsRegular():
			info, err := e.Info()
			if err != nil {
				return err
			}
			if err := fn(p, info); err != nil {
				return err
			}
		}
	}
	return nil
}

func compareNatural(a, b string) int {
	switch {
	case a == b:
		return 0
	case natural.Less(a, b):
		return -1
	default:
		return 1
	}
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) || filepath.VolumeName(name) != "" {
		return false
	}
	for part := range strings.FieldsFuncSeq(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return false
		}
	}
	return true
}
