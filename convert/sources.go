package convert

import (
	stdzip "archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"snaptext/archive"
	"snaptext/config"
)

// document is a single source selected for rendering.
type document struct {
	// Name is source path relative to what was specified on command line:
	// base file name for files, relative path for directory and archive
	// entries.
	Name string
	// Origin identifies source in logs.
	Origin string
	Kind   config.SourceFmt
	// Path is set for files on disk, Data for archive entries.
	Path string
	Data []byte
}

func (d *document) load() ([]byte, error) {
	if d.Data != nil {
		return d.Data, nil
	}
	return os.ReadFile(d.Path)
}

// collector gathers documents of a single kind from command line sources.
type collector struct {
	kind config.SourceFmt
	log  *zap.Logger
	docs []document
}

// collect resolves source which may be a file, a directory or a path into
// archive ("archive.zip/dir/file.html").
func (c *collector) collect(ctx context.Context, src string) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return c.collectDir(ctx, head)
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		kind, isArchive, ok, err := detectFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := c.collectArchive(ctx, head, filepath.ToSlash(tail), ""); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			return nil
		}
		if ok && kind == c.kind && len(tail) == 0 {
			c.add(document{Name: filepath.Base(head), Origin: head, Kind: kind, Path: head})
			return nil
		}
		return fmt.Errorf("input was not recognized as %s (%s)", c.kind.Describe(), head)
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

// collectDir walks directory tree looking for documents and archives.
func (c *collector) collectDir(ctx context.Context, dir string) error {
	before := len(c.docs)
	err := archive.WalkDir(dir, func(path string, _ fs.FileInfo) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		kind, isArchive, ok, err := detectFile(path)
		if err != nil {
			c.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			if err := c.collectArchive(ctx, path, "", filepath.Dir(rel)); err != nil {
				c.log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}
		if !ok || kind != c.kind {
			c.log.Debug("Skipping file, not recognized", zap.String("file", path), zap.Stringer("want", c.kind))
			return nil
		}
		c.add(document{Name: rel, Origin: path, Kind: kind, Path: path})
		return nil
	})
	if err == nil && len(c.docs) == before {
		c.log.Debug("Nothing to process", zap.String("dir", dir))
	}
	return err
}

// collectArchive reads all documents inside archive under "pathIn". Archives
// inside archives are not looked into.
func (c *collector) collectArchive(ctx context.Context, path, pathIn, pathOut string) error {
	before := len(c.docs)
	err := archive.Walk(path, pathIn, func(arc string, f *stdzip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := readEntry(f)
		if err != nil {
			c.log.Warn("Skipping file in archive", zap.String("archive", arc), zap.String("path", f.Name), zap.Error(err))
			return nil
		}
		kind, isArchive, ok := detectKind(data, f.Name)
		if isArchive {
			c.log.Debug("Skipping nested archive", zap.String("archive", arc), zap.String("file", f.Name))
			return nil
		}
		if !ok || kind != c.kind {
			c.log.Debug("Skipping file, not recognized", zap.String("archive", arc), zap.String("file", f.Name),
				zap.String("detected", matchType(data).MIME.Value))
			return nil
		}
		c.add(document{
			Name:   filepath.Join(pathOut, filepath.FromSlash(f.Name)),
			Origin: arc + ":" + f.Name,
			Kind:   kind,
			Data:   data,
		})
		return nil
	})
	if err == nil && len(c.docs) == before {
		c.log.Debug("Nothing to process", zap.String("archive", path), zap.String("prefix", pathIn))
	}
	return err
}

func (c *collector) add(d document) {
	c.log.Debug("Document found", zap.String("origin", d.Origin), zap.Stringer("kind", d.Kind))
	c.docs = append(c.docs, d)
}

// latest keeps only the document which origin sorts last.
func (c *collector) latest() {
	if len(c.docs) < 2 {
		return
	}
	last := c.docs[0]
	for _, d := range c.docs[1:] {
		if natural.Less(last.Origin, d.Origin) {
			last = d
		}
	}
	c.log.Debug("Keeping latest document only", zap.String("origin", last.Origin), zap.Int("dropped", len(c.docs)-1))
	c.docs = []document{last}
}

var errEntryTooLarge = errors.New("archive entry is too large")

// archive entries are read into memory
const maxEntrySize = 256 << 20

func readEntry(f *stdzip.File) ([]byte, error) {
	if f.UncompressedSize64 > maxEntrySize {
		return nil, errEntryTooLarge
	}
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(r, maxEntrySize+1)); err != nil {
		return nil, err
	}
	if buf.Len() > maxEntrySize {
		return nil, errEntryTooLarge
	}
	return buf.Bytes(), nil
}
