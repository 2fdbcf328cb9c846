package convert

import (
	"bytes"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"snaptext/config"
	"snaptext/markup"
	"snaptext/xlsx"
)

// renderers keeps settings for all documents of a run.
type renderers struct {
	html    *markup.Renderer
	sheets  *xlsx.Renderer
	charset encoding.Encoding
	log     *zap.Logger
}

// render produces text for a single document. Panics are recovered so the
// remaining documents could be processed.
func (r *renderers) render(d *document) (out string, rerr error) {
	log := r.log.With(zap.String("from", d.Origin))

	log.Debug("Rendering starting")
	defer func(start time.Time) {
		if rec := recover(); rec != nil {
			log.Error("Rendering ended with panic",
				zap.Any("panic", rec), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("rendering panic: %v", rec)
		} else {
			log.Debug("Rendering completed", zap.Duration("elapsed", time.Since(start)), zap.Int("length", len(out)))
		}
	}(time.Now())

	switch d.Kind {
	case config.SourceFmtHtml:
		data, err := d.load()
		if err != nil {
			return "", err
		}
		rd, enc := htmlReader(data, r.charset)
		log.Debug("Decoding markup", zap.String("charset", enc))
		text, err := r.html.RenderHTML(rd)
		if err != nil {
			// partial text is still useful
			return text, fmt.Errorf("unable to parse markup (%s): %w", d.Name, err)
		}
		return text, nil
	case config.SourceFmtXlsx:
		var (
			wb  *xlsx.Workbook
			err error
		)
		if d.Data != nil {
			wb, err = xlsx.Read(bytes.NewReader(d.Data), int64(len(d.Data)), r.log)
		} else {
			wb, err = xlsx.Open(d.Path, r.log)
		}
		if err != nil {
			return "", err
		}
		return r.sheets.Render(wb), nil
	default:
		// this should never happen
		panic(fmt.Sprintf("unsupported source format requested: %s", d.Kind))
	}
}

// finish terminates rendering the way it should appear in output.
func finish(kind config.SourceFmt, text string) string {
	if kind == config.SourceFmtHtml {
		return text + "\n"
	}
	return text
}
