package xlsx

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"snaptext/grid"
)

// Options controls workbook presentation.
type Options struct {
	// StyleLegend adds description of every used cell style after the sheets.
	StyleLegend bool
	// Grid is passed to sheet layout.
	Grid []grid.Option
}

// Renderer presents workbook sheets as text grids. Styled cells are marked
// with as many asterisks as their style index.
type Renderer struct {
	opts Options
	log  *zap.Logger
}

func New(opts Options, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{opts: opts, log: log.Named("xlsx")}
}

// Render produces text for all worksheets of the workbook.
func (r *Renderer) Render(wb *Workbook) string {
	var (
		sb   strings.Builder
		used []int
	)
	for _, sh := range wb.Sheets {
		sb.WriteString(sh.Description())
		sb.WriteByte('\n')

		header, body := r.split(sh, &used)
		r.log.Debug("Sheet split", zap.String("sheet", sh.Title), zap.Int("header", len(header)), zap.Int("body", len(body)))
		if len(body) > 0 {
			opts := append([]grid.Option{grid.WithOverlap(false), grid.WithHeaderOverlap(false)}, r.opts.Grid...)
			sb.WriteString(grid.NewHeaderFormatter(header, body, sh.MaxCol, opts...).String())
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(grid.NewFormatter(header, sh.MaxCol, r.opts.Grid...).String())
		sb.WriteString("\n\n")
	}

	if r.opts.StyleLegend {
		for _, id := range used {
			sb.WriteString(strings.Repeat("*", id) + " " + wb.Describe(id) + "\n\n")
		}
	}
	return sb.String()
}

// split moves rows into header until the first row whose value kinds differ
// from the previous one, that row and all following go to body. Styles of
// marked cells are collected in order of appearance.
func (r *Renderer) split(sh *Sheet, used *[]int) (header, body grid.Grid) {
	var prev []CellKind
	inBody := false
	for _, row := range sh.Rows {
		texts := make([]string, len(row))
		kinds := make([]CellKind, len(row))
		for i, c := range row {
			texts[i], kinds[i] = c.Text, c.Kind
			if c.Styled {
				texts[i] += strings.Repeat("*", c.Style)
				if !slices.Contains(*used, c.Style) {
					*used = append(*used, c.Style)
				}
			}
		}
		if !inBody && prev != nil && !slices.Equal(kinds, prev) {
			inBody = true
		}
		if inBody {
			body = append(body, texts)
		} else {
			header = append(header, texts)
		}
		prev = kinds
	}
	return header, body
}
