package convert

import (
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"snaptext/config"
	"snaptext/grid"
	"snaptext/markup"
	"snaptext/xlsx"
)

// applyFlags superimposes command line values over configuration. Only flags
// set explicitly are taken into account.
func applyFlags(cfg *config.Config, cmd *cli.Command) {
	for name, dst := range map[string]*[]string{
		"ignore": &cfg.Render.Ignore,
		"icons":  &cfg.Render.Icons,
		"modals": &cfg.Render.Modals,
	} {
		if cmd.IsSet(name) {
			*dst = markup.ParseClassList(cmd.String(name)).Sorted()
		}
	}
	if cmd.IsSet("show-invisible") {
		cfg.Render.ShowInvisible = cmd.Bool("show-invisible")
	}
	if cmd.IsSet("charset") {
		cfg.Render.Charset = cmd.String("charset")
	}
	if cmd.IsSet("style-legend") {
		cfg.XLSX.StyleLegend = cmd.Bool("style-legend")
	}
	if cmd.IsSet("latest") {
		cfg.XLSX.LatestOnly = cmd.Bool("latest")
	}
	if cmd.IsSet("max-width") {
		cfg.Grid.MaxWidth = int(cmd.Int("max-width"))
		cfg.XLSX.MaxWidth = cfg.Grid.MaxWidth
	}
}

// resolveCharset returns encoding forced for markup input, nil when markup
// should be sniffed.
func resolveCharset(name string, log *zap.Logger) encoding.Encoding {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", name), zap.Error(err))
		return nil
	}
	n, _ := ianaindex.IANA.Name(enc)
	log.Debug("Forcing markup character set", zap.String("charset", n))
	return enc
}

func gridOptions(cfg *config.GridConfig) []grid.Option {
	opts := []grid.Option{
		grid.WithColumnSpacing(cfg.ColumnSpacing),
		grid.WithHeaderOverlap(cfg.HeaderOverlap),
		grid.WithOverlap(cfg.BodyOverlap),
	}
	if cfg.MaxWidth > 0 {
		opts = append(opts, grid.WithMaxWidth(cfg.MaxWidth))
	}
	if len(cfg.MinWidths) > 0 {
		opts = append(opts, grid.WithMinWidths(cfg.MinWidths))
	}
	return opts
}

func newRenderers(cfg *config.Config, log *zap.Logger) *renderers {
	if len(cfg.Grid.MinWidths) > 0 {
		log.Debug("Minimum column widths", zap.String("widths", grid.DumpWidths(cfg.Grid.MinWidths)))
	}

	html := markup.Options{
		Ignore:        markup.NewClassSet(cfg.Render.Ignore...),
		Icons:         markup.NewClassSet(cfg.Render.Icons...),
		Modals:        markup.NewClassSet(cfg.Render.Modals...),
		ShowInvisible: cfg.Render.ShowInvisible,
		Grid:          gridOptions(&cfg.Grid),
	}

	sheets := xlsx.Options{
		StyleLegend: cfg.XLSX.StyleLegend,
		Grid:        []grid.Option{grid.WithColumnSpacing(cfg.Grid.ColumnSpacing)},
	}
	if cfg.XLSX.MaxWidth > 0 {
		sheets.Grid = append(sheets.Grid, grid.WithMaxWidth(cfg.XLSX.MaxWidth))
	}

	return &renderers{
		html:    markup.New(html, log),
		sheets:  xlsx.New(sheets, log),
		charset: resolveCharset(cfg.Render.Charset, log),
		log:     log,
	}
}
