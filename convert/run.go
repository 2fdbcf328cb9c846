// Package convert drives rendering of HTML snapshots and spreadsheets to
// text for command line subcommands.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"snaptext/config"
	"snaptext/state"
)

// RunHTML is the action of "html" command.
func RunHTML(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, config.SourceFmtHtml)
}

// RunXLSX is the action of "xlsx" command.
func RunXLSX(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, config.SourceFmtXlsx)
}

func run(ctx context.Context, cmd *cli.Command, kind config.SourceFmt) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	if cmd.NArg() == 0 {
		return errors.New("no input source has been specified")
	}

	applyFlags(env.Cfg, cmd)

	if dst := cmd.String("to"); len(dst) > 0 {
		if env.OutDir, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Processing starting", zap.Stringer("format", kind), zap.Strings("sources", cmd.Args().Slice()), zap.String("destination", env.OutDir))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, cmd.Args().Slice(), kind, env, log)
}

// process handles the core rendering logic independently of CLI framework.
// All sources are resolved first so the order of documents and the need for
// banners is known before anything is written. Failure of a single document
// does not stop processing, all errors are returned together.
func process(ctx context.Context, sources []string, kind config.SourceFmt, env *state.LocalEnv, log *zap.Logger) error {
	var errs error

	c := &collector{kind: kind, log: log}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := filepath.Abs(src)
		if err == nil {
			err = c.collect(ctx, path)
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error("Unable to process source", zap.String("source", src), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("source %q: %w", src, err))
		}
	}

	if kind == config.SourceFmtXlsx && env.Cfg.XLSX.LatestOnly {
		c.latest()
	}
	if len(c.docs) == 0 {
		if errs == nil {
			log.Warn("Nothing to render", zap.Stringer("format", kind))
		}
		return errs
	}

	r := newRenderers(env.Cfg, log)
	multiple := len(c.docs) > 1
	for i := range c.docs {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		d := &c.docs[i]
		text, err := r.render(d)
		if err != nil {
			log.Error("Unable to render document", zap.String("from", d.Origin), zap.Error(err))
			errs = multierr.Append(errs, err)
			if len(text) == 0 {
				continue
			}
		}
		env.Rpt.StoreRendering(i, d.Name, d.Path, d.Data, text)

		if env.ToFiles() {
			err = writeFile(d, i, finish(kind, text), env, log)
		} else {
			err = writeStdout(env.Stdout, i, multiple, d, finish(kind, text))
		}
		if err != nil {
			log.Error("Unable to output rendering", zap.String("from", d.Origin), zap.Error(err))
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func writeStdout(w io.Writer, index int, multiple bool, d *document, text string) error {
	if multiple && index > 0 {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	if multiple {
		if _, err := io.WriteString(w, banner(d.Name)+"\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, text)
	return err
}

func writeFile(d *document, index int, text string, env *state.LocalEnv, log *zap.Logger) error {
	outputName := buildOutputPath(d, index, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(outputName, []byte(text), 0644); err != nil {
		return fmt.Errorf("unable to write rendering: %w", err)
	}
	log.Info("Rendering written", zap.String("from", d.Origin), zap.String("to", outputName))
	return nil
}
