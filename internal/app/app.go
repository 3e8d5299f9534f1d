package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/damwatch/gridcheck/internal/htmltable"
	"github.com/damwatch/gridcheck/internal/inspect"
	"github.com/damwatch/gridcheck/internal/record"
	"github.com/damwatch/gridcheck/internal/report"
	"github.com/damwatch/gridcheck/internal/source"
)

// App wires the pipeline stages together for a single extraction run:
// load the document, locate the table, split it into rows, build records,
// then report and export artifacts.
type App struct {
	cfg Config
	out io.Writer
}

func New(cfg Config) *App {
	return &App{cfg: cfg, out: os.Stdout}
}

// SetOutput redirects the console report away from stdout. Tests use this to
// capture what a run prints.
func (a *App) SetOutput(w io.Writer) {
	if w != nil {
		a.out = w
	}
}

func (a *App) Close() {
	// nothing yet
}

func (a *App) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := source.Load(a.cfg.InputPath)
	if err != nil {
		return err
	}
	log.Info().Str("path", doc.Path).Str("charset", doc.Charset).Int("bytes", doc.Bytes).Msg("document loaded")

	if a.cfg.InspectOnly {
		ov, err := inspect.Scan(doc.HTML)
		if err != nil {
			return fmt.Errorf("inspect document: %w", err)
		}
		fmt.Fprint(a.out, report.OverviewText(doc.Path, ov))
		return nil
	}

	fragment, err := htmltable.Locate(doc.HTML, a.cfg.TableID)
	if err != nil {
		if errors.Is(err, htmltable.ErrTableNotFound) {
			// Describe what the document does contain so the operator can
			// tell a renamed id apart from a page that failed to render.
			if ov, scanErr := inspect.Scan(doc.HTML); scanErr == nil {
				log.Error().Str("id", a.cfg.TableID).Int("tables", ov.Tables).Strs("ids", ov.TableIDs).Msg("table not found in document")
			}
		}
		return err
	}
	log.Debug().Int("chars", len(fragment)).Msg("table located")

	stripped := htmltable.StripCaption(fragment)
	rows := htmltable.Rows(stripped)
	log.Info().Int("rows", len(rows)).Msg("table rows found")

	// The first row is the header; everything after it is data.
	var dataRows []string
	if len(rows) > 1 {
		dataRows = rows[1:]
	}
	builder := record.Builder{Source: a.cfg.SourceLabel}
	records, stats := builder.Build(dataRows)
	log.Info().Int("records", len(records)).Int("skipped", stats.Skipped()).Msg("records built")

	sum := report.Summary{
		InputPath:     doc.Path,
		Charset:       doc.Charset,
		DocumentBytes: doc.Bytes,
		TableID:       a.cfg.TableID,
		FragmentChars: len(fragment),
		StrippedChars: len(stripped),
		Rows:          len(rows),
		Records:       records,
		Stats:         stats,
	}
	if a.cfg.Verbose {
		if ov, err := inspect.Scan(doc.HTML); err == nil {
			sum.Overview = &ov
		}
	}

	fmt.Fprint(a.out, sum.Text(a.cfg.SampleCount))

	if err := a.exportArtifacts(sum); err != nil {
		return err
	}
	if !sum.Succeeded() {
		log.Warn().Msg("no records extracted")
	}
	return nil
}
