// Package pipeline runs one full export for one identity: resolve the
// date range, fetch the entries, shape the rows, write the CSV, and
// optionally push the written file to a spreadsheet tab.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/mgarrido/harvest-export/internal/config"
	"github.com/mgarrido/harvest-export/internal/export"
	"github.com/mgarrido/harvest-export/internal/harvest"
	"github.com/mgarrido/harvest-export/internal/logging"
	"github.com/mgarrido/harvest-export/internal/report"
	"github.com/mgarrido/harvest-export/internal/timecalc"
)

// Fetcher lists time entries for an inclusive date range. The userID
// filter is passed through verbatim when non-empty.
type Fetcher interface {
	ListTimeEntries(ctx context.Context, from, to, userID string) ([]harvest.TimeEntry, error)
}

// Uploader pushes a grid to a spreadsheet tab.
type Uploader interface {
	Upload(ctx context.Context, spreadsheetID, tab string, values [][]string) error
}

// UploaderFactory builds the Uploader lazily, after the CSV is on
// disk, so an authentication failure never costs the local export. A
// nil factory disables the upload step.
type UploaderFactory func(ctx context.Context) (Uploader, error)

// Options are the per-invocation overrides on top of the identity.
type Options struct {
	FlagFrom  string
	FlagTo    string
	LastMonth bool

	// OutputOverride replaces the identity's CSV name when set.
	OutputOverride string
	// JSONOverride replaces the identity's raw JSON path when set.
	JSONOverride string

	// Now anchors the default-range calculation; the zero value means
	// time.Now.
	Now time.Time
}

// Result summarizes a completed run.
type Result struct {
	Range      timecalc.Range
	CSVPath    string
	EntryCount int
	Skipped    int
	RowCount   int
	Uploaded   bool
}

func resolveRange(id config.Identity, opts Options) (timecalc.Range, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	if opts.LastMonth {
		from, to := timecalc.LastMonthRange(now)
		return timecalc.Range{
			From: from.Format(timecalc.DateLayout),
			To:   to.Format(timecalc.DateLayout),
		}, nil
	}
	return timecalc.ResolveRange(opts.FlagFrom, opts.FlagTo, id.FromDate, id.ToDate, now)
}

// Run executes the export for one identity. The CSV is written before
// any upload is attempted; an upload failure is returned but leaves the
// file in place.
func Run(ctx context.Context, id config.Identity, opts Options, fetcher Fetcher, newUploader UploaderFactory, log logging.Logger) (Result, error) {
	rng, err := resolveRange(id, opts)
	if err != nil {
		return Result{}, err
	}
	log.Infof("identity %q: exporting %s to %s", id.Name(), rng.From, rng.To)

	entries, err := fetcher.ListTimeEntries(ctx, rng.From, rng.To, id.UserID)
	if err != nil {
		return Result{}, fmt.Errorf("fetching time entries: %w", err)
	}
	res := Result{Range: rng, EntryCount: len(entries)}

	// The flag alone enables the dump; the env switch is not required.
	if id.EnableRawJSON || opts.JSONOverride != "" {
		jsonPath := id.RawJSONName
		if opts.JSONOverride != "" {
			jsonPath = opts.JSONOverride
		}
		jsonPath = export.ResolveOutputPath(jsonPath, id.OutputDir)
		if err := export.WriteRawJSON(jsonPath, harvest.Payload{TimeEntries: entries}); err != nil {
			log.Warnf("identity %q: raw JSON not written: %v", id.Name(), err)
		} else {
			log.Infof("identity %q: wrote raw JSON to %s", id.Name(), jsonPath)
		}
	}

	rows, skipped := report.BuildRows(entries, report.Options{AdvancedFields: id.AdvancedFields}, log)
	res.Skipped = skipped
	if id.SummaryRows {
		rows = append(rows, report.SummaryRows(rows, id.SummaryTasks)...)
	}
	if id.ResumeRows {
		rows = append(rows, report.ResumeRows(rows)...)
	}
	res.RowCount = len(rows)

	csvName := id.CSVName
	if opts.OutputOverride != "" {
		csvName = opts.OutputOverride
	}
	res.CSVPath = export.ResolveOutputPath(csvName, id.OutputDir)

	header := report.Columns(id.AdvancedFields)
	records := report.Records(rows, id.AdvancedFields)
	if err := export.WriteCSV(res.CSVPath, header, records); err != nil {
		return res, err
	}
	log.Infof("identity %q: wrote %d rows to %s (%d entries, %d skipped)",
		id.Name(), res.RowCount, res.CSVPath, res.EntryCount, res.Skipped)

	if newUploader == nil {
		return res, nil
	}
	uploader, err := newUploader(ctx)
	if err != nil {
		return res, fmt.Errorf("building uploader: %w", err)
	}
	grid, err := export.ReadCSV(res.CSVPath)
	if err != nil {
		return res, err
	}
	if err := uploader.Upload(ctx, id.SpreadsheetID, id.SheetTab, grid); err != nil {
		return res, fmt.Errorf("uploading to spreadsheet: %w", err)
	}
	res.Uploaded = true
	return res, nil
}
