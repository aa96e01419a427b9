// Package convert runs one detailed-export → report-workbook conversion.
package convert

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/Tiliavir/clockrep/internal/model"
	"github.com/Tiliavir/clockrep/internal/report"
	"github.com/Tiliavir/clockrep/internal/storage"
	"github.com/Tiliavir/clockrep/internal/workbook"
)

// Options fully describes a conversion. Nothing is read from package state.
type Options struct {
	// DetailedPath is the Clockify detailed export to read.
	DetailedPath string
	// OutputPath overrides the derived output file name.
	OutputPath string
	// OutputDir holds the derived output file. Empty = directory of DetailedPath.
	OutputDir string
	UserName  string
	Rate      float64
	Currency  string
	// OnConflict applies when the output file already exists.
	OnConflict storage.ConflictPolicy
}

// Result describes a finished conversion.
type Result struct {
	OutputPath string
	// Replaced is true when an existing file was overwritten.
	Replaced bool
	Report   model.Report
}

// Validate checks the options before any file is touched.
func (o Options) Validate() error {
	if o.DetailedPath == "" {
		return errors.New("no detailed export given")
	}
	if o.Rate <= 0 {
		return fmt.Errorf("rate must be positive, got %v", o.Rate)
	}
	return nil
}

// Target returns the output path the conversion will aim for before any
// conflict policy is applied, and whether a file already exists there.
// Callers use it to ask the user for a policy up front.
func Target(opts Options) (string, bool, error) {
	path := opts.OutputPath
	if path == "" {
		period, _ := storage.ParseDateRange(opts.DetailedPath)
		dir := opts.OutputDir
		if dir == "" {
			dir = filepath.Dir(opts.DetailedPath)
		}
		path = filepath.Join(dir, storage.OutputBaseName(opts.UserName, period)+".xlsx")
	}
	exists, err := storage.Exists(path)
	return path, exists, err
}

// Run reads the export, aggregates it and writes the report workbook. A
// malformed row aborts the run before anything is written.
func Run(opts Options, log *slog.Logger) (Result, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	log.Info("reading detailed export", "path", opts.DetailedPath, "rate", opts.Rate)
	entries, err := workbook.ReadDetailed(opts.DetailedPath, opts.Rate)
	if err != nil {
		return Result{}, err
	}
	log.Debug("entries parsed", "count", len(entries))

	period, ok := storage.ParseDateRange(opts.DetailedPath)
	if !ok {
		log.Warn("no date range in file name", "path", opts.DetailedPath)
	}
	rep := report.Build(entries, report.Meta{
		UserName: opts.UserName,
		Rate:     opts.Rate,
		Currency: opts.Currency,
		Period:   period,
	})
	log.Debug("report built",
		"summary_rows", len(rep.Summary),
		"projects", len(rep.Projects),
		"total_seconds", rep.TotalSeconds,
	)

	target, _, err := Target(opts)
	if err != nil {
		return Result{}, err
	}
	outPath, replaced, err := storage.ResolveOutputPath(target, opts.OnConflict)
	if err != nil {
		return Result{}, err
	}
	if outPath != target {
		log.Info("output exists, using suffixed name", "target", target, "path", outPath)
	}

	f, err := workbook.Render(rep)
	if err != nil {
		return Result{}, fmt.Errorf("rendering report: %w", err)
	}
	defer f.Close()

	if err := storage.WriteFile(outPath, func(w io.Writer) error { return f.Write(w) }); err != nil {
		return Result{}, err
	}
	log.Info("report written", "path", outPath, "replaced", replaced)

	return Result{OutputPath: outPath, Replaced: replaced, Report: rep}, nil
}
