// Package workbook reads Clockify detailed exports and renders the
// formatted report workbook.
package workbook

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Tiliavir/clockrep/internal/model"
	"github.com/Tiliavir/clockrep/internal/timecalc"
)

// ReadDetailed parses the first sheet of the export at path. Every entry is
// billed at rate. The first bad row aborts the read.
func ReadDetailed(path string, rate float64) ([]model.TimeEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s: %w", model.ErrFileNotFound, path, err)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadDetailedFrom(f, path, rate)
}

// ReadDetailedFrom is ReadDetailed for an open reader; name is used in errors.
func ReadDetailedFrom(r io.Reader, name string, rate float64) ([]model.TimeEntry, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &model.InputError{Path: name, Err: fmt.Errorf("not a readable xlsx workbook: %w", err)}
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, &model.InputError{Path: name, Err: errors.New("workbook has no sheets")}
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, &model.InputError{Path: name, Err: fmt.Errorf("reading sheet %q: %w", sheets[0], err)}
	}

	headerIdx, cols, err := locateHeader(rows)
	if err != nil {
		return nil, &model.InputError{Path: name, Err: err}
	}

	var entries []model.TimeEntry
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		e, col, err := parseRow(row, cols, rate)
		if err != nil {
			return nil, &model.InputError{Path: name, Row: i + 1, Column: col, Err: err}
		}
		e.Row = i + 1
		entries = append(entries, e)
	}
	return entries, nil
}

// columnIndex maps a header name to its zero-based position.
type columnIndex map[string]int

func (c columnIndex) value(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (c columnIndex) has(name string) bool {
	_, ok := c[name]
	return ok
}

// locateHeader finds the first row within headerScanRows that names every
// required column.
func locateHeader(rows [][]string) (int, columnIndex, error) {
	limit := min(len(rows), headerScanRows)
	for i := 0; i < limit; i++ {
		cols := columnIndex{}
		for j, cell := range rows[i] {
			name := canonicalHeader(cell)
			if _, dup := cols[name]; name != "" && !dup {
				cols[name] = j
			}
		}
		if cols.has(ColProject) && cols.has(ColDuration) {
			for _, req := range requiredColumns {
				if !cols.has(req) {
					return 0, nil, fmt.Errorf("missing required column %q", req)
				}
			}
			return i, cols, nil
		}
	}
	return 0, nil, fmt.Errorf("no header row with %q and %q in the first %d rows", ColProject, ColDuration, headerScanRows)
}

var knownHeaders = []string{
	ColProject, ColClient, ColDescription, ColUser, ColTags,
	ColStartDateTime, ColStartDate, ColStartTime,
	ColEndDateTime, ColEndDate, ColEndTime,
	ColDuration, ColDurationDecimal,
}

func canonicalHeader(cell string) string {
	cell = strings.TrimSpace(cell)
	for _, h := range knownHeaders {
		if strings.EqualFold(cell, h) {
			return h
		}
	}
	return cell
}

func parseRow(row []string, cols columnIndex, rate float64) (model.TimeEntry, string, error) {
	seconds, err := timecalc.ParseDuration(cols.value(row, ColDuration))
	if err != nil {
		return model.TimeEntry{}, ColDuration, err
	}
	return model.TimeEntry{
		Project:         cols.value(row, ColProject),
		Client:          cols.value(row, ColClient),
		Description:     cols.value(row, ColDescription),
		User:            cols.value(row, ColUser),
		Tags:            splitTags(cols.value(row, ColTags)),
		Start:           timestamp(row, cols, ColStartDateTime, ColStartDate, ColStartTime),
		End:             timestamp(row, cols, ColEndDateTime, ColEndDate, ColEndTime),
		DurationSeconds: seconds,
		Rate:            rate,
	}, "", nil
}

// timestamp prefers a combined date/time column and otherwise joins the
// separate date and time columns.
func timestamp(row []string, cols columnIndex, combined, date, clock string) string {
	if cols.has(combined) {
		return cols.value(row, combined)
	}
	return strings.TrimSpace(cols.value(row, date) + " " + cols.value(row, clock))
}

func splitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
