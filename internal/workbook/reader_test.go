package workbook_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Tiliavir/clockrep/internal/model"
	"github.com/Tiliavir/clockrep/internal/workbook"
)

var clockifyHeader = []any{
	"Project", "Client", "Description", "Task", "User", "Group", "Email", "Tags", "Billable",
	"Start Date", "Start Time", "End Date", "End Time", "Duration (h)", "Duration (decimal)",
}

func clockifyRow(project, client, description, tags, duration string) []any {
	return []any{
		project, client, description, "", "Joao Silva", "", "joao@example.com", tags, "Yes",
		"01/01/2025", "09:00:00", "01/01/2025", "10:30:00", duration, "1.50",
	}
}

// writeExport saves rows into the first sheet of a new workbook.
func writeExport(t *testing.T, name string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &rows[i]); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestReadDetailed(t *testing.T) {
	path := writeExport(t, "Clockify_Time_Report_Detailed_01_01_2025-31_01_2025.xlsx", [][]any{
		clockifyHeader,
		clockifyRow("ECM", "Acme", "Dev", "backend, urgent", "1:30:00"),
		clockifyRow("Ops", "", "On-call", "", "00:45:00"),
	})

	entries, err := workbook.ReadDetailed(path, 50)
	if err != nil {
		t.Fatalf("ReadDetailed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}

	e := entries[0]
	if e.Row != 2 {
		t.Errorf("Row = %d, want 2", e.Row)
	}
	if e.Project != "ECM" || e.Client != "Acme" || e.Description != "Dev" || e.User != "Joao Silva" {
		t.Errorf("unexpected entry fields: %+v", e)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "backend" || e.Tags[1] != "urgent" {
		t.Errorf("Tags = %q, want [backend urgent]", e.Tags)
	}
	if e.Start != "01/01/2025 09:00:00" || e.End != "01/01/2025 10:30:00" {
		t.Errorf("Start/End = %q/%q", e.Start, e.End)
	}
	if e.DurationSeconds != 5400 {
		t.Errorf("DurationSeconds = %d, want 5400", e.DurationSeconds)
	}
	if e.Rate != 50 {
		t.Errorf("Rate = %v, want 50", e.Rate)
	}

	if entries[1].DurationSeconds != 2700 {
		t.Errorf("second DurationSeconds = %d, want 2700", entries[1].DurationSeconds)
	}
	if len(entries[1].Tags) != 0 {
		t.Errorf("second Tags = %q, want none", entries[1].Tags)
	}
}

func TestReadDetailedCombinedTimestampsAndOffsetHeader(t *testing.T) {
	path := writeExport(t, "export.xlsx", [][]any{
		{"Detailed report"},
		{},
		{"Project", "Description", "Start Date/Time", "End Date/Time", "Duration (h)"},
		{"P", "d", "2025-01-02 08:00", "2025-01-02 09:00", "1:00:00"},
		{},
		{"P", "d", "2025-01-03 08:00", "2025-01-03 08:30", "0:30:00"},
	})

	entries, err := workbook.ReadDetailed(path, 10)
	if err != nil {
		t.Fatalf("ReadDetailed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2 (blank row skipped)", len(entries))
	}
	if entries[0].Start != "2025-01-02 08:00" {
		t.Errorf("Start = %q", entries[0].Start)
	}
	if entries[1].Row != 6 {
		t.Errorf("Row = %d, want 6", entries[1].Row)
	}
}

func TestReadDetailedMalformedDuration(t *testing.T) {
	path := writeExport(t, "export.xlsx", [][]any{
		clockifyHeader,
		clockifyRow("ECM", "Acme", "Dev", "", "1:30:00"),
		clockifyRow("ECM", "Acme", "Dev", "", "1:60"),
	})

	entries, err := workbook.ReadDetailed(path, 50)
	if !errors.Is(err, model.ErrMalformedInput) {
		t.Fatalf("error = %v, want ErrMalformedInput", err)
	}
	if entries != nil {
		t.Errorf("expected no entries on failure, got %d", len(entries))
	}
	var inErr *model.InputError
	if !errors.As(err, &inErr) {
		t.Fatalf("error %T is not an InputError", err)
	}
	if inErr.Row != 3 || inErr.Column != workbook.ColDuration {
		t.Errorf("InputError at row %d column %q, want row 3 column %q", inErr.Row, inErr.Column, workbook.ColDuration)
	}
}

func TestReadDetailedMissingColumn(t *testing.T) {
	path := writeExport(t, "export.xlsx", [][]any{
		{"Project", "Client", "Duration (h)"},
		{"ECM", "Acme", "1:00:00"},
	})
	_, err := workbook.ReadDetailed(path, 50)
	if !errors.Is(err, model.ErrMalformedInput) {
		t.Errorf("error = %v, want ErrMalformedInput", err)
	}
}

func TestReadDetailedNoHeader(t *testing.T) {
	path := writeExport(t, "export.xlsx", [][]any{
		{"Name", "Hours"},
		{"ECM", "1"},
	})
	_, err := workbook.ReadDetailed(path, 50)
	if !errors.Is(err, model.ErrMalformedInput) {
		t.Errorf("error = %v, want ErrMalformedInput", err)
	}
}

func TestReadDetailedFileNotFound(t *testing.T) {
	_, err := workbook.ReadDetailed(filepath.Join(t.TempDir(), "missing.xlsx"), 50)
	if !errors.Is(err, model.ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
}

func TestReadDetailedNotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := os.WriteFile(path, []byte("Project,Duration (h)\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := workbook.ReadDetailed(path, 50)
	if !errors.Is(err, model.ErrMalformedInput) {
		t.Errorf("error = %v, want ErrMalformedInput", err)
	}
}
