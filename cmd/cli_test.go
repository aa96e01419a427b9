package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Tiliavir/clockrep/internal/model"
)

// resetCLI puts every flag back to its default so runs do not leak into each other.
func resetCLI(t *testing.T) {
	t.Helper()
	reset := func() {
		for _, name := range []string{"detailed", "rate", "user", "currency", "log-level", "output", "output-dir", "on-conflict"} {
			fl := rootCmd.Flags().Lookup(name)
			if fl == nil {
				fl = rootCmd.PersistentFlags().Lookup(name)
			}
			if fl == nil {
				continue
			}
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		}
		if fl := summaryCmd.Flags().Lookup("format"); fl != nil {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		}
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	}
	reset()
	t.Cleanup(reset)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", os.Getenv("HOME"))
	t.Setenv("CLOCKREP_USER", "")
	t.Setenv("CLOCKREP_RATE", "")
	t.Setenv("CLOCKREP_LOG_LEVEL", "")
}

func writeDetailedExport(t *testing.T, dir string) string {
	t.Helper()
	rows := [][]any{
		{"Project", "Client", "Description", "User", "Tags", "Start Date", "Start Time", "End Date", "End Time", "Duration (h)"},
		{"Acme", "Acme Corp", "Design", "Ana", "ui", "01/12/2025", "09:00:00", "01/12/2025", "10:30:00", "1:30:00"},
		{"Acme", "Acme Corp", "Design", "Ana", "", "02/12/2025", "09:00:00", "02/12/2025", "09:45:00", "0:45:00"},
		{"Beta", "", "Review", "Ana", "", "03/12/2025", "14:00:00", "03/12/2025", "16:00:00", "2:00:00"},
	}
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
	path := filepath.Join(dir, "Clockify_Time_Report_Detailed_01_12_2025-26_12_2025.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConvertCommandSuffixesExistingOutput(t *testing.T) {
	resetCLI(t)
	detailed := writeDetailedExport(t, t.TempDir())
	outDir := t.TempDir()
	args := []string{"--detailed", detailed, "--user", "Ana Souza", "--output-dir", outDir, "--on-conflict", "suffix"}

	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := filepath.Join(outDir, "Ana_Souza_Time_Report_01_12_2025-26_12_2025.xlsx")
	if !strings.Contains(out, first) {
		t.Errorf("output should name %s:\n%s", first, out)
	}

	if _, err := runCLI(t, args...); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := filepath.Join(outDir, "Ana_Souza_Time_Report_01_12_2025-26_12_2025_1.xlsx")
	if _, err := os.Stat(second); err != nil {
		t.Fatalf("expected suffixed file: %v", err)
	}

	f, err := excelize.OpenFile(second)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Summary Report" || sheets[1] != "Detailed Report" {
		t.Errorf("sheets = %v", sheets)
	}
}

func TestConvertCommandExplicitOutputAbort(t *testing.T) {
	resetCLI(t)
	detailed := writeDetailedExport(t, t.TempDir())
	target := filepath.Join(t.TempDir(), "report.xlsx")
	if err := os.WriteFile(target, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, "--detailed", detailed, "--output", target, "--on-conflict", "abort")
	if !errors.Is(err, model.ErrNameCollision) {
		t.Fatalf("expected ErrNameCollision, got %v", err)
	}
	if exitCode(err) != 1 {
		t.Errorf("exitCode = %d, want 1", exitCode(err))
	}
	data, _ := os.ReadFile(target)
	if string(data) != "keep" {
		t.Error("existing file was modified")
	}

	if _, err := runCLI(t, "--detailed", detailed, "--output", target, "--on-conflict", "overwrite"); err != nil {
		t.Fatalf("overwrite run: %v", err)
	}
	if _, err := excelize.OpenFile(target); err != nil {
		t.Errorf("overwritten file is not a workbook: %v", err)
	}
}

func TestConvertCommandMissingInput(t *testing.T) {
	resetCLI(t)
	_, err := runCLI(t, "--detailed", filepath.Join(t.TempDir(), "missing.xlsx"))
	if !errors.Is(err, model.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
	if exitCode(err) != 2 {
		t.Errorf("exitCode = %d, want 2", exitCode(err))
	}
}

func TestSummaryCommandCSV(t *testing.T) {
	resetCLI(t)
	detailed := writeDetailedExport(t, t.TempDir())

	out, err := runCLI(t, "summary", "--detailed", detailed, "--rate", "50", "--format", "csv")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{
		"Acme,Acme Corp,Design,2:15:00,8100,2.25,112.50",
		"Beta,,Review,2:00:00,7200,2.00,100.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
