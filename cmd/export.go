package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clockrep/internal/model"
	"github.com/Tiliavir/clockrep/internal/timecalc"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the normalized detailed entries to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
}

func runExport(cmd *cobra.Command, args []string) error {
	rep, err := loadReport(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch exportFormat {
	case "json":
		entries := rep.Entries
		if entries == nil {
			entries = []model.TimeEntry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "md":
		printList(w, rep.Entries)
	case "csv":
		printCSV(w, rep.Entries)
	default:
		return fmt.Errorf("unknown format %q (want csv, json or md)", exportFormat)
	}
	return nil
}

func printCSV(w io.Writer, entries []model.TimeEntry) {
	fmt.Fprintln(w, "row,project,client,description,user,tags,start,end,duration,duration_seconds,duration_decimal,rate,amount")
	for _, e := range entries {
		fmt.Fprintf(w, "%d,%s,%s,%s,%s,%s,%s,%s,%s,%d,%s,%s,%s\n",
			e.Row,
			csvEscape(e.Project),
			csvEscape(e.Client),
			csvEscape(e.Description),
			csvEscape(e.User),
			csvEscape(strings.Join(e.Tags, ", ")),
			csvEscape(e.Start),
			csvEscape(e.End),
			timecalc.FormatDuration(e.DurationSeconds),
			e.DurationSeconds,
			timecalc.FormatHours(e.DurationSeconds),
			strconv.FormatFloat(e.Rate, 'f', -1, 64),
			timecalc.FormatAmount(e.Amount()),
		)
	}
}

// printList groups entries by project and prints them.
func printList(w io.Writer, entries []model.TimeEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	var currentProject string
	for i, e := range entries {
		if i == 0 || e.Project != currentProject {
			fmt.Fprintln(w, e.Project)
			currentProject = e.Project
		}

		when := e.Start
		if e.End != "" {
			when += " – " + e.End
		}
		if when != "" {
			when = "  " + when
		}
		fmt.Fprintf(w, "  %-8s %s%s\n", timecalc.FormatDuration(e.DurationSeconds), e.Description, when)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
