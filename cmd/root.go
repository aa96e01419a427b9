package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clockrep/internal/config"
	"github.com/Tiliavir/clockrep/internal/model"
)

var (
	flagDetailed  string
	flagRate      float64
	flagUser      string
	flagCurrency  string
	flagLogLevel  string
	flagOutput    string
	flagOutputDir string
	flagConflict  string
)

var rootCmd = &cobra.Command{
	Use:   "clockrep",
	Short: "Convert Clockify detailed exports into formatted time reports",
	Long: `clockrep reads a Clockify detailed time report (.xlsx) and writes a report
workbook with a "Summary Report" sheet (totals per project and description)
and a "Detailed Report" sheet (one row per time entry).

Without --detailed the newest Clockify_Time_Report_Detailed_*.xlsx in the
configured input folder (default: current directory) is used.
Defaults are read from ~/.clockrep/config.json.

Examples:
  clockrep
  clockrep --rate 250 --user "Joao Silva"
  clockrep --detailed Clockify_Time_Report_Detailed_01_12_2025-26_12_2025.xlsx --output report.xlsx`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps I/O failures to 2 and everything else to 1.
func exitCode(err error) int {
	if errors.Is(err, model.ErrFileNotFound) || errors.Is(err, model.ErrPermissionDenied) {
		return 2
	}
	return 1
}

func init() {
	rootCmd.SilenceErrors = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDetailed, "detailed", "", "Path to the Clockify detailed export (auto-detected if not provided)")
	pf.Float64Var(&flagRate, "rate", config.DefaultRate, "Billable rate per hour")
	pf.StringVar(&flagUser, "user", "", "User name used in the output file name")
	pf.StringVar(&flagCurrency, "currency", config.DefaultCurrency, "Currency code shown in amount columns")
	pf.StringVar(&flagLogLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")

	f := rootCmd.Flags()
	f.StringVar(&flagOutput, "output", "", "Path for the output file (derived from user and period if not provided)")
	f.StringVar(&flagOutputDir, "output-dir", "", "Folder for the derived output file (default: next to the export)")
	f.StringVar(&flagConflict, "on-conflict", config.DefaultOnConflict, "When the output exists: ask, overwrite, suffix, abort")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
}
