package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clockrep/internal/model"
	"github.com/Tiliavir/clockrep/internal/report"
	"github.com/Tiliavir/clockrep/internal/storage"
	"github.com/Tiliavir/clockrep/internal/timecalc"
	"github.com/Tiliavir/clockrep/internal/workbook"
)

var summaryFormat string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the aggregated summary without writing a workbook",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "md", "Output format: md, csv, json")
}

// loadReport reads the detailed export and aggregates it.
func loadReport(cmd *cobra.Command) (model.Report, error) {
	cmd.SilenceUsage = true

	cfg := loadSettings(cmd)
	setupLogging(cfg.LogLevel)

	detailed, err := resolveDetailed(cfg)
	if err != nil {
		return model.Report{}, err
	}
	if cfg.Rate <= 0 {
		return model.Report{}, fmt.Errorf("rate must be positive, got %v", cfg.Rate)
	}
	entries, err := workbook.ReadDetailed(detailed, cfg.Rate)
	if err != nil {
		return model.Report{}, err
	}
	period, _ := storage.ParseDateRange(detailed)
	return report.Build(entries, report.Meta{
		UserName: cfg.UserName,
		Rate:     cfg.Rate,
		Currency: cfg.Currency,
		Period:   period,
	}), nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	rep, err := loadReport(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch summaryFormat {
	case "csv":
		printSummaryCSV(w, rep)
	case "json":
		return printSummaryJSON(w, rep)
	case "md":
		printSummaryMD(w, rep)
	default:
		return fmt.Errorf("unknown format %q (want md, csv or json)", summaryFormat)
	}
	return nil
}

const summaryRule = "------------------------------------------------------------------------"

func printSummaryMD(w io.Writer, rep model.Report) {
	title := "Summary"
	if !rep.Period.IsZero() {
		title += " " + rep.Period.Label()
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, summaryRule)
	fmt.Fprintf(w, "%-40s%10s%10s%12s\n", "Project / Description", "Time (h)", "Decimal", "Amount")
	fmt.Fprintln(w, summaryRule)
	for _, p := range rep.Projects {
		fmt.Fprintf(w, "%-40s%10s%10s%12s\n", p.Label(),
			timecalc.FormatDuration(p.DurationSeconds),
			timecalc.FormatHours(p.DurationSeconds),
			timecalc.FormatAmount(p.Amount))
		for _, d := range p.Descriptions {
			fmt.Fprintf(w, "%-40s%10s%10s%12s\n", "  "+d.Description,
				timecalc.FormatDuration(d.DurationSeconds),
				timecalc.FormatHours(d.DurationSeconds),
				timecalc.FormatAmount(d.Amount))
		}
	}
	fmt.Fprintln(w, summaryRule)
	fmt.Fprintf(w, "%-40s%10s%10s%12s\n", "Total",
		timecalc.FormatDuration(rep.TotalSeconds),
		timecalc.FormatHours(rep.TotalSeconds),
		timecalc.FormatAmount(rep.TotalAmount))
}

func printSummaryCSV(w io.Writer, rep model.Report) {
	fmt.Fprintln(w, "project,client,description,duration,duration_seconds,duration_decimal,amount")
	for _, a := range rep.Summary {
		fmt.Fprintf(w, "%s,%s,%s,%s,%d,%s,%s\n",
			csvEscape(a.Project),
			csvEscape(a.Client),
			csvEscape(a.Description),
			timecalc.FormatDuration(a.DurationSeconds),
			a.DurationSeconds,
			timecalc.FormatHours(a.DurationSeconds),
			timecalc.FormatAmount(a.Amount),
		)
	}
}

type summaryJSON struct {
	Period       string               `json:"period,omitempty"`
	Rate         float64              `json:"rate"`
	Currency     string               `json:"currency"`
	Projects     []model.ProjectTotal `json:"projects"`
	TotalSeconds int64                `json:"total_seconds"`
	Total        string               `json:"total"`
	TotalAmount  float64              `json:"total_amount"`
}

func printSummaryJSON(w io.Writer, rep model.Report) error {
	projects := rep.Projects
	if projects == nil {
		projects = []model.ProjectTotal{}
	}
	data, err := json.MarshalIndent(summaryJSON{
		Period:       rep.Period.Label(),
		Rate:         rep.Rate,
		Currency:     rep.Currency,
		Projects:     projects,
		TotalSeconds: rep.TotalSeconds,
		Total:        timecalc.FormatDuration(rep.TotalSeconds),
		TotalAmount:  rep.TotalAmount,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
