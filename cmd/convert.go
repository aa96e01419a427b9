package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/clockrep/internal/config"
	"github.com/Tiliavir/clockrep/internal/convert"
	"github.com/Tiliavir/clockrep/internal/storage"
	"github.com/Tiliavir/clockrep/internal/timecalc"
	"github.com/Tiliavir/clockrep/internal/tui"
)

func runConvert(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg := loadSettings(cmd)
	setupLogging(cfg.LogLevel)

	detailed, err := resolveDetailed(cfg)
	if err != nil {
		return err
	}

	opts := convert.Options{
		DetailedPath: detailed,
		OutputPath:   flagOutput,
		OutputDir:    cfg.OutputDir,
		UserName:     cfg.UserName,
		Rate:         cfg.Rate,
		Currency:     cfg.Currency,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	target, exists, err := convert.Target(opts)
	if err != nil {
		return err
	}
	policy, proceed, err := chooseConflictPolicy(cfg.OnConflict, target, exists, interactive(),
		func(path string) (storage.ConflictPolicy, error) {
			return tui.AskConflict(path, os.Stdin, os.Stdout)
		})
	if err != nil {
		return err
	}
	if !proceed {
		fmt.Fprintln(cmd.OutOrStdout(), "Conversion cancelled.")
		return nil
	}
	opts.OnConflict = policy

	res, err := convert.Run(opts, slog.Default())
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), detailed, res)
	return nil
}

// chooseConflictPolicy turns the configured on-conflict mode into a policy.
// "ask" only prompts when the target exists and a terminal is attached;
// otherwise it behaves like "abort". proceed is false when the user
// chose to abort at the prompt.
func chooseConflictPolicy(mode, target string, exists, canPrompt bool,
	ask func(string) (storage.ConflictPolicy, error)) (policy storage.ConflictPolicy, proceed bool, err error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode != config.DefaultOnConflict {
		policy, err = storage.ParseConflictPolicy(mode)
		if err != nil {
			return storage.Abort, false, fmt.Errorf("invalid --on-conflict: %w", err)
		}
		return policy, true, nil
	}
	if !exists {
		return storage.Abort, true, nil
	}
	if !canPrompt {
		slog.Warn("output exists and no terminal to ask; aborting", "path", target)
		return storage.Abort, true, nil
	}
	policy, err = ask(target)
	if err != nil {
		return storage.Abort, false, err
	}
	return policy, policy != storage.Abort, nil
}

func printResult(w io.Writer, detailed string, res convert.Result) {
	rep := res.Report
	summaryRows := len(rep.Projects)
	for _, p := range rep.Projects {
		summaryRows += len(p.Descriptions)
	}

	saved := "Report saved"
	if res.Replaced {
		saved = "Report saved (replaced existing file)"
	}
	fmt.Fprintln(w, tui.SuccessStyle.Render("✓ "+saved))
	fmt.Fprintln(w, tui.Field("Input", detailed))
	fmt.Fprintln(w, tui.Field("Output", res.OutputPath))
	if !rep.Period.IsZero() {
		fmt.Fprintln(w, tui.Field("Period", rep.Period.Label()))
	}
	fmt.Fprintln(w, tui.Field("Summary rows", strconv.Itoa(summaryRows)))
	fmt.Fprintln(w, tui.Field("Detailed rows", strconv.Itoa(len(rep.Entries))))
	fmt.Fprintln(w, tui.Field("Total time", fmt.Sprintf("%s (%s)",
		timecalc.FormatDuration(rep.TotalSeconds), timecalc.FormatHuman(rep.TotalSeconds))))
	fmt.Fprintln(w, tui.Field("Total amount", fmt.Sprintf("%s %s @ %s/h",
		rep.Currency, timecalc.FormatAmount(rep.TotalAmount), timecalc.FormatAmount(rep.Rate))))
}
