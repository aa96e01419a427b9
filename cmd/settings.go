package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/clockrep/internal/config"
	"github.com/Tiliavir/clockrep/internal/storage"
)

// loadSettings merges the config file, environment and explicitly set flags.
func loadSettings(cmd *cobra.Command) config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return applyFlags(cmd, cfg)
}

func applyFlags(cmd *cobra.Command, cfg config.Config) config.Config {
	flags := cmd.Flags()
	if flags.Changed("rate") {
		cfg.Rate = flagRate
	}
	if flags.Changed("user") {
		cfg.UserName = flagUser
	}
	if flags.Changed("currency") {
		cfg.Currency = flagCurrency
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = flagOutputDir
	}
	if flags.Changed("on-conflict") {
		cfg.OnConflict = flagConflict
	}
	return cfg
}

// resolveDetailed returns --detailed or the newest export in the input folder.
func resolveDetailed(cfg config.Config) (string, error) {
	if flagDetailed != "" {
		return flagDetailed, nil
	}
	dir := cfg.InputDir
	if dir == "" {
		dir = "."
	}
	path, err := storage.FindDetailedFile(dir)
	if err != nil {
		return "", fmt.Errorf("%w (use --detailed to pass the export explicitly)", err)
	}
	slog.Info("auto-detected detailed export", "path", path)
	return path, nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

// interactive reports whether both stdin and stdout are terminals.
func interactive() bool {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}
