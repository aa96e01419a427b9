package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config is the root configuration for clockrep, stored in ~/.clockrep/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	// UserName prefixes generated report file names.
	UserName string `json:"user_name"`
	// Rate is the billable rate per hour.
	Rate float64 `json:"rate"`
	// Currency is shown in the summary amount header, e.g. "Amount (BRL)".
	Currency string `json:"currency"`
	// InputDir is searched for detailed exports when --detailed is not given. Empty = working directory.
	InputDir string `json:"input_dir"`
	// OutputDir receives generated reports. Empty = next to the detailed export.
	OutputDir string `json:"output_dir"`
	// OnConflict is one of "ask", "overwrite", "suffix", "abort".
	OnConflict string `json:"on_conflict"`
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `json:"log_level"`
}

const (
	// DefaultRate is the billable rate used when none is configured.
	DefaultRate = 50.0
	// DefaultCurrency is the currency code of the amount columns.
	DefaultCurrency = "BRL"
	// DefaultOnConflict asks before replacing an existing report.
	DefaultOnConflict = "ask"
	// DefaultLogLevel only reports warnings and errors.
	DefaultLogLevel = "warn"
)

// Environment variables that override the config file.
const (
	EnvUser     = "CLOCKREP_USER"
	EnvRate     = "CLOCKREP_RATE"
	EnvLogLevel = "CLOCKREP_LOG_LEVEL"
)

// Default returns a Config pre-filled with sensible defaults.
func Default() Config {
	return Config{
		Rate:       DefaultRate,
		Currency:   DefaultCurrency,
		OnConflict: DefaultOnConflict,
		LogLevel:   DefaultLogLevel,
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// clockrep configuration – ~/.clockrep/config.json
//
// All settings are optional. Command-line flags override these values,
// and CLOCKREP_USER, CLOCKREP_RATE and CLOCKREP_LOG_LEVEL override the file.
{
  // Name used as prefix of generated files: <user_name>_Time_Report_<period>.xlsx
  "user_name": "",

  // Billable rate per hour.
  "rate": 50,

  // Currency code shown in the "Amount (<currency>)" column.
  "currency": "BRL",

  // Folder searched for Clockify_Time_Report_Detailed_*.xlsx when --detailed
  // is not given. Leave empty to use the current directory.
  "input_dir": "",

  // Folder for generated reports. Leave empty to write next to the export.
  "output_dir": "",

  // What to do when the report file already exists:
  // • "ask"       – prompt (falls back to "abort" when not on a terminal)
  // • "overwrite" – replace the existing file
  // • "suffix"    – write <name>_1.xlsx, <name>_2.xlsx, ...
  // • "abort"     – stop with an error
  "on_conflict": "ask",

  // Log verbosity on stderr: "debug", "info", "warn" or "error".
  "log_level": "warn"
}
`

// FilePath returns the path to ~/.clockrep/config.json.
func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".clockrep", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.clockrep/config.json, creating it with annotated defaults on
// first run, and applies environment overrides.
func Load() (Config, error) {
	path, err := FilePath()
	if err != nil {
		return applyEnv(Default()), err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return applyEnv(Default()), nil
	}
	if err != nil {
		return applyEnv(Default()), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return applyEnv(Default()), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	def := Default()
	if cfg.Rate == 0 {
		cfg.Rate = def.Rate
	}
	if cfg.Currency == "" {
		cfg.Currency = def.Currency
	}
	if cfg.OnConflict == "" {
		cfg.OnConflict = def.OnConflict
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	cfg.UserName = envStr(EnvUser, cfg.UserName)
	cfg.Rate = envFloat(EnvRate, cfg.Rate)
	cfg.LogLevel = envStr(EnvLogLevel, cfg.LogLevel)
	return cfg
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return fallback
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
