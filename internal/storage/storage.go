package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/clockrep/internal/model"
)

// DetailedPattern is the file name pattern of a Clockify detailed export.
const DetailedPattern = "Clockify_Time_Report_Detailed_*.xlsx"

// ConflictPolicy decides what happens when the output file already exists.
type ConflictPolicy int

const (
	// Abort refuses to touch an existing file.
	Abort ConflictPolicy = iota
	// Overwrite replaces the existing file.
	Overwrite
	// AutoSuffix writes to the first free name_1, name_2, ... instead.
	AutoSuffix
)

func (p ConflictPolicy) String() string {
	switch p {
	case Overwrite:
		return "overwrite"
	case AutoSuffix:
		return "suffix"
	default:
		return "abort"
	}
}

// ParseConflictPolicy parses "overwrite", "suffix" (or "auto-suffix") and "abort".
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overwrite":
		return Overwrite, nil
	case "suffix", "auto-suffix", "autosuffix":
		return AutoSuffix, nil
	case "abort":
		return Abort, nil
	}
	return Abort, fmt.Errorf("unknown conflict policy %q (want overwrite, suffix or abort)", s)
}

var dateRangePattern = regexp.MustCompile(`(\d{2}_\d{2}_\d{4})-(\d{2}_\d{2}_\d{4})`)

// ParseDateRange extracts the DD_MM_YYYY-DD_MM_YYYY period from an export
// file name. ok is false when the name carries no valid period.
func ParseDateRange(filename string) (r model.DateRange, ok bool) {
	m := dateRangePattern.FindStringSubmatch(filepath.Base(filename))
	if m == nil {
		return model.DateRange{}, false
	}
	start, err := time.Parse("02_01_2006", m[1])
	if err != nil {
		return model.DateRange{}, false
	}
	end, err := time.Parse("02_01_2006", m[2])
	if err != nil {
		return model.DateRange{}, false
	}
	return model.DateRange{Start: start, End: end}, true
}

// OutputBaseName builds "<User>_Time_Report_<DD_MM_YYYY>-<DD_MM_YYYY>".
// Spaces in the user name become underscores; empty parts are left out.
func OutputBaseName(user string, period model.DateRange) string {
	parts := []string{}
	if u := strings.Join(strings.Fields(user), "_"); u != "" {
		parts = append(parts, u)
	}
	parts = append(parts, "Time_Report")
	if s := period.FileSuffix(); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "_")
}

// Exists reports whether path exists.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("storage error checking %s: %w", path, err)
}

// ResolveOutputPath applies policy to path. It returns the path to write and
// whether that path already holds a file that will be replaced.
func ResolveOutputPath(path string, policy ConflictPolicy) (string, bool, error) {
	exists, err := Exists(path)
	if err != nil {
		return "", false, err
	}
	if !exists {
		return path, false, nil
	}

	switch policy {
	case Overwrite:
		return path, true, nil
	case AutoSuffix:
		ext := filepath.Ext(path)
		stem := strings.TrimSuffix(path, ext)
		for n := 1; ; n++ {
			candidate := stem + "_" + strconv.Itoa(n) + ext
			taken, err := Exists(candidate)
			if err != nil {
				return "", false, err
			}
			if !taken {
				return candidate, false, nil
			}
		}
	default:
		return "", false, fmt.Errorf("%w: %s", model.ErrNameCollision, path)
	}
}

// WriteFile atomically writes path: write streams into a temp file next to
// path which is then renamed over it. Permission failures, e.g. the target
// being open in a spreadsheet application, wrap model.ErrPermissionDenied.
func WriteFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return wrapWriteErr(path, "creating directories", err)
		}
	}

	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return wrapWriteErr(path, "creating temp file", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return wrapWriteErr(path, "closing temp file", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return wrapWriteErr(path, "replacing file", err)
	}
	return nil
}

func wrapWriteErr(path, step string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s (%s; is the file open in another application?): %w",
			model.ErrPermissionDenied, path, step, err)
	}
	return fmt.Errorf("storage error %s for %s: %w", step, path, err)
}

// FindDetailedFile returns the most recently modified detailed export in dir.
func FindDetailedFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, DetailedPattern))
	if err != nil {
		return "", fmt.Errorf("storage error searching %s: %w", dir, err)
	}

	var newest string
	var newestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest, newestMod = m, info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("%w: no file matching %s in %s", model.ErrFileNotFound, DetailedPattern, dir)
	}
	return newest, nil
}
