package model_test

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/Tiliavir/clockrep/internal/model"
)

func TestInputErrorIsMalformed(t *testing.T) {
	cause := strconv.ErrSyntax
	err := error(&model.InputError{Path: "in.xlsx", Row: 7, Column: "Duration (h)", Err: cause})

	if !errors.Is(err, model.ErrMalformedInput) {
		t.Error("expected InputError to match ErrMalformedInput")
	}
	if !errors.Is(err, cause) {
		t.Error("expected InputError to match its cause")
	}
	want := `malformed input in in.xlsx row 7 column "Duration (h)": invalid syntax`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestProjectTotalLabel(t *testing.T) {
	tests := []struct {
		p    model.ProjectTotal
		want string
	}{
		{model.ProjectTotal{Project: "ECM"}, "ECM"},
		{model.ProjectTotal{Project: "ECM", Client: "Acme"}, "ECM - Acme"},
	}
	for _, tt := range tests {
		if got := tt.p.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}

func TestDateRangeFormatting(t *testing.T) {
	r := model.DateRange{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	if got := r.Label(); got != "01/01/2025 - 31/01/2025" {
		t.Errorf("Label() = %q", got)
	}
	if got := r.FileSuffix(); got != "01_01_2025-31_01_2025" {
		t.Errorf("FileSuffix() = %q", got)
	}
	var empty model.DateRange
	if !empty.IsZero() || empty.Label() != "" || empty.FileSuffix() != "" {
		t.Error("expected zero DateRange to render empty")
	}
}

func TestTimeEntryAmount(t *testing.T) {
	e := model.TimeEntry{DurationSeconds: 5400, Rate: 50, Tags: []string{"dev", "ops"}}
	if e.Hours() != 1.5 {
		t.Errorf("Hours() = %v, want 1.5", e.Hours())
	}
	if e.Amount() != 75 {
		t.Errorf("Amount() = %v, want 75", e.Amount())
	}
	if e.FirstTag() != "dev" {
		t.Errorf("FirstTag() = %q, want %q", e.FirstTag(), "dev")
	}
	if (model.TimeEntry{}).FirstTag() != "" {
		t.Error("expected empty FirstTag for untagged entry")
	}
}
