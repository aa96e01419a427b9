package timecalc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidDuration is returned for duration text that is not H:MM:SS.
var ErrInvalidDuration = errors.New("invalid duration")

const secondsPerHour = 3600

// ParseDuration converts "H:MM:SS" into whole seconds. Hours may have any
// number of digits, including leading zeros; minutes and seconds are
// exactly two. Only integer arithmetic is used, so summing the results
// never accumulates rounding error.
func ParseDuration(s string) (int64, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w %q: expected H:MM:SS", ErrInvalidDuration, s)
	}
	if len(parts[1]) != 2 || len(parts[2]) != 2 {
		return 0, fmt.Errorf("%w %q: minutes and seconds need two digits", ErrInvalidDuration, s)
	}

	var vals [3]int64
	for i, p := range parts {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return 0, fmt.Errorf("%w %q: segment %q is not a number", ErrInvalidDuration, s, p)
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w %q: %v", ErrInvalidDuration, s, err)
		}
		vals[i] = n
	}

	h, m, sec := vals[0], vals[1], vals[2]
	if m > 59 || sec > 59 {
		return 0, fmt.Errorf("%w %q: minutes and seconds must be below 60", ErrInvalidDuration, s)
	}
	if h > (math.MaxInt64-3599)/secondsPerHour {
		return 0, fmt.Errorf("%w %q: hours out of range", ErrInvalidDuration, s)
	}
	return h*secondsPerHour + m*60 + sec, nil
}

// FormatDuration formats seconds as H:MM:SS with unpadded hours, e.g. "4:15:00".
// It is the inverse of ParseDuration for strings without leading zeros.
func FormatDuration(seconds int64) string {
	h := seconds / secondsPerHour
	m := (seconds % secondsPerHour) / 60
	s := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// FormatHuman formats seconds as a human-readable string like "1h 40m" or "45m" or "30s".
func FormatHuman(seconds int64) string {
	h := seconds / secondsPerHour
	m := (seconds % secondsPerHour) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// Hours converts seconds to decimal hours at full float precision.
func Hours(seconds int64) float64 {
	return float64(seconds) / secondsPerHour
}

// Amount is the billable amount for seconds at an hourly rate.
func Amount(seconds int64, rate float64) float64 {
	return Hours(seconds) * rate
}

// FormatHours renders seconds as decimal hours with two places, computed
// exactly from the integer seconds.
func FormatHours(seconds int64) string {
	return decimal.NewFromInt(seconds).
		Div(decimal.NewFromInt(secondsPerHour)).
		StringFixed(2)
}

// FormatAmount renders an amount with two places.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
