package model

import "github.com/Tiliavir/clockrep/internal/timecalc"

// TimeEntry is one row of a Clockify detailed export.
type TimeEntry struct {
	Row             int      `json:"row"`
	Project         string   `json:"project"`
	Client          string   `json:"client"`
	Description     string   `json:"description"`
	User            string   `json:"user"`
	Tags            []string `json:"tags"`
	Start           string   `json:"start"`
	End             string   `json:"end"`
	DurationSeconds int64    `json:"duration_seconds"`
	Rate            float64  `json:"rate"`
}

// Hours returns the entry duration in decimal hours.
func (e TimeEntry) Hours() float64 {
	return timecalc.Hours(e.DurationSeconds)
}

// Amount returns the billable amount of the entry.
func (e TimeEntry) Amount() float64 {
	return timecalc.Amount(e.DurationSeconds, e.Rate)
}

// FirstTag returns the first tag or "" when the entry is untagged.
func (e TimeEntry) FirstTag() string {
	if len(e.Tags) == 0 {
		return ""
	}
	return e.Tags[0]
}
