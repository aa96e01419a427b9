package model

import "time"

// Aggregate is the total for one (project, description) pair.
type Aggregate struct {
	Project         string  `json:"project"`
	Client          string  `json:"client"`
	Description     string  `json:"description"`
	DurationSeconds int64   `json:"duration_seconds"`
	Amount          float64 `json:"amount"`
}

// ProjectTotal rolls up every description of a single project.
type ProjectTotal struct {
	Project         string      `json:"project"`
	Client          string      `json:"client"`
	DurationSeconds int64       `json:"duration_seconds"`
	Amount          float64     `json:"amount"`
	Descriptions    []Aggregate `json:"descriptions"`
}

// Label is the project name shown in the summary sheet.
func (p ProjectTotal) Label() string {
	if p.Client == "" {
		return p.Project
	}
	return p.Project + " - " + p.Client
}

// DateRange is the reporting period taken from the export filename.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether no period is known.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() || r.End.IsZero()
}

// Label renders the period as "01/01/2025 - 31/01/2025".
func (r DateRange) Label() string {
	if r.IsZero() {
		return ""
	}
	return r.Start.Format("02/01/2006") + " - " + r.End.Format("02/01/2006")
}

// FileSuffix renders the period as "01_01_2025-31_01_2025".
func (r DateRange) FileSuffix() string {
	if r.IsZero() {
		return ""
	}
	return r.Start.Format("02_01_2006") + "-" + r.End.Format("02_01_2006")
}

// Report is everything the renderer needs for one conversion run.
type Report struct {
	UserName     string         `json:"user_name"`
	Rate         float64        `json:"rate"`
	Currency     string         `json:"currency"`
	Period       DateRange      `json:"period"`
	Summary      []Aggregate    `json:"summary"`
	Projects     []ProjectTotal `json:"projects"`
	Entries      []TimeEntry    `json:"entries"`
	TotalSeconds int64          `json:"total_seconds"`
	TotalAmount  float64        `json:"total_amount"`
}
