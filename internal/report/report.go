// Package report groups detailed time entries into summary totals.
//
// All sums are integer seconds. Amounts are derived once from each total
// instead of adding up per-row amounts, so a group's amount is exactly
// (seconds / 3600) * rate.
package report

import (
	"github.com/Tiliavir/clockrep/internal/model"
	"github.com/Tiliavir/clockrep/internal/timecalc"
)

// Meta carries the run metadata that ends up on the report.
type Meta struct {
	UserName string
	Rate     float64
	Currency string
	Period   model.DateRange
}

type groupKey struct {
	project     string
	description string
}

// Group sums entries by (project, description). Groups are returned in the
// order their first entry appears in the input.
func Group(entries []model.TimeEntry, rate float64) []model.Aggregate {
	index := map[groupKey]int{}
	var out []model.Aggregate
	for _, e := range entries {
		k := groupKey{e.Project, e.Description}
		i, seen := index[k]
		if !seen {
			i = len(out)
			index[k] = i
			out = append(out, model.Aggregate{
				Project:     e.Project,
				Client:      e.Client,
				Description: e.Description,
			})
		}
		out[i].DurationSeconds += e.DurationSeconds
	}
	for i := range out {
		out[i].Amount = timecalc.Amount(out[i].DurationSeconds, rate)
	}
	return out
}

// GroupByProject rolls entries up per project, each with its description
// totals nested. Both levels keep first-seen order. The project client is
// taken from the first entry of the project.
func GroupByProject(entries []model.TimeEntry, rate float64) []model.ProjectTotal {
	index := map[string]int{}
	var projects []model.ProjectTotal
	var members [][]model.TimeEntry
	for _, e := range entries {
		i, seen := index[e.Project]
		if !seen {
			i = len(projects)
			index[e.Project] = i
			projects = append(projects, model.ProjectTotal{Project: e.Project, Client: e.Client})
			members = append(members, nil)
		}
		projects[i].DurationSeconds += e.DurationSeconds
		members[i] = append(members[i], e)
	}
	for i := range projects {
		projects[i].Amount = timecalc.Amount(projects[i].DurationSeconds, rate)
		projects[i].Descriptions = Group(members[i], rate)
	}
	return projects
}

// TotalSeconds sums the duration of every entry.
func TotalSeconds(entries []model.TimeEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.DurationSeconds
	}
	return total
}

// Build assembles the full report for entries.
func Build(entries []model.TimeEntry, meta Meta) model.Report {
	total := TotalSeconds(entries)
	return model.Report{
		UserName:     meta.UserName,
		Rate:         meta.Rate,
		Currency:     meta.Currency,
		Period:       meta.Period,
		Summary:      Group(entries, meta.Rate),
		Projects:     GroupByProject(entries, meta.Rate),
		Entries:      entries,
		TotalSeconds: total,
		TotalAmount:  timecalc.Amount(total, meta.Rate),
	}
}
