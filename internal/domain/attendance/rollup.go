package attendance

import (
	"math"
	"sort"
	"strings"
	"time"
)

// RollupInput is the minimal view of a record the rollup needs.
type RollupInput struct {
	Date   string
	Status Status
	Hours  float64
	IsLate bool
}

// RollupResult holds weekly and monthly summaries, ascending by period.
type RollupResult struct {
	Weekly  []PeriodSummary
	Monthly []PeriodSummary
	Skipped int
}

// WeekStart returns the Monday of the week containing d. Sunday belongs to
// the week that started six days earlier.
func WeekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	y, m, day := d.Date()
	return time.Date(y, m, day-offset, 0, 0, 0, 0, time.UTC)
}

// MonthKey formats d as YYYY-MM.
func MonthKey(d time.Time) string {
	return d.Format("2006-01")
}

// Rollup aggregates records into weekly (Monday-start) and monthly summaries.
// It is pure: the same input always yields the same output, so summaries can
// be regenerated from scratch at any time.
//
// Tallies follow the status label: Late counts status Late, Absent counts
// status Absent and Present counts status Present without the late flag.
// On Leave and unrecognised statuses contribute hours only. Records with a
// missing or unparseable date, or a missing status, are skipped entirely and
// counted in Skipped.
func Rollup(records []RollupInput) RollupResult {
	weekly := make(map[time.Time]*PeriodSummary)
	monthly := make(map[time.Time]*PeriodSummary)
	var result RollupResult

	for _, rec := range records {
		if strings.TrimSpace(rec.Date) == "" || strings.TrimSpace(string(rec.Status)) == "" {
			result.Skipped++
			continue
		}
		date, err := time.Parse(DateLayout, strings.TrimSpace(rec.Date))
		if err != nil {
			result.Skipped++
			continue
		}

		ws := WeekStart(date)
		week, ok := weekly[ws]
		if !ok {
			week = &PeriodSummary{PeriodKey: ws.Format(DateLayout)}
			weekly[ws] = week
		}

		ms := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
		month, ok := monthly[ms]
		if !ok {
			month = &PeriodSummary{PeriodKey: MonthKey(ms)}
			monthly[ms] = month
		}

		tally(week, rec)
		tally(month, rec)
	}

	result.Weekly = sortedSummaries(weekly)
	result.Monthly = sortedSummaries(monthly)
	return result
}

func tally(s *PeriodSummary, rec RollupInput) {
	switch rec.Status {
	case StatusPresent:
		if !rec.IsLate {
			s.Present++
		}
	case StatusLate:
		s.Late++
	case StatusAbsent:
		s.Absent++
	}
	s.TotalHours += rec.Hours
}

func sortedSummaries(groups map[time.Time]*PeriodSummary) []PeriodSummary {
	keys := make([]time.Time, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	out := make([]PeriodSummary, 0, len(keys))
	for _, k := range keys {
		s := *groups[k]
		s.TotalHours = math.Round(s.TotalHours*100) / 100
		out = append(out, s)
	}
	return out
}
