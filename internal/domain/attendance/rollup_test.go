package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2025-08-04", "2025-08-04"}, // Monday
		{"2025-08-06", "2025-08-04"}, // Wednesday
		{"2025-08-09", "2025-08-04"}, // Saturday
		{"2025-08-10", "2025-08-04"}, // Sunday rolls back to the previous Monday
		{"2025-08-11", "2025-08-11"},
		{"2025-03-02", "2025-02-24"}, // crosses a month boundary
		{"2026-01-01", "2025-12-29"}, // crosses a year boundary
	}
	for _, c := range cases {
		d, err := time.Parse(DateLayout, c.date)
		require.NoError(t, err)
		assert.Equal(t, c.want, WeekStart(d).Format(DateLayout), c.date)
	}
}

func TestRollup_WeekScenario(t *testing.T) {
	records := []RollupInput{
		{Date: "2025-08-04", Status: StatusPresent, Hours: 8, IsLate: false},
		{Date: "2025-08-05", Status: StatusPresent, Hours: 6, IsLate: true},
	}

	result := Rollup(records)

	require.Len(t, result.Weekly, 1)
	assert.Equal(t, PeriodSummary{PeriodKey: "2025-08-04", Present: 1, Late: 0, Absent: 0, TotalHours: 14}, result.Weekly[0])
	require.Len(t, result.Monthly, 1)
	assert.Equal(t, "2025-08", result.Monthly[0].PeriodKey)
	assert.Equal(t, 0, result.Skipped)
}

func TestRollup_CountsByStatus(t *testing.T) {
	records := []RollupInput{
		{Date: "2025-08-04", Status: StatusPresent, Hours: 8},
		{Date: "2025-08-05", Status: StatusLate, Hours: 7.5, IsLate: true},
		{Date: "2025-08-06", Status: StatusAbsent},
		{Date: "2025-08-07", Status: StatusOnLeave},
		{Date: "2025-08-08", Status: StatusPresent, Hours: 8.25},
	}

	result := Rollup(records)

	require.Len(t, result.Weekly, 1)
	week := result.Weekly[0]
	assert.Equal(t, 2, week.Present)
	assert.Equal(t, 1, week.Late)
	assert.Equal(t, 1, week.Absent)
	assert.InDelta(t, 23.75, week.TotalHours, 1e-9)
}

func TestRollup_SkipsBadRecords(t *testing.T) {
	records := []RollupInput{
		{Date: "", Status: StatusPresent, Hours: 8},
		{Date: "2025-08-04", Status: "", Hours: 8},
		{Date: "2025-02-30", Status: StatusPresent, Hours: 8},
		{Date: "04/08/2025", Status: StatusPresent, Hours: 8},
		{Date: "2025-08-04", Status: StatusPresent, Hours: 4},
	}

	result := Rollup(records)

	assert.Equal(t, 4, result.Skipped)
	require.Len(t, result.Weekly, 1)
	assert.Equal(t, 1, result.Weekly[0].Present)
	assert.Equal(t, 0, result.Weekly[0].Absent, "skipped records must not count as absent")
	assert.InDelta(t, 4.0, result.Weekly[0].TotalHours, 1e-9)
}

func TestRollup_SortsPeriodsAscending(t *testing.T) {
	records := []RollupInput{
		{Date: "2025-10-01", Status: StatusPresent, Hours: 8},
		{Date: "2024-12-31", Status: StatusPresent, Hours: 8},
		{Date: "2025-01-02", Status: StatusAbsent},
		{Date: "2025-02-10", Status: StatusLate, Hours: 7},
	}

	result := Rollup(records)

	weekKeys := make([]string, 0, len(result.Weekly))
	for _, w := range result.Weekly {
		weekKeys = append(weekKeys, w.PeriodKey)
	}
	assert.Equal(t, []string{"2024-12-30", "2025-02-10", "2025-09-29"}, weekKeys)

	monthKeys := make([]string, 0, len(result.Monthly))
	for _, m := range result.Monthly {
		monthKeys = append(monthKeys, m.PeriodKey)
	}
	assert.Equal(t, []string{"2024-12", "2025-01", "2025-02", "2025-10"}, monthKeys)
}

func TestRollup_Properties(t *testing.T) {
	statuses := []Status{StatusPresent, StatusLate, StatusAbsent, StatusOnLeave, ""}
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	var records []RollupInput
	for i := 0; i < 200; i++ {
		d := start.AddDate(0, 0, i*3%170)
		date := d.Format(DateLayout)
		if i%37 == 0 {
			date = "not-a-date"
		}
		records = append(records, RollupInput{
			Date:   date,
			Status: statuses[i%len(statuses)],
			Hours:  float64(i%9) + 0.25,
			IsLate: i%4 == 0,
		})
	}

	first := Rollup(records)
	second := Rollup(records)
	assert.Equal(t, first, second, "recomputation must be idempotent")

	var wantHours float64
	perWeek := make(map[string]int)
	for _, r := range records {
		d, err := time.Parse(DateLayout, r.Date)
		if err != nil || r.Status == "" {
			continue
		}
		wantHours += r.Hours
		perWeek[WeekStart(d).Format(DateLayout)]++
	}

	var gotHours float64
	for _, w := range first.Weekly {
		gotHours += w.TotalHours
		assert.LessOrEqual(t, w.Present+w.Late+w.Absent, perWeek[w.PeriodKey], w.PeriodKey)
	}
	assert.InDelta(t, wantHours, gotHours, 0.01)

	var monthHours float64
	for _, m := range first.Monthly {
		monthHours += m.TotalHours
	}
	assert.InDelta(t, wantHours, monthHours, 0.01)
}

func TestRecord_RollupInput(t *testing.T) {
	rec := Record{
		Date:   time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC),
		Status: StatusLate,
		Hours:  7,
		IsLate: true,
	}
	assert.Equal(t, RollupInput{Date: "2025-08-05", Status: StatusLate, Hours: 7, IsLate: true}, rec.RollupInput())

	assert.Equal(t, "", Record{Status: StatusPresent}.RollupInput().Date)
}
