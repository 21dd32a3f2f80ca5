package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func augustPeriod() Period {
	return Period{Start: day("2025-07-23"), End: day("2025-08-23")}
}

// records builds n records starting on from, one per day.
func records(from string, n int, status attendance.Status, late bool) []DayRecord {
	start := day(from)
	out := make([]DayRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, DayRecord{Date: start.AddDate(0, 0, i), Status: status, IsLate: late})
	}
	return out
}

func TestCalculate_Scenario(t *testing.T) {
	in := Input{
		Period:    augustPeriod(),
		RawSalary: "22000",
		Records: append(
			records("2025-07-24", 18, attendance.StatusPresent, false),
			records("2025-08-15", 2, attendance.StatusLate, true)...,
		),
	}

	res, err := Calculate(in, DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, 18, res.FullDays)
	assert.Equal(t, 2, res.LateDays)
	assert.Equal(t, 0, res.LeaveDays)
	assert.Equal(t, 2, res.Absents)
	assert.Equal(t, "2400.00", res.LOPAmount.StringFixed(2))
	assert.Equal(t, "19600.00", res.FinalPay.StringFixed(2))
	assert.False(t, res.SalaryWarning)
}

func TestCalculate_LateIsFlagDriven(t *testing.T) {
	in := Input{
		Period:    augustPeriod(),
		RawSalary: "22000",
		Records: []DayRecord{
			{Date: day("2025-08-04"), Status: attendance.StatusPresent, IsLate: true},
			{Date: day("2025-08-05"), Status: attendance.StatusLate, IsLate: true},
			{Date: day("2025-08-06"), Status: attendance.StatusLate, IsLate: false},
			{Date: day("2025-08-07"), Status: attendance.StatusAbsent},
		},
	}

	res, err := Calculate(in, DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, 0, res.FullDays)
	assert.Equal(t, 2, res.LateDays)
}

func TestCalculate_FiltersHalfOpenPeriod(t *testing.T) {
	in := Input{
		Period:    augustPeriod(),
		RawSalary: "22000",
		Records: []DayRecord{
			{Date: day("2025-07-22"), Status: attendance.StatusPresent},
			{Date: day("2025-07-23"), Status: attendance.StatusPresent},
			{Date: day("2025-08-22"), Status: attendance.StatusPresent},
			{Date: day("2025-08-23"), Status: attendance.StatusPresent},
		},
	}

	res, err := Calculate(in, DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, 2, res.FullDays)
}

func TestCalculate_AbsentsClampAtZero(t *testing.T) {
	in := Input{
		Period:    augustPeriod(),
		RawSalary: "22000",
		Records:   records("2025-07-23", 30, attendance.StatusPresent, false),
	}

	res, err := Calculate(in, DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, 30, res.FullDays)
	assert.Equal(t, 0, res.Absents)
	assert.True(t, res.LOPAmount.IsZero())
	assert.Equal(t, "22000.00", res.FinalPay.StringFixed(2))
}

func TestCalculate_FinalPayNeverNegative(t *testing.T) {
	in := Input{
		Period:    augustPeriod(),
		RawSalary: "1000",
		Records:   records("2025-07-24", 20, attendance.StatusLate, true),
	}

	res, err := Calculate(in, DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, "4090.91", res.LOPAmount.StringFixed(2))
	assert.True(t, res.FinalPay.IsZero())
}

func TestCalculate_NoRecordsAllAbsent(t *testing.T) {
	res, err := Calculate(Input{Period: augustPeriod(), RawSalary: "22000"}, DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, 22, res.Absents)
	assert.Equal(t, "22000.00", res.LOPAmount.StringFixed(2))
	assert.True(t, res.FinalPay.IsZero())
}

func TestCalculate_LeaveDays(t *testing.T) {
	tests := []struct {
		name   string
		leaves []LeaveSpan
		want   int
	}{
		{"inside period", []LeaveSpan{{Start: day("2025-08-04"), End: day("2025-08-06")}}, 3},
		{"single day", []LeaveSpan{{Start: day("2025-08-04"), End: day("2025-08-04")}}, 1},
		{"clipped at start", []LeaveSpan{{Start: day("2025-07-20"), End: day("2025-07-24")}}, 2},
		{"clipped at end", []LeaveSpan{{Start: day("2025-08-21"), End: day("2025-08-30")}}, 2},
		{"outside period", []LeaveSpan{{Start: day("2025-06-01"), End: day("2025-06-05")}}, 0},
		{"overlapping requests are summed", []LeaveSpan{
			{Start: day("2025-08-04"), End: day("2025-08-06")},
			{Start: day("2025-08-05"), End: day("2025-08-06")},
		}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Calculate(Input{Period: augustPeriod(), RawSalary: "22000", Leaves: tt.leaves}, DefaultSettings())
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.LeaveDays)
			assert.Equal(t, 22-tt.want, res.Absents)
		})
	}
}

func TestCalculate_ZonedPeriodCountsCalendarDays(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	p := Period{
		Start: time.Date(2025, 7, 23, 0, 0, 0, 0, loc),
		End:   time.Date(2025, 8, 23, 0, 0, 0, 0, loc),
	}
	in := Input{
		Period:    p,
		RawSalary: "22000",
		Records:   []DayRecord{{Date: day("2025-07-23"), Status: attendance.StatusPresent}},
		Leaves:    []LeaveSpan{{Start: day("2025-07-20"), End: day("2025-07-25")}},
	}

	res, err := Calculate(in, DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, 1, res.FullDays)
	assert.Equal(t, 3, res.LeaveDays)
}

func TestCalculate_UnparseableSalary(t *testing.T) {
	for _, raw := range []string{"", "abc", "22k", "-500"} {
		t.Run(raw, func(t *testing.T) {
			res, err := Calculate(Input{
				Period:    augustPeriod(),
				RawSalary: raw,
				Records:   records("2025-07-24", 22, attendance.StatusPresent, false),
			}, DefaultSettings())

			require.NoError(t, err)
			assert.True(t, res.SalaryWarning)
			assert.True(t, res.MonthlySalary.IsZero())
			assert.True(t, res.FinalPay.IsZero())
		})
	}
}

func TestCalculate_RoundsHalfUp(t *testing.T) {
	// 1000 / 22 = 45.4545..., one absent day
	in := Input{
		Period:    augustPeriod(),
		RawSalary: "1000",
		Records:   records("2025-07-24", 21, attendance.StatusPresent, false),
	}

	res, err := Calculate(in, DefaultSettings())

	require.NoError(t, err)
	assert.Equal(t, "45.45", res.LOPAmount.StringFixed(2))
	assert.Equal(t, "954.55", res.FinalPay.StringFixed(2))
}

func TestCalculate_InvalidInput(t *testing.T) {
	_, err := Calculate(Input{Period: Period{Start: day("2025-08-23"), End: day("2025-08-23")}}, DefaultSettings())
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = Calculate(Input{Period: Period{Start: day("2025-08-23"), End: day("2025-07-23")}}, DefaultSettings())
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = Calculate(Input{Period: augustPeriod()}, Settings{WorkingDays: 0, LatePenalty: decimal.NewFromInt(200)})
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestCalculate_ConfigurableConstants(t *testing.T) {
	settings := Settings{WorkingDays: 20, LatePenalty: decimal.NewFromInt(100)}
	in := Input{
		Period:    augustPeriod(),
		RawSalary: "20000",
		Records: append(
			records("2025-07-24", 17, attendance.StatusPresent, false),
			records("2025-08-12", 1, attendance.StatusLate, true)...,
		),
	}

	res, err := Calculate(in, settings)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Absents)
	assert.Equal(t, "2100.00", res.LOPAmount.StringFixed(2))
	assert.Equal(t, "17900.00", res.FinalPay.StringFixed(2))
}

func TestDefaultPeriod(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		name      string
		now       time.Time
		wantStart string
		wantEnd   string
	}{
		{"before cycle day", time.Date(2025, 8, 10, 12, 0, 0, 0, loc), "2025-07-23", "2025-08-23"},
		{"on cycle day", time.Date(2025, 8, 23, 0, 0, 0, 0, loc), "2025-08-23", "2025-09-23"},
		{"after cycle day", time.Date(2025, 8, 31, 23, 59, 0, 0, loc), "2025-08-23", "2025-09-23"},
		{"january wraps back", time.Date(2026, 1, 5, 9, 0, 0, 0, loc), "2025-12-23", "2026-01-23"},
		{"december wraps forward", time.Date(2025, 12, 24, 9, 0, 0, 0, loc), "2025-12-23", "2026-01-23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPeriod(tt.now, 23)
			assert.Equal(t, tt.wantStart, p.Start.Format("2006-01-02"))
			assert.Equal(t, tt.wantEnd, p.End.Format("2006-01-02"))
			assert.True(t, p.Contains(tt.now))
		})
	}
}

func TestParseSalary(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"22000", "22000", true},
		{" 22,000.50 ", "22000.5", true},
		{"0", "0", true},
		{"", "0", false},
		{"twenty", "0", false},
		{"-1", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseSalary(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestPeriodRequest_Resolve(t *testing.T) {
	now := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)

	p, err := PeriodRequest{}.Resolve(now, 23)
	require.NoError(t, err)
	assert.Equal(t, DefaultPeriod(now, 23), p)

	p, err = PeriodRequest{Start: "2025-08-01", End: "2025-09-01"}.Resolve(now, 23)
	require.NoError(t, err)
	assert.Equal(t, day("2025-08-01"), p.Start)

	_, err = PeriodRequest{Start: "2025-08-01"}.Resolve(now, 23)
	assert.Error(t, err)

	_, err = PeriodRequest{Start: "2025-09-01", End: "2025-08-01"}.Resolve(now, 23)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
