package payroll

import (
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// DefaultPeriod returns the cycle window containing now. With cycleDay 23:
// on or after the 23rd it is [this month's 23rd, next month's 23rd),
// otherwise [last month's 23rd, this month's 23rd). Bounds are midnight in
// now's location.
func DefaultPeriod(now time.Time, cycleDay int) Period {
	y, m, d := now.Date()
	loc := now.Location()
	start := time.Date(y, m, cycleDay, 0, 0, 0, 0, loc)
	if d < cycleDay {
		start = start.AddDate(0, -1, 0)
	}
	return Period{Start: start, End: start.AddDate(0, 1, 0)}
}

// ParseSalary reads a stored salary such as "22000", " 22,000.50 ".
// It reports false when the value cannot be parsed or is negative.
func ParseSalary(raw string) (decimal.Decimal, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// Calculate computes one employee's pay for the input period.
//
//	absents   = max(0, workingDays - (full + late + leave))
//	lopAmount = late * latePenalty + absents * salary / workingDays
//	finalPay  = max(0, salary - lopAmount)
//
// An unparseable salary yields zero pay with SalaryWarning set, not an error.
func Calculate(in Input, settings Settings) (Result, error) {
	if err := in.Period.Validate(); err != nil {
		return Result{}, err
	}
	if settings.WorkingDays <= 0 || settings.LatePenalty.IsNegative() {
		return Result{}, ErrInvalidSettings
	}

	period := Period{Start: civilDate(in.Period.Start), End: civilDate(in.Period.End)}

	var res Result
	salary, ok := ParseSalary(in.RawSalary)
	res.SalaryWarning = !ok
	res.MonthlySalary = salary

	for _, rec := range in.Records {
		if !period.Contains(civilDate(rec.Date)) {
			continue
		}
		if rec.IsLate {
			res.LateDays++
		} else if rec.Status == attendance.StatusPresent {
			res.FullDays++
		}
	}

	for _, span := range in.Leaves {
		res.LeaveDays += clippedLeaveDays(LeaveSpan{Start: civilDate(span.Start), End: civilDate(span.End)}, period)
	}

	workingDays := decimal.NewFromInt(int64(settings.WorkingDays))
	res.Absents = max(0, settings.WorkingDays-(res.FullDays+res.LateDays+res.LeaveDays))
	res.PerDaySalary = salary.Div(workingDays)

	lop := settings.LatePenalty.Mul(decimal.NewFromInt(int64(res.LateDays))).
		Add(res.PerDaySalary.Mul(decimal.NewFromInt(int64(res.Absents))))
	final := salary.Sub(lop)
	if final.IsNegative() {
		final = decimal.Zero
	}

	res.LOPAmount = lop.Round(2)
	res.FinalPay = final.Round(2)
	res.PerDaySalary = res.PerDaySalary.Round(2)
	return res, nil
}

// clippedLeaveDays clips an inclusive leave span to the period's last day
// and counts ceil(clippedEnd - clippedStart) + 1 days. Spans outside the
// period count zero.
func clippedLeaveDays(span LeaveSpan, p Period) int {
	lastDay := p.End.AddDate(0, 0, -1)
	start := span.Start
	if start.Before(p.Start) {
		start = p.Start
	}
	end := span.End
	if end.After(lastDay) {
		end = lastDay
	}
	if end.Before(start) {
		return 0
	}
	days := end.Sub(start).Hours() / 24
	return int(math.Ceil(days)) + 1
}

// civilDate drops the clock and zone so DATE columns and zoned period bounds
// compare as calendar days.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
