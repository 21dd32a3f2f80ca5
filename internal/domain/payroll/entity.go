package payroll

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// Period is a half-open pay window [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls in [Start, End).
func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.Start) && d.Before(p.End)
}

func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() || !p.End.After(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// Settings are the payroll constants. Both are configuration, not code.
type Settings struct {
	WorkingDays int
	LatePenalty decimal.Decimal
}

func DefaultSettings() Settings {
	return Settings{WorkingDays: 22, LatePenalty: decimal.NewFromInt(200)}
}

// DayRecord is the attendance view the calculator needs.
type DayRecord struct {
	Date   time.Time
	Status attendance.Status
	IsLate bool
}

func DayRecordFrom(r attendance.Record) DayRecord {
	return DayRecord{Date: r.Date, Status: r.Status, IsLate: r.IsLate}
}

// LeaveSpan is an approved leave request; End is the last day of leave.
type LeaveSpan struct {
	Start time.Time
	End   time.Time
}

type Input struct {
	Period    Period
	RawSalary string
	Records   []DayRecord
	Leaves    []LeaveSpan
}

// Result of one employee's payroll. LOPAmount and FinalPay are rounded to
// 2 decimals.
type Result struct {
	FullDays      int
	LateDays      int
	LeaveDays     int
	Absents       int
	MonthlySalary decimal.Decimal
	PerDaySalary  decimal.Decimal
	LOPAmount     decimal.Decimal
	FinalPay      decimal.Decimal

	// SalaryWarning is set when the stored salary could not be parsed and
	// was treated as zero.
	SalaryWarning bool
}

// Row is a result joined with the employee it belongs to.
type Row struct {
	EmployeeID string
	Name       string
	Email      string
	Department string
	RawSalary  string
	Result
}
