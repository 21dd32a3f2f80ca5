package attendance

import (
	"time"
)

// Status is the label stored on a daily attendance record.
type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
	StatusOnLeave Status = "On Leave"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent, StatusOnLeave:
		return true
	}
	return false
}

// DateLayout is the calendar-date format used for record dates and period keys.
const DateLayout = "2006-01-02"

// ClockLayout is the wall-clock format of check-in and check-out values.
const ClockLayout = "15:04"

// Record is one employee's attendance for one calendar date.
// (EmployeeID, Date) is unique.
type Record struct {
	ID         int64
	EmployeeID string
	Date       time.Time
	CheckIn    *string
	CheckOut   *string
	Status     Status
	Hours      float64
	IsLate     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

// RollupInput converts the record into the calculator's input shape.
func (r Record) RollupInput() RollupInput {
	in := RollupInput{
		Status: r.Status,
		Hours:  r.Hours,
		IsLate: r.IsLate,
	}
	if !r.Date.IsZero() {
		in.Date = r.Date.Format(DateLayout)
	}
	return in
}

// PeriodType distinguishes persisted weekly and monthly summaries.
type PeriodType string

const (
	PeriodWeek  PeriodType = "week"
	PeriodMonth PeriodType = "month"
)

// PeriodSummary is a derived aggregate keyed by week-start date or YYYY-MM month.
type PeriodSummary struct {
	PeriodKey  string  `json:"period_key"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	TotalHours float64 `json:"total_hours"`
}
