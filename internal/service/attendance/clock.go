package attendance

import (
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
)

// IsLate reports whether checkIn is strictly after threshold. Both are HH:MM.
func IsLate(checkIn, threshold string) bool {
	in, err := time.Parse(attendance.ClockLayout, checkIn)
	if err != nil {
		return false
	}
	limit, err := time.Parse(attendance.ClockLayout, threshold)
	if err != nil {
		return false
	}
	return in.After(limit)
}

// WorkedHours returns checkOut - checkIn in hours, rounded to 2 decimals.
func WorkedHours(checkIn, checkOut string) (float64, error) {
	in, err := time.Parse(attendance.ClockLayout, checkIn)
	if err != nil {
		return 0, attendance.ErrInvalidTimeRange
	}
	out, err := time.Parse(attendance.ClockLayout, checkOut)
	if err != nil {
		return 0, attendance.ErrInvalidTimeRange
	}
	if out.Before(in) {
		return 0, attendance.ErrInvalidTimeRange
	}
	return math.Round(out.Sub(in).Hours()*100) / 100, nil
}

// civilDate is the calendar date of t in its own location, as UTC midnight.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
