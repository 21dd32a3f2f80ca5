package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Insert creates the record for (employee, date). Returns ErrAlreadyCheckedIn
	// when a record for that date already exists.
	Insert(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id int64) (Record, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Record, error)

	// CompleteCheckOut sets check-out and hours only while check_out is still NULL.
	// Returns ErrAlreadyCheckedOut when another request got there first.
	CompleteCheckOut(ctx context.Context, id int64, checkOut string, hours float64) (Record, error)

	// Update writes an admin correction guarded by the record's updated_at token.
	Update(ctx context.Context, record Record, expectedUpdatedAt time.Time) (Record, error)

	List(ctx context.Context, filter AttendanceFilter) ([]Record, int64, error)

	// ListByEmployee returns records ordered by date. Nil bounds are open;
	// to is exclusive.
	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Record, error)

	// MarkMissing inserts Absent (or On Leave, when covered by approved leave)
	// records for active employees without a record on date.
	MarkMissing(ctx context.Context, date time.Time) (int64, error)
}

// SummaryRepository stores the derived summary cache.
type SummaryRepository interface {
	// Replace swaps every stored summary of the employee for the given rows.
	Replace(ctx context.Context, employeeID string, weekly, monthly []PeriodSummary) error
	ListByEmployee(ctx context.Context, employeeID string, periodType PeriodType) ([]PeriodSummary, error)
}
