package attendance

import (
	"context"
	"io"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn creates today's record for the employee
	CheckIn(ctx context.Context, employeeID string) (RecordResponse, error)

	// CheckOut closes today's record for the employee
	CheckOut(ctx context.Context, employeeID string) (RecordResponse, error)

	GetToday(ctx context.Context, employeeID string) (*RecordResponse, error)
	ListMine(ctx context.Context, employeeID string, filter AttendanceFilter) (ListRecordResponse, error)

	// List retrieves attendance records with filters (admin)
	List(ctx context.Context, filter AttendanceFilter) (ListRecordResponse, error)

	// UpdateRecord applies an admin correction; hours and lateness are re-derived
	UpdateRecord(ctx context.Context, req UpdateRecordRequest) (RecordResponse, error)

	MarkAbsent(ctx context.Context, date time.Time) (int64, error)

	// Summaries recomputes weekly and monthly rollups from the full record list
	Summaries(ctx context.Context, employeeID string) (SummaryResponse, error)
	RebuildSummaries(ctx context.Context, employeeID string) (SummaryResponse, error)
	RebuildAllSummaries(ctx context.Context) (int, error)
	ExportSummaries(ctx context.Context, employeeID string, w io.Writer) error
}
