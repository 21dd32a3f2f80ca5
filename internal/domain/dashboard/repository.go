package dashboard

import (
	"context"
	"time"
)

// EmployeeSummaryStats combines all employee summary counts in single query
type EmployeeSummaryStats struct {
	Total  int64
	New    int64
	Active int64
}

// AttendanceStats counts one day's records per status
type AttendanceStats struct {
	Present int64
	Late    int64
	Absent  int64
	OnLeave int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetEmployeeSummary returns total, new (hired since), active counts in single query
	GetEmployeeSummary(ctx context.Context, since time.Time) (*EmployeeSummaryStats, error)

	GetAttendanceStatsByDay(ctx context.Context, date time.Time) (*AttendanceStats, error)

	// CountPendingLeave counts Pending requests, optionally for one employee
	CountPendingLeave(ctx context.Context, employeeID *string) (int64, error)

	GetRecentRecords(ctx context.Context, limit int) ([]AttendanceRecordItem, error)
}
