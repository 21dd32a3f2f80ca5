package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetEmployeeSummary returns total, new (since date), active in single query
func (r *dashboardRepositoryImpl) GetEmployeeSummary(ctx context.Context, since time.Time) (*dashboard.EmployeeSummaryStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT 
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN hire_date >= $1 THEN 1 ELSE 0 END), 0) as new_count,
			COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) as active_count
		FROM employees
	`

	var stats dashboard.EmployeeSummaryStats
	err := q.QueryRow(ctx, query, since).Scan(&stats.Total, &stats.New, &stats.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee summary: %w", err)
	}
	return &stats, nil
}

// GetAttendanceStatsByDay counts one day's records per status label
func (r *dashboardRepositoryImpl) GetAttendanceStatsByDay(ctx context.Context, date time.Time) (*dashboard.AttendanceStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT 
			COALESCE(SUM(CASE WHEN status = $2 THEN 1 ELSE 0 END), 0) as present,
			COALESCE(SUM(CASE WHEN status = $3 THEN 1 ELSE 0 END), 0) as late,
			COALESCE(SUM(CASE WHEN status = $4 THEN 1 ELSE 0 END), 0) as absent,
			COALESCE(SUM(CASE WHEN status = $5 THEN 1 ELSE 0 END), 0) as on_leave
		FROM attendance_records
		WHERE date = $1::date
	`

	var stats dashboard.AttendanceStats
	err := q.QueryRow(ctx, query, date,
		attendance.StatusPresent, attendance.StatusLate, attendance.StatusAbsent, attendance.StatusOnLeave,
	).Scan(&stats.Present, &stats.Late, &stats.Absent, &stats.OnLeave)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance stats: %w", err)
	}
	return &stats, nil
}

func (r *dashboardRepositoryImpl) CountPendingLeave(ctx context.Context, employeeID *string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM leave_requests
		WHERE status = $1 AND ($2::uuid IS NULL OR employee_id = $2::uuid)
	`, leave.StatusPending, employeeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending leave requests: %w", err)
	}
	return count, nil
}

// GetRecentRecords returns the latest check-ins across all employees
func (r *dashboardRepositoryImpl) GetRecentRecords(ctx context.Context, limit int) ([]dashboard.AttendanceRecordItem, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT e.name, a.date, a.status, a.check_in
		FROM attendance_records a
		INNER JOIN employees e ON e.id = a.employee_id
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent attendance records: %w", err)
	}
	defer rows.Close()

	items := []dashboard.AttendanceRecordItem{}
	for rows.Next() {
		var item dashboard.AttendanceRecordItem
		var date time.Time
		if err := rows.Scan(&item.EmployeeName, &date, &item.Status, &item.CheckIn); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		item.Date = date.Format(attendance.DateLayout)
		items = append(items, item)
	}
	return items, rows.Err()
}
