package dashboard

import (
	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/payroll"
)

// ========== ADMIN DASHBOARD ==========

// AdminDashboardResponse is the combined response for the admin dashboard endpoint
type AdminDashboardResponse struct {
	EmployeeSummary   EmployeeSummaryResponse `json:"employee_summary"`
	TodayAttendance   AttendanceStatsResponse `json:"today_attendance"`
	PendingLeaves     int64                   `json:"pending_leave_requests"`
	PayrollPeriod     payroll.PeriodResponse  `json:"payroll_period"`
	RecentAttendances []AttendanceRecordItem  `json:"recent_attendances"`
}

// EmployeeSummaryResponse contains total, new and active employee counts
type EmployeeSummaryResponse struct {
	TotalEmployee  int64 `json:"total_employee"`
	NewEmployee    int64 `json:"new_employee"` // hired within 30 days
	ActiveEmployee int64 `json:"active_employee"`
}

// AttendanceStatsResponse represents attendance statistics for a specific day
type AttendanceStatsResponse struct {
	Present        int64   `json:"present"`
	Late           int64   `json:"late"`
	Absent         int64   `json:"absent"`
	OnLeave        int64   `json:"on_leave"`
	NotCheckedIn   int64   `json:"not_checked_in"`
	Total          int64   `json:"total"`
	PresentPercent float64 `json:"present_percent"`
	LatePercent    float64 `json:"late_percent"`
	Date           string  `json:"date"` // Format: "YYYY-MM-DD"
}

// AttendanceRecordItem represents a single attendance record in the list
type AttendanceRecordItem struct {
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	CheckIn      *string `json:"check_in,omitempty"` // Format: "HH:MM"
}

// ========== EMPLOYEE DASHBOARD ==========

type EmployeeDashboardResponse struct {
	Today         *attendance.RecordResponse `json:"today"`
	CurrentMonth  attendance.PeriodSummary   `json:"current_month"`
	Balances      leave.Balances             `json:"leave_balances"`
	PendingLeaves int64                      `json:"pending_leave_requests"`
}
