package attendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/export"
	"golang.org/x/sync/errgroup"
)

// Settings are the attendance rules taken from configuration.
type Settings struct {
	LateAfter string // HH:MM
	Location  *time.Location
}

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	attendance.SummaryRepository
	employee.EmployeeRepository
	settings Settings
	now      func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	summaryRepo attendance.SummaryRepository,
	employeeRepo employee.EmployeeRepository,
	settings Settings,
) *AttendanceServiceImpl {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		SummaryRepository:    summaryRepo,
		EmployeeRepository:   employeeRepo,
		settings:             settings,
		now:                  time.Now,
	}
}

func (a *AttendanceServiceImpl) localNow() time.Time {
	return a.now().In(a.settings.Location)
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.RecordResponse, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !emp.IsActive {
		return attendance.RecordResponse{}, employee.ErrEmployeeInactive
	}

	now := a.localNow()
	clock := now.Format(attendance.ClockLayout)
	late := IsLate(clock, a.settings.LateAfter)
	status := attendance.StatusPresent
	if late {
		status = attendance.StatusLate
	}

	record, err := a.AttendanceRepository.Insert(ctx, attendance.Record{
		EmployeeID: employeeID,
		Date:       civilDate(now),
		CheckIn:    &clock,
		Status:     status,
		IsLate:     late,
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("Employee checked in", "employee_id", employeeID, "check_in", clock, "is_late", late)
	return attendance.NewRecordResponse(record), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.RecordResponse, error) {
	now := a.localNow()

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, civilDate(now))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.RecordResponse{}, err
	}
	if record.CheckIn == nil {
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	clock := now.Format(attendance.ClockLayout)
	hours, err := WorkedHours(*record.CheckIn, clock)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	updated, err := a.AttendanceRepository.CompleteCheckOut(ctx, record.ID, clock, hours)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("Employee checked out", "employee_id", employeeID, "check_out", clock, "hours", hours)
	return attendance.NewRecordResponse(updated), nil
}

// GetToday returns nil when the employee has no record today.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, employeeID string) (*attendance.RecordResponse, error) {
	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, civilDate(a.localNow()))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := attendance.NewRecordResponse(record)
	return &resp, nil
}

// ListMine implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMine(ctx context.Context, employeeID string, filter attendance.AttendanceFilter) (attendance.ListRecordResponse, error) {
	filter.EmployeeID = &employeeID
	return a.List(ctx, filter)
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewRecordResponse(r))
	}

	return attendance.ListRecordResponse{
		Records:    responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// UpdateRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateRecord(ctx context.Context, req attendance.UpdateRecordRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if req.CheckIn != nil {
		record.CheckIn = emptyToNil(*req.CheckIn)
	}
	if req.CheckOut != nil {
		record.CheckOut = emptyToNil(*req.CheckOut)
	}
	if record.CheckOut != nil && record.CheckIn == nil {
		return attendance.RecordResponse{}, attendance.ErrInvalidTimeRange
	}

	record.IsLate = record.CheckIn != nil && IsLate(*record.CheckIn, a.settings.LateAfter)
	record.Hours = 0
	if record.CheckIn != nil && record.CheckOut != nil {
		if record.Hours, err = WorkedHours(*record.CheckIn, *record.CheckOut); err != nil {
			return attendance.RecordResponse{}, err
		}
	}

	switch {
	case req.Status != nil:
		record.Status = attendance.Status(*req.Status)
	case record.CheckIn == nil:
		// keep Absent / On Leave labels
	case record.IsLate:
		record.Status = attendance.StatusLate
	default:
		record.Status = attendance.StatusPresent
	}

	updated, err := a.AttendanceRepository.Update(ctx, record, req.UpdatedAt)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	slog.Info("Attendance record corrected", "record_id", updated.ID, "employee_id", updated.EmployeeID, "status", updated.Status)
	return attendance.NewRecordResponse(updated), nil
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// MarkAbsent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAbsent(ctx context.Context, date time.Time) (int64, error) {
	marked, err := a.AttendanceRepository.MarkMissing(ctx, civilDate(date))
	if err != nil {
		return 0, err
	}
	if marked > 0 {
		slog.Info("Marked missing attendance", "date", date.Format(attendance.DateLayout), "count", marked)
	}
	return marked, nil
}

// Summaries implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Summaries(ctx context.Context, employeeID string) (attendance.SummaryResponse, error) {
	if _, err := a.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return attendance.SummaryResponse{}, err
	}

	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, nil, nil)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to load attendance for summaries: %w", err)
	}

	inputs := make([]attendance.RollupInput, 0, len(records))
	for _, r := range records {
		inputs = append(inputs, r.RollupInput())
	}
	result := attendance.Rollup(inputs)
	if result.Skipped > 0 {
		slog.Debug("Skipped attendance records in rollup", "employee_id", employeeID, "skipped", result.Skipped)
	}

	return attendance.SummaryResponse{
		EmployeeID: employeeID,
		Weekly:     result.Weekly,
		Monthly:    result.Monthly,
		Skipped:    result.Skipped,
	}, nil
}

// RebuildSummaries recomputes and persists one employee's summaries.
func (a *AttendanceServiceImpl) RebuildSummaries(ctx context.Context, employeeID string) (attendance.SummaryResponse, error) {
	summary, err := a.Summaries(ctx, employeeID)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}
	if err := a.SummaryRepository.Replace(ctx, employeeID, summary.Weekly, summary.Monthly); err != nil {
		return attendance.SummaryResponse{}, err
	}
	return summary, nil
}

// RebuildAllSummaries rebuilds every active employee and returns how many
// succeeded. Failures are logged and joined into the returned error.
func (a *AttendanceServiceImpl) RebuildAllSummaries(ctx context.Context) (int, error) {
	employees, err := a.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees: %w", err)
	}

	var (
		rebuilt atomic.Int64
		errs    = make([]error, len(employees))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, emp := range employees {
		g.Go(func() error {
			if _, err := a.RebuildSummaries(gctx, emp.ID); err != nil {
				slog.Error("Failed to rebuild summaries", "employee_id", emp.ID, "error", err)
				errs[i] = fmt.Errorf("employee %s: %w", emp.ID, err)
				return nil
			}
			rebuilt.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	return int(rebuilt.Load()), errors.Join(errs...)
}

// ExportSummaries writes weekly and monthly summaries as an XLSX workbook.
func (a *AttendanceServiceImpl) ExportSummaries(ctx context.Context, employeeID string, w io.Writer) error {
	summary, err := a.Summaries(ctx, employeeID)
	if err != nil {
		return err
	}
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}

	headers := []string{"Period", "Present", "Late", "Absent", "Total Hours"}
	toRows := func(summaries []attendance.PeriodSummary) [][]any {
		rows := make([][]any, 0, len(summaries))
		for _, s := range summaries {
			rows = append(rows, []any{s.PeriodKey, s.Present, s.Late, s.Absent, s.TotalHours})
		}
		return rows
	}

	return export.WriteXLSX(w,
		export.Sheet{Name: "Weekly", Title: "Weekly attendance: " + emp.Name, Headers: headers, Rows: toRows(summary.Weekly)},
		export.Sheet{Name: "Monthly", Title: "Monthly attendance: " + emp.Name, Headers: headers, Rows: toRows(summary.Monthly)},
	)
}
