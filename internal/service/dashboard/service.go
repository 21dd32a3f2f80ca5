package dashboard

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/payroll"
	"golang.org/x/sync/errgroup"
)

const recentRecordLimit = 10

// Settings carries the values the dashboard derives dates from.
type Settings struct {
	Location *time.Location
	CycleDay int
}

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	attendanceRepo attendance.AttendanceRepository
	balanceRepo    leave.LeaveBalanceRepository
	settings       Settings
	now            func() time.Time
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	attendanceRepo attendance.AttendanceRepository,
	balanceRepo leave.LeaveBalanceRepository,
	settings Settings,
) *DashboardServiceImpl {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		attendanceRepo:      attendanceRepo,
		balanceRepo:         balanceRepo,
		settings:            settings,
		now:                 time.Now,
	}
}

func (s *DashboardServiceImpl) localNow() time.Time {
	return s.now().In(s.settings.Location)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}

// GetAdminDashboard runs its four queries in parallel.
func (s *DashboardServiceImpl) GetAdminDashboard(ctx context.Context) (*dashboard.AdminDashboardResponse, error) {
	now := s.localNow()
	today := civilDate(now)
	since := today.AddDate(0, 0, -30)

	var (
		summary *dashboard.EmployeeSummaryStats
		stats   *dashboard.AttendanceStats
		pending int64
		recent  []dashboard.AttendanceRecordItem
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Employee Summary (total, new, active)
	g.Go(func() error {
		var err error
		summary, err = s.GetEmployeeSummary(gCtx, since)
		return err
	})

	// 2. Today's attendance by status
	g.Go(func() error {
		var err error
		stats, err = s.GetAttendanceStatsByDay(gCtx, today)
		return err
	})

	// 3. Pending leave requests
	g.Go(func() error {
		var err error
		pending, err = s.CountPendingLeave(gCtx, nil)
		return err
	})

	// 4. Latest records
	g.Go(func() error {
		var err error
		recent, err = s.GetRecentRecords(gCtx, recentRecordLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	recorded := stats.Present + stats.Late + stats.Absent + stats.OnLeave
	if recent == nil {
		recent = []dashboard.AttendanceRecordItem{}
	}

	return &dashboard.AdminDashboardResponse{
		EmployeeSummary: dashboard.EmployeeSummaryResponse{
			TotalEmployee:  summary.Total,
			NewEmployee:    summary.New,
			ActiveEmployee: summary.Active,
		},
		TodayAttendance: dashboard.AttendanceStatsResponse{
			Present:        stats.Present,
			Late:           stats.Late,
			Absent:         stats.Absent,
			OnLeave:        stats.OnLeave,
			NotCheckedIn:   max(0, summary.Active-recorded),
			Total:          summary.Active,
			PresentPercent: percent(stats.Present, summary.Active),
			LatePercent:    percent(stats.Late, summary.Active),
			Date:           today.Format(attendance.DateLayout),
		},
		PendingLeaves:     pending,
		PayrollPeriod:     payroll.NewPeriodResponse(payroll.DefaultPeriod(now, s.settings.CycleDay)),
		RecentAttendances: recent,
	}, nil
}

// GetEmployeeDashboard returns today's record, the current month's rollup,
// leave balances and the employee's pending request count.
func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context, employeeID string) (*dashboard.EmployeeDashboardResponse, error) {
	today := civilDate(s.localNow())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	resp := &dashboard.EmployeeDashboardResponse{
		CurrentMonth: attendance.PeriodSummary{PeriodKey: attendance.MonthKey(monthStart)},
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		record, err := s.attendanceRepo.GetByEmployeeAndDate(gCtx, employeeID, today)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return nil
			}
			return err
		}
		r := attendance.NewRecordResponse(record)
		resp.Today = &r
		return nil
	})

	g.Go(func() error {
		records, err := s.attendanceRepo.ListByEmployee(gCtx, employeeID, &monthStart, &monthEnd)
		if err != nil {
			return err
		}
		inputs := make([]attendance.RollupInput, 0, len(records))
		for _, r := range records {
			inputs = append(inputs, r.RollupInput())
		}
		if rolled := attendance.Rollup(inputs); len(rolled.Monthly) > 0 {
			resp.CurrentMonth = rolled.Monthly[0]
		}
		return nil
	})

	g.Go(func() error {
		balances, err := s.balanceRepo.GetByEmployee(gCtx, employeeID)
		if err != nil {
			return err
		}
		resp.Balances = balances
		return nil
	})

	g.Go(func() error {
		var err error
		resp.PendingLeaves, err = s.CountPendingLeave(gCtx, &employeeID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}
