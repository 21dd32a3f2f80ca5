package payroll

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/payroll"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/export"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Settings configures the payroll run.
type Settings struct {
	payroll.Settings
	CycleDay int
	Currency string
	Location *time.Location
}

var _ payroll.PayrollService = (*PayrollServiceImpl)(nil)

type PayrollServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	settings       Settings
	now            func() time.Time
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	settings Settings,
) *PayrollServiceImpl {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &PayrollServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		settings:       settings,
		now:            time.Now,
	}
}

// CurrentPeriod implements payroll.PayrollService.
func (s *PayrollServiceImpl) CurrentPeriod(req payroll.PeriodRequest) (payroll.Period, error) {
	return req.Resolve(s.now().In(s.settings.Location), s.settings.CycleDay)
}

// Run implements payroll.PayrollService.
func (s *PayrollServiceImpl) Run(ctx context.Context, period payroll.Period) ([]payroll.Row, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	rows := make([]payroll.Row, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, emp := range employees {
		g.Go(func() error {
			row, err := s.calculate(gctx, emp, period)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})
	return rows, nil
}

func (s *PayrollServiceImpl) calculate(ctx context.Context, emp employee.Employee, period payroll.Period) (payroll.Row, error) {
	records, err := s.attendanceRepo.ListByEmployee(ctx, emp.ID, &period.Start, &period.End)
	if err != nil {
		return payroll.Row{}, fmt.Errorf("failed to load attendance for employee %s: %w", emp.ID, err)
	}
	approved, err := s.leaveRepo.ListApprovedOverlapping(ctx, emp.ID, period.Start, period.End)
	if err != nil {
		return payroll.Row{}, fmt.Errorf("failed to load leave for employee %s: %w", emp.ID, err)
	}

	in := payroll.Input{
		Period:    period,
		RawSalary: emp.Salary,
		Records:   make([]payroll.DayRecord, 0, len(records)),
		Leaves:    make([]payroll.LeaveSpan, 0, len(approved)),
	}
	for _, r := range records {
		in.Records = append(in.Records, payroll.DayRecordFrom(r))
	}
	for _, lr := range approved {
		in.Leaves = append(in.Leaves, payroll.LeaveSpan{Start: lr.StartDate, End: lr.EndDate})
	}

	res, err := payroll.Calculate(in, s.settings.Settings)
	if err != nil {
		return payroll.Row{}, err
	}
	if res.SalaryWarning {
		slog.Warn("Unparseable salary, treating as zero", "employee_id", emp.ID, "salary", emp.Salary)
	}

	return payroll.Row{
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Email:      emp.Email,
		Department: emp.Department,
		RawSalary:  emp.Salary,
		Result:     res,
	}, nil
}

// Summary implements payroll.PayrollService.
func (s *PayrollServiceImpl) Summary(ctx context.Context, period payroll.Period) (payroll.RunResponse, error) {
	rows, err := s.Run(ctx, period)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	resp := payroll.RunResponse{
		Period:   payroll.NewPeriodResponse(period),
		Currency: s.settings.Currency,
		Rows:     make([]payroll.RowResponse, 0, len(rows)),
	}
	total := decimal.Zero
	for _, r := range rows {
		resp.Rows = append(resp.Rows, payroll.NewRowResponse(r))
		total = total.Add(r.FinalPay)
		if r.SalaryWarning {
			resp.Warnings++
		}
	}
	resp.TotalPay = total.StringFixed(2)

	slog.Info("Payroll calculated", "start", resp.Period.Start, "end", resp.Period.End, "employees", len(rows), "total_final_pay", resp.TotalPay)
	return resp, nil
}

// GetForEmployee implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetForEmployee(ctx context.Context, employeeID string, period payroll.Period) (payroll.EmployeePayrollResponse, error) {
	row, err := s.employeeRow(ctx, employeeID, period)
	if err != nil {
		return payroll.EmployeePayrollResponse{}, err
	}
	return payroll.EmployeePayrollResponse{
		Period:   payroll.NewPeriodResponse(period),
		Currency: s.settings.Currency,
		Row:      payroll.NewRowResponse(row),
	}, nil
}

func (s *PayrollServiceImpl) employeeRow(ctx context.Context, employeeID string, period payroll.Period) (payroll.Row, error) {
	if err := period.Validate(); err != nil {
		return payroll.Row{}, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.Row{}, err
	}
	return s.calculate(ctx, emp, period)
}

var exportHeaders = []string{
	"Employee Name", "Email", "Department", "Monthly Salary",
	"Full Days", "Late Days", "Absents", "Leave Days", "LOP Amount", "Final Pay",
}

func exportRecord(r payroll.Row) []string {
	return []string{
		r.Name,
		r.Email,
		r.Department,
		r.MonthlySalary.StringFixed(2),
		fmt.Sprint(r.FullDays),
		fmt.Sprint(r.LateDays),
		fmt.Sprint(r.Absents),
		fmt.Sprint(r.LeaveDays),
		r.LOPAmount.StringFixed(2),
		r.FinalPay.StringFixed(2),
	}
}

// ExportCSV writes one row per active employee.
func (s *PayrollServiceImpl) ExportCSV(ctx context.Context, period payroll.Period, w io.Writer) error {
	rows, err := s.Run(ctx, period)
	if err != nil {
		return err
	}

	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, exportRecord(r))
	}
	return export.WriteCSV(w, exportHeaders, records)
}

// ExportXLSX writes the same columns as ExportCSV to a single sheet.
func (s *PayrollServiceImpl) ExportXLSX(ctx context.Context, period payroll.Period, w io.Writer) error {
	rows, err := s.Run(ctx, period)
	if err != nil {
		return err
	}

	p := payroll.NewPeriodResponse(period)
	sheet := export.Sheet{
		Name:    "Payroll",
		Title:   fmt.Sprintf("Payroll %s to %s (%s)", p.Start, p.End, s.settings.Currency),
		Headers: exportHeaders,
		Rows:    make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		sheet.Rows = append(sheet.Rows, []any{
			r.Name, r.Email, r.Department, r.MonthlySalary.InexactFloat64(),
			r.FullDays, r.LateDays, r.Absents, r.LeaveDays,
			r.LOPAmount.InexactFloat64(), r.FinalPay.InexactFloat64(),
		})
	}
	return export.WriteXLSX(w, sheet)
}
