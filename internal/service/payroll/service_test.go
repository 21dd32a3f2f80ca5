package payroll

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubEmployees struct {
	employee.EmployeeRepository
	list []employee.Employee
}

func (s stubEmployees) ListActive(context.Context) ([]employee.Employee, error) {
	return s.list, nil
}

func (s stubEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range s.list {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type stubAttendance struct {
	attendance.AttendanceRepository
	byEmployee map[string][]attendance.Record
}

func (s stubAttendance) ListByEmployee(_ context.Context, employeeID string, from, to *time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range s.byEmployee[employeeID] {
		if from != nil && r.Date.Before(*from) {
			continue
		}
		if to != nil && !r.Date.Before(*to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type stubLeaves struct {
	leave.LeaveRequestRepository
	approved map[string][]leave.LeaveRequest
}

func (s stubLeaves) ListApprovedOverlapping(_ context.Context, employeeID string, _, _ time.Time) ([]leave.LeaveRequest, error) {
	return s.approved[employeeID], nil
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

var march = payroll.Period{Start: day(1), End: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)}

func newTestService() *PayrollServiceImpl {
	var records []attendance.Record
	for d := 2; d <= 19; d++ {
		records = append(records, attendance.Record{EmployeeID: "e-1", Date: day(d), Status: attendance.StatusPresent})
	}
	records = append(records,
		attendance.Record{EmployeeID: "e-1", Date: day(20), Status: attendance.StatusLate, IsLate: true},
		attendance.Record{EmployeeID: "e-1", Date: day(23), Status: attendance.StatusLate, IsLate: true},
	)

	svc := NewPayrollService(
		stubEmployees{list: []employee.Employee{
			{ID: "e-2", Name: "zoe", Email: "zoe@example.com", Department: "Ops", Salary: "n/a"},
			{ID: "e-1", Name: "Amal", Email: "amal@example.com", Department: "Eng", Salary: "22000"},
		}},
		stubAttendance{byEmployee: map[string][]attendance.Record{"e-1": records}},
		stubLeaves{approved: map[string][]leave.LeaveRequest{
			"e-1": {{EmployeeID: "e-1", StartDate: day(24), EndDate: day(24)}},
		}},
		Settings{
			Settings: payroll.DefaultSettings(),
			CycleDay: 1,
			Currency: "INR",
		},
	)
	svc.now = func() time.Time { return day(15) }
	return svc
}

func TestRun(t *testing.T) {
	svc := newTestService()

	rows, err := svc.Run(context.Background(), march)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	amal := rows[0]
	assert.Equal(t, "Amal", amal.Name)
	assert.Equal(t, 18, amal.FullDays)
	assert.Equal(t, 2, amal.LateDays)
	assert.Equal(t, 1, amal.LeaveDays)
	assert.Equal(t, 1, amal.Absents)
	assert.Equal(t, "1400.00", amal.LOPAmount.StringFixed(2))
	assert.Equal(t, "20600.00", amal.FinalPay.StringFixed(2))

	zoe := rows[1]
	assert.True(t, zoe.SalaryWarning)
	assert.True(t, zoe.FinalPay.Equal(decimal.Zero))
}

func TestRun_InvalidPeriod(t *testing.T) {
	svc := newTestService()

	_, err := svc.Run(context.Background(), payroll.Period{Start: day(10), End: day(10)})
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestSummary(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Summary(context.Background(), march)
	require.NoError(t, err)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, 1, resp.Warnings)
	assert.Equal(t, "20600.00", resp.TotalPay)
	assert.Equal(t, "2026-03-01", resp.Period.Start)
}

func TestCurrentPeriod(t *testing.T) {
	svc := newTestService()

	p, err := svc.CurrentPeriod(payroll.PeriodRequest{})
	require.NoError(t, err)
	assert.Equal(t, march.Start, p.Start)
	assert.Equal(t, march.End, p.End)
}

func TestGetForEmployee(t *testing.T) {
	svc := newTestService()

	resp, err := svc.GetForEmployee(context.Background(), "e-1", march)
	require.NoError(t, err)
	assert.Equal(t, "22000.00", resp.Row.MonthlySalary)
	assert.Equal(t, "20600.00", resp.Row.FinalPay)

	_, err = svc.GetForEmployee(context.Background(), "missing", march)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestExportCSV(t *testing.T) {
	svc := newTestService()

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), march, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeaders, records[0])
	assert.Equal(t, []string{
		"Amal", "amal@example.com", "Eng", "22000.00", "18", "2", "1", "1", "1400.00", "20600.00",
	}, records[1])
}

func TestExportXLSX(t *testing.T) {
	svc := newTestService()

	var buf bytes.Buffer
	require.NoError(t, svc.ExportXLSX(context.Background(), march, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Payroll", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Employee Name", header)

	name, err := f.GetCellValue("Payroll", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Amal", name)
}

func TestPayslip(t *testing.T) {
	svc := newTestService()

	var buf bytes.Buffer
	require.NoError(t, svc.Payslip(context.Background(), "e-1", march, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
