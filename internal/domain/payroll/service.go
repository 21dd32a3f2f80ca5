package payroll

import (
	"context"
	"io"
)

type PayrollService interface {
	// CurrentPeriod resolves the optional period bounds against the configured cycle day
	CurrentPeriod(req PeriodRequest) (Period, error)

	// Run calculates payroll for every active employee, sorted by name
	Run(ctx context.Context, period Period) ([]Row, error)
	Summary(ctx context.Context, period Period) (RunResponse, error)
	GetForEmployee(ctx context.Context, employeeID string, period Period) (EmployeePayrollResponse, error)

	ExportCSV(ctx context.Context, period Period, w io.Writer) error
	ExportXLSX(ctx context.Context, period Period, w io.Writer) error
	Payslip(ctx context.Context, employeeID string, period Period, w io.Writer) error
}
