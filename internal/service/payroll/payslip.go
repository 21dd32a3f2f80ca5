package payroll

import (
	"context"
	"fmt"
	"io"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
)

// Payslip renders one employee's payroll for the period as a PDF.
func (s *PayrollServiceImpl) Payslip(ctx context.Context, employeeID string, period payroll.Period, w io.Writer) error {
	row, err := s.employeeRow(ctx, employeeID, period)
	if err != nil {
		return err
	}
	p := payroll.NewPeriodResponse(period)
	currency := s.settings.Currency

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", row.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", row.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s", row.Department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", p.Start, p.End))
	pdf.Ln(10)

	lines := [][2]string{
		{"Full days", fmt.Sprint(row.FullDays)},
		{"Late days", fmt.Sprint(row.LateDays)},
		{"Leave days", fmt.Sprint(row.LeaveDays)},
		{"Absents", fmt.Sprint(row.Absents)},
		{"Monthly salary", fmt.Sprintf("%s %s", row.MonthlySalary.StringFixed(2), currency)},
		{"Loss of pay", fmt.Sprintf("%s %s", row.LOPAmount.StringFixed(2), currency)},
	}
	for _, l := range lines {
		pdf.CellFormat(60, 8, l[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, l[1], "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 8, "Final pay", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, fmt.Sprintf("%s %s", row.FinalPay.StringFixed(2), currency), "1", 1, "R", false, 0, "")

	if row.SalaryWarning {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 8, "Salary on file could not be read; pay shown as zero.")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render payslip: %w", err)
	}
	return nil
}
