package payroll

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
)

// PeriodRequest carries the optional start/end query parameters. Both or
// neither must be set; neither selects the current cycle.
type PeriodRequest struct {
	Start string
	End   string
}

func (r PeriodRequest) Resolve(now time.Time, cycleDay int) (Period, error) {
	var errs validator.ValidationErrors

	if r.Start == "" && r.End == "" {
		return DefaultPeriod(now, cycleDay), nil
	}
	if r.Start == "" || r.End == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start and end must be provided together",
		})
		return Period{}, errs
	}

	start, ok := validator.IsValidDate(r.Start)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start must be in YYYY-MM-DD format",
		})
	}
	end, ok2 := validator.IsValidDate(r.End)
	if !ok2 {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must be in YYYY-MM-DD format",
		})
	}
	if len(errs) > 0 {
		return Period{}, errs
	}

	loc := now.Location()
	p := Period{
		Start: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc),
		End:   time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, loc),
	}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

type PeriodResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func NewPeriodResponse(p Period) PeriodResponse {
	return PeriodResponse{
		Start: p.Start.Format("2006-01-02"),
		End:   p.End.Format("2006-01-02"),
	}
}

type RowResponse struct {
	EmployeeID    string `json:"employee_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	MonthlySalary string `json:"monthly_salary"`
	FullDays      int    `json:"full_days"`
	LateDays      int    `json:"late_days"`
	Absents       int    `json:"absents"`
	LeaveDays     int    `json:"leave_days"`
	LOPAmount     string `json:"lop_amount"`
	FinalPay      string `json:"final_pay"`
	SalaryWarning bool   `json:"salary_warning"`
}

func NewRowResponse(r Row) RowResponse {
	return RowResponse{
		EmployeeID:    r.EmployeeID,
		Name:          r.Name,
		Email:         r.Email,
		Department:    r.Department,
		MonthlySalary: r.MonthlySalary.StringFixed(2),
		FullDays:      r.FullDays,
		LateDays:      r.LateDays,
		Absents:       r.Absents,
		LeaveDays:     r.LeaveDays,
		LOPAmount:     r.LOPAmount.StringFixed(2),
		FinalPay:      r.FinalPay.StringFixed(2),
		SalaryWarning: r.SalaryWarning,
	}
}

type RunResponse struct {
	Period   PeriodResponse `json:"period"`
	Currency string         `json:"currency"`
	Rows     []RowResponse  `json:"rows"`
	Warnings int            `json:"salary_warnings"`
	TotalPay string         `json:"total_final_pay"`
}

type EmployeePayrollResponse struct {
	Period   PeriodResponse `json:"period"`
	Currency string         `json:"currency"`
	Row      RowResponse    `json:"payroll"`
}
