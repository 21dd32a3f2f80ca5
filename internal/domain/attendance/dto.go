package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
)

type AttendanceFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	var start, end time.Time
	var startOK, endOK bool
	if f.StartDate != nil {
		if start, startOK = validator.IsValidDate(*f.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if end, endOK = validator.IsValidDate(*f.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of Present, Late, Absent, On Leave",
		})
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (f AttendanceFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type UpdateRecordRequest struct {
	ID        int64     `json:"-"`
	CheckIn   *string   `json:"check_in,omitempty"`
	CheckOut  *string   `json:"check_out,omitempty"`
	Status    *string   `json:"status,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.CheckIn != nil && *r.CheckIn != "" && !validator.IsValidClock(*r.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in must be in HH:MM format",
		})
	}
	if r.CheckOut != nil && *r.CheckOut != "" && !validator.IsValidClock(*r.CheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must be in HH:MM format",
		})
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of Present, Late, Absent, On Leave",
		})
	}
	if r.UpdatedAt.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "updated_at",
			Message: "updated_at is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID           int64     `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName *string   `json:"employee_name,omitempty"`
	Date         string    `json:"date"`
	CheckIn      *string   `json:"check_in"`
	CheckOut     *string   `json:"check_out"`
	Status       Status    `json:"status"`
	Hours        float64   `json:"hours"`
	IsLate       bool      `json:"is_late"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewRecordResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Date:         r.Date.Format(DateLayout),
		CheckIn:      r.CheckIn,
		CheckOut:     r.CheckOut,
		Status:       r.Status,
		Hours:        r.Hours,
		IsLate:       r.IsLate,
		UpdatedAt:    r.UpdatedAt,
	}
}

type ListRecordResponse struct {
	Records    []RecordResponse `json:"records"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

type SummaryResponse struct {
	EmployeeID string          `json:"employee_id"`
	Weekly     []PeriodSummary `json:"weekly"`
	Monthly    []PeriodSummary `json:"monthly"`
	// Skipped counts records left out for a missing or unparseable date or status.
	Skipped int `json:"skipped"`
}
