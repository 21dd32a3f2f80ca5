package leave

import (
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`

	start time.Time
	end   time.Time
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Type(r.LeaveType).IsKnown() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of sick, casual, annual",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.start, r.end = start, end
	return nil
}

// Dates returns the parsed period. Valid only after Validate succeeded.
func (r CreateLeaveRequestRequest) Dates() (time.Time, time.Time) {
	return r.start, r.end
}

// DecisionRequest approves or rejects a pending request.
type DecisionRequest struct {
	RequestID     string `json:"-"`
	AdminID       string `json:"-"`
	AdminResponse string `json:"admin_response"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if len(r.AdminResponse) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "admin_response",
			Message: "admin_response must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetBalanceRequest struct {
	EmployeeID string  `json:"-"`
	LeaveType  string  `json:"leave_type"`
	Total      float64 `json:"total"`
}

func (r *SetBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}
	if !Type(r.LeaveType).IsKnown() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of sick, casual, annual",
		})
	}
	if r.Total < 0 || math.IsNaN(r.Total) || math.IsInf(r.Total, 0) {
		errs = append(errs, validator.ValidationError{
			Field:   "total",
			Message: "total must be a non-negative number",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestFilter struct {
	EmployeeID *string
	Status     *string
	LeaveType  *string
	Page       int
	Limit      int
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}
	if f.Status != nil && !RequestStatus(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of Pending, Approved, Rejected",
		})
	}
	if f.LeaveType != nil && !Type(*f.LeaveType).IsKnown() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of sick, casual, annual",
		})
	}
	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (f LeaveRequestFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type LeaveRequestResponse struct {
	ID             string        `json:"id"`
	EmployeeID     string        `json:"employee_id"`
	EmployeeName   *string       `json:"employee_name,omitempty"`
	LeaveType      Type          `json:"leave_type"`
	StartDate      string        `json:"start_date"`
	EndDate        string        `json:"end_date"`
	TotalDays      float64       `json:"total_days"`
	Status         RequestStatus `json:"status"`
	Reason         string        `json:"reason"`
	AdminResponse  string        `json:"admin_response,omitempty"`
	BalanceApplied bool          `json:"balance_applied"`
	DecidedBy      *string       `json:"decided_by,omitempty"`
	DecidedAt      *time.Time    `json:"decided_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func NewLeaveRequestResponse(lr LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:             lr.ID,
		EmployeeID:     lr.EmployeeID,
		EmployeeName:   lr.EmployeeName,
		LeaveType:      lr.LeaveType,
		StartDate:      lr.StartDate.Format("2006-01-02"),
		EndDate:        lr.EndDate.Format("2006-01-02"),
		TotalDays:      lr.TotalDays,
		Status:         lr.Status,
		Reason:         lr.Reason,
		AdminResponse:  lr.AdminResponse,
		BalanceApplied: lr.BalanceApplied,
		DecidedBy:      lr.DecidedBy,
		DecidedAt:      lr.DecidedAt,
		CreatedAt:      lr.CreatedAt,
		UpdatedAt:      lr.UpdatedAt,
	}
}

type ListLeaveRequestResponse struct {
	Requests   []LeaveRequestResponse `json:"requests"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

type BalancesResponse struct {
	EmployeeID string   `json:"employee_id"`
	Balances   Balances `json:"balances"`
}

type ApprovalResponse struct {
	Request LeaveRequestResponse `json:"request"`
	Balance Balance              `json:"balance"`
}
