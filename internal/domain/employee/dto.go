package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Password         string            `json:"password"`
	Role             string            `json:"role"`
	Department       string            `json:"department"`
	Position         string            `json:"position"`
	Salary           string            `json:"salary"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	HireDate         *string           `json:"hire_date,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Role == "" {
		r.Role = string(RoleEmployee)
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}
	if !Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be employee or admin",
		})
	}
	if msg := salaryMessage(r.Salary); msg != "" {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: msg,
		})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hire_date",
				Message: "hire_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID               string            `json:"-"`
	Version          int               `json:"version"`
	Name             *string           `json:"name,omitempty"`
	Role             *string           `json:"role,omitempty"`
	Department       *string           `json:"department,omitempty"`
	Position         *string           `json:"position,omitempty"`
	Salary           *string           `json:"salary,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if r.Version <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "version",
			Message: "version is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Role != nil && !Role(*r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be employee or admin",
		})
	}
	if r.Salary != nil {
		if msg := salaryMessage(*r.Salary); msg != "" {
			errs = append(errs, validator.ValidationError{
				Field:   "salary",
				Message: msg,
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// New salary values must be plain non-negative numbers; legacy rows may still
// hold text payroll cannot parse.
func salaryMessage(s string) string {
	if validator.IsEmpty(s) {
		return "salary is required"
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return "salary must be a number"
	}
	if d.IsNegative() {
		return "salary must not be negative"
	}
	return ""
}

type EmployeeFilter struct {
	Department *string
	Active     *bool
	Search     *string
	Page       int
	Limit      int
}

func (f *EmployeeFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

func (f EmployeeFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type EmployeeResponse struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Role             Role              `json:"role"`
	Department       string            `json:"department"`
	Position         string            `json:"position"`
	Salary           string            `json:"salary"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	HireDate         *string           `json:"hire_date,omitempty"`
	IsActive         bool              `json:"is_active"`
	Version          int               `json:"version"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID,
		Name:             e.Name,
		Email:            e.Email,
		Role:             e.Role,
		Department:       e.Department,
		Position:         e.Position,
		Salary:           e.Salary,
		EmergencyContact: e.EmergencyContact,
		IsActive:         e.IsActive,
		Version:          e.Version,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	if e.HireDate != nil {
		s := e.HireDate.Format("2006-01-02")
		resp.HireDate = &s
	}
	return resp
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
