package employee

import (
	"time"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// EmergencyContact is stored as JSONB.
type EmergencyContact struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Phone    string `json:"phone"`
}

// Employee is the aggregate root owning attendance records, summaries and
// leave balances. Employees are deactivated, never deleted.
type Employee struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Department   string
	Position     string
	// Salary is the raw monthly salary text; payroll parses it.
	Salary           string
	EmergencyContact *EmergencyContact
	HireDate         *time.Time
	IsActive         bool
	// Version is the optimistic-concurrency token for profile edits.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}
