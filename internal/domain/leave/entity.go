package leave

import (
	"time"
)

// Type is the leave-balance key, e.g. "sick".
type Type string

const (
	TypeSick   Type = "sick"
	TypeCasual Type = "casual"
	TypeAnnual Type = "annual"
)

// KnownTypes lists the leave types employees can request.
var KnownTypes = []Type{TypeSick, TypeCasual, TypeAnnual}

func (t Type) IsKnown() bool {
	for _, k := range KnownTypes {
		if k == t {
			return true
		}
	}
	return false
}

// DefaultBalances are seeded for every new employee.
func DefaultBalances() Balances {
	return Balances{
		TypeSick:   NewBalance(12, 0),
		TypeCasual: NewBalance(12, 0),
		TypeAnnual: NewBalance(15, 0),
	}
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "Pending"
	StatusApproved RequestStatus = "Approved"
	StatusRejected RequestStatus = "Rejected"
)

func (s RequestStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// LeaveRequest entity
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  Type
	StartDate  time.Time
	EndDate    time.Time
	TotalDays  float64

	Status        RequestStatus
	Reason        string
	AdminResponse string
	// BalanceApplied is set in the same statement that moves the request to
	// Approved, so the ledger is charged at most once.
	BalanceApplied bool
	DecidedBy      *string
	DecidedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName  *string
	EmployeeEmail *string
}

// InclusiveDays counts calendar days from start to end, both included.
func InclusiveDays(start, end time.Time) float64 {
	return end.Sub(start).Hours()/24 + 1
}
