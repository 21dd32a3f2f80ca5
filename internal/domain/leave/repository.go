package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)

	// MarkApproved moves a Pending request with balance_applied = false to
	// Approved and sets balance_applied in the same statement. Returns
	// ErrLeaveRequestAlreadyProcessed when no such row exists.
	MarkApproved(ctx context.Context, id, decidedBy, response string) (LeaveRequest, error)

	// MarkRejected moves a Pending request to Rejected.
	MarkRejected(ctx context.Context, id, decidedBy, response string) (LeaveRequest, error)

	// ListApprovedOverlapping returns approved requests intersecting [start, end).
	ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveRequest, error)
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	GetByEmployee(ctx context.Context, employeeID string) (Balances, error)

	// GetForUpdate locks the employee's balance rows until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, employeeID string) (Balances, error)

	Save(ctx context.Context, employeeID string, leaveType Type, balance Balance) error
	Seed(ctx context.Context, employeeID string, balances Balances) error
}
