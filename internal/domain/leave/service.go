package leave

import (
	"context"
)

type LeaveService interface {
	// Request
	CreateRequest(ctx context.Context, employeeID string, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	Approve(ctx context.Context, req DecisionRequest) (ApprovalResponse, error)
	Reject(ctx context.Context, req DecisionRequest) (LeaveRequestResponse, error)
	Get(ctx context.Context, id string) (LeaveRequestResponse, error)
	ListMine(ctx context.Context, employeeID string, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	List(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	// Balance
	GetBalances(ctx context.Context, employeeID string) (BalancesResponse, error)
	SetBalance(ctx context.Context, req SetBalanceRequest) (BalancesResponse, error)
}
