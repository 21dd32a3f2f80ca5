package leave

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-backend/internal/repository/postgresql"
)

// EventPublisher is the part of sse.Hub the service needs.
type EventPublisher interface {
	Publish(topic string, event sse.Event)
}

var _ leave.LeaveService = (*LeaveServiceImpl)(nil)

type LeaveServiceImpl struct {
	tx postgresql.Transactor
	leave.LeaveRequestRepository
	leave.LeaveBalanceRepository
	employeeRepo employee.EmployeeRepository
	events       EventPublisher
	mailer       email.EmailService
	// background runs notification work off the request path
	background func(fn func())
}

func NewLeaveService(
	tx postgresql.Transactor,
	requestRepo leave.LeaveRequestRepository,
	balanceRepo leave.LeaveBalanceRepository,
	employeeRepo employee.EmployeeRepository,
	events EventPublisher,
	mailer email.EmailService,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: requestRepo,
		LeaveBalanceRepository: balanceRepo,
		employeeRepo:           employeeRepo,
		events:                 events,
		mailer:                 mailer,
		background:             func(fn func()) { go fn() },
	}
}

// CreateRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateRequest(ctx context.Context, employeeID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := l.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !emp.IsActive {
		return leave.LeaveRequestResponse{}, employee.ErrEmployeeInactive
	}

	start, end := req.Dates()
	created, err := l.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leave.Type(req.LeaveType),
		StartDate:  start,
		EndDate:    end,
		TotalDays:  leave.InclusiveDays(start, end),
		Reason:     req.Reason,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	created.EmployeeName = &emp.Name

	resp := leave.NewLeaveRequestResponse(created)
	l.events.Publish(sse.AdminTopic, sse.Event{Event: sse.EventLeaveRequested, Data: resp})

	slog.Info("Leave request created", "request_id", created.ID, "employee_id", employeeID, "leave_type", created.LeaveType, "days", created.TotalDays)
	return resp, nil
}

// Approve moves a Pending request to Approved and charges the balance in
// one transaction. A repeated or concurrent approval fails with
// ErrLeaveRequestAlreadyProcessed and charges nothing.
func (l *LeaveServiceImpl) Approve(ctx context.Context, req leave.DecisionRequest) (leave.ApprovalResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApprovalResponse{}, err
	}

	var (
		approved leave.LeaveRequest
		balance  leave.Balance
	)
	err := l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		approved, err = l.LeaveRequestRepository.MarkApproved(txCtx, req.RequestID, req.AdminID, req.AdminResponse)
		if err != nil {
			return err
		}

		balances, err := l.LeaveBalanceRepository.GetForUpdate(txCtx, approved.EmployeeID)
		if err != nil {
			return err
		}
		balance, err = leave.ApplyApproval(balances, string(approved.LeaveType), approved.TotalDays)
		if err != nil {
			return err
		}
		if balance.Remaining < 0 {
			slog.Warn("Leave approved beyond remaining balance",
				"request_id", approved.ID,
				"employee_id", approved.EmployeeID,
				"leave_type", approved.LeaveType,
				"remaining", balance.Remaining,
			)
		}
		return l.LeaveBalanceRepository.Save(txCtx, approved.EmployeeID, approved.LeaveType, balance)
	})
	if err != nil {
		return leave.ApprovalResponse{}, err
	}

	slog.Info("Leave request approved", "request_id", approved.ID, "employee_id", approved.EmployeeID, "used", balance.Used, "remaining", balance.Remaining)

	resp := leave.NewLeaveRequestResponse(approved)
	l.notifyDecision(ctx, approved, sse.EventLeaveApproved, &balance)
	return leave.ApprovalResponse{Request: resp, Balance: balance}, nil
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, req leave.DecisionRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	rejected, err := l.LeaveRequestRepository.MarkRejected(ctx, req.RequestID, req.AdminID, req.AdminResponse)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request rejected", "request_id", rejected.ID, "employee_id", rejected.EmployeeID)
	l.notifyDecision(ctx, rejected, sse.EventLeaveRejected, nil)
	return leave.NewLeaveRequestResponse(rejected), nil
}

// notifyDecision pushes the SSE event and emails the employee. Failures are
// logged only; the decision is already committed.
func (l *LeaveServiceImpl) notifyDecision(ctx context.Context, lr leave.LeaveRequest, event string, balance *leave.Balance) {
	l.events.Publish(lr.EmployeeID, sse.Event{Event: event, Data: leave.NewLeaveRequestResponse(lr)})

	emp, err := l.employeeRepo.GetByID(context.WithoutCancel(ctx), lr.EmployeeID)
	if err != nil {
		slog.Error("Failed to load employee for leave email", "employee_id", lr.EmployeeID, "error", err)
		return
	}

	data := email.LeaveDecisionData{
		EmployeeName:  emp.Name,
		LeaveType:     string(lr.LeaveType),
		StartDate:     lr.StartDate.Format("2006-01-02"),
		EndDate:       lr.EndDate.Format("2006-01-02"),
		TotalDays:     lr.TotalDays,
		Status:        string(lr.Status),
		AdminResponse: lr.AdminResponse,
	}
	if balance != nil {
		data.HasBalance = true
		data.Remaining = balance.Remaining
		data.Total = balance.Total
	}

	l.background(func() {
		if err := l.mailer.SendLeaveDecision(emp.Email, data); err != nil {
			slog.Error("Failed to send leave decision email", "request_id", lr.ID, "error", err)
		}
	})
}

// Get implements leave.LeaveService.
func (l *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	lr, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(lr), nil
}

// ListMine implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMine(ctx context.Context, employeeID string, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	filter.EmployeeID = &employeeID
	return l.List(ctx, filter)
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, lr := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(lr))
	}

	return leave.ListLeaveRequestResponse{
		Requests:   responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// GetBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) GetBalances(ctx context.Context, employeeID string) (leave.BalancesResponse, error) {
	if _, err := l.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return leave.BalancesResponse{}, err
	}

	balances, err := l.LeaveBalanceRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return leave.BalancesResponse{}, err
	}
	return leave.BalancesResponse{EmployeeID: employeeID, Balances: balances}, nil
}

// SetBalance changes an employee's allotment for one leave type, keeping
// what was already used.
func (l *LeaveServiceImpl) SetBalance(ctx context.Context, req leave.SetBalanceRequest) (leave.BalancesResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalancesResponse{}, err
	}
	if _, err := l.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.BalancesResponse{}, err
	}

	leaveType := leave.Type(req.LeaveType)
	err := l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		balances, err := l.LeaveBalanceRepository.GetForUpdate(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}
		current, ok := balances[leaveType]
		if !ok {
			return l.LeaveBalanceRepository.Seed(txCtx, req.EmployeeID, leave.Balances{leaveType: leave.NewBalance(req.Total, 0)})
		}
		return l.LeaveBalanceRepository.Save(txCtx, req.EmployeeID, leaveType, current.SetTotal(req.Total))
	})
	if err != nil {
		return leave.BalancesResponse{}, err
	}

	slog.Info("Leave balance updated", "employee_id", req.EmployeeID, "leave_type", leaveType, "total", req.Total)
	return l.GetBalances(ctx, req.EmployeeID)
}
