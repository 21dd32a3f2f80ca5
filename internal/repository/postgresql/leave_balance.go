package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

func (r *leaveBalanceRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) (leave.Balances, error) {
	return r.query(ctx, `
		SELECT leave_type, total, used, remaining
		FROM leave_balances
		WHERE employee_id = $1
	`, employeeID)
}

func (r *leaveBalanceRepositoryImpl) GetForUpdate(ctx context.Context, employeeID string) (leave.Balances, error) {
	return r.query(ctx, `
		SELECT leave_type, total, used, remaining
		FROM leave_balances
		WHERE employee_id = $1
		FOR UPDATE
	`, employeeID)
}

func (r *leaveBalanceRepositoryImpl) query(ctx context.Context, query string, employeeID string) (leave.Balances, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave balances for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	balances := leave.Balances{}
	for rows.Next() {
		var leaveType leave.Type
		var b leave.Balance
		if err := rows.Scan(&leaveType, &b.Total, &b.Used, &b.Remaining); err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances[leaveType] = b
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return balances, nil
}

func (r *leaveBalanceRepositoryImpl) Save(ctx context.Context, employeeID string, leaveType leave.Type, balance leave.Balance) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE leave_balances
		SET total = $1, used = $2, remaining = $3, updated_at = NOW()
		WHERE employee_id = $4 AND leave_type = $5
	`, balance.Total, balance.Used, balance.Remaining, employeeID, leaveType)
	if err != nil {
		return fmt.Errorf("failed to save %s balance for employee %s: %w", leaveType, employeeID, err)
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

// Seed inserts missing balance rows and leaves existing ones untouched.
func (r *leaveBalanceRepositoryImpl) Seed(ctx context.Context, employeeID string, balances leave.Balances) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, leave_type, total, used, remaining, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (employee_id, leave_type) DO NOTHING
	`
	for _, leaveType := range leave.KnownTypes {
		b, ok := balances[leaveType]
		if !ok {
			continue
		}
		if _, err := q.Exec(ctx, query, employeeID, leaveType, b.Total, b.Used, b.Remaining); err != nil {
			return fmt.Errorf("failed to seed %s balance for employee %s: %w", leaveType, employeeID, err)
		}
	}
	return nil
}
