package auth

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/employee"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string, expiresAt int64) error
	Me(ctx context.Context, employeeID string) (employee.EmployeeResponse, error)
	SSEToken(ctx context.Context, employeeID string) (SSETokenResponse, error)
}
