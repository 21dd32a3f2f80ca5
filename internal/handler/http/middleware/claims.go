package middleware

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
)

// EmployeeID returns the employee_id claim of the verified token.
func EmployeeID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	id, ok := claims["employee_id"].(string)
	if !ok || id == "" {
		return "", auth.ErrInvalidToken
	}
	return id, nil
}

func IsAdmin(ctx context.Context) bool {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return false
	}
	role, _ := claims["role"].(string)
	return role == string(employee.RoleAdmin)
}

// ExpiresAt returns the token's exp claim as unix seconds.
func ExpiresAt(ctx context.Context) int64 {
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return 0
	}
	exp := token.Expiration()
	if exp.IsZero() {
		return time.Now().Unix()
	}
	return exp.Unix()
}
