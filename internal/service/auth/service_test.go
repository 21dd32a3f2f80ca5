package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/cmlabs-hris/attendance-backend/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
	testEmpID     = "0b8c6a3e-7c2e-4a8e-9d55-0a1f1d0f5a11"
)

type stubEmployees struct {
	employee.EmployeeRepository
	byID map[string]employee.Employee
}

func (s stubEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := s.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (s stubEmployees) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, e := range s.byID {
		if e.Email == strings.ToLower(email) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func setup(t *testing.T, active bool) (auth.AuthService, *jwt.JWTService) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp)
	require.NoError(t, err)

	repo := stubEmployees{byID: map[string]employee.Employee{
		testEmpID: {
			ID:           testEmpID,
			Name:         "Rin",
			Email:        "rin@example.com",
			PasswordHash: string(hash),
			Role:         employee.RoleAdmin,
			IsActive:     active,
		},
	}}
	return NewAuthService(repo, jwtService), jwtService
}

func TestLogin_Success(t *testing.T) {
	svc, jwtService := setup(t, true)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: " RIN@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, testEmpID, resp.Employee.ID)

	token, err := jwtauth.VerifyToken(jwtService.JWTAuth(), resp.AccessToken)
	require.NoError(t, err)
	role, _ := token.Get("role")
	assert.Equal(t, "admin", role)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name    string
		active  bool
		req     auth.LoginRequest
		wantErr error
	}{
		{"wrong password", true, auth.LoginRequest{Email: "rin@example.com", Password: "nope"}, auth.ErrInvalidCredentials},
		{"unknown email", true, auth.LoginRequest{Email: "ghost@example.com", Password: "password123"}, auth.ErrInvalidCredentials},
		{"inactive account", false, auth.LoginRequest{Email: "rin@example.com", Password: "password123"}, auth.ErrAccountInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setup(t, tt.active)
			_, err := svc.Login(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogin_Validation(t *testing.T) {
	svc, _ := setup(t, true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, jwtService := setup(t, true)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "rin@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.AccessToken, resp.ExpiresAt))
	assert.True(t, jwtService.IsTokenRevoked(resp.AccessToken))

	assert.ErrorIs(t, svc.Logout(context.Background(), "", 0), auth.ErrInvalidToken)
}

func TestSSEToken(t *testing.T) {
	svc, jwtService := setup(t, true)

	resp, err := svc.SSEToken(context.Background(), testEmpID)
	require.NoError(t, err)
	assert.Equal(t, 300, resp.ExpiresIn)

	id, err := jwtService.ValidateSSEToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, testEmpID, id)

	_, err = svc.SSEToken(context.Background(), "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestMe(t *testing.T) {
	svc, _ := setup(t, true)

	me, err := svc.Me(context.Background(), testEmpID)
	require.NoError(t, err)
	assert.Equal(t, "rin@example.com", me.Email)
}
