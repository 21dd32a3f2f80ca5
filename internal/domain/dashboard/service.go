package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetAdminDashboard returns combined dashboard data using goroutines
	GetAdminDashboard(ctx context.Context) (*AdminDashboardResponse, error)

	GetEmployeeDashboard(ctx context.Context, employeeID string) (*EmployeeDashboardResponse, error)
}
