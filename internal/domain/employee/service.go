package employee

import (
	"context"
)

// EmployeeService defines business logic for the employee registry
type EmployeeService interface {
	// Register creates a new employee and sends a welcome email
	Register(ctx context.Context, req RegisterEmployeeRequest) (EmployeeResponse, error)

	// Get retrieves a single employee by ID
	Get(ctx context.Context, id string) (EmployeeResponse, error)

	// List retrieves employees with filters
	List(ctx context.Context, filter EmployeeFilter) (ListEmployeesResponse, error)

	// Update updates an employee record
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Deactivate soft deletes an employee; punches are kept for reporting
	Deactivate(ctx context.Context, id string) error
}
