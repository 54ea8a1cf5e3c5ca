package employee

import (
	"context"
)

// EmployeeRepository defines data access methods for the employee registry.
type EmployeeRepository interface {
	// Create creates a new employee record
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByID retrieves an employee by ID
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByCode retrieves an employee by employee code
	GetByCode(ctx context.Context, code string) (Employee, error)

	// List retrieves employees with filters and pagination
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)

	// Update updates an existing employee record
	Update(ctx context.Context, emp Employee) error

	// SoftDelete marks an employee as deleted without removing punches
	SoftDelete(ctx context.Context, id string) error
}
