package postgresql

import (
	"context"
	"fmt"

	"github.com/shancon-hr/attendance-backend-go/internal/domain/employee"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, code, full_name, email, department, designation, status, joined_at, created_at, updated_at, deleted_at`

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`
		INSERT INTO employees (code, full_name, email, department, designation, status, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`, employeeColumns)

	var created employee.Employee
	err := q.QueryRow(ctx, query,
		emp.Code, emp.FullName, emp.Email, emp.Department, emp.Designation, emp.Status, emp.JoinedAt,
	).Scan(
		&created.ID, &created.Code, &created.FullName, &created.Email,
		&created.Department, &created.Designation, &created.Status,
		&created.JoinedAt, &created.CreatedAt, &created.UpdatedAt, &created.DeletedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`, employeeColumns)

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.Code, &emp.FullName, &emp.Email,
		&emp.Department, &emp.Designation, &emp.Status,
		&emp.JoinedAt, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

// GetByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE code = $1 AND deleted_at IS NULL
	`, employeeColumns)

	var emp employee.Employee
	err := q.QueryRow(ctx, query, code).Scan(
		&emp.ID, &emp.Code, &emp.FullName, &emp.Email,
		&emp.Department, &emp.Designation, &emp.Status,
		&emp.JoinedAt, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	whereClause := "WHERE deleted_at IS NULL"
	args := []interface{}{}
	argIndex := 1

	if filter.Search != nil && *filter.Search != "" {
		whereClause += fmt.Sprintf(` AND (code ILIKE $%d OR full_name ILIKE $%d OR department ILIKE $%d OR designation ILIKE $%d)`,
			argIndex, argIndex, argIndex, argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	if filter.Department != nil && *filter.Department != "" {
		whereClause += fmt.Sprintf(" AND department = $%d", argIndex)
		args = append(args, *filter.Department)
		argIndex++
	}

	if filter.Status != nil && *filter.Status != "" {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	// Count total
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM employees %s`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Get data with pagination
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 10
	}

	offset := (filter.Page - 1) * filter.Limit

	sortBy := "full_name"
	switch filter.SortBy {
	case "code", "department", "joined_at", "created_at":
		sortBy = filter.SortBy
	}
	sortOrder := "ASC"
	if filter.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, employeeColumns, whereClause, sortBy, sortOrder, argIndex, argIndex+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.Code, &emp.FullName, &emp.Email,
			&emp.Department, &emp.Designation, &emp.Status,
			&emp.JoinedAt, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET full_name = $1, email = $2, department = $3, designation = $4, status = $5, joined_at = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		emp.FullName, emp.Email, emp.Department, emp.Designation, emp.Status, emp.JoinedAt, emp.ID,
	).Scan(&updatedID)
	if err != nil {
		return err
	}

	return nil
}

// SoftDelete implements employee.EmployeeRepository.
// Punch history is kept so past reports stay reproducible.
func (e *employeeRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET status = $1, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, employee.StatusInactive, id).Scan(&deletedID)
	if err != nil {
		return err
	}

	return nil
}
