package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shancon-hr/attendance-backend-go/internal/config"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/employee"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/clock"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/email"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	emailService email.EmailService
	cfg          *config.Config
	clk          clock.Clock
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	emailService email.EmailService,
	cfg *config.Config,
	clk clock.Clock,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		emailService: emailService,
		cfg:          cfg,
		clk:          clk,
	}
}

// Register implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Register(ctx context.Context, req employee.RegisterEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	_, err := s.employeeRepo.GetByCode(ctx, req.Code)
	if err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}

	joinedAt := s.clk.Now()
	if req.JoinedAt != nil && *req.JoinedAt != "" {
		if parsed, err := time.Parse("2006-01-02", *req.JoinedAt); err == nil {
			joinedAt = parsed
		}
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Code:        req.Code,
		FullName:    req.FullName,
		Email:       req.Email,
		Department:  req.Department,
		Designation: req.Designation,
		Status:      employee.StatusActive,
		JoinedAt:    joinedAt,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	// Welcome email must not block or fail registration.
	go func(emp employee.Employee) {
		err := s.emailService.SendWelcome(emp.Email, emp.FullName, emp.Code, emp.Department, s.cfg.App.FrontendURL)
		if err != nil {
			slog.Error("Failed to send welcome email", "employee_id", emp.ID, "error", err)
		}
	}(created)

	return toResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return toResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeesResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 10
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toResponse(emp))
	}

	return employee.ListEmployeesResponse{
		Employees:  responses,
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.Department != nil {
		emp.Department = *req.Department
	}
	if req.Designation != nil {
		emp.Designation = *req.Designation
	}
	if req.Status != nil {
		emp.Status = employee.Status(*req.Status)
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return toResponse(emp), nil
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	if err := s.employeeRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}
	return nil
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:          emp.ID,
		Code:        emp.Code,
		FullName:    emp.FullName,
		Email:       emp.Email,
		Department:  emp.Department,
		Designation: emp.Designation,
		Status:      string(emp.Status),
		JoinedAt:    emp.JoinedAt.Format("2006-01-02"),
		CreatedAt:   emp.CreatedAt.Format(time.RFC3339),
	}
}
