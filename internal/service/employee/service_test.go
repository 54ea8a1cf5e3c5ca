package employee

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shancon-hr/attendance-backend-go/internal/config"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/employee"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
	nextID    int
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (r *stubEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	emp.ID = fmt.Sprintf("emp-%d", r.nextID)
	emp.CreatedAt = time.Now()
	emp.UpdatedAt = emp.CreatedAt
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, pgx.ErrNoRows
	}
	return emp, nil
}

func (r *stubEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, emp := range r.employees {
		if emp.Code == code {
			return emp, nil
		}
	}
	return employee.Employee{}, pgx.ErrNoRows
}

func (r *stubEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []employee.Employee
	for _, emp := range r.employees {
		if filter.Status != nil && string(emp.Status) != *filter.Status {
			continue
		}
		out = append(out, emp)
	}
	return out, int64(len(out)), nil
}

func (r *stubEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[emp.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.employees[emp.ID] = emp
	return nil
}

func (r *stubEmployeeRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	emp.Status = employee.StatusInactive
	emp.DeletedAt = &now
	r.employees[id] = emp
	return nil
}

type stubEmailService struct {
	mu   sync.Mutex
	sent []string
}

func (s *stubEmailService) SendWelcome(to, employeeName, employeeCode, department, portalLink string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to)
	return nil
}

func (s *stubEmailService) sentTo() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.FrontendURL = "http://localhost:3000"
	return cfg
}

func registerRequest() employee.RegisterEmployeeRequest {
	return employee.RegisterEmployeeRequest{
		Code:        "EMP-001",
		FullName:    "Ayu Lestari",
		Email:       "ayu@example.com",
		Department:  "Engineering",
		Designation: "Developer",
	}
}

func TestEmployeeService_Register(t *testing.T) {
	repo := newStubEmployeeRepo()
	mail := &stubEmailService{}
	now := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)
	svc := NewEmployeeService(repo, mail, testConfig(), clock.Fixed{Instant: now})

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "EMP-001", resp.Code)
	assert.Equal(t, "active", resp.Status)
	// JoinedAt defaults to the clock when the request omits it
	assert.Equal(t, "2024-03-11", resp.JoinedAt)

	// Welcome email is sent asynchronously
	assert.Eventually(t, func() bool {
		return len(mail.sentTo()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "ayu@example.com", mail.sentTo()[0])
}

func TestEmployeeService_RegisterDuplicateCode(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, &stubEmailService{}, testConfig(), clock.Fixed{Instant: time.Now()})
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.Email = "other@example.com"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestEmployeeService_RegisterWithExplicitJoinDate(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo(), &stubEmailService{}, testConfig(), clock.Fixed{Instant: time.Now()})

	joined := "2023-06-01"
	req := registerRequest()
	req.JoinedAt = &joined

	resp, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2023-06-01", resp.JoinedAt)
}

func TestEmployeeService_GetNotFound(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo(), &stubEmailService{}, testConfig(), clock.Fixed{Instant: time.Now()})

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_UpdateMergesFields(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo(), &stubEmailService{}, testConfig(), clock.Fixed{Instant: time.Now()})
	ctx := context.Background()

	created, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	dept := "Platform"
	updated, err := svc.Update(ctx, employee.UpdateEmployeeRequest{
		ID:         created.ID,
		Department: &dept,
	})
	require.NoError(t, err)

	assert.Equal(t, "Platform", updated.Department)
	// Untouched fields survive the merge
	assert.Equal(t, "Ayu Lestari", updated.FullName)
	assert.Equal(t, "ayu@example.com", updated.Email)
}

func TestEmployeeService_DeactivateKeepsRecord(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, &stubEmailService{}, testConfig(), clock.Fixed{Instant: time.Now()})
	ctx := context.Background()

	created, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, created.ID))

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, employee.StatusInactive, stored.Status)
	assert.NotNil(t, stored.DeletedAt)
}

func TestEmployeeService_DeactivateNotFound(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo(), &stubEmailService{}, testConfig(), clock.Fixed{Instant: time.Now()})

	err := svc.Deactivate(context.Background(), "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_ListFiltersByStatus(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo(), &stubEmailService{}, testConfig(), clock.Fixed{Instant: time.Now()})
	ctx := context.Background()

	first, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	second := registerRequest()
	second.Code = "EMP-002"
	second.Email = "budi@example.com"
	second.FullName = "Budi Santoso"
	_, err = svc.Register(ctx, second)
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, first.ID))

	status := "active"
	resp, err := svc.List(ctx, employee.EmployeeFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, resp.Employees, 1)
	assert.Equal(t, "EMP-002", resp.Employees[0].Code)
}
