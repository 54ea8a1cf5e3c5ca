package punch

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/device"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/employee"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/punch"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/clock"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPunchRepo struct {
	punches []punch.Punch
}

func (r *stubPunchRepo) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	p.ID = fmt.Sprintf("punch-%d", len(r.punches)+1)
	p.CreatedAt = time.Now()
	r.punches = append(r.punches, p)
	return p, nil
}

func (r *stubPunchRepo) ListByRange(ctx context.Context, from time.Time, to time.Time) ([]punch.Punch, error) {
	return nil, nil
}

func (r *stubPunchRepo) List(ctx context.Context, filter punch.PunchFilter) ([]punch.Punch, int64, error) {
	return r.punches, int64(len(r.punches)), nil
}

func (r *stubPunchRepo) GetStaleOpenIns(ctx context.Context, cutoff time.Time) ([]punch.Punch, error) {
	return nil, nil
}

type stubEmployeeRepo struct {
	byID   map[string]employee.Employee
	byCode map[string]employee.Employee
}

func (r *stubEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (r *stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if emp, ok := r.byID[id]; ok {
		return emp, nil
	}
	return employee.Employee{}, pgx.ErrNoRows
}

func (r *stubEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	if emp, ok := r.byCode[code]; ok {
		return emp, nil
	}
	return employee.Employee{}, pgx.ErrNoRows
}

func (r *stubEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (r *stubEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error {
	return nil
}

func (r *stubEmployeeRepo) SoftDelete(ctx context.Context, id string) error {
	return nil
}

type stubFileService struct {
	uploads int
}

func (s *stubFileService) UploadPunchProof(ctx context.Context, employeeID string, punchedAt time.Time, file io.Reader, filename string, punchType string) (string, error) {
	s.uploads++
	return "punches/2024-03-11/" + employeeID + ".jpg", nil
}

func (s *stubFileService) DeleteFile(ctx context.Context, path string) error {
	return nil
}

func (s *stubFileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "http://localhost:8080/uploads/" + path, nil
}

type fixture struct {
	svc        punch.PunchService
	punchRepo  *stubPunchRepo
	deviceRepo *stubDeviceRepo
	hub        *sse.Hub
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	now := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	emp := employee.Employee{
		ID:          "emp-1",
		Code:        "EMP-001",
		FullName:    "Ayu Lestari",
		Department:  "Engineering",
		Designation: "Developer",
		Status:      employee.StatusActive,
	}
	inactive := employee.Employee{
		ID:     "emp-2",
		Code:   "EMP-002",
		Status: employee.StatusInactive,
	}

	punchRepo := &stubPunchRepo{}
	deviceRepo := newStubDeviceRepo()
	hub := sse.NewHub()
	svc := NewPunchService(
		punchRepo,
		&stubEmployeeRepo{
			byID:   map[string]employee.Employee{"emp-1": emp, "emp-2": inactive},
			byCode: map[string]employee.Employee{"EMP-001": emp, "EMP-002": inactive},
		},
		deviceRepo,
		&stubFileService{},
		hub,
		clock.Fixed{Instant: now},
	)

	return fixture{svc: svc, punchRepo: punchRepo, deviceRepo: deviceRepo, hub: hub}
}

func markRequest(fingerprint string) punch.MarkPunchRequest {
	return punch.MarkPunchRequest{
		EmployeeID:        "emp-1",
		Type:              "IN",
		DeviceFingerprint: fingerprint,
	}
}

func TestPunchService_MarkFromApprovedDevice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dev := f.deviceRepo.seed(t, "fp-1", device.StatusApproved)

	resp, err := f.svc.Mark(ctx, markRequest("fp-1"))
	require.NoError(t, err)

	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "IN", resp.Type)
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Ayu Lestari", *resp.EmployeeName)
	require.NotNil(t, resp.DeviceID)
	assert.Equal(t, dev.ID, *resp.DeviceID)
	// Timestamp defaults to the injected clock
	assert.Equal(t, "2024-03-11T09:00:00Z", resp.Timestamp)

	// Accepting a punch records kiosk activity
	stored, err := f.deviceRepo.GetByID(ctx, dev.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastSeenAt)
}

func TestPunchService_MarkResolvesEmployeeCode(t *testing.T) {
	f := newFixture(t)
	f.deviceRepo.seed(t, "fp-1", device.StatusApproved)

	req := markRequest("fp-1")
	req.EmployeeID = "EMP-001"

	resp, err := f.svc.Mark(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", resp.EmployeeID)
}

func TestPunchService_MarkHonorsExplicitTimestamp(t *testing.T) {
	f := newFixture(t)
	f.deviceRepo.seed(t, "fp-1", device.StatusApproved)

	ts := "2024-03-10T22:15:00Z"
	req := markRequest("fp-1")
	req.Timestamp = &ts

	resp, err := f.svc.Mark(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ts, resp.Timestamp)
}

func TestPunchService_MarkRejectsUnknownDevice(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Mark(context.Background(), markRequest("fp-unknown"))
	assert.ErrorIs(t, err, device.ErrDeviceNotFound)
}

func TestPunchService_MarkRejectsPendingDevice(t *testing.T) {
	f := newFixture(t)
	f.deviceRepo.seed(t, "fp-1", device.StatusPending)

	_, err := f.svc.Mark(context.Background(), markRequest("fp-1"))
	assert.ErrorIs(t, err, device.ErrDeviceNotApproved)
}

func TestPunchService_MarkRejectsRevokedDevice(t *testing.T) {
	f := newFixture(t)
	f.deviceRepo.seed(t, "fp-1", device.StatusRevoked)

	_, err := f.svc.Mark(context.Background(), markRequest("fp-1"))
	assert.ErrorIs(t, err, device.ErrDeviceRevoked)
}

func TestPunchService_MarkRejectsInactiveEmployee(t *testing.T) {
	f := newFixture(t)
	f.deviceRepo.seed(t, "fp-1", device.StatusApproved)

	req := markRequest("fp-1")
	req.EmployeeID = "emp-2"

	_, err := f.svc.Mark(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestPunchService_MarkRejectsUnknownEmployee(t *testing.T) {
	f := newFixture(t)
	f.deviceRepo.seed(t, "fp-1", device.StatusApproved)

	req := markRequest("fp-1")
	req.EmployeeID = "nobody"

	_, err := f.svc.Mark(context.Background(), req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPunchService_MarkBroadcastsEvent(t *testing.T) {
	f := newFixture(t)
	f.deviceRepo.seed(t, "fp-1", device.StatusApproved)

	events, cleanup := f.hub.Subscribe("hr-1")
	defer cleanup()

	_, err := f.svc.Mark(context.Background(), markRequest("fp-1"))
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, "punch.marked", ev.Event)
	case <-time.After(time.Second):
		t.Fatal("expected punch.marked broadcast, got none")
	}
}

func TestPunchService_ListDefaultsPagination(t *testing.T) {
	f := newFixture(t)
	f.deviceRepo.seed(t, "fp-1", device.StatusApproved)

	_, err := f.svc.Mark(context.Background(), markRequest("fp-1"))
	require.NoError(t, err)

	resp, err := f.svc.List(context.Background(), punch.PunchFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.Limit)
	assert.Equal(t, int64(1), resp.TotalItems)
	require.Len(t, resp.Punches, 1)
}

type stubDeviceRepo struct {
	devices map[string]device.Device
	nextID  int
}

func newStubDeviceRepo() *stubDeviceRepo {
	return &stubDeviceRepo{devices: make(map[string]device.Device)}
}

func (r *stubDeviceRepo) seed(t *testing.T, fingerprint string, status device.Status) device.Device {
	t.Helper()
	r.nextID++
	d := device.Device{
		ID:          fmt.Sprintf("dev-%d", r.nextID),
		Name:        "Kiosk " + fingerprint,
		Fingerprint: fingerprint,
		Status:      status,
		CreatedAt:   time.Now(),
	}
	r.devices[d.ID] = d
	return d
}

func (r *stubDeviceRepo) Create(ctx context.Context, d device.Device) (device.Device, error) {
	r.nextID++
	d.ID = fmt.Sprintf("dev-%d", r.nextID)
	d.CreatedAt = time.Now()
	r.devices[d.ID] = d
	return d, nil
}

func (r *stubDeviceRepo) GetByID(ctx context.Context, id string) (device.Device, error) {
	d, ok := r.devices[id]
	if !ok {
		return device.Device{}, pgx.ErrNoRows
	}
	return d, nil
}

func (r *stubDeviceRepo) GetByFingerprint(ctx context.Context, fingerprint string) (device.Device, error) {
	for _, d := range r.devices {
		if d.Fingerprint == fingerprint {
			return d, nil
		}
	}
	return device.Device{}, pgx.ErrNoRows
}

func (r *stubDeviceRepo) List(ctx context.Context, filter device.DeviceFilter) ([]device.Device, int64, error) {
	var out []device.Device
	for _, d := range r.devices {
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

func (r *stubDeviceRepo) UpdateStatus(ctx context.Context, id string, status device.Status) error {
	d, ok := r.devices[id]
	if !ok {
		return pgx.ErrNoRows
	}
	d.Status = status
	r.devices[id] = d
	return nil
}

func (r *stubDeviceRepo) TouchLastSeen(ctx context.Context, id string, seenAt time.Time) error {
	d, ok := r.devices[id]
	if !ok {
		return pgx.ErrNoRows
	}
	d.LastSeenAt = &seenAt
	r.devices[id] = d
	return nil
}

func (r *stubDeviceRepo) ListApprovedNotSeenSince(ctx context.Context, cutoff time.Time) ([]device.Device, error) {
	return nil, nil
}
