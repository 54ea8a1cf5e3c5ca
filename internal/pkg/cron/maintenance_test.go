package cron

import (
	"context"
	"testing"
	"time"

	"github.com/shancon-hr/attendance-backend-go/internal/domain/device"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/punch"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/clock"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sweepPunchRepo struct {
	stale []punch.Punch
	// cutoff passed to the last GetStaleOpenIns call
	gotCutoff time.Time
}

func (r *sweepPunchRepo) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	return p, nil
}

func (r *sweepPunchRepo) ListByRange(ctx context.Context, from time.Time, to time.Time) ([]punch.Punch, error) {
	return nil, nil
}

func (r *sweepPunchRepo) List(ctx context.Context, filter punch.PunchFilter) ([]punch.Punch, int64, error) {
	return nil, 0, nil
}

func (r *sweepPunchRepo) GetStaleOpenIns(ctx context.Context, cutoff time.Time) ([]punch.Punch, error) {
	r.gotCutoff = cutoff
	return r.stale, nil
}

type sweepDeviceRepo struct {
	silent []device.Device
}

func (r *sweepDeviceRepo) Create(ctx context.Context, d device.Device) (device.Device, error) {
	return d, nil
}

func (r *sweepDeviceRepo) GetByID(ctx context.Context, id string) (device.Device, error) {
	return device.Device{}, nil
}

func (r *sweepDeviceRepo) GetByFingerprint(ctx context.Context, fingerprint string) (device.Device, error) {
	return device.Device{}, nil
}

func (r *sweepDeviceRepo) List(ctx context.Context, filter device.DeviceFilter) ([]device.Device, int64, error) {
	return nil, 0, nil
}

func (r *sweepDeviceRepo) UpdateStatus(ctx context.Context, id string, status device.Status) error {
	return nil
}

func (r *sweepDeviceRepo) TouchLastSeen(ctx context.Context, id string, seenAt time.Time) error {
	return nil
}

func (r *sweepDeviceRepo) ListApprovedNotSeenSince(ctx context.Context, cutoff time.Time) ([]device.Device, error) {
	return r.silent, nil
}

func TestFlagStaleOpenIns(t *testing.T) {
	now := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)
	name := "Ayu Lestari"
	punchRepo := &sweepPunchRepo{
		stale: []punch.Punch{{
			ID:           "punch-1",
			EmployeeID:   "emp-1",
			EmployeeName: &name,
			Type:         punch.TypeIn,
			Timestamp:    now.Add(-30 * time.Hour),
		}},
	}
	hub := sse.NewHub()
	jobs := NewMaintenanceJobs(punchRepo, &sweepDeviceRepo{}, hub, clock.Fixed{Instant: now})

	events, cleanup := hub.Subscribe("hr-1")
	defer cleanup()

	require.NoError(t, jobs.FlagStaleOpenIns(context.Background()))

	assert.Equal(t, now.Add(-staleOpenInAge), punchRepo.gotCutoff)

	select {
	case ev := <-events:
		assert.Equal(t, "maintenance.stale_open_ins", ev.Event)
	case <-time.After(time.Second):
		t.Fatal("expected stale-IN broadcast, got none")
	}
}

func TestFlagStaleOpenIns_NoStaleNoBroadcast(t *testing.T) {
	hub := sse.NewHub()
	jobs := NewMaintenanceJobs(&sweepPunchRepo{}, &sweepDeviceRepo{}, hub, clock.Fixed{Instant: time.Now()})

	events, cleanup := hub.Subscribe("hr-1")
	defer cleanup()

	require.NoError(t, jobs.FlagStaleOpenIns(context.Background()))

	select {
	case ev := <-events:
		t.Fatalf("expected no broadcast, got %q", ev.Event)
	default:
	}
}

func TestFlagInactiveDevices(t *testing.T) {
	now := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)
	deviceRepo := &sweepDeviceRepo{
		silent: []device.Device{{
			ID:       "dev-1",
			Name:     "Lobby Kiosk",
			Location: "HQ Lobby",
			Status:   device.StatusApproved,
		}},
	}
	hub := sse.NewHub()
	jobs := NewMaintenanceJobs(&sweepPunchRepo{}, deviceRepo, hub, clock.Fixed{Instant: now})

	events, cleanup := hub.Subscribe("hr-1")
	defer cleanup()

	require.NoError(t, jobs.FlagInactiveDevices(context.Background()))

	select {
	case ev := <-events:
		assert.Equal(t, "maintenance.inactive_devices", ev.Event)
	case <-time.After(time.Second):
		t.Fatal("expected inactive-device broadcast, got none")
	}
}

func TestSchedulerRunOnce(t *testing.T) {
	scheduler := NewScheduler()
	defer scheduler.Stop()

	ran := 0
	scheduler.AddJob("probe", time.Hour, func(ctx context.Context) error {
		ran++
		return nil
	})

	scheduler.RunOnce(context.Background())
	assert.Equal(t, 1, ran)
}
