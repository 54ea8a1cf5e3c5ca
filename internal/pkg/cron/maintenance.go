package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shancon-hr/attendance-backend-go/internal/domain/device"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/punch"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/clock"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/sse"
)

const (
	// An IN with no matching OUT after this long is considered stale.
	// It is never auto-closed: the reconciliation engine reports the day
	// as "Absent (No OUT)", the sweep only surfaces it to dashboards.
	staleOpenInAge = 24 * time.Hour

	// Approved kiosks silent for this long get flagged.
	deviceInactivityAge = 7 * 24 * time.Hour
)

type MaintenanceJobs struct {
	punchRepo  punch.PunchRepository
	deviceRepo device.DeviceRepository
	sseHub     *sse.Hub
	clk        clock.Clock
}

func NewMaintenanceJobs(
	punchRepo punch.PunchRepository,
	deviceRepo device.DeviceRepository,
	sseHub *sse.Hub,
	clk clock.Clock,
) *MaintenanceJobs {
	return &MaintenanceJobs{
		punchRepo:  punchRepo,
		deviceRepo: deviceRepo,
		sseHub:     sseHub,
		clk:        clk,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("flag_stale_open_ins", 1*time.Hour, j.FlagStaleOpenIns)
	scheduler.AddJob("flag_inactive_devices", 6*time.Hour, j.FlagInactiveDevices)
}

// FlagStaleOpenIns finds employees whose latest punch is an IN older than
// staleOpenInAge and pushes an alert to subscribed dashboards.
func (j *MaintenanceJobs) FlagStaleOpenIns(ctx context.Context) error {
	cutoff := j.clk.Now().Add(-staleOpenInAge)

	stale, err := j.punchRepo.GetStaleOpenIns(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to get stale open INs: %w", err)
	}

	if len(stale) == 0 {
		slog.Debug("Cron: no stale open INs found")
		return nil
	}

	for _, p := range stale {
		slog.Warn("Cron: open IN without matching OUT",
			"employee_id", p.EmployeeID,
			"punch_id", p.ID,
			"punched_at", p.Timestamp,
		)
	}

	j.sseHub.Broadcast(sse.Event{
		Event: "maintenance.stale_open_ins",
		Data: map[string]any{
			"count":      len(stale),
			"older_than": staleOpenInAge.String(),
		},
	})

	slog.Info("Cron: flagged stale open INs", "count", len(stale))
	return nil
}

// FlagInactiveDevices reports approved kiosks that have not accepted a
// punch within deviceInactivityAge.
func (j *MaintenanceJobs) FlagInactiveDevices(ctx context.Context) error {
	cutoff := j.clk.Now().Add(-deviceInactivityAge)

	silent, err := j.deviceRepo.ListApprovedNotSeenSince(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list inactive devices: %w", err)
	}

	if len(silent) == 0 {
		slog.Debug("Cron: all approved devices active")
		return nil
	}

	for _, d := range silent {
		slog.Warn("Cron: approved device inactive",
			"device_id", d.ID,
			"name", d.Name,
			"location", d.Location,
			"last_seen_at", d.LastSeenAt,
		)
	}

	j.sseHub.Broadcast(sse.Event{
		Event: "maintenance.inactive_devices",
		Data: map[string]any{
			"count":      len(silent),
			"silent_for": deviceInactivityAge.String(),
		},
	})

	slog.Info("Cron: flagged inactive devices", "count", len(silent))
	return nil
}
