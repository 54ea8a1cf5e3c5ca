package device

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/device"
)

type DeviceServiceImpl struct {
	deviceRepo device.DeviceRepository
}

func NewDeviceService(deviceRepo device.DeviceRepository) device.DeviceService {
	return &DeviceServiceImpl{deviceRepo: deviceRepo}
}

// Register implements device.DeviceService.
func (s *DeviceServiceImpl) Register(ctx context.Context, req device.RegisterDeviceRequest) (device.DeviceResponse, error) {
	if err := req.Validate(); err != nil {
		return device.DeviceResponse{}, err
	}

	existing, err := s.deviceRepo.GetByFingerprint(ctx, req.Fingerprint)
	if err == nil {
		// Re-registering a known kiosk is idempotent unless it was revoked.
		if existing.Status == device.StatusRevoked {
			return device.DeviceResponse{}, device.ErrDeviceRevoked
		}
		return toResponse(existing), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return device.DeviceResponse{}, fmt.Errorf("failed to check fingerprint: %w", err)
	}

	created, err := s.deviceRepo.Create(ctx, device.Device{
		Name:        req.Name,
		Location:    req.Location,
		Fingerprint: req.Fingerprint,
		Status:      device.StatusPending,
	})
	if err != nil {
		return device.DeviceResponse{}, fmt.Errorf("failed to register device: %w", err)
	}

	return toResponse(created), nil
}

// Get implements device.DeviceService.
func (s *DeviceServiceImpl) Get(ctx context.Context, id string) (device.DeviceResponse, error) {
	d, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return device.DeviceResponse{}, device.ErrDeviceNotFound
		}
		return device.DeviceResponse{}, fmt.Errorf("failed to get device: %w", err)
	}

	return toResponse(d), nil
}

// List implements device.DeviceService.
func (s *DeviceServiceImpl) List(ctx context.Context, filter device.DeviceFilter) (device.ListDevicesResponse, error) {
	if err := filter.Validate(); err != nil {
		return device.ListDevicesResponse{}, err
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 10
	}

	devices, total, err := s.deviceRepo.List(ctx, filter)
	if err != nil {
		return device.ListDevicesResponse{}, fmt.Errorf("failed to list devices: %w", err)
	}

	responses := make([]device.DeviceResponse, 0, len(devices))
	for _, d := range devices {
		responses = append(responses, toResponse(d))
	}

	return device.ListDevicesResponse{
		Devices:    responses,
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Approve implements device.DeviceService.
func (s *DeviceServiceImpl) Approve(ctx context.Context, id string) (device.DeviceResponse, error) {
	return s.transition(ctx, id, device.StatusApproved)
}

// Revoke implements device.DeviceService.
func (s *DeviceServiceImpl) Revoke(ctx context.Context, id string) (device.DeviceResponse, error) {
	return s.transition(ctx, id, device.StatusRevoked)
}

func (s *DeviceServiceImpl) transition(ctx context.Context, id string, status device.Status) (device.DeviceResponse, error) {
	d, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return device.DeviceResponse{}, device.ErrDeviceNotFound
		}
		return device.DeviceResponse{}, fmt.Errorf("failed to get device: %w", err)
	}

	// A revoked device stays revoked; it must re-register with a fresh
	// fingerprint to come back.
	if d.Status == device.StatusRevoked && status == device.StatusApproved {
		return device.DeviceResponse{}, device.ErrDeviceRevoked
	}

	if err := s.deviceRepo.UpdateStatus(ctx, id, status); err != nil {
		return device.DeviceResponse{}, fmt.Errorf("failed to update device status: %w", err)
	}

	d.Status = status
	return toResponse(d), nil
}

func toResponse(d device.Device) device.DeviceResponse {
	resp := device.DeviceResponse{
		ID:          d.ID,
		Name:        d.Name,
		Location:    d.Location,
		Fingerprint: d.Fingerprint,
		Status:      string(d.Status),
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
	if d.LastSeenAt != nil {
		seen := d.LastSeenAt.Format(time.RFC3339)
		resp.LastSeenAt = &seen
	}
	return resp
}
