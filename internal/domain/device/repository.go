package device

import (
	"context"
	"time"
)

// DeviceRepository defines data access methods for the kiosk registry.
type DeviceRepository interface {
	// Create registers a new device in pending state
	Create(ctx context.Context, d Device) (Device, error)

	// GetByID retrieves a device by ID
	GetByID(ctx context.Context, id string) (Device, error)

	// GetByFingerprint retrieves a device by its fingerprint hash
	GetByFingerprint(ctx context.Context, fingerprint string) (Device, error)

	// List retrieves devices with filters and pagination
	List(ctx context.Context, filter DeviceFilter) ([]Device, int64, error)

	// UpdateStatus transitions a device between pending/approved/revoked
	UpdateStatus(ctx context.Context, id string, status Status) error

	// TouchLastSeen records kiosk activity when a punch is accepted
	TouchLastSeen(ctx context.Context, id string, seenAt time.Time) error

	// ListApprovedNotSeenSince returns approved devices silent since cutoff
	ListApprovedNotSeenSince(ctx context.Context, cutoff time.Time) ([]Device, error)
}
