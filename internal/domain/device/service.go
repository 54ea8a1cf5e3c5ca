package device

import (
	"context"
)

// DeviceService defines business logic for kiosk registration
type DeviceService interface {
	// Register self-registers a kiosk; the device lands in pending state
	// until an admin approves it
	Register(ctx context.Context, req RegisterDeviceRequest) (DeviceResponse, error)

	// Get retrieves a single device by ID
	Get(ctx context.Context, id string) (DeviceResponse, error)

	// List retrieves devices with filters (admin)
	List(ctx context.Context, filter DeviceFilter) (ListDevicesResponse, error)

	// Approve allows a pending device to mark attendance
	Approve(ctx context.Context, id string) (DeviceResponse, error)

	// Revoke permanently blocks a device
	Revoke(ctx context.Context, id string) (DeviceResponse, error)
}
