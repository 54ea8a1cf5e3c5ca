package device

import "errors"

// Device domain errors
var (
	ErrDeviceNotFound    = errors.New("device not found")
	ErrDeviceNotApproved = errors.New("device is not approved to mark attendance")
	ErrFingerprintExists = errors.New("device fingerprint already registered")
	ErrDeviceRevoked     = errors.New("device has been revoked")
)
