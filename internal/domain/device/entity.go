package device

import (
	"time"
)

// Device is a registered attendance kiosk. A kiosk self-registers with a
// browser fingerprint hash and must be approved before its punches are
// accepted.
type Device struct {
	ID          string
	Name        string
	Location    string
	Fingerprint string
	Status      Status
	LastSeenAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRevoked  Status = "revoked"
)
