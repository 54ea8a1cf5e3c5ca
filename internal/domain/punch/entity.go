package punch

import (
	"time"
)

// Type is the direction of a clock event as sent by a kiosk.
type Type string

const (
	TypeIn  Type = "IN"
	TypeOut Type = "OUT"
)

// Valid reports whether t is a recognized punch type.
func (t Type) Valid() bool {
	return t == TypeIn || t == TypeOut
}

type Punch struct {
	ID            string
	EmployeeID    string
	Type          Type
	Timestamp     time.Time
	DeviceID      *string
	ProofPhotoURL *string
	CreatedAt     time.Time

	// DTO
	EmployeeName *string
	Department   *string
	Designation  *string
}
