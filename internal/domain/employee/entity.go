package employee

import (
	"time"
)

type Employee struct {
	ID          string
	Code        string
	FullName    string
	Email       string
	Department  string
	Designation string
	Status      Status
	JoinedAt    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)
