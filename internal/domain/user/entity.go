package user

import (
	"time"
)

// User is an HR/admin account. Kiosks and employees do not have accounts;
// only HR staff log in.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	GoogleID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleHR    Role = "hr"
)
