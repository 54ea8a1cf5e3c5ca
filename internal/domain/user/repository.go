package user

import (
	"context"
)

// UserRepository defines data access methods for HR accounts.
type UserRepository interface {
	// Create creates a new user account
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (User, error)

	// GetByGoogleID retrieves a user linked to a Google account
	GetByGoogleID(ctx context.Context, googleID string) (User, error)

	// LinkGoogleID attaches a Google account to an existing user
	LinkGoogleID(ctx context.Context, id string, googleID string) error
}
