package punch

import (
	"context"
	"time"
)

// PunchRepository defines data access methods for raw punch records.
type PunchRepository interface {
	// Create persists a new punch record
	Create(ctx context.Context, p Punch) (Punch, error)

	// ListByRange retrieves all punches with Timestamp in [from, to],
	// ordered by timestamp ascending. Feeds the reconciliation engine.
	ListByRange(ctx context.Context, from time.Time, to time.Time) ([]Punch, error)

	// List retrieves punch records with filters and pagination
	List(ctx context.Context, filter PunchFilter) ([]Punch, int64, error)

	// GetStaleOpenIns returns, per employee, the latest punch when it is an
	// IN older than cutoff with no OUT after it. Used by the maintenance
	// sweep to surface sessions a kiosk never closed.
	GetStaleOpenIns(ctx context.Context, cutoff time.Time) ([]Punch, error)
}
