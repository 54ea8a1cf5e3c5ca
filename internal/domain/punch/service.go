package punch

import (
	"context"
)

// PunchService defines business logic for punch ingestion
type PunchService interface {
	// Mark records a clock event from a kiosk, validating the employee and
	// device and storing the webcam proof photo when one is attached
	Mark(ctx context.Context, req MarkPunchRequest) (PunchResponse, error)

	// List retrieves punch records with filters (admin)
	List(ctx context.Context, filter PunchFilter) (ListPunchesResponse, error)
}
