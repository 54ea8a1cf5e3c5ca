package device

import (
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/validator"
)

type RegisterDeviceRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Fingerprint string `json:"fingerprint"`
}

func (r *RegisterDeviceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if validator.IsEmpty(r.Fingerprint) {
		errs = append(errs, validator.ValidationError{
			Field:   "fingerprint",
			Message: "fingerprint is required",
		})
	} else if !validator.IsValidDeviceFingerprint(r.Fingerprint) {
		errs = append(errs, validator.ValidationError{
			Field:   "fingerprint",
			Message: "fingerprint must be a 16-128 character hex hash",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeviceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Fingerprint string  `json:"fingerprint"`
	Status      string  `json:"status"`
	LastSeenAt  *string `json:"last_seen_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type DeviceFilter struct {
	Status *string
	Page   int
	Limit  int
}

func (f *DeviceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && *f.Status != "" &&
		!validator.IsInSlice(*f.Status, []string{string(StatusPending), string(StatusApproved), string(StatusRevoked)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be pending, approved, or revoked",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListDevicesResponse struct {
	Devices    []DeviceResponse `json:"devices"`
	TotalItems int64            `json:"total_items"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}
