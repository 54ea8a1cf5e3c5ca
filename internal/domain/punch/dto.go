package punch

import (
	"mime/multipart"

	"github.com/shancon-hr/attendance-backend-go/internal/pkg/validator"
)

type MarkPunchRequest struct {
	EmployeeID        string  `json:"employee_id"`
	Type              string  `json:"type"`
	Timestamp         *string `json:"timestamp,omitempty"` // RFC3339; defaults to now
	DeviceFingerprint string  `json:"device_fingerprint"`

	// Webcam capture from the kiosk, attached by the handler
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *MarkPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidPunchType(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be IN or OUT",
		})
	}

	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be a valid RFC3339 datetime",
			})
		}
	}

	if validator.IsEmpty(r.DeviceFingerprint) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_fingerprint",
			Message: "device_fingerprint is required",
		})
	} else if !validator.IsValidDeviceFingerprint(r.DeviceFingerprint) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_fingerprint",
			Message: "device_fingerprint must be a 16-128 character hex hash",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PunchResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	Department    *string `json:"department,omitempty"`
	Designation   *string `json:"designation,omitempty"`
	Type          string  `json:"type"`
	Timestamp     string  `json:"timestamp"`
	DeviceID      *string `json:"device_id,omitempty"`
	ProofPhotoURL *string `json:"proof_photo_url,omitempty"`
}

type PunchFilter struct {
	EmployeeID *string
	Type       *string
	StartDate  *string // YYYY-MM-DD, inclusive
	EndDate    *string // YYYY-MM-DD, inclusive
	Page       int
	Limit      int
	SortOrder  string
}

func (f *PunchFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Type != nil && *f.Type != "" && !validator.IsValidPunchType(*f.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be IN or OUT",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortOrder != "" && !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be asc or desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListPunchesResponse struct {
	Punches    []PunchResponse `json:"punches"`
	TotalItems int64           `json:"total_items"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}
