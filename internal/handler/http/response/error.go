package response

import (
	"errors"
	"net/http"

	"github.com/shancon-hr/attendance-backend-go/internal/domain/auth"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/device"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/employee"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/punch"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/report"
	"github.com/shancon-hr/attendance-backend-go/internal/domain/user"
	"github.com/shancon-hr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrInvalidOAuthState):
		BadRequest(w, "Invalid OAuth state", nil)
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Device domain errors
	case errors.Is(err, device.ErrDeviceNotFound):
		NotFound(w, "Device not found")
	case errors.Is(err, device.ErrDeviceNotApproved):
		Forbidden(w, "Device is not approved to mark attendance")
	case errors.Is(err, device.ErrDeviceRevoked):
		Forbidden(w, "Device has been revoked")
	case errors.Is(err, device.ErrFingerprintExists):
		Conflict(w, "Device fingerprint already registered")

	// Punch domain errors
	case errors.Is(err, punch.ErrPunchNotFound):
		NotFound(w, "Punch record not found")
	case errors.Is(err, punch.ErrUnknownPunchType):
		BadRequest(w, "Punch type must be IN or OUT", nil)
	case errors.Is(err, punch.ErrDuplicatePunch):
		Conflict(w, "An identical punch was already recorded")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidWindow):
		BadRequest(w, "Reporting window end must not precede its start", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
