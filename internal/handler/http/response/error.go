package response

import (
	"errors"
	"net/http"

	"github.com/sekolahku/attendance-backend-go/internal/domain/attendance"
	"github.com/sekolahku/attendance-backend-go/internal/domain/auth"
	"github.com/sekolahku/attendance-backend-go/internal/domain/settings"
	"github.com/sekolahku/attendance-backend-go/internal/domain/user"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/schedule"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/validator"
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
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameTaken):
		Conflict(w, "Username already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrStaffPrivilegeRequired):
		Forbidden(w, "Not authorized")

	// Settings domain errors
	case errors.Is(err, settings.ErrNotConfigured):
		BadRequest(w, "School settings not configured", nil)
	case errors.Is(err, schedule.ErrInvalidTimeFormat):
		BadRequest(w, "Configured schedule time is not in HH:MM format", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidFlag):
		BadRequest(w, `Invalid flag. Use "check-in" or "check-out"`, nil)
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, `Invalid status. Use "confirmed" or "rejected"`, nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNotPhotoVerified):
		Conflict(w, "Attendance record is not photo verified")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
