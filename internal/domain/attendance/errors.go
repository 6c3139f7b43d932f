package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidFlag        = errors.New(`invalid flag, use "check-in" or "check-out"`)
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNotPhotoVerified   = errors.New("attendance record is not photo verified")
	ErrInvalidStatus      = errors.New(`invalid status, use "confirmed" or "rejected"`)
)
