package attendance

import (
	"time"

	"github.com/sekolahku/attendance-backend-go/internal/pkg/geo"
)

// Flag is the direction of an attendance event.
type Flag string

const (
	FlagCheckIn  Flag = "check-in"
	FlagCheckOut Flag = "check-out"
)

func (f Flag) Valid() bool {
	return f == FlagCheckIn || f == FlagCheckOut
}

// VerificationMode tags how a record was verified. Geofence-only
// records are trusted as submitted; photo-verified records carry a
// proof photo and await teacher/admin confirmation.
type VerificationMode string

const (
	ModeGeofenceOnly  VerificationMode = "geofence_only"
	ModePhotoVerified VerificationMode = "photo_verified"
)

type Status string

const (
	// Geofence-only statuses
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"

	// Photo-verified statuses
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

type Attendance struct {
	ID            string
	UserID        string
	Date          time.Time // local calendar day of the event
	Flag          Flag
	Location      geo.Coordinate
	Mode          VerificationMode
	Status        Status
	ProofPhotoURL *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	Username *string
	Name     *string
	Role     *string
}

// Action distinguishes a freshly inserted record from an in-place
// update of today's existing check-in.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)
