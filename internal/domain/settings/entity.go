package settings

import (
	"time"

	"github.com/sekolahku/attendance-backend-go/internal/pkg/geo"
)

// Settings is the school's geofence and schedule configuration. A
// deployment has at most one row; it is read on every attendance
// submission and mutated only through the admin update endpoint.
type Settings struct {
	SchoolName string
	Location   geo.Coordinate
	RadiusKm   float64
	StartTime  string // "HH:MM", server-local
	EndTime    string // "HH:MM", server-local
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Fence builds the admission gate for attendance submissions.
func (s Settings) Fence() geo.Fence {
	return geo.Fence{Center: s.Location, RadiusKm: s.RadiusKm}
}
