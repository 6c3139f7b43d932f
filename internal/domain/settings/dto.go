package settings

import (
	"time"

	"github.com/sekolahku/attendance-backend-go/internal/pkg/geo"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/schedule"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/validator"
)

// UpdateSettingsRequest carries a partial settings update. Nil fields
// keep their previously configured values, matching the original
// admin endpoint's merge semantics.
type UpdateSettingsRequest struct {
	SchoolName *string    `json:"school_name,omitempty"`
	Location   *geo.Point `json:"school_location,omitempty"`
	RadiusKm   *float64   `json:"attendance_radius_km,omitempty"`
	StartTime  *string    `json:"start_time,omitempty"`
	EndTime    *string    `json:"end_time,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Location != nil {
		if err := r.Location.Coordinate.Validate(); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "school_location",
				Message: err.Error(),
			})
		}
	}

	if r.RadiusKm != nil && *r.RadiusKm <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_radius_km",
			Message: "attendance_radius_km must be positive",
		})
	}

	if r.StartTime != nil {
		if _, err := schedule.ParseTimeOfDay(*r.StartTime, time.Now()); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be in HH:MM format",
			})
		}
	}

	if r.EndTime != nil {
		if _, err := schedule.ParseTimeOfDay(*r.EndTime, time.Now()); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ApplyTo merges the request into an existing settings value.
func (r *UpdateSettingsRequest) ApplyTo(s Settings) Settings {
	if r.SchoolName != nil {
		s.SchoolName = *r.SchoolName
	}
	if r.Location != nil {
		s.Location = r.Location.Coordinate
	}
	if r.RadiusKm != nil {
		s.RadiusKm = *r.RadiusKm
	}
	if r.StartTime != nil {
		s.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		s.EndTime = *r.EndTime
	}
	return s
}

type SettingsResponse struct {
	SchoolName string    `json:"school_name"`
	Location   geo.Point `json:"school_location"`
	RadiusKm   float64   `json:"attendance_radius_km"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewSettingsResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		SchoolName: s.SchoolName,
		Location:   geo.NewPoint(s.Location),
		RadiusKm:   s.RadiusKm,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		UpdatedAt:  s.UpdatedAt,
	}
}
