package attendance

import (
	"mime/multipart"
	"time"

	"github.com/sekolahku/attendance-backend-go/internal/domain/user"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/geo"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// RecordEventRequest is one check-in or check-out submission. The proof
// photo is optional: when present the record becomes photo-verified and
// awaits confirmation.
type RecordEventRequest struct {
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Flag      string  `json:"flag"`

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *RecordEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}

	if r.Role != "" && !user.Role(r.Role).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, teacher, student",
		})
	}

	if err := r.Coordinate().Validate(); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "coordinates",
			Message: err.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Coordinate assembles the submitted pair into the internal lat/lon
// value type.
func (r *RecordEventRequest) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: r.Latitude, Lon: r.Longitude}
}

// SubjectRole defaults to student, matching the original submission
// endpoint which only consulted the student directory.
func (r *RecordEventRequest) SubjectRole() user.Role {
	if r.Role == "" {
		return user.RoleStudent
	}
	return user.Role(r.Role)
}

// RecordEventResponse is the outcome of a submission. WithinRadius false
// is a normal negative result, not an error: Attendance is nil and
// Message explains the denial.
type RecordEventResponse struct {
	WithinRadius bool                `json:"within_radius"`
	Action       Action              `json:"action,omitempty"`
	Message      string              `json:"message"`
	LateMessage  string              `json:"late_message,omitempty"`
	Attendance   *AttendanceResponse `json:"attendance,omitempty"`
}

type AttendanceResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Username      *string   `json:"username,omitempty"`
	Name          *string   `json:"name,omitempty"`
	Role          *string   `json:"role,omitempty"`
	Date          string    `json:"date"`
	Flag          Flag      `json:"flag"`
	Location      geo.Point `json:"location"`
	Mode          VerificationMode `json:"verification_mode"`
	Status        Status    `json:"status"`
	ProofPhotoURL *string   `json:"proof_photo_url,omitempty"`
	LateMessage   *string   `json:"late_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		Username:      a.Username,
		Name:          a.Name,
		Role:          a.Role,
		Date:          a.Date.Format("2006-01-02"),
		Flag:          a.Flag,
		Location:      geo.NewPoint(a.Location),
		Mode:          a.Mode,
		Status:        a.Status,
		ProofPhotoURL: a.ProofPhotoURL,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ConfirmRequest transitions a photo-verified record to confirmed or
// rejected.
type ConfirmRequest struct {
	Status string `json:"status"`
}

func (r *ConfirmRequest) Validate() error {
	s := Status(r.Status)
	if s != StatusConfirmed && s != StatusRejected {
		return ErrInvalidStatus
	}
	return nil
}

// HistoryFilter selects whose history to assemble. With no username or
// id the filter covers a whole role directory: every user holding Role,
// or every student when Role is empty too.
type HistoryFilter struct {
	Username string
	UserID   string
	Role     string
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Role != "" && !user.Role(f.Role).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, teacher, student",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SubjectResponse is the user half of a history row.
type SubjectResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	NIS      *string `json:"nis,omitempty"`
	NIP      *string `json:"nip,omitempty"`
}

func NewSubjectResponse(u user.User) SubjectResponse {
	return SubjectResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     string(u.Role),
		NIS:      u.NIS,
		NIP:      u.NIP,
	}
}

// UserHistoryResponse joins one user with their attendance records, each
// annotated with a lateness message against the configured schedule.
type UserHistoryResponse struct {
	User       SubjectResponse      `json:"user"`
	Attendance []AttendanceResponse `json:"attendance"`
}
