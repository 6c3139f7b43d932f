package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // School administrator - full access
	RoleTeacher Role = "teacher" // Can confirm attendance, view all records
	RoleStudent Role = "student" // Submits own attendance only
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// CanConfirm reports whether the role may confirm or reject
// photo-verified attendance records.
func (r Role) CanConfirm() bool {
	return r == RoleAdmin || r == RoleTeacher
}

type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string
	Role         Role
	NIS          *string // student number
	NIP          *string // teacher number
	Phone        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
