package auth

import (
	"github.com/sekolahku/attendance-backend-go/internal/domain/user"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	NIS      *string `json:"nis,omitempty"`
	NIP      *string `json:"nip,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if len(r.Username) < 3 || len(r.Username) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be between 3 and 50 characters",
		})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username may only contain letters, numbers, dots, underscores, and hyphens",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	}

	role := user.Role(r.Role)
	if !role.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: admin, teacher, student",
		})
	}

	// Students carry an NIS, teachers an NIP
	if role == user.RoleStudent {
		if r.NIS == nil || validator.IsEmpty(*r.NIS) {
			errs = append(errs, validator.ValidationError{
				Field:   "nis",
				Message: "students must have an NIS",
			})
		} else if !validator.IsValidNIS(*r.NIS) {
			errs = append(errs, validator.ValidationError{
				Field:   "nis",
				Message: "nis must be 4-20 digits",
			})
		}
	}
	if role == user.RoleTeacher {
		if r.NIP == nil || validator.IsEmpty(*r.NIP) {
			errs = append(errs, validator.ValidationError{
				Field:   "nip",
				Message: "teachers must have a NIP",
			})
		} else if !validator.IsValidNIP(*r.NIP) {
			errs = append(errs, validator.ValidationError{
				Field:   "nip",
				Message: "nip must be 4-20 digits",
			})
		}
	}

	if r.Phone != nil && !validator.IsEmpty(*r.Phone) && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid phone number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// SessionTrackingRequest carries request metadata stored alongside
// refresh tokens.
type SessionTrackingRequest struct {
	IPAddress string
	UserAgent string
}

type TokenResponse struct {
	AccessToken           string       `json:"access_token"`
	AccessTokenExpiresIn  int64        `json:"access_token_expires_in"`
	RefreshToken          string       `json:"refresh_token"`
	RefreshTokenExpiresIn int64        `json:"refresh_token_expires_in"`
	User                  UserResponse `json:"user"`
}

type UserResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	NIS      *string `json:"nis,omitempty"`
	NIP      *string `json:"nip,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Role:     string(u.Role),
		NIS:      u.NIS,
		NIP:      u.NIP,
		Phone:    u.Phone,
	}
}
