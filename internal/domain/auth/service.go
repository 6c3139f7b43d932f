package auth

import "context"

// AuthService defines credential and token handling for the attendance
// backend's users.
type AuthService interface {
	// Register creates a new user account (admin only at the HTTP layer)
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)

	// Login verifies credentials and issues an access/refresh token pair
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)

	// RefreshToken exchanges a valid refresh token for a new token pair
	RefreshToken(ctx context.Context, req RefreshTokenRequest, session SessionTrackingRequest) (TokenResponse, error)

	// Logout revokes the given refresh token
	Logout(ctx context.Context, req RefreshTokenRequest) error
}
