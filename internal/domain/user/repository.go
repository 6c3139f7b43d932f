package user

import "context"

// UserRepository is the user directory the attendance flow resolves
// subjects against. Student and teacher directories share one table but
// lookups are always role-scoped.
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// GetByUsername retrieves a user by username regardless of role
	GetByUsername(ctx context.Context, username string) (User, error)

	// GetByUsernameAndRole retrieves a user within a single role's directory
	GetByUsernameAndRole(ctx context.Context, username string, role Role) (User, error)

	// ListByRole retrieves every user holding the given role
	ListByRole(ctx context.Context, role Role) ([]User, error)
}
