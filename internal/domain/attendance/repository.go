package attendance

import "context"

// AttendanceRepository is the ledger's persistence contract.
type AttendanceRepository interface {
	// UpsertCheckIn inserts today's check-in for the subject, or updates
	// the coordinates and updated_at of the existing one. The
	// insert-or-update must be a single atomic statement backed by the
	// partial unique index on (user_id, attendance_date, flag=check-in):
	// two concurrent submissions must not produce two rows.
	UpsertCheckIn(ctx context.Context, a Attendance) (Attendance, Action, error)

	// Create inserts a new record unconditionally (check-out events)
	Create(ctx context.Context, a Attendance) (Attendance, error)

	// GetByID retrieves a record by ID, ErrAttendanceNotFound when absent
	GetByID(ctx context.Context, id string) (Attendance, error)

	// UpdateStatus sets a record's status and returns the updated row
	UpdateStatus(ctx context.Context, id string, status Status) (Attendance, error)

	// List retrieves all records joined with user info, newest first
	List(ctx context.Context) ([]Attendance, error)

	// ListByUserIDs retrieves all records for the given subjects
	ListByUserIDs(ctx context.Context, userIDs []string) ([]Attendance, error)
}
