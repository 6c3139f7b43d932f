package attendance

import "context"

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// RecordEvent validates the flag, runs the geofence gate, resolves
	// the subject, computes lateness and writes the ledger entry. An
	// out-of-range submission is a normal response, not an error.
	RecordEvent(ctx context.Context, req RecordEventRequest) (RecordEventResponse, error)

	// List retrieves all attendance records (teacher/admin)
	List(ctx context.Context) ([]AttendanceResponse, error)

	// History retrieves per-user attendance with lateness annotations
	History(ctx context.Context, filter HistoryFilter) ([]UserHistoryResponse, error)

	// Confirm transitions a photo-verified record to confirmed/rejected
	Confirm(ctx context.Context, id string, req ConfirmRequest) (AttendanceResponse, error)
}
