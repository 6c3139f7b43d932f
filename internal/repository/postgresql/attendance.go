package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sekolahku/attendance-backend-go/internal/domain/attendance"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.attendance_date, a.flag, a.latitude, a.longitude,
	a.verification_mode, a.status, a.proof_photo_url, a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row, withUser bool) (attendance.Attendance, error) {
	var a attendance.Attendance
	dest := []interface{}{
		&a.ID, &a.UserID, &a.Date, &a.Flag, &a.Location.Lat, &a.Location.Lon,
		&a.Mode, &a.Status, &a.ProofPhotoURL, &a.CreatedAt, &a.UpdatedAt,
	}
	if withUser {
		dest = append(dest, &a.Username, &a.Name, &a.Role)
	}
	err := row.Scan(dest...)
	return a, err
}

// UpsertCheckIn implements attendance.AttendanceRepository. The
// statement rides the partial unique index on
// (user_id, attendance_date) WHERE flag = 'check-in', so two concurrent
// submissions for the same subject and day cannot both insert; the loser
// of the race becomes an update. xmax = 0 distinguishes a fresh insert
// from an updated row.
func (r *attendanceRepository) UpsertCheckIn(ctx context.Context, a attendance.Attendance) (attendance.Attendance, attendance.Action, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			user_id, attendance_date, flag, latitude, longitude,
			verification_mode, status, proof_photo_url
		) VALUES (
			$1, $2, 'check-in', $3, $4, $5, $6, $7
		)
		ON CONFLICT (user_id, attendance_date) WHERE flag = 'check-in'
		DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			proof_photo_url = COALESCE(EXCLUDED.proof_photo_url, attendances.proof_photo_url),
			verification_mode = CASE
				WHEN EXCLUDED.proof_photo_url IS NULL THEN attendances.verification_mode
				ELSE EXCLUDED.verification_mode
			END,
			status = CASE
				WHEN EXCLUDED.proof_photo_url IS NULL THEN attendances.status
				ELSE EXCLUDED.status
			END,
			updated_at = NOW()
		RETURNING id, verification_mode, status, proof_photo_url, created_at, updated_at, (xmax = 0) AS inserted
	`

	var inserted bool
	err := q.QueryRow(ctx, query,
		a.UserID, a.Date, a.Location.Lat, a.Location.Lon,
		a.Mode, a.Status, a.ProofPhotoURL,
	).Scan(&a.ID, &a.Mode, &a.Status, &a.ProofPhotoURL, &a.CreatedAt, &a.UpdatedAt, &inserted)
	if err != nil {
		return attendance.Attendance{}, "", fmt.Errorf("failed to upsert check-in: %w", err)
	}

	a.Flag = attendance.FlagCheckIn
	if inserted {
		return a, attendance.ActionCreated, nil
	}
	return a, attendance.ActionUpdated, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			user_id, attendance_date, flag, latitude, longitude,
			verification_mode, status, proof_photo_url
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.UserID, a.Date, a.Flag, a.Location.Lat, a.Location.Lon,
		a.Mode, a.Status, a.ProofPhotoURL,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return a, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, u.username, u.name, u.role
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return a, nil
}

// UpdateStatus implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateStatus(ctx context.Context, id string, status attendance.Status) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances a SET status = $2, updated_at = NOW()
		WHERE a.id = $1
		RETURNING ` + attendanceColumns + `
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, id, status), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance status: %w", err)
	}

	return a, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, u.username, u.name, u.role
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// ListByUserIDs implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByUserIDs(ctx context.Context, userIDs []string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, u.username, u.name, u.role
		FROM attendances a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.user_id = ANY($1::uuid[])
		ORDER BY a.created_at
	`

	rows, err := q.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by user IDs: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return records, nil
}
