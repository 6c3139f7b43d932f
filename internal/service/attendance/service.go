package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/sekolahku/attendance-backend-go/internal/domain/attendance"
	"github.com/sekolahku/attendance-backend-go/internal/domain/settings"
	"github.com/sekolahku/attendance-backend-go/internal/domain/user"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/clock"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/schedule"
	"github.com/sekolahku/attendance-backend-go/internal/service/file"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	user.UserRepository
	settings.SettingsRepository
	fileService file.FileService
	clock       clock.Clock
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	settingsRepo settings.SettingsRepository,
	fileService file.FileService,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
		SettingsRepository:   settingsRepo,
		fileService:          fileService,
		clock:                clk,
	}
}

// RecordEvent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordEvent(ctx context.Context, req attendance.RecordEventRequest) (attendance.RecordEventResponse, error) {
	flag := attendance.Flag(req.Flag)
	if !flag.Valid() {
		return attendance.RecordEventResponse{}, attendance.ErrInvalidFlag
	}

	if err := req.Validate(); err != nil {
		return attendance.RecordEventResponse{}, err
	}

	cfg, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		return attendance.RecordEventResponse{}, err
	}

	// Geofence gate: the sole admission check for submissions. A denial
	// is a normal outcome, not a failure.
	coord := req.Coordinate()
	if !cfg.Fence().Contains(coord) {
		return attendance.RecordEventResponse{
			WithinRadius: false,
			Message:      "You are not within the allowed radius",
		}, nil
	}

	subject, err := s.UserRepository.GetByUsernameAndRole(ctx, req.Username, req.SubjectRole())
	if err != nil {
		return attendance.RecordEventResponse{}, err
	}

	now := s.clock.Now()
	lateMessage, err := s.latenessMessage(cfg, flag, now)
	if err != nil {
		return attendance.RecordEventResponse{}, err
	}

	record := attendance.Attendance{
		UserID:   subject.ID,
		Date:     localDay(now),
		Flag:     flag,
		Location: coord,
		Mode:     attendance.ModeGeofenceOnly,
		Status:   attendance.StatusPresent,
	}

	// An attached proof photo switches the record into the
	// photo-verified mode awaiting teacher/admin confirmation.
	if req.File != nil && req.FileHeader != nil {
		path, err := s.fileService.UploadAttendanceProof(ctx, subject.ID, now, req.File, req.FileHeader.Filename, string(flag))
		if err != nil {
			return attendance.RecordEventResponse{}, fmt.Errorf("failed to store proof photo: %w", err)
		}
		url, err := s.fileService.GetFileURL(ctx, path, 0)
		if err != nil {
			return attendance.RecordEventResponse{}, fmt.Errorf("failed to resolve proof photo URL: %w", err)
		}
		record.ProofPhotoURL = &url
		record.Mode = attendance.ModePhotoVerified
		record.Status = attendance.StatusPending
	}

	// Check-in deduplicates per (subject, day), check-out always inserts
	// a fresh record so repeated late departures stay visible.
	var (
		saved  attendance.Attendance
		action attendance.Action
	)
	if flag == attendance.FlagCheckIn {
		saved, action, err = s.AttendanceRepository.UpsertCheckIn(ctx, record)
	} else {
		saved, err = s.AttendanceRepository.Create(ctx, record)
		action = attendance.ActionCreated
	}
	if err != nil {
		return attendance.RecordEventResponse{}, fmt.Errorf("failed to write attendance record: %w", err)
	}

	saved.Username = &subject.Username
	saved.Name = &subject.Name
	role := string(subject.Role)
	saved.Role = &role

	result := attendance.NewAttendanceResponse(saved)
	return attendance.RecordEventResponse{
		WithinRadius: true,
		Action:       action,
		Message:      submitMessage(flag, action),
		LateMessage:  lateMessage,
		Attendance:   &result,
	}, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	records, err := s.AttendanceRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.NewAttendanceResponse(record))
	}
	return responses, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.UserHistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	cfg, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		return nil, err
	}

	subjects, err := s.resolveSubjects(ctx, filter)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(subjects))
	for _, subject := range subjects {
		userIDs = append(userIDs, subject.ID)
	}

	records, err := s.AttendanceRepository.ListByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for subjects: %w", err)
	}

	byUser := make(map[string][]attendance.AttendanceResponse, len(subjects))
	for _, record := range records {
		resp := attendance.NewAttendanceResponse(record)
		msg, err := s.historyLatenessMessage(cfg, record)
		if err != nil {
			return nil, err
		}
		resp.LateMessage = &msg
		byUser[record.UserID] = append(byUser[record.UserID], resp)
	}

	result := make([]attendance.UserHistoryResponse, 0, len(subjects))
	for _, subject := range subjects {
		rows := byUser[subject.ID]
		if rows == nil {
			rows = []attendance.AttendanceResponse{}
		}
		result = append(result, attendance.UserHistoryResponse{
			User:       attendance.NewSubjectResponse(subject),
			Attendance: rows,
		})
	}
	return result, nil
}

// Confirm implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Confirm(ctx context.Context, id string, req attendance.ConfirmRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if record.Mode != attendance.ModePhotoVerified {
		return attendance.AttendanceResponse{}, attendance.ErrNotPhotoVerified
	}

	// Re-confirming an already confirmed or rejected record is allowed,
	// matching the original endpoint's behavior.
	updated, err := s.AttendanceRepository.UpdateStatus(ctx, id, attendance.Status(req.Status))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(updated), nil
}

func (s *AttendanceServiceImpl) resolveSubjects(ctx context.Context, filter attendance.HistoryFilter) ([]user.User, error) {
	if filter.UserID != "" {
		subject, err := s.UserRepository.GetByID(ctx, filter.UserID)
		if err != nil {
			return nil, err
		}
		return []user.User{subject}, nil
	}

	if filter.Username != "" {
		if filter.Role != "" {
			subject, err := s.UserRepository.GetByUsernameAndRole(ctx, filter.Username, user.Role(filter.Role))
			if err != nil {
				return nil, err
			}
			return []user.User{subject}, nil
		}

		subject, err := s.UserRepository.GetByUsername(ctx, filter.Username)
		if err != nil {
			return nil, err
		}
		return []user.User{subject}, nil
	}

	// No subject named: cover the whole role directory, defaulting to
	// the student roster as the original listing did.
	role := user.Role(filter.Role)
	if filter.Role == "" {
		role = user.RoleStudent
	}
	return s.UserRepository.ListByRole(ctx, role)
}

// latenessMessage compares now against the schedule boundary matching
// the flag: startTime for check-in, endTime for check-out.
func (s *AttendanceServiceImpl) latenessMessage(cfg settings.Settings, flag attendance.Flag, now time.Time) (string, error) {
	boundary := cfg.StartTime
	if flag == attendance.FlagCheckOut {
		boundary = cfg.EndTime
	}

	ref, err := schedule.ParseTimeOfDay(boundary, now)
	if err != nil {
		return "", fmt.Errorf("failed to parse configured %s boundary: %w", flag, err)
	}

	if minutes, late := schedule.LatenessMinutes(ref, now); late && minutes >= 1 {
		return fmt.Sprintf("You are late for %s by %s.", flag, schedule.FormatLateness(minutes)), nil
	}
	return fmt.Sprintf("You are on time for %s.", flag), nil
}

// historyLatenessMessage anchors the schedule boundary on the record's
// own day rather than today, so old rows keep a stable annotation.
func (s *AttendanceServiceImpl) historyLatenessMessage(cfg settings.Settings, record attendance.Attendance) (string, error) {
	boundary := cfg.StartTime
	if record.Flag == attendance.FlagCheckOut {
		boundary = cfg.EndTime
	}

	ref, err := schedule.ParseTimeOfDay(boundary, record.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to parse configured %s boundary: %w", record.Flag, err)
	}

	if minutes, late := schedule.LatenessMinutes(ref, record.CreatedAt); late && minutes >= 1 {
		return fmt.Sprintf("Late for %s by %s.", record.Flag, schedule.FormatLateness(minutes)), nil
	}
	return "On time.", nil
}

func submitMessage(flag attendance.Flag, action attendance.Action) string {
	label := "Check-in"
	if flag == attendance.FlagCheckOut {
		label = "Check-out"
	}
	verb := "created"
	if action == attendance.ActionUpdated {
		verb = "updated"
	}
	return fmt.Sprintf("%s %s successfully", label, verb)
}

// localDay truncates an instant to local midnight; the "today" window
// is recomputed from the clock at submission time, never stored.
func localDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
