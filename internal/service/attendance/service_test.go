package attendance

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahku/attendance-backend-go/internal/domain/attendance"
	"github.com/sekolahku/attendance-backend-go/internal/domain/settings"
	"github.com/sekolahku/attendance-backend-go/internal/domain/user"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/geo"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/validator"
)

// In-memory fakes. The check-in fake mirrors the partial unique index:
// one check-in row per (user, day), check-outs always insert.

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	nextID  int
	now     time.Time
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance), now: time.Now()}
}

func (r *fakeAttendanceRepo) checkInKey(a attendance.Attendance) string {
	return a.UserID + "/" + a.Date.Format("2006-01-02")
}

func (r *fakeAttendanceRepo) UpsertCheckIn(ctx context.Context, a attendance.Attendance) (attendance.Attendance, attendance.Action, error) {
	key := r.checkInKey(a)
	for id, existing := range r.records {
		if existing.Flag == attendance.FlagCheckIn && r.checkInKey(existing) == key {
			existing.Location = a.Location
			existing.UpdatedAt = existing.UpdatedAt.Add(time.Second)
			r.records[id] = existing
			return existing, attendance.ActionUpdated, nil
		}
	}
	created, err := r.Create(ctx, a)
	return created, attendance.ActionCreated, err
}

func (r *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.nextID++
	a.ID = fmt.Sprintf("att-%d", r.nextID)
	a.CreatedAt = r.now
	a.UpdatedAt = a.CreatedAt
	r.records[a.ID] = a
	return a, nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	a, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *fakeAttendanceRepo) UpdateStatus(_ context.Context, id string, status attendance.Status) (attendance.Attendance, error) {
	a, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	a.Status = status
	r.records[id] = a
	return a, nil
}

func (r *fakeAttendanceRepo) List(_ context.Context) ([]attendance.Attendance, error) {
	out := make([]attendance.Attendance, 0, len(r.records))
	for _, a := range r.records {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListByUserIDs(_ context.Context, userIDs []string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range r.records {
		for _, id := range userIDs {
			if a.UserID == id {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users []user.User
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.users = append(r.users, u)
	return u, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsernameAndRole(_ context.Context, username string, role user.Role) (user.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Role == role {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	cfg        settings.Settings
	configured bool
}

func (r *fakeSettingsRepo) Get(_ context.Context) (settings.Settings, error) {
	if !r.configured {
		return settings.Settings{}, settings.ErrNotConfigured
	}
	return r.cfg, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, s settings.Settings) (settings.Settings, error) {
	r.cfg = s
	r.configured = true
	return s, nil
}

type fakeFileService struct{}

func (fakeFileService) UploadAttendanceProof(_ context.Context, userID string, date time.Time, _ io.Reader, filename string, flag string) (string, error) {
	return "attendance/" + userID + "/" + date.Format("2006-01-02") + "/" + flag + "-" + filename, nil
}

func (fakeFileService) DeleteFile(_ context.Context, _ string) error { return nil }

func (fakeFileService) GetFileURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "http://localhost:8080/uploads/" + path, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// Test fixture: school at (-6.2, 106.8), 1 km radius, day 08:00-16:00.

func newTestService(now time.Time) (attendance.AttendanceService, *fakeAttendanceRepo, *fakeUserRepo) {
	attendanceRepo := newFakeAttendanceRepo()
	attendanceRepo.now = now
	userRepo := &fakeUserRepo{users: []user.User{
		{ID: "user-1", Username: "budi", Name: "Budi Santoso", Role: user.RoleStudent},
		{ID: "user-2", Username: "siti", Name: "Siti Rahma", Role: user.RoleTeacher},
		{ID: "user-3", Username: "andi", Name: "Andi Wijaya", Role: user.RoleStudent},
	}}
	settingsRepo := &fakeSettingsRepo{
		cfg: settings.Settings{
			SchoolName: "SMA Negeri 1",
			Location:   geo.Coordinate{Lat: -6.2, Lon: 106.8},
			RadiusKm:   1,
			StartTime:  "08:00",
			EndTime:    "16:00",
		},
		configured: true,
	}
	svc := NewAttendanceService(attendanceRepo, userRepo, settingsRepo, fakeFileService{}, fixedClock{now: now})
	return svc, attendanceRepo, userRepo
}

func insideRequest(flag string) attendance.RecordEventRequest {
	return attendance.RecordEventRequest{
		Username:  "budi",
		Latitude:  -6.2,
		Longitude: 106.8,
		Flag:      flag,
	}
}

func TestRecordEvent_CheckInOnTime(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 7, 55, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	resp, err := svc.RecordEvent(ctx, insideRequest("check-in"))
	require.NoError(t, err)

	assert.True(t, resp.WithinRadius)
	assert.Equal(t, attendance.ActionCreated, resp.Action)
	assert.Equal(t, "Check-in created successfully", resp.Message)
	assert.Equal(t, "You are on time for check-in.", resp.LateMessage)
	require.NotNil(t, resp.Attendance)
	assert.Equal(t, "user-1", resp.Attendance.UserID)
	assert.Equal(t, "2025-03-10", resp.Attendance.Date)
	assert.Equal(t, attendance.ModeGeofenceOnly, resp.Attendance.Mode)
	assert.Equal(t, attendance.StatusPresent, resp.Attendance.Status)
}

func TestRecordEvent_CheckInLate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 8, 15, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	resp, err := svc.RecordEvent(ctx, insideRequest("check-in"))
	require.NoError(t, err)

	assert.Equal(t, "You are late for check-in by 15 minutes.", resp.LateMessage)
}

func TestRecordEvent_CheckInLateOverAnHour(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	resp, err := svc.RecordEvent(ctx, insideRequest("check-in"))
	require.NoError(t, err)

	assert.Equal(t, "You are late for check-in by 1 hour 30 minutes.", resp.LateMessage)
}

func TestRecordEvent_SecondCheckInUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	first, err := svc.RecordEvent(ctx, insideRequest("check-in"))
	require.NoError(t, err)
	require.Equal(t, attendance.ActionCreated, first.Action)

	again := insideRequest("check-in")
	again.Latitude = -6.201
	again.Longitude = 106.801
	second, err := svc.RecordEvent(ctx, again)
	require.NoError(t, err)

	assert.Equal(t, attendance.ActionUpdated, second.Action)
	assert.Equal(t, "Check-in updated successfully", second.Message)
	assert.Equal(t, first.Attendance.ID, second.Attendance.ID)
	assert.Equal(t, -6.201, second.Attendance.Location.Lat)
}

func TestRecordEvent_RepeatedCheckOutsInsertNewRecords(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 16, 5, 0, 0, time.UTC)
	svc, repo, _ := newTestService(now)

	first, err := svc.RecordEvent(ctx, insideRequest("check-out"))
	require.NoError(t, err)
	second, err := svc.RecordEvent(ctx, insideRequest("check-out"))
	require.NoError(t, err)

	assert.Equal(t, attendance.ActionCreated, first.Action)
	assert.Equal(t, attendance.ActionCreated, second.Action)
	assert.NotEqual(t, first.Attendance.ID, second.Attendance.ID)
	assert.Len(t, repo.records, 2)
}

func TestRecordEvent_CheckOutLateness(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 16, 45, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	resp, err := svc.RecordEvent(ctx, insideRequest("check-out"))
	require.NoError(t, err)

	assert.Equal(t, "You are late for check-out by 45 minutes.", resp.LateMessage)
	assert.Equal(t, "Check-out created successfully", resp.Message)
}

func TestRecordEvent_OutOfRangeIsDenialNotError(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc, repo, _ := newTestService(now)

	req := insideRequest("check-in")
	req.Longitude = 106.9 // ~11 km east of the school

	resp, err := svc.RecordEvent(ctx, req)
	require.NoError(t, err)

	assert.False(t, resp.WithinRadius)
	assert.Equal(t, "You are not within the allowed radius", resp.Message)
	assert.Nil(t, resp.Attendance)
	assert.Empty(t, repo.records)
}

func TestRecordEvent_InvalidFlag(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	req := insideRequest("check")
	_, err := svc.RecordEvent(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrInvalidFlag)
}

func TestRecordEvent_InvalidCoordinates(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	req := insideRequest("check-in")
	req.Latitude = 95

	_, err := svc.RecordEvent(ctx, req)
	require.Error(t, err)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestRecordEvent_SettingsNotConfigured(t *testing.T) {
	ctx := context.Background()
	attendanceRepo := newFakeAttendanceRepo()
	userRepo := &fakeUserRepo{}
	svc := NewAttendanceService(attendanceRepo, userRepo, &fakeSettingsRepo{}, fakeFileService{}, fixedClock{now: time.Now()})

	_, err := svc.RecordEvent(ctx, insideRequest("check-in"))
	assert.ErrorIs(t, err, settings.ErrNotConfigured)
}

func TestRecordEvent_UnknownSubject(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	req := insideRequest("check-in")
	req.Username = "nobody"

	_, err := svc.RecordEvent(ctx, req)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestRecordEvent_RoleScopedLookup(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	// siti exists only in the teacher directory; the default student
	// lookup must miss her.
	req := insideRequest("check-in")
	req.Username = "siti"
	_, err := svc.RecordEvent(ctx, req)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	req.Role = "teacher"
	resp, err := svc.RecordEvent(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "user-2", resp.Attendance.UserID)
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	url := "http://localhost:8080/uploads/proof.jpg"
	record, err := repo.Create(ctx, attendance.Attendance{
		UserID:        "user-1",
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Flag:          attendance.FlagCheckIn,
		Mode:          attendance.ModePhotoVerified,
		Status:        attendance.StatusPending,
		ProofPhotoURL: &url,
	})
	require.NoError(t, err)

	resp, err := svc.Confirm(ctx, record.ID, attendance.ConfirmRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusConfirmed, resp.Status)

	// Re-confirming an already decided record is permitted.
	resp, err = svc.Confirm(ctx, record.ID, attendance.ConfirmRequest{Status: "rejected"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusRejected, resp.Status)
}

func TestConfirm_Errors(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	_, err := svc.Confirm(ctx, "missing", attendance.ConfirmRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	_, err = svc.Confirm(ctx, "missing", attendance.ConfirmRequest{Status: "present"})
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)

	plain, err := repo.Create(ctx, attendance.Attendance{
		UserID: "user-1",
		Date:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Flag:   attendance.FlagCheckIn,
		Mode:   attendance.ModeGeofenceOnly,
		Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, plain.ID, attendance.ConfirmRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, attendance.ErrNotPhotoVerified)
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 8, 20, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	_, err := svc.RecordEvent(ctx, insideRequest("check-in"))
	require.NoError(t, err)

	result, err := svc.History(ctx, attendance.HistoryFilter{Username: "budi"})
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Equal(t, "budi", result[0].User.Username)
	require.Len(t, result[0].Attendance, 1)
	row := result[0].Attendance[0]

	// The annotation is anchored on the row's own created_at day, not on
	// the time the history is read.
	require.NotNil(t, row.LateMessage)
	assert.Equal(t, "Late for check-in by 20 minutes.", *row.LateMessage)

	// User with no records still gets an entry with an empty slice.
	empty, err := svc.History(ctx, attendance.HistoryFilter{Username: "siti", Role: "teacher"})
	require.NoError(t, err)
	require.Len(t, empty, 1)
	assert.NotNil(t, empty[0].Attendance)
	assert.Empty(t, empty[0].Attendance)

	// Lookup by ID bypasses the username path.
	byID, err := svc.History(ctx, attendance.HistoryFilter{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "budi", byID[0].User.Username)
}

func TestHistory_WholeRole(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 8, 20, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	_, err := svc.RecordEvent(ctx, insideRequest("check-in"))
	require.NoError(t, err)

	// An empty filter covers the whole student roster, including
	// students with no records yet.
	result, err := svc.History(ctx, attendance.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "budi", result[0].User.Username)
	assert.Len(t, result[0].Attendance, 1)
	assert.Equal(t, "andi", result[1].User.Username)
	assert.Empty(t, result[1].Attendance)

	// A role-only filter covers that role's directory.
	teachers, err := svc.History(ctx, attendance.HistoryFilter{Role: "teacher"})
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "siti", teachers[0].User.Username)
}

func TestHistory_FilterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	_, err := svc.History(ctx, attendance.HistoryFilter{Username: "budi", Role: "principal"})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
