package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahku/attendance-backend-go/internal/domain/settings"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/geo"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/validator"
)

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

func strPtr(s string) *string    { return &s }
func f64Ptr(f float64) *float64  { return &f }

func TestSettingsService_GetNotConfigured(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{})

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, settings.ErrNotConfigured)
}

func TestSettingsService_FirstUpdateCreatesRow(t *testing.T) {
	ctx := context.Background()
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo)

	point := geo.NewPoint(geo.Coordinate{Lat: -6.2, Lon: 106.8})
	resp, err := svc.Update(ctx, settings.UpdateSettingsRequest{
		SchoolName: strPtr("SMA Negeri 1"),
		Location:   &point,
		RadiusKm:   f64Ptr(0.5),
		StartTime:  strPtr("07:30"),
		EndTime:    strPtr("15:30"),
	})
	require.NoError(t, err)

	assert.Equal(t, "SMA Negeri 1", resp.SchoolName)
	assert.Equal(t, 0.5, resp.RadiusKm)
	assert.Equal(t, "07:30", resp.StartTime)
	assert.True(t, repo.configured)
}

func TestSettingsService_FirstUpdateRequiresGeofenceAndSchedule(t *testing.T) {
	ctx := context.Background()
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo)

	// A name-only first call must not create a row geofenced at (0, 0)
	// with an empty schedule.
	_, err := svc.Update(ctx, settings.UpdateSettingsRequest{
		SchoolName: strPtr("SMA Negeri 1"),
	})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	details := verrs.ToMap()
	assert.Contains(t, details, "school_location")
	assert.Contains(t, details, "start_time")
	assert.Contains(t, details, "end_time")
	assert.False(t, repo.configured)
}

func TestSettingsService_PartialUpdateKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	repo := &fakeSettingsRepo{
		cfg: settings.Settings{
			SchoolName: "SMA Negeri 1",
			Location:   geo.Coordinate{Lat: -6.2, Lon: 106.8},
			RadiusKm:   1,
			StartTime:  "08:00",
			EndTime:    "16:00",
		},
		configured: true,
	}
	svc := NewSettingsService(repo)

	resp, err := svc.Update(ctx, settings.UpdateSettingsRequest{
		StartTime: strPtr("07:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "07:00", resp.StartTime)
	assert.Equal(t, "16:00", resp.EndTime)
	assert.Equal(t, "SMA Negeri 1", resp.SchoolName)
	assert.Equal(t, float64(1), resp.RadiusKm)
	assert.Equal(t, -6.2, repo.cfg.Location.Lat)
}

func TestSettingsService_UpdateValidation(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{})
	ctx := context.Background()

	cases := []struct {
		name string
		req  settings.UpdateSettingsRequest
	}{
		{"bad start time", settings.UpdateSettingsRequest{StartTime: strPtr("8am")}},
		{"bad end time", settings.UpdateSettingsRequest{EndTime: strPtr("25:00")}},
		{"non-positive radius", settings.UpdateSettingsRequest{RadiusKm: f64Ptr(0)}},
	}
	for _, c := range cases {
		_, err := svc.Update(ctx, c.req)
		require.Error(t, err, c.name)
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs, c.name)
	}

	badPoint := geo.NewPoint(geo.Coordinate{Lat: 120, Lon: 0})
	_, err := svc.Update(ctx, settings.UpdateSettingsRequest{Location: &badPoint})
	require.Error(t, err)
}
