package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/sekolahku/attendance-backend-go/internal/domain/settings"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/validator"
)

type SettingsServiceImpl struct {
	settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{
		SettingsRepository: settingsRepo,
	}
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	current, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.NewSettingsResponse(current), nil
}

// Update implements settings.SettingsService. Omitted fields keep their
// stored values; the first call creates the configuration row.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	current, err := s.SettingsRepository.Get(ctx)
	if err != nil {
		if !errors.Is(err, settings.ErrNotConfigured) {
			return settings.SettingsResponse{}, fmt.Errorf("failed to load settings: %w", err)
		}
		if errs := missingOnFirstCreate(req); len(errs) > 0 {
			return settings.SettingsResponse{}, errs
		}
		current = settings.Settings{SchoolName: "My School", RadiusKm: 1}
	}

	updated, err := s.SettingsRepository.Upsert(ctx, req.ApplyTo(current))
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to save settings: %w", err)
	}

	return settings.NewSettingsResponse(updated), nil
}

// missingOnFirstCreate lists the fields the first configuration must
// pin down. Without them the geofence would sit at (0, 0) and lateness
// checks would fail on an empty schedule; later updates may be partial.
func missingOnFirstCreate(req settings.UpdateSettingsRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if req.Location == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "school_location",
			Message: "school_location is required when settings are first created",
		})
	}
	if req.StartTime == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time is required when settings are first created",
		})
	}
	if req.EndTime == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time is required when settings are first created",
		})
	}

	return errs
}
