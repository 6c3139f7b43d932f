package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sekolahku/attendance-backend-go/internal/domain/settings"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/database"
	"github.com/sekolahku/attendance-backend-go/internal/pkg/geo"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepository{db: db}
}

// The location column holds a GeoJSON Point; geo.Point owns the
// [lon, lat] order so the swap never leaks past this file.

// Get implements settings.SettingsRepository.
func (r *settingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT school_name, location, radius_km, start_time, end_time, created_at, updated_at
		FROM school_settings
		WHERE id = 1
	`

	var (
		s            settings.Settings
		locationJSON []byte
	)
	err := q.QueryRow(ctx, query).Scan(
		&s.SchoolName, &locationJSON, &s.RadiusKm, &s.StartTime, &s.EndTime,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.Settings{}, settings.ErrNotConfigured
		}
		return settings.Settings{}, fmt.Errorf("failed to get school settings: %w", err)
	}

	var location geo.Point
	if err := json.Unmarshal(locationJSON, &location); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to decode stored school location: %w", err)
	}
	s.Location = location.Coordinate

	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepository) Upsert(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	locationJSON, err := json.Marshal(geo.NewPoint(s.Location))
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to encode school location: %w", err)
	}

	query := `
		INSERT INTO school_settings (id, school_name, location, radius_km, start_time, end_time)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			school_name = EXCLUDED.school_name,
			location = EXCLUDED.location,
			radius_km = EXCLUDED.radius_km,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		s.SchoolName, locationJSON, s.RadiusKm, s.StartTime, s.EndTime,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to upsert school settings: %w", err)
	}

	return s, nil
}
