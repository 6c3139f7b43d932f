package settings

import "context"

// SettingsService exposes the administrative configuration surface.
type SettingsService interface {
	// Get retrieves the current school settings
	Get(ctx context.Context) (SettingsResponse, error)

	// Update merges the request into the stored settings, creating the
	// configuration row on first call
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
