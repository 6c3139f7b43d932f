package settings

import "context"

// SettingsRepository persists the single-row school configuration.
type SettingsRepository interface {
	// Get retrieves the configuration, ErrNotConfigured when absent
	Get(ctx context.Context) (Settings, error)

	// Upsert creates or replaces the configuration row
	Upsert(ctx context.Context, s Settings) (Settings, error)
}
