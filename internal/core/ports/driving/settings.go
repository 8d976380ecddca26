package driving

import "github.com/custodia-labs/inkmark/internal/core/domain"

// SettingsService manages the geometry thresholds.
type SettingsService interface {
	// Get retrieves the current geometry settings, falling back to the
	// tuned defaults for anything missing or invalid.
	Get() (domain.GeometrySettings, error)

	// Save validates and persists geometry settings.
	Save(settings domain.GeometrySettings) error

	// Set updates a single threshold by config key.
	Set(key string, value float64) error

	// Reset restores the tuned defaults.
	Reset() error

	// GetDefaults returns the tuned defaults.
	GetDefaults() domain.GeometrySettings

	// Keys lists the configurable keys in display order.
	Keys() []string
}
