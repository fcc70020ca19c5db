package driving

import "github.com/custodia-labs/incentiva/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetValue parses and stores a single setting by key.
	SetValue(key, value string) error

	// Reset removes a stored setting so its default applies.
	Reset(key string) error

	// Keys returns the settable keys in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
