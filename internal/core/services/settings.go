package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driven"
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyDataPath       = "data.path"
	KeyDataWatch      = "data.watch"
	KeyDataDuplicates = "data.duplicates"
	KeyChartsTopN     = "charts.top_n"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Missing or invalid stored
// values fall back to their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Data: domain.DataSettings{
			Path:       s.configStore.GetString(KeyDataPath),
			Watch:      s.getBool(KeyDataWatch, defaults.Data.Watch),
			Duplicates: s.getDuplicatePolicy(defaults.Data.Duplicates),
		},
		Charts: domain.ChartSettings{
			TopN: s.getPositiveInt(KeyChartsTopN, defaults.Charts.TopN),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if err := s.configStore.Set(KeyDataPath, settings.Data.Path); err != nil {
		return fmt.Errorf("save data path: %w", err)
	}
	if err := s.configStore.Set(KeyDataWatch, settings.Data.Watch); err != nil {
		return fmt.Errorf("save data watch: %w", err)
	}
	if err := s.configStore.Set(KeyDataDuplicates, settings.Data.Duplicates.String()); err != nil {
		return fmt.Errorf("save data duplicates: %w", err)
	}
	if err := s.configStore.Set(KeyChartsTopN, settings.Charts.TopN); err != nil {
		return fmt.Errorf("save charts top_n: %w", err)
	}

	return nil
}

// SetValue parses and stores a single setting by key.
func (s *SettingsService) SetValue(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case KeyDataPath:
		return s.configStore.Set(key, value)

	case KeyDataWatch:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, b)

	case KeyDataDuplicates:
		policy := domain.DuplicatePolicy(value)
		if !policy.IsValid() {
			return fmt.Errorf("%w: unknown duplicate policy %q", domain.ErrInvalidInput, value)
		}
		return s.configStore.Set(key, policy.String())

	case KeyChartsTopN:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, n)

	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Reset removes a stored setting so its default applies.
func (s *SettingsService) Reset(key string) error {
	if !s.isKnown(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Delete(key)
}

// Keys returns the settable keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{KeyDataPath, KeyDataWatch, KeyDataDuplicates, KeyChartsTopN}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) isKnown(key string) bool {
	for _, k := range s.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val < 1 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	val, ok := s.configStore.GetBool(key)
	if !ok {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuplicatePolicy(defaultVal domain.DuplicatePolicy) domain.DuplicatePolicy {
	val := s.configStore.GetString(KeyDataDuplicates)
	if val == "" {
		return defaultVal
	}
	policy := domain.DuplicatePolicy(val)
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}
