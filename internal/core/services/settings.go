package services

import (
	"fmt"

	"github.com/custodia-labs/inkmark/internal/core/domain"
	"github.com/custodia-labs/inkmark/internal/core/ports/driven"
	"github.com/custodia-labs/inkmark/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for geometry settings.
const (
	KeyYThreshold        = "geometry.y_threshold"
	KeyGapThreshold      = "geometry.gap_threshold"
	KeyTopPadRatio       = "geometry.top_pad_ratio"
	KeyHeightRatio       = "geometry.height_ratio"
	KeyOverlapEpsilon    = "geometry.overlap_epsilon"
	KeyMaxFragmentHeight = "geometry.max_fragment_height"
	KeyMaxFragmentArea   = "geometry.max_fragment_area"
)

var settingsKeys = []string{
	KeyYThreshold,
	KeyGapThreshold,
	KeyTopPadRatio,
	KeyHeightRatio,
	KeyOverlapEpsilon,
	KeyMaxFragmentHeight,
	KeyMaxFragmentArea,
}

// SettingsService manages geometry thresholds stored in the config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current geometry settings. A stored combination that does
// not validate is replaced wholesale by the defaults.
func (s *SettingsService) Get() (domain.GeometrySettings, error) {
	defaults := domain.DefaultGeometrySettings()
	if s.configStore == nil {
		return defaults, nil
	}

	settings := domain.GeometrySettings{
		YThreshold:        s.configStore.GetFloat64(KeyYThreshold, defaults.YThreshold),
		GapThreshold:      s.configStore.GetFloat64(KeyGapThreshold, defaults.GapThreshold),
		TopPadRatio:       s.configStore.GetFloat64(KeyTopPadRatio, defaults.TopPadRatio),
		HeightRatio:       s.configStore.GetFloat64(KeyHeightRatio, defaults.HeightRatio),
		OverlapEpsilon:    s.configStore.GetFloat64(KeyOverlapEpsilon, defaults.OverlapEpsilon),
		MaxFragmentHeight: s.configStore.GetFloat64(KeyMaxFragmentHeight, defaults.MaxFragmentHeight),
		MaxFragmentArea:   s.configStore.GetFloat64(KeyMaxFragmentArea, defaults.MaxFragmentArea),
	}
	if settings.Validate() != nil {
		return defaults, nil
	}
	return settings, nil
}

// Save persists geometry settings.
func (s *SettingsService) Save(settings domain.GeometrySettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid geometry settings: %w", err)
	}

	values := map[string]float64{
		KeyYThreshold:        settings.YThreshold,
		KeyGapThreshold:      settings.GapThreshold,
		KeyTopPadRatio:       settings.TopPadRatio,
		KeyHeightRatio:       settings.HeightRatio,
		KeyOverlapEpsilon:    settings.OverlapEpsilon,
		KeyMaxFragmentHeight: settings.MaxFragmentHeight,
		KeyMaxFragmentArea:   settings.MaxFragmentArea,
	}
	for _, key := range settingsKeys {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Set updates one threshold by key.
func (s *SettingsService) Set(key string, value float64) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeyYThreshold:
		settings.YThreshold = value
	case KeyGapThreshold:
		settings.GapThreshold = value
	case KeyTopPadRatio:
		settings.TopPadRatio = value
	case KeyHeightRatio:
		settings.HeightRatio = value
	case KeyOverlapEpsilon:
		settings.OverlapEpsilon = value
	case KeyMaxFragmentHeight:
		settings.MaxFragmentHeight = value
	case KeyMaxFragmentArea:
		settings.MaxFragmentArea = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Reset restores the tuned defaults.
func (s *SettingsService) Reset() error {
	return s.Save(domain.DefaultGeometrySettings())
}

// GetDefaults returns the tuned defaults.
func (s *SettingsService) GetDefaults() domain.GeometrySettings {
	return domain.DefaultGeometrySettings()
}

// Keys lists the configurable keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingsKeys...)
}
