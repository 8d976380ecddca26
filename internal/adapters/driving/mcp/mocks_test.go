package mcp

import (
	"context"

	"github.com/custodia-labs/inkmark/internal/core/domain"
)

// mockHighlightService is a mock implementation of driving.HighlightService.
type mockHighlightService struct {
	highlights []domain.Highlight
	highlight  *domain.Highlight
	err        error

	added    *domain.Highlight
	pickedAt [2]float64
}

func (m *mockHighlightService) Load(_ context.Context, _ string) error {
	return m.err
}

func (m *mockHighlightService) Add(_ context.Context, candidate domain.Highlight) (*domain.Highlight, error) {
	if m.err != nil {
		return nil, m.err
	}
	c := candidate.Clone()
	m.added = &c
	c.ID = "h-1"
	return &c, nil
}

func (m *mockHighlightService) List(_ context.Context, _ string, page int) ([]domain.Highlight, error) {
	var out []domain.Highlight
	for i := range m.highlights {
		if m.highlights[i].Page() == page {
			out = append(out, m.highlights[i])
		}
	}
	return out, m.err
}

func (m *mockHighlightService) ListAll(_ context.Context, _ string) ([]domain.Highlight, error) {
	return m.highlights, m.err
}

func (m *mockHighlightService) Get(_ context.Context, _, _ string) (*domain.Highlight, error) {
	return m.highlight, m.err
}

func (m *mockHighlightService) PickAt(_ context.Context, _ string, _ int, x, y float64) (*domain.Highlight, error) {
	m.pickedAt = [2]float64{x, y}
	return m.highlight, m.err
}

func (m *mockHighlightService) SetColor(_ context.Context, _, _ string, _ domain.HighlightColor) error {
	return m.err
}

func (m *mockHighlightService) SetNote(_ context.Context, _, _ string, _ *string) error {
	return m.err
}

func (m *mockHighlightService) Remove(_ context.Context, _, _ string) error {
	return m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.GeometrySettings
	err      error
}

func (m *mockSettingsService) Get() (domain.GeometrySettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ domain.GeometrySettings) error { return m.err }
func (m *mockSettingsService) Set(_ string, _ float64) error        { return m.err }
func (m *mockSettingsService) Reset() error                         { return m.err }

func (m *mockSettingsService) GetDefaults() domain.GeometrySettings {
	return domain.DefaultGeometrySettings()
}

func (m *mockSettingsService) Keys() []string { return nil }
