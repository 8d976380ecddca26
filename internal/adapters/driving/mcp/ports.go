package mcp

import (
	"github.com/custodia-labs/inkmark/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the MCP server uses.
type Ports struct {
	// Highlight manages stored highlights.
	Highlight driving.HighlightService

	// Settings supplies the geometry thresholds used to normalise raw
	// fragments passed to highlight_add. Optional; defaults apply when nil.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Highlight == nil {
		return ErrMissingHighlightService
	}
	return nil
}
