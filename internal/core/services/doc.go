// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// HighlightService keeps each page's highlights consolidated, SelectionService
// turns a live selection into page-relative bands, and SettingsService reads
// and writes the geometry thresholds.
package services
