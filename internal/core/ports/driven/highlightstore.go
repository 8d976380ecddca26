package driven

import (
	"context"

	"github.com/custodia-labs/inkmark/internal/core/domain"
)

// HighlightStore persists highlights.
// The engine does not care what backs it; failures are reported as errors
// and the caller keeps its in-memory view unchanged.
type HighlightStore interface {
	// Load returns every highlight owned by a document.
	Load(ctx context.Context, ownerID string) ([]domain.Highlight, error)

	// Upsert creates or replaces a highlight by ID.
	Upsert(ctx context.Context, highlight *domain.Highlight) error

	// Delete removes a highlight by ID. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}
