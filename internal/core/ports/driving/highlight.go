package driving

import (
	"context"

	"github.com/custodia-labs/inkmark/internal/core/domain"
)

// HighlightService manages highlights on document pages and keeps
// overlapping highlights on a page consolidated into one record.
type HighlightService interface {
	// Load reads an owner's highlights from the store into memory.
	Load(ctx context.Context, ownerID string) error

	// Add stores a candidate highlight, merging it into the oldest
	// overlapping highlight on the same page when one exists. It returns
	// the record that now represents the candidate.
	Add(ctx context.Context, candidate domain.Highlight) (*domain.Highlight, error)

	// List returns the highlights on one page, oldest first.
	List(ctx context.Context, ownerID string, page int) ([]domain.Highlight, error)

	// ListAll returns every highlight of an owner ordered by page, then age.
	ListAll(ctx context.Context, ownerID string) ([]domain.Highlight, error)

	// Get retrieves a highlight by ID.
	Get(ctx context.Context, ownerID, id string) (*domain.Highlight, error)

	// PickAt returns the topmost highlight containing the point, or nil.
	PickAt(ctx context.Context, ownerID string, page int, x, y float64) (*domain.Highlight, error)

	// SetColor changes a highlight's colour.
	SetColor(ctx context.Context, ownerID, id string, color domain.HighlightColor) error

	// SetNote sets or clears (nil) a highlight's note.
	SetNote(ctx context.Context, ownerID, id string, note *string) error

	// Remove deletes a highlight.
	Remove(ctx context.Context, ownerID, id string) error
}
