package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/inkmark/internal/core/domain"
	"github.com/custodia-labs/inkmark/internal/core/ports/driven"
)

// Ensure HighlightStore implements the interface.
var _ driven.HighlightStore = (*HighlightStore)(nil)

// HighlightStore is an in-memory implementation of driven.HighlightStore.
type HighlightStore struct {
	mu         sync.RWMutex
	highlights map[string]domain.Highlight
}

// NewHighlightStore creates a new in-memory highlight store.
func NewHighlightStore() *HighlightStore {
	return &HighlightStore{
		highlights: make(map[string]domain.Highlight),
	}
}

// Load returns every highlight owned by a document, oldest first.
func (s *HighlightStore) Load(_ context.Context, ownerID string) ([]domain.Highlight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Highlight, 0)
	for _, h := range s.highlights {
		if h.OwnerID == ownerID {
			result = append(result, h.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Upsert creates or replaces a highlight by ID.
func (s *HighlightStore) Upsert(_ context.Context, highlight *domain.Highlight) error {
	if highlight == nil || highlight.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlights[highlight.ID] = highlight.Clone()
	return nil
}

// Delete removes a highlight by ID.
func (s *HighlightStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.highlights, id)
	return nil
}

// Count returns the number of stored highlights.
func (s *HighlightStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.highlights)
}
