package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/inkmark/internal/core/domain"
	"github.com/custodia-labs/inkmark/internal/core/geometry"
	"github.com/custodia-labs/inkmark/internal/core/ports/driven"
	"github.com/custodia-labs/inkmark/internal/core/ports/driving"
	"github.com/custodia-labs/inkmark/internal/logger"
)

// Ensure HighlightService implements the interface.
var _ driving.HighlightService = (*HighlightService)(nil)

// pageKey identifies one page of one document.
type pageKey struct {
	ownerID string
	page    int
}

// HighlightService keeps an in-memory, per-page view of each document's
// highlights in step with the store. The view only ever reflects writes
// the store has accepted, and no two highlights on a page overlap.
type HighlightService struct {
	store      driven.HighlightStore
	normalizer *geometry.Normalizer

	now   func() time.Time
	newID func() string

	mu        sync.Mutex
	owners    map[string]map[int][]domain.Highlight
	pageLocks map[pageKey]*sync.Mutex
}

// NewHighlightService creates a new highlight service.
// A nil normalizer uses the default thresholds.
func NewHighlightService(store driven.HighlightStore, normalizer *geometry.Normalizer) *HighlightService {
	if normalizer == nil {
		normalizer = geometry.DefaultNormalizer()
	}
	return &HighlightService{
		store:      store,
		normalizer: normalizer,
		now:        time.Now,
		newID:      uuid.NewString,
		owners:     make(map[string]map[int][]domain.Highlight),
		pageLocks:  make(map[pageKey]*sync.Mutex),
	}
}

// Load reads an owner's highlights from the store, replacing any cached view.
func (s *HighlightService) Load(ctx context.Context, ownerID string) error {
	return s.load(ctx, ownerID, true)
}

// load reads an owner from the store. Without replace an owner cached by a
// concurrent caller in the meantime is kept.
func (s *HighlightService) load(ctx context.Context, ownerID string, replace bool) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if ownerID == "" {
		return fmt.Errorf("%w: owner id is required", domain.ErrInvalidInput)
	}

	highlights, err := s.store.Load(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("loading highlights for %s: %w", ownerID, err)
	}

	pages := make(map[int][]domain.Highlight)
	for i := range highlights {
		h := highlights[i]
		pages[h.Page()] = append(pages[h.Page()], h)
	}
	for page := range pages {
		sortByCreatedAt(pages[page])
	}

	s.mu.Lock()
	if _, cached := s.owners[ownerID]; replace || !cached {
		s.owners[ownerID] = pages
	}
	s.mu.Unlock()

	logger.Debug("loaded highlights", "owner", ownerID, "count", len(highlights), "pages", len(pages))
	return nil
}

// Add stores a candidate highlight. When the candidate overlaps existing
// highlights on its page it is folded into the oldest of them (the
// primary), the other overlapping records are deleted, and the primary is
// returned with its merged content and rects. Candidate rects are bands as
// Normalize returns them; raw layout fragments must be normalised first.
func (s *HighlightService) Add(ctx context.Context, candidate domain.Highlight) (*domain.Highlight, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := validateCandidate(&candidate); err != nil {
		return nil, err
	}
	if err := s.ensureLoaded(ctx, candidate.OwnerID); err != nil {
		return nil, err
	}

	key := pageKey{ownerID: candidate.OwnerID, page: candidate.Page()}
	unlock := s.lockPage(key)
	defer unlock()

	rects := s.normalizer.Renormalize(candidate.ContextRange.Rects)
	if len(rects) == 0 {
		return nil, fmt.Errorf("%w: no drawable rects", domain.ErrEmptySelection)
	}

	overlapping, merged, err := s.consolidate(s.pageSnapshot(key), candidate, rects)
	if err != nil {
		return nil, err
	}
	if len(overlapping) == 0 {
		return s.insert(ctx, key, candidate, rects)
	}
	return s.merge(ctx, key, candidate, overlapping, merged)
}

// consolidate collects every highlight the candidate overlaps, directly or
// through the growing merged geometry, and returns them with the merged
// rects. A merged band can reach highlights the candidate alone did not
// touch, so the search repeats until the set stops growing.
func (s *HighlightService) consolidate(
	existing []domain.Highlight,
	candidate domain.Highlight,
	rects []domain.NormalizedRect,
) ([]domain.Highlight, []domain.NormalizedRect, error) {
	taken := make([]bool, len(existing))
	var overlapping []domain.Highlight
	target := rects

	for {
		grew := false
		for i := range existing {
			if taken[i] || !s.normalizer.Overlap(existing[i].ContextRange.Rects, target) {
				continue
			}
			taken[i] = true
			overlapping = append(overlapping, existing[i])
			grew = true
		}
		if !grew {
			return overlapping, target, nil
		}
		var err error
		if target, err = s.mergedRects(candidate, overlapping); err != nil {
			return nil, nil, err
		}
	}
}

// primaryIndex returns the position of the oldest highlight.
func primaryIndex(highlights []domain.Highlight) int {
	idx := 0
	for i := range highlights {
		if highlights[i].CreatedAt.Before(highlights[idx].CreatedAt) {
			idx = i
		}
	}
	return idx
}

// mergedRects renormalises the union of the primary, the candidate and the
// other overlapping highlights, in that order. An empty union is an error
// so nothing is written for it.
func (s *HighlightService) mergedRects(
	candidate domain.Highlight,
	overlapping []domain.Highlight,
) ([]domain.NormalizedRect, error) {
	primaryIdx := primaryIndex(overlapping)
	primary := overlapping[primaryIdx]

	all := append([]domain.NormalizedRect(nil), primary.ContextRange.Rects...)
	all = append(all, candidate.ContextRange.Rects...)
	for i := range overlapping {
		if i != primaryIdx {
			all = append(all, overlapping[i].ContextRange.Rects...)
		}
	}
	rects := s.normalizer.Renormalize(all)
	if len(rects) == 0 {
		return nil, fmt.Errorf("%w: merge with %s has no drawable rects", domain.ErrEmptySelection, primary.ID)
	}
	return rects, nil
}

// insert persists a candidate that overlaps nothing.
func (s *HighlightService) insert(
	ctx context.Context,
	key pageKey,
	candidate domain.Highlight,
	rects []domain.NormalizedRect,
) (*domain.Highlight, error) {
	h := candidate.Clone()
	h.ContextRange.Rects = rects
	if h.ID == "" {
		h.ID = s.newID()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = s.now()
	}

	if err := s.store.Upsert(ctx, &h); err != nil {
		logger.Warn("upsert failed", "id", h.ID, "err", err)
		return nil, fmt.Errorf("%w: saving highlight %s: %w", domain.ErrPersistence, h.ID, err)
	}

	s.mu.Lock()
	pages := s.owners[key.ownerID]
	pages[key.page] = append(pages[key.page], h.Clone())
	sortByCreatedAt(pages[key.page])
	s.mu.Unlock()

	logger.Debug("added highlight", "id", h.ID, "owner", key.ownerID, "page", key.page, "rects", len(rects))
	return &h, nil
}

// merge folds the candidate and every overlapping highlight into the
// oldest overlapping highlight. The merged primary is written before the
// others are deleted so a failure part way never loses content.
func (s *HighlightService) merge(
	ctx context.Context,
	key pageKey,
	candidate domain.Highlight,
	overlapping []domain.Highlight,
	rects []domain.NormalizedRect,
) (*domain.Highlight, error) {
	primaryIdx := primaryIndex(overlapping)
	primary := overlapping[primaryIdx]

	merged := primary.Clone()
	merged.ContextRange.Rects = rects
	merged.Content = mergeContent(primary.Content, candidate.Content)

	if err := s.store.Upsert(ctx, &merged); err != nil {
		logger.Warn("upsert failed during merge", "id", merged.ID, "err", err)
		return nil, fmt.Errorf("%w: saving merged highlight %s: %w", domain.ErrPersistence, merged.ID, err)
	}

	deleted := make(map[string]bool)
	var deleteErr error
	for i := range overlapping {
		if i == primaryIdx {
			continue
		}
		id := overlapping[i].ID
		if err := s.store.Delete(ctx, id); err != nil {
			logger.Warn("delete failed during merge", "id", id, "err", err)
			deleteErr = fmt.Errorf("%w: deleting merged highlight %s: %w", domain.ErrPersistence, id, err)
			break
		}
		deleted[id] = true
	}

	s.mu.Lock()
	pages := s.owners[key.ownerID]
	kept := pages[key.page][:0:0]
	for _, h := range pages[key.page] {
		switch {
		case deleted[h.ID]:
			continue
		case h.ID == merged.ID:
			kept = append(kept, merged.Clone())
		default:
			kept = append(kept, h)
		}
	}
	sortByCreatedAt(kept)
	pages[key.page] = kept
	s.mu.Unlock()

	logger.Debug("merged highlight",
		"primary", merged.ID, "owner", key.ownerID, "page", key.page,
		"overlapping", len(overlapping), "deleted", len(deleted))

	if deleteErr != nil {
		return nil, deleteErr
	}
	return &merged, nil
}

// List returns the highlights on one page, oldest first.
func (s *HighlightService) List(ctx context.Context, ownerID string, page int) ([]domain.Highlight, error) {
	if err := s.ensureLoaded(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.pageSnapshot(pageKey{ownerID: ownerID, page: page}), nil
}

// ListAll returns every highlight of an owner ordered by page, then age.
func (s *HighlightService) ListAll(ctx context.Context, ownerID string) ([]domain.Highlight, error) {
	if err := s.ensureLoaded(ctx, ownerID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pages := s.owners[ownerID]
	numbers := make([]int, 0, len(pages))
	for page := range pages {
		numbers = append(numbers, page)
	}
	sort.Ints(numbers)

	result := make([]domain.Highlight, 0)
	for _, page := range numbers {
		for i := range pages[page] {
			result = append(result, pages[page][i].Clone())
		}
	}
	return result, nil
}

// Get retrieves a highlight by ID.
func (s *HighlightService) Get(ctx context.Context, ownerID, id string) (*domain.Highlight, error) {
	if err := s.ensureLoaded(ctx, ownerID); err != nil {
		return nil, err
	}
	h, ok := s.find(ownerID, id)
	if !ok {
		return nil, fmt.Errorf("highlight %s: %w", id, domain.ErrNotFound)
	}
	return &h, nil
}

// PickAt returns the newest highlight on the page containing (x, y), or
// nil when the point hits nothing.
func (s *HighlightService) PickAt(ctx context.Context, ownerID string, page int, x, y float64) (*domain.Highlight, error) {
	highlights, err := s.List(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}
	h, ok := geometry.PickHighlightAtPoint(highlights, x, y)
	if !ok {
		return nil, nil
	}
	return &h, nil
}

// SetColor changes a highlight's colour.
func (s *HighlightService) SetColor(ctx context.Context, ownerID, id string, color domain.HighlightColor) error {
	if !color.IsValid() {
		return fmt.Errorf("%w: unknown colour %q", domain.ErrInvalidInput, color)
	}
	return s.update(ctx, ownerID, id, func(h *domain.Highlight) {
		h.Color = color
	})
}

// SetNote sets the note on a highlight; nil clears it.
func (s *HighlightService) SetNote(ctx context.Context, ownerID, id string, note *string) error {
	return s.update(ctx, ownerID, id, func(h *domain.Highlight) {
		if note == nil {
			h.Note = nil
			return
		}
		n := *note
		h.Note = &n
	})
}

// update persists a modified copy of a highlight and swaps it into the
// cached page only once the store accepted it.
func (s *HighlightService) update(ctx context.Context, ownerID, id string, mutate func(*domain.Highlight)) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if err := s.ensureLoaded(ctx, ownerID); err != nil {
		return err
	}

	current, ok := s.find(ownerID, id)
	if !ok {
		return fmt.Errorf("highlight %s: %w", id, domain.ErrNotFound)
	}

	key := pageKey{ownerID: ownerID, page: current.Page()}
	unlock := s.lockPage(key)
	defer unlock()

	// Re-read under the page lock; a merge may have removed it.
	current, ok = s.find(ownerID, id)
	if !ok {
		return fmt.Errorf("highlight %s: %w", id, domain.ErrNotFound)
	}

	updated := current.Clone()
	mutate(&updated)
	if err := s.store.Upsert(ctx, &updated); err != nil {
		logger.Warn("upsert failed", "id", id, "err", err)
		return fmt.Errorf("%w: updating highlight %s: %w", domain.ErrPersistence, id, err)
	}

	s.mu.Lock()
	page := s.owners[ownerID][key.page]
	for i := range page {
		if page[i].ID == id {
			page[i] = updated
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Remove deletes a highlight.
func (s *HighlightService) Remove(ctx context.Context, ownerID, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if err := s.ensureLoaded(ctx, ownerID); err != nil {
		return err
	}

	current, ok := s.find(ownerID, id)
	if !ok {
		return fmt.Errorf("highlight %s: %w", id, domain.ErrNotFound)
	}

	key := pageKey{ownerID: ownerID, page: current.Page()}
	unlock := s.lockPage(key)
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		logger.Warn("delete failed", "id", id, "err", err)
		return fmt.Errorf("%w: deleting highlight %s: %w", domain.ErrPersistence, id, err)
	}

	s.mu.Lock()
	pages := s.owners[ownerID]
	kept := pages[key.page][:0:0]
	for _, h := range pages[key.page] {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	if len(kept) == 0 {
		delete(pages, key.page)
	} else {
		pages[key.page] = kept
	}
	s.mu.Unlock()

	logger.Debug("removed highlight", "id", id, "owner", ownerID, "page", key.page)
	return nil
}

// ensureLoaded loads an owner on first use.
func (s *HighlightService) ensureLoaded(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	_, ok := s.owners[ownerID]
	s.mu.Unlock()
	if ok {
		return nil
	}
	return s.load(ctx, ownerID, false)
}

// lockPage serialises mutations on one page and returns the unlock func.
func (s *HighlightService) lockPage(key pageKey) func() {
	s.mu.Lock()
	l, ok := s.pageLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.pageLocks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// pageSnapshot returns a deep copy of one page's highlights.
func (s *HighlightService) pageSnapshot(key pageKey) []domain.Highlight {
	s.mu.Lock()
	defer s.mu.Unlock()

	page := s.owners[key.ownerID][key.page]
	out := make([]domain.Highlight, len(page))
	for i := range page {
		out[i] = page[i].Clone()
	}
	return out
}

// find looks a highlight up across an owner's pages.
func (s *HighlightService) find(ownerID, id string) (domain.Highlight, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, page := range s.owners[ownerID] {
		for i := range page {
			if page[i].ID == id {
				return page[i].Clone(), true
			}
		}
	}
	return domain.Highlight{}, false
}

func validateCandidate(h *domain.Highlight) error {
	switch {
	case h.OwnerID == "":
		return fmt.Errorf("%w: owner id is required", domain.ErrInvalidInput)
	case h.ContextRange.Page < 1:
		return fmt.Errorf("%w: page must be >= 1, got %d", domain.ErrInvalidInput, h.ContextRange.Page)
	case len(h.ContextRange.Rects) == 0:
		return fmt.Errorf("%w: at least one rect is required", domain.ErrInvalidInput)
	}
	if h.Color == "" {
		h.Color = domain.DefaultHighlightColor
	}
	if !h.Color.IsValid() {
		return fmt.Errorf("%w: unknown colour %q", domain.ErrInvalidInput, h.Color)
	}
	return nil
}

// mergeContent joins two highlight texts, skipping exact repeats.
func mergeContent(primary, candidate string) string {
	if primary == candidate {
		return primary
	}
	return strings.Join([]string{primary, candidate}, "\n")
}

func sortByCreatedAt(highlights []domain.Highlight) {
	sort.SliceStable(highlights, func(i, j int) bool {
		return highlights[i].CreatedAt.Before(highlights[j].CreatedAt)
	})
}
