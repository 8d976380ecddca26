package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/custodia-labs/inkmark/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/inkmark/internal/core/domain"
	"github.com/custodia-labs/inkmark/internal/core/ports/driven"
)

var errStoreDown = errors.New("store unavailable")

// flakyHighlightStore wraps the memory store and fails on demand.
type flakyHighlightStore struct {
	*memory.HighlightStore

	mu         sync.Mutex
	failLoad   bool
	failUpsert bool
	failDelete bool
	loads      int
}

func newFlakyHighlightStore() *flakyHighlightStore {
	return &flakyHighlightStore{HighlightStore: memory.NewHighlightStore()}
}

func (s *flakyHighlightStore) Load(ctx context.Context, ownerID string) ([]domain.Highlight, error) {
	s.mu.Lock()
	s.loads++
	fail := s.failLoad
	s.mu.Unlock()
	if fail {
		return nil, errStoreDown
	}
	return s.HighlightStore.Load(ctx, ownerID)
}

func (s *flakyHighlightStore) Upsert(ctx context.Context, h *domain.Highlight) error {
	s.mu.Lock()
	fail := s.failUpsert
	s.mu.Unlock()
	if fail {
		return errStoreDown
	}
	return s.HighlightStore.Upsert(ctx, h)
}

func (s *flakyHighlightStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	fail := s.failDelete
	s.mu.Unlock()
	if fail {
		return errStoreDown
	}
	return s.HighlightStore.Delete(ctx, id)
}

func (s *flakyHighlightStore) set(load, upsert, del bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLoad, s.failUpsert, s.failDelete = load, upsert, del
}

// fakeNode is a render tree node built in tests.
type fakeNode struct {
	parent *fakeNode
	attrs  map[string]string
	box    domain.PixelRect
}

func (n *fakeNode) Parent() driven.RenderNode {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *fakeNode) Attribute(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func (n *fakeNode) BoundingBox() domain.PixelRect {
	return n.box
}

func newNode(parent *fakeNode, box domain.PixelRect, attrs ...string) *fakeNode {
	n := &fakeNode{parent: parent, box: box, attrs: map[string]string{}}
	for _, a := range attrs {
		name, value, _ := strings.Cut(a, "=")
		n.attrs[name] = value
	}
	return n
}

// fakeSelection is a fixed text selection.
type fakeSelection struct {
	collapsed bool
	text      string
	start     *fakeNode
	rects     []domain.PixelRect
}

func (s *fakeSelection) IsCollapsed() bool { return s.collapsed }
func (s *fakeSelection) Text() string      { return s.text }

func (s *fakeSelection) StartNode() driven.RenderNode {
	if s.start == nil {
		return nil
	}
	return s.start
}

func (s *fakeSelection) ClientRects() []domain.PixelRect { return s.rects }
