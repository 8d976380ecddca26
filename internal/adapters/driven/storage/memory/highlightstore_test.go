package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkmark/internal/core/domain"
)

func testHighlight(id, ownerID string, createdAt int64) domain.Highlight {
	return domain.Highlight{
		ID:      id,
		OwnerID: ownerID,
		Content: "text " + id,
		Color:   domain.ColorYellow,
		ContextRange: domain.ContextRange{
			Page:  1,
			Rects: []domain.NormalizedRect{{X: 0.1, Y: 0.2, Width: 0.3, Height: 0.02}},
		},
		CreatedAt: time.Unix(createdAt, 0),
	}
}

func TestNewHighlightStore(t *testing.T) {
	store := NewHighlightStore()
	require.NotNil(t, store)
	assert.Equal(t, 0, store.Count())
}

func TestHighlightStore_UpsertAndLoad(t *testing.T) {
	store := NewHighlightStore()
	ctx := context.Background()

	h1 := testHighlight("hl-1", "doc-1", 2)
	h2 := testHighlight("hl-2", "doc-1", 1)
	h3 := testHighlight("hl-3", "doc-2", 3)
	require.NoError(t, store.Upsert(ctx, &h1))
	require.NoError(t, store.Upsert(ctx, &h2))
	require.NoError(t, store.Upsert(ctx, &h3))

	loaded, err := store.Load(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "hl-2", loaded[0].ID)
	assert.Equal(t, "hl-1", loaded[1].ID)
}

func TestHighlightStore_UpsertReplaces(t *testing.T) {
	store := NewHighlightStore()
	ctx := context.Background()

	h := testHighlight("hl-1", "doc-1", 1)
	require.NoError(t, store.Upsert(ctx, &h))

	h.Color = domain.ColorBlue
	require.NoError(t, store.Upsert(ctx, &h))

	loaded, err := store.Load(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, domain.ColorBlue, loaded[0].Color)
}

func TestHighlightStore_UpsertRequiresID(t *testing.T) {
	store := NewHighlightStore()

	err := store.Upsert(context.Background(), &domain.Highlight{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Upsert(context.Background(), nil), domain.ErrInvalidInput)
}

func TestHighlightStore_Delete(t *testing.T) {
	store := NewHighlightStore()
	ctx := context.Background()

	h := testHighlight("hl-1", "doc-1", 1)
	require.NoError(t, store.Upsert(ctx, &h))

	require.NoError(t, store.Delete(ctx, "hl-1"))
	assert.Equal(t, 0, store.Count())

	// Deleting again is not an error
	assert.NoError(t, store.Delete(ctx, "hl-1"))
}

func TestHighlightStore_Load_Empty(t *testing.T) {
	store := NewHighlightStore()

	loaded, err := store.Load(context.Background(), "doc-1")

	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.NotNil(t, loaded)
}

func TestHighlightStore_DataIsolation(t *testing.T) {
	store := NewHighlightStore()
	ctx := context.Background()

	h := testHighlight("hl-1", "doc-1", 1)
	require.NoError(t, store.Upsert(ctx, &h))

	// Mutating the caller's copy must not leak into the store
	h.ContextRange.Rects[0].X = 0.9

	loaded, err := store.Load(ctx, "doc-1")
	require.NoError(t, err)
	loaded[0].ContextRange.Rects[0].Width = 0.5

	again, err := store.Load(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 0.1, again[0].ContextRange.Rects[0].X)
	assert.Equal(t, 0.3, again[0].ContextRange.Rects[0].Width)
}

func TestHighlightStore_Concurrency(t *testing.T) {
	store := NewHighlightStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	numGoroutines := 50

	wg.Add(numGoroutines * 2)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			h := testHighlight("hl-"+string(rune('A'+id)), "doc-1", int64(id))
			_ = store.Upsert(ctx, &h)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = store.Load(ctx, "doc-1")
		}()
	}
	wg.Wait()

	assert.Equal(t, numGoroutines, store.Count())
}
