package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("key1", "original"))
	require.NoError(t, store.Set("key1", "updated"))

	val, ok := store.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)
	assert.Equal(t, "updated", store.GetString("key1"))
}

func TestConfigStore_GetFloat64(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("geometry.gap_threshold", 0.08)
	_ = store.Set("geometry.int", int64(2))
	_ = store.Set("geometry.str", "x")

	assert.Equal(t, 0.08, store.GetFloat64("geometry.gap_threshold", 0))
	assert.Equal(t, 2.0, store.GetFloat64("geometry.int", 0))
	assert.Equal(t, 0.3, store.GetFloat64("geometry.str", 0.3))
	assert.Equal(t, 0.3, store.GetFloat64("missing", 0.3))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("flag", true)
	_ = store.Set("notflag", "true")

	assert.True(t, store.GetBool("flag"))
	assert.False(t, store.GetBool("notflag"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_SaveLoadNoop(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	wg.Add(100)
	for i := 0; i < 50; i++ {
		go func(n int) {
			defer wg.Done()
			_ = store.Set("key", float64(n))
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetFloat64("key", 0)
		}()
	}
	wg.Wait()

	_, ok := store.Get("key")
	assert.True(t, ok)
}
