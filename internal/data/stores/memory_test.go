package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV_SetRawKeepsBytesAndKey(t *testing.T) {
	store := NewMemoryKV()
	store.SetRaw("tasks", []byte(`[{"id":1}]`))

	entry, err := store.GetRaw(context.Background(), "tasks")
	require.NoError(t, err)
	assert.Equal(t, "tasks", entry.Key)
	assert.JSONEq(t, `[{"id":1}]`, string(entry.Value))
	assert.False(t, entry.UpdatedAt.IsZero())
}

func TestMemoryKV_SetRefreshesEntry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKV()

	require.NoError(t, store.Set(ctx, "theme", "light"))
	first, err := store.GetRaw(ctx, "theme")
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "theme", "dark"))
	second, err := store.GetRaw(ctx, "theme")
	require.NoError(t, err)

	assert.Equal(t, json.RawMessage(`"dark"`), second.Value)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
}

func TestMemoryKV_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryKV()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set(ctx, fmt.Sprintf("key-%02d", i), i)
		}()
		go func() {
			defer wg.Done()
			_, _ = store.ListKeys(ctx)
		}()
	}
	wg.Wait()

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 50)
	assert.Equal(t, "key-00", keys[0])

	var got int
	require.NoError(t, store.Get(ctx, "key-42", &got))
	assert.Equal(t, 42, got)
}
