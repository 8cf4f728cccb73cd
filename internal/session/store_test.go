package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	token, err := store.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ok, err := store.Exists(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Append(ctx, token, 7))
	require.NoError(t, store.Append(ctx, token, 3))
	require.NoError(t, store.Append(ctx, token, 7))

	items, err := store.Cart(ctx, token)
	require.NoError(t, err)
	require.Equal(t, []uint{7, 3, 7}, items)

	// удаляется только первое вхождение
	require.NoError(t, store.RemoveFirst(ctx, token, 7))
	items, err = store.Cart(ctx, token)
	require.NoError(t, err)
	require.Equal(t, []uint{3, 7}, items)
}

func TestMemoryStoreRemoveAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	token, err := store.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, token, 1))

	require.NoError(t, store.RemoveFirst(ctx, token, 42))

	items, err := store.Cart(ctx, token)
	require.NoError(t, err)
	require.Equal(t, []uint{1}, items)
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	ok, err := store.Exists(ctx, "no-such-token")
	require.NoError(t, err)
	require.False(t, ok)

	items, err := store.Cart(ctx, "no-such-token")
	require.NoError(t, err)
	require.Empty(t, items)

	require.NoError(t, store.RemoveFirst(ctx, "no-such-token", 1))
}

func TestMemoryStoreConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	token, err := store.Create(ctx)
	require.NoError(t, err)

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = store.Append(ctx, token, 5)
		}()
	}
	wg.Wait()

	items, err := store.Cart(ctx, token)
	require.NoError(t, err)
	require.Len(t, items, n)
}
