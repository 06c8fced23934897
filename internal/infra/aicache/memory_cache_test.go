package aicache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := NewMemoryCache("test", time.Hour)

	_, found, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, cache.Set(ctx, "k", `{"insights":[]}`, 0))
	value, found, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `{"insights":[]}`, value)
	require.Equal(t, 1, cache.Len())

	cache.Reset()
	_, found, err = cache.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryCacheExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := NewMemoryCache("", time.Hour)
	require.NoError(t, cache.Set(ctx, "k", "v", 20*time.Millisecond))

	require.Eventually(t, func() bool {
		_, found, _ := cache.Get(ctx, "k")
		return !found
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryCachePrefixesIsolate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := NewMemoryCache("a", 0)
	b := NewMemoryCache("b", 0)
	require.NoError(t, a.Set(ctx, "k", "from-a", 0))

	_, found, err := b.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, found)
}
