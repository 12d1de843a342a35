package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocatalog/internal/pkg/cache"
)

func TestMemoryClient_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryClient()

	_, err := c.Get(ctx, "all_orders")
	assert.True(t, cache.IsMiss(err))

	require.NoError(t, c.Set(ctx, "all_orders", []byte(`[]`), time.Minute))
	val, err := c.Get(ctx, "all_orders")
	require.NoError(t, err)
	assert.Equal(t, "[]", val)

	require.NoError(t, c.Delete(ctx, "all_orders"))
	_, err = c.Get(ctx, "all_orders")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestMemoryClient_Expiration(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := cache.NewMemoryClient().WithClock(func() time.Time { return now })

	require.NoError(t, c.Set(ctx, "all_products", "x", 5*time.Minute))

	now = now.Add(4 * time.Minute)
	_, err := c.Get(ctx, "all_products")
	assert.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = c.Get(ctx, "all_products")
	assert.True(t, cache.IsMiss(err))
}

func TestMemoryClient_IncrFixedWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := cache.NewMemoryClient().WithClock(func() time.Time { return now })

	for i := int64(1); i <= 3; i++ {
		n, err := c.Incr(ctx, "rate-limit:10.0.0.1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	now = now.Add(time.Minute)
	n, err := c.Incr(ctx, "rate-limit:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryClient_UnsupportedValue(t *testing.T) {
	err := cache.NewMemoryClient().Set(context.Background(), "k", 3.14, 0)
	assert.Error(t, err)
}
