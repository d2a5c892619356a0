package likes

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCounter(t *testing.T) (*Counter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCounter(client), mr
}

func TestCounter_IncrDecr(t *testing.T) {
	ctx := context.Background()
	c, _ := testCounter(t)

	require.NoError(t, c.Incr(ctx, 7))
	require.NoError(t, c.Incr(ctx, 7))
	require.NoError(t, c.Decr(ctx, 7))

	delta, err := c.PendingDelta(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), delta)

	// untouched projects read zero
	delta, err = c.PendingDelta(ctx, 99)
	require.NoError(t, err)
	assert.Zero(t, delta)
}

func TestCounter_DeltaExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := testCounter(t)

	require.NoError(t, c.Incr(ctx, 7))
	assert.Positive(t, mr.TTL(deltaKey(7)))
}

func TestCounter_TakeDelta(t *testing.T) {
	ctx := context.Background()
	c, _ := testCounter(t)

	require.NoError(t, c.Incr(ctx, 7))
	require.NoError(t, c.Incr(ctx, 7))

	delta, err := c.TakeDelta(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), delta)

	// second take sees nothing
	delta, err = c.TakeDelta(ctx, 7)
	require.NoError(t, err)
	assert.Zero(t, delta)
}

func TestCounter_TakeDirty(t *testing.T) {
	ctx := context.Background()
	c, _ := testCounter(t)

	require.NoError(t, c.Incr(ctx, 7))
	require.NoError(t, c.Decr(ctx, 8))
	require.NoError(t, c.Incr(ctx, 7))

	dirty, err := c.TakeDirty(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{7, 8}, dirty)

	dirty, err = c.TakeDirty(ctx)
	require.NoError(t, err)
	assert.Empty(t, dirty)
}
