package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestPlanCache(t *testing.T) (*PlanCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewPlanCache(client), mr
}

func TestPlanCacheSetAndGet(t *testing.T) {
	cache, _ := newTestPlanCache(t)
	ctx := context.Background()

	payload := []byte(`{"id":"snap-1"}`)
	require.NoError(t, cache.Set(ctx, "plan:abc", payload, time.Minute))

	val, err := cache.Get(ctx, "plan:abc")
	require.NoError(t, err)
	require.Equal(t, payload, val)
}

func TestPlanCacheMissIsNotAnError(t *testing.T) {
	cache, _ := newTestPlanCache(t)

	val, err := cache.Get(context.Background(), "plan:absent")
	require.NoError(t, err)
	require.Nil(t, val)
}

func TestPlanCacheEntriesExpire(t *testing.T) {
	cache, mr := newTestPlanCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "plan:abc", []byte("v"), time.Minute))

	mr.FastForward(2 * time.Minute)

	val, err := cache.Get(ctx, "plan:abc")
	require.NoError(t, err)
	require.Nil(t, val, "expected expired entry to read as a miss")
}

func TestPlanCacheDelete(t *testing.T) {
	cache, _ := newTestPlanCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "plan:abc", []byte("v"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "plan:abc"))

	val, err := cache.Get(ctx, "plan:abc")
	require.NoError(t, err)
	require.Nil(t, val, "expected deleted key to read as a miss")
}

func TestPlanCacheKeysArePrefixed(t *testing.T) {
	cache, mr := newTestPlanCache(t)

	require.NoError(t, cache.Set(context.Background(), "plan:abc", []byte("v"), time.Minute))
	require.True(t, mr.Exists("debtplan:plan:abc"), "expected key to carry the debtplan prefix, stored keys: %v", mr.Keys())
}
