package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_Hit_AllowsUpToMax(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, "punch", 5, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		res, err := limiter.Hit(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "hit %d should be allowed", i+1)
	}

	res, err := limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed, "6th hit should be denied")
	assert.GreaterOrEqual(t, res.RetryAfter, time.Second)
	assert.LessOrEqual(t, res.RetryAfter, time.Minute)
}

func TestRedisRateLimiter_Hit_DeniedHitsNotRecorded(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, "punch", 2, 2*time.Second)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := limiter.Hit(ctx, "user-1")
		require.NoError(t, err)
		require.True(t, res.Allowed)
	}

	res, err := limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, res.Allowed)

	time.Sleep(2*time.Second + 100*time.Millisecond)

	res, err = limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "window should recover after accepted hits age out")
}

func TestRedisRateLimiter_Hit_KeysAreIndependent(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, "punch", 1, time.Minute)
	ctx := context.Background()

	res, err := limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = limiter.Hit(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, "punch", 1, time.Minute)
	ctx := context.Background()

	res, err := limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	require.NoError(t, limiter.Reset(ctx, "user-1"))

	res, err = limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}
