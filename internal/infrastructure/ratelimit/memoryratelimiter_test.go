package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimiter_Hit_AllowsUpToMax(t *testing.T) {
	limiter := NewMemoryRateLimiter(5, time.Minute)
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

func TestMemoryRateLimiter_Hit_ZeroMaxHitsDeniesWithoutPanic(t *testing.T) {
	ctx := context.Background()

	for _, maxHits := range []int{0, -1} {
		limiter := NewMemoryRateLimiter(maxHits, time.Minute)
		for i := 0; i < 3; i++ {
			res, err := limiter.Hit(ctx, "user-1")
			require.NoError(t, err)
			assert.False(t, res.Allowed, "maxHits=%d denies everything", maxHits)
			assert.Equal(t, minRetryAfter, res.RetryAfter)
		}
	}
}

func TestMemoryRateLimiter_Hit_KeysAreIndependent(t *testing.T) {
	limiter := NewMemoryRateLimiter(1, time.Minute)
	ctx := context.Background()

	res, err := limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.Hit(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "a different key has its own window")

	res, err = limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestMemoryRateLimiter_Hit_DeniedHitsNotRecorded(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	current := base

	limiter := NewMemoryRateLimiter(2, time.Minute)
	limiter.now = func() time.Time { return current }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := limiter.Hit(ctx, "user-1")
		require.NoError(t, err)
		require.True(t, res.Allowed)
	}

	// Hammer while throttled. None of these should extend the window.
	for i := 0; i < 10; i++ {
		current = current.Add(time.Second)
		res, err := limiter.Hit(ctx, "user-1")
		require.NoError(t, err)
		require.False(t, res.Allowed)
	}

	// The window slides past the two accepted hits regardless of the
	// denied attempts in between.
	current = base.Add(time.Minute + time.Second)
	res, err := limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "window should recover once accepted hits age out")
}

func TestMemoryRateLimiter_Hit_RetryAfterTracksOldestHit(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	current := base

	limiter := NewMemoryRateLimiter(1, time.Minute)
	limiter.now = func() time.Time { return current }
	ctx := context.Background()

	res, err := limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	current = base.Add(40 * time.Second)
	res, err = limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, res.Allowed)
	assert.Equal(t, 20*time.Second, res.RetryAfter)
}

func TestMemoryRateLimiter_Hit_RetryAfterRoundsUpAndFloorsAtOneSecond(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	current := base

	limiter := NewMemoryRateLimiter(1, time.Minute)
	limiter.now = func() time.Time { return current }
	ctx := context.Background()

	res, err := limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	current = base.Add(59*time.Second + 500*time.Millisecond)
	res, err = limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, res.Allowed)
	assert.Equal(t, time.Second, res.RetryAfter, "500ms remainder rounds up to the floor")

	current = base.Add(59*time.Second + 999*time.Millisecond)
	res, err = limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, res.Allowed)
	assert.Equal(t, time.Second, res.RetryAfter)
}

func TestCompositeRateLimiter_Hit_DeniesWhenAnyMemberDenies(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	current := base

	burst := NewMemoryRateLimiter(2, 10*time.Second)
	burst.now = func() time.Time { return current }
	sustained := NewMemoryRateLimiter(100, time.Hour)
	sustained.now = func() time.Time { return current }

	limiter := NewCompositeRateLimiter(burst, sustained)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := limiter.Hit(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	res, err := limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, res.Allowed, "burst window should deny the 3rd hit")
	assert.Equal(t, 10*time.Second, res.RetryAfter)
}

func TestCompositeRateLimiter_Hit_ReportsMaxRetryAfter(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	current := base

	short := NewMemoryRateLimiter(1, 10*time.Second)
	short.now = func() time.Time { return current }
	long := NewMemoryRateLimiter(1, time.Minute)
	long.now = func() time.Time { return current }

	limiter := NewCompositeRateLimiter(short, long)
	ctx := context.Background()

	res, err := limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = limiter.Hit(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, res.Allowed)
	assert.Equal(t, time.Minute, res.RetryAfter, "longest window wins")
}

func TestMerge(t *testing.T) {
	allowed := Result{Allowed: true}
	denied5 := Result{Allowed: false, RetryAfter: 5 * time.Second}
	denied30 := Result{Allowed: false, RetryAfter: 30 * time.Second}

	res := Merge(allowed, allowed)
	assert.True(t, res.Allowed)

	res = Merge(allowed, denied5, denied30)
	assert.False(t, res.Allowed)
	assert.Equal(t, 30*time.Second, res.RetryAfter)
}
