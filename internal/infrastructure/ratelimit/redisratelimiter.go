package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter keeps the sliding window in a Redis sorted set so the
// count survives restarts and is shared across instances. Denied hits are
// never added to the set.
type RedisRateLimiter struct {
	client  *redis.Client
	prefix  string
	maxHits int
	window  time.Duration
	now     func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, prefix string, maxHits int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:  client,
		prefix:  prefix,
		maxHits: maxHits,
		window:  window,
		now:     time.Now,
	}
}

func (l *RedisRateLimiter) Hit(ctx context.Context, key string) (Result, error) {
	now := l.now()
	redisKey := l.redisKey(key)
	windowStart := now.Add(-l.window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	oldest := pipe.ZRangeWithScores(ctx, redisKey, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	if zcard.Val() >= int64(l.maxHits) {
		retryAfter := minRetryAfter
		if entries := oldest.Val(); len(entries) > 0 {
			oldestAt := time.Unix(0, int64(entries[0].Score))
			retryAfter = retryAfterFrom(oldestAt, l.window, now)
		}
		return Result{Allowed: false, RetryAfter: retryAfter}, nil
	}

	pipe = l.client.Pipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, redisKey, l.window+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("failed to record hit: %w", err)
	}

	return Result{Allowed: true}, nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to reset window: %w", err)
	}
	return nil
}

func (l *RedisRateLimiter) redisKey(key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", l.prefix, key)
}
