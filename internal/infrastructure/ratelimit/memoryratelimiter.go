package ratelimit

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

const shardCount = 32

// MemoryRateLimiter is a sharded in-process sliding-window limiter. Keys
// are spread across independently locked shards so concurrent requests from
// different users do not contend on one lock. State is intentionally not
// persisted: losing it on restart is acceptable for best-effort throttling,
// and it is not globally consistent across multiple service instances.
type MemoryRateLimiter struct {
	maxHits int
	window  time.Duration
	shards  [shardCount]*limiterShard
	now     func() time.Time
}

type limiterShard struct {
	mu   sync.Mutex
	hits map[string][]time.Time
}

func NewMemoryRateLimiter(maxHits int, window time.Duration) *MemoryRateLimiter {
	l := &MemoryRateLimiter{
		maxHits: maxHits,
		window:  window,
		now:     time.Now,
	}
	for i := range l.shards {
		l.shards[i] = &limiterShard{hits: make(map[string][]time.Time)}
	}
	return l
}

func (l *MemoryRateLimiter) Hit(_ context.Context, key string) (Result, error) {
	now := l.now()
	shard := l.shards[shardFor(key)]

	shard.mu.Lock()
	defer shard.mu.Unlock()

	cutoff := now.Add(-l.window)
	kept := shard.hits[key][:0]
	for _, ts := range shard.hits[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.maxHits {
		shard.hits[key] = kept
		retryAfter := minRetryAfter
		if len(kept) > 0 {
			retryAfter = retryAfterFrom(kept[0], l.window, now)
		}
		return Result{Allowed: false, RetryAfter: retryAfter}, nil
	}

	shard.hits[key] = append(kept, now)
	return Result{Allowed: true}, nil
}

func shardFor(key string) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % shardCount)
}
