package ratelimit

import (
	"context"
	"time"
)

// Result is one limiter decision. RetryAfter is only meaningful when the
// hit was denied and is never less than a second.
type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter is a sliding-window hit counter. Denied hits are not recorded,
// so a throttled caller recovers as soon as the window slides past the
// accepted hits.
type Limiter interface {
	Hit(ctx context.Context, key string) (Result, error)
}

// minRetryAfter floors the advertised backoff.
const minRetryAfter = time.Second

func retryAfterFrom(oldest time.Time, window time.Duration, now time.Time) time.Duration {
	retry := oldest.Add(window).Sub(now)
	// Round up to whole seconds.
	retry = retry.Truncate(time.Second)
	if retry < oldest.Add(window).Sub(now) {
		retry += time.Second
	}
	if retry < minRetryAfter {
		retry = minRetryAfter
	}
	return retry
}
