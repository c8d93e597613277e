package ratelimit

import "context"

// CompositeRateLimiter fans a hit out to several limiters, typically a fast
// burst window and a slower sustained window. The hit is denied if any
// member denies it, and the reported backoff is the maximum across the
// rejecting members.
type CompositeRateLimiter struct {
	limiters []Limiter
}

func NewCompositeRateLimiter(limiters ...Limiter) *CompositeRateLimiter {
	return &CompositeRateLimiter{limiters: limiters}
}

func (c *CompositeRateLimiter) Hit(ctx context.Context, key string) (Result, error) {
	combined := Result{Allowed: true}
	for _, l := range c.limiters {
		res, err := l.Hit(ctx, key)
		if err != nil {
			return Result{}, err
		}
		if !res.Allowed {
			combined.Allowed = false
			if res.RetryAfter > combined.RetryAfter {
				combined.RetryAfter = res.RetryAfter
			}
		}
	}
	return combined, nil
}

// Merge folds several already-taken decisions into one, keeping the longest
// backoff. Used when a gate hits limiters under different keys (caller
// identity and source address) and must report a single result.
func Merge(results ...Result) Result {
	merged := Result{Allowed: true}
	for _, r := range results {
		if !r.Allowed {
			merged.Allowed = false
			if r.RetryAfter > merged.RetryAfter {
				merged.RetryAfter = r.RetryAfter
			}
		}
	}
	return merged
}
