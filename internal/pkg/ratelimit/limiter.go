// Package ratelimit throttles requests per key with a token bucket, either in
// process memory or shared through Redis.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one Allow call
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter consumes one token for key per call
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Config describes a bucket: Capacity tokens, refilled at RefillPerMinute
type Config struct {
	Capacity        int
	RefillPerMinute int
}

func (c Config) normalized() Config {
	if c.Capacity <= 0 {
		c.Capacity = 10
	}
	if c.RefillPerMinute <= 0 {
		c.RefillPerMinute = c.Capacity
	}
	return c
}

// refillInterval is the time needed to earn one token
func (c Config) refillInterval() time.Duration {
	return time.Minute / time.Duration(c.RefillPerMinute)
}
