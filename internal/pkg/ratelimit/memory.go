package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

// staleAfter is how long an untouched bucket is kept
const staleAfter = 10 * time.Minute

// MemoryLimiter is an in-process per-key token bucket. It is safe for
// concurrent use and only limits a single replica.
type MemoryLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens per second
	capacity float64
	limit    int
	now      func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewMemoryLimiter creates an in-memory limiter
func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	cfg = cfg.normalized()
	return &MemoryLimiter{
		buckets:  make(map[string]*bucket),
		rate:     float64(cfg.RefillPerMinute) / 60,
		capacity: float64(cfg.Capacity),
		limit:    cfg.Capacity,
		now:      time.Now,
	}
}

// Allow consumes one token for key
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, last: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*l.rate, l.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return Decision{Allowed: true, Limit: l.limit, Remaining: int(b.tokens)}, nil
	}

	wait := time.Duration(math.Ceil((1-b.tokens)/l.rate*1000)) * time.Millisecond
	return Decision{Allowed: false, Limit: l.limit, RetryAfter: wait}, nil
}

// Sweep drops buckets that have not been touched recently
func (l *MemoryLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-staleAfter)
	for key, b := range l.buckets {
		if b.last.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Run sweeps stale buckets periodically until ctx is done
func (l *MemoryLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
