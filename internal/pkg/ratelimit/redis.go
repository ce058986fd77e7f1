package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Atomic token bucket stored in a hash.
// KEYS[1] bucket key
// ARGV: capacity, refill interval ms, now ms, ttl seconds
// Returns {allowed, tokens, retry_after_ms}
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local interval = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local state = redis.call("HMGET", key, "tokens", "last_refill_ms")
local tokens = tonumber(state[1])
local last = tonumber(state[2])

if tokens == nil or last == nil then
  tokens = capacity
  last = now
end

if now > last then
  local earned = math.floor((now - last) / interval)
  if earned > 0 then
    tokens = math.min(capacity, tokens + earned)
    last = last + earned * interval
  end
end

local allowed = 0
local retry = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
else
  retry = interval - (now - last)
  if retry < 0 then retry = 0 end
end

redis.call("HSET", key, "tokens", tokens, "last_refill_ms", last)
redis.call("EXPIRE", key, ttl)
return {allowed, tokens, retry}
`)

// RedisLimiter shares buckets between replicas through Redis
type RedisLimiter struct {
	client *redis.Client
	prefix string
	cfg    Config
	now    func() time.Time
}

// NewRedisLimiter creates a limiter whose bucket keys start with prefix
func NewRedisLimiter(client *redis.Client, prefix string, cfg Config) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		cfg:    cfg.normalized(),
		now:    time.Now,
	}
}

// Allow consumes one token for key
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	interval := l.cfg.refillInterval().Milliseconds()
	if interval < 1 {
		interval = 1
	}
	// a full bucket needs capacity*interval to refill; keep it a little longer
	ttl := (int64(l.cfg.Capacity)*interval)/1000 + 60

	res, err := tokenBucketScript.Run(ctx, l.client,
		[]string{l.prefix + key},
		l.cfg.Capacity, interval, l.now().UnixMilli(), ttl,
	).Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit script failed: %w", err)
	}
	if len(res) != 3 {
		return Decision{}, fmt.Errorf("rate limit script returned %d values", len(res))
	}

	return Decision{
		Allowed:    asInt64(res[0]) == 1,
		Limit:      l.cfg.Capacity,
		Remaining:  int(asInt64(res[1])),
		RetryAfter: time.Duration(asInt64(res[2])) * time.Millisecond,
	}, nil
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	default:
		return 0
	}
}
