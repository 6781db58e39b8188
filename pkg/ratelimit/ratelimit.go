package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Limiter counts requests per identity over a fixed window. It uses Redis
// when a client is supplied and falls back to a process-local store when
// Redis is nil or errors, so a single instance keeps working without any
// external dependency. Safe for concurrent use.
type Limiter struct {
	limit  int
	window time.Duration
	prefix string
	rdb    *goredis.Client

	store       sync.Map // identity -> *entry
	cleanupOnce sync.Once
}

// entry tracks request count for one identity (in-memory backend)
type entry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const incrScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// New builds a limiter allowing limit requests per identity per window.
// rdb may be nil; the in-memory backend is used then.
func New(rdb *goredis.Client, limit int, window time.Duration, prefix string) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		prefix: prefix,
		rdb:    rdb,
	}
}

// Allow records one request for identity and reports whether it is within
// the limit. When denied, retryAfter says how long until the window resets.
func (l *Limiter) Allow(ctx context.Context, identity string) (bool, time.Duration) {
	key := l.prefix + identity
	now := time.Now()

	var count int
	var resetAt time.Time

	if l.rdb != nil {
		var err error
		count, resetAt, err = l.allowRedis(ctx, key)
		if err != nil {
			// Fail open into the local store rather than rejecting traffic
			count, resetAt = l.allowInMemory(key, now)
		}
	} else {
		count, resetAt = l.allowInMemory(key, now)
	}

	if count > l.limit {
		retryAfter := time.Until(resetAt)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return false, retryAfter
	}
	return true, 0
}

// Remaining reports how many requests identity has left in the current
// window without consuming one. Used for response headers.
func (l *Limiter) Remaining(ctx context.Context, identity string) int {
	key := l.prefix + identity

	if l.rdb != nil {
		if n, err := l.rdb.Get(ctx, key).Int(); err == nil {
			if left := l.limit - n; left > 0 {
				return left
			}
			return 0
		}
	}

	if v, ok := l.store.Load(key); ok {
		e := v.(*entry)
		e.mu.Lock()
		defer e.mu.Unlock()
		if time.Now().Before(e.resetAt) {
			if left := l.limit - e.count; left > 0 {
				return left
			}
			return 0
		}
	}
	return l.limit
}

// Limit returns the configured per-window maximum.
func (l *Limiter) Limit() int { return l.limit }

func (l *Limiter) allowRedis(ctx context.Context, key string) (int, time.Time, error) {
	ttlSeconds := int(l.window.Seconds())

	result, err := l.rdb.Eval(ctx, incrScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("ratelimit: redis eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("ratelimit: unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

func (l *Limiter) allowInMemory(key string, now time.Time) (int, time.Time) {
	l.cleanupOnce.Do(l.startCleanup)

	v, _ := l.store.LoadOrStore(key, &entry{resetAt: now.Add(l.window)})
	e := v.(*entry)

	e.mu.Lock()
	defer e.mu.Unlock()

	if now.After(e.resetAt) {
		e.count = 0
		e.resetAt = now.Add(l.window)
	}

	// Clamp at limit+1 so denied retries cannot grow the counter unboundedly
	if e.count <= l.limit {
		e.count++
	}

	return e.count, e.resetAt
}

// startCleanup runs a background goroutine that drops expired entries
func (l *Limiter) startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			now := time.Now()
			l.store.Range(func(key, value interface{}) bool {
				e := value.(*entry)
				e.mu.Lock()
				if now.After(e.resetAt) {
					l.store.Delete(key)
				}
				e.mu.Unlock()
				return true
			})
		}
	}()
}
