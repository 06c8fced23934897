package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedLimiter hands out one token bucket per key. Buckets idle for longer
// than the TTL are evicted on the next call, and Reset drops all state.
type KeyedLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
	visitors map[string]*visitor
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewPerMinute builds a limiter allowing requestsPerMinute with the given burst.
// A non-positive rate yields a limiter that always allows.
func NewPerMinute(requestsPerMinute, burst int, ttl time.Duration) *KeyedLimiter {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60.0)
	}
	if burst <= 0 {
		burst = 1
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &KeyedLimiter{
		limit:    limit,
		burst:    burst,
		ttl:      ttl,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

// Allow reports whether a request for key may proceed now.
func (l *KeyedLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.cleanupLocked(now)
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Reset forgets every tracked key.
func (l *KeyedLimiter) Reset() {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.visitors = make(map[string]*visitor)
	l.mu.Unlock()
}

// Len returns the number of tracked keys.
func (l *KeyedLimiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func (l *KeyedLimiter) cleanupLocked(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, key)
		}
	}
}
