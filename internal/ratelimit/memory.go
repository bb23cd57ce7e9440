package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a per-process fixed-window counter. It resets on
// restart and does not coordinate across instances; use RedisLimiter when
// running more than one replica.
type MemoryLimiter struct {
	mu      sync.Mutex
	quota   int
	window  time.Duration
	buckets map[string]*window
	now     func() time.Time
}

func NewMemoryLimiter(quota int, windowLen time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		quota:   quota,
		window:  windowLen,
		buckets: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Result, error) {
	_ = ctx
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &window{count: 1, resetAt: now.Add(l.window)}
		l.buckets[key] = b
		return Result{Allowed: true, Remaining: l.quota - 1, ResetAt: b.resetAt}, nil
	}

	allowed := b.count < l.quota
	b.count++

	remaining := l.quota - b.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: allowed, Remaining: remaining, ResetAt: b.resetAt}, nil
}
