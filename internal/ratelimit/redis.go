package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter shares one fixed window across server instances. The first
// INCR of a window sets the TTL; PTTL recovers the reset time for headers.
type RedisLimiter struct {
	rdb    *redis.Client
	quota  int
	window time.Duration
}

func NewRedisLimiter(rdb *redis.Client, quota int, windowLen time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, quota: quota, window: windowLen}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	k := fmt.Sprintf("ratelimit:%s", key)

	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return Result{}, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return Result{}, err
		}
	}

	ttl, err := l.rdb.PTTL(ctx, k).Result()
	if err != nil {
		return Result{}, err
	}
	if ttl < 0 {
		// key without expiry (e.g. Expire lost between INCRs); re-arm it
		ttl = l.window
		_ = l.rdb.Expire(ctx, k, l.window).Err()
	}

	remaining := l.quota - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   int(count) <= l.quota,
		Remaining: remaining,
		ResetAt:   time.Now().Add(ttl),
	}, nil
}
