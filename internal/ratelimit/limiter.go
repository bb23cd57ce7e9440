package ratelimit

import (
	"context"
	"time"
)

// Result reports the outcome of one check. Remaining and ResetAt are
// returned regardless of outcome so response headers can always be set.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter is a fixed-window request counter keyed by client identifier.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}
