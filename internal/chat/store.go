package chat

import (
	"context"
	"errors"
)

// ErrNotFound is returned by id-addressed store operations for unknown ids.
var ErrNotFound = errors.New("session not found")

// Store owns session lifecycle. Implementations must return copies, so a
// caller can never mutate stored state behind the store's back.
type Store interface {
	// List returns summaries ordered by UpdatedAt descending.
	List(ctx context.Context) ([]SessionSummary, error)
	Get(ctx context.Context, id string) (*Session, error)
	Create(ctx context.Context, in CreateSession) (*Session, error)
	// Update merges the patch and bumps UpdatedAt.
	Update(ctx context.Context, id string, patch SessionPatch) (*Session, error)
	// Delete reports whether the session existed.
	Delete(ctx context.Context, id string) (bool, error)
}
