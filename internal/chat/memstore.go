package chat

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/raylincc/codechat/internal/common"
)

// MemStore keeps sessions in a process-lifetime map. It is the default
// backend; nothing survives a restart.
type MemStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

func copySession(s *Session) *Session {
	out := *s
	out.Messages = append([]Message(nil), s.Messages...)
	return &out
}

func (m *MemStore) List(ctx context.Context) ([]SessionSummary, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]SessionSummary, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, SessionSummary{
			ID:           s.ID,
			Title:        s.Title,
			CreatedAt:    s.CreatedAt,
			UpdatedAt:    s.UpdatedAt,
			MessageCount: len(s.Messages),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MemStore) Get(ctx context.Context, id string) (*Session, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copySession(s), nil
}

func (m *MemStore) Create(ctx context.Context, in CreateSession) (*Session, error) {
	_ = ctx
	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}

	title := in.Title
	if title == "" {
		title = DefaultTitle
	}
	msgs := in.Messages
	if msgs == nil {
		msgs = []Message{}
	}

	now := m.now()
	s := &Session{
		ID:        id,
		Title:     title,
		Messages:  msgs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	return copySession(s), nil
}

func (m *MemStore) Update(ctx context.Context, id string, patch SessionPatch) (*Session, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Messages != nil {
		s.Messages = append([]Message(nil), (*patch.Messages)...)
	}
	s.UpdatedAt = m.now()

	return copySession(s), nil
}

func (m *MemStore) Delete(ctx context.Context, id string) (bool, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false, nil
	}
	delete(m.sessions, id)
	return true, nil
}
