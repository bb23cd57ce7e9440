package chat

import (
	"context"
	"testing"
	"time"
)

func TestMemStore_CreateThenGet(t *testing.T) {
	s := NewMemStore()

	sess, err := s.Create(context.Background(), CreateSession{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.ID == "" {
		t.Fatalf("expected generated id")
	}
	if sess.Title != DefaultTitle {
		t.Fatalf("expected default title, got %q", sess.Title)
	}
	if len(sess.Messages) != 0 {
		t.Fatalf("expected empty messages, got %d", len(sess.Messages))
	}
	if !sess.CreatedAt.Equal(sess.UpdatedAt) {
		t.Fatalf("createdAt != updatedAt at creation")
	}

	got, err := s.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != sess.ID || got.Title != sess.Title {
		t.Fatalf("get returned different session: %+v", got)
	}
}

func TestMemStore_CreateUniqueIDs(t *testing.T) {
	s := NewMemStore()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		sess, err := s.Create(context.Background(), CreateSession{Title: "t"})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[sess.ID] {
			t.Fatalf("duplicate id %q", sess.ID)
		}
		seen[sess.ID] = true
	}
}

func TestMemStore_UpdateBumpsUpdatedAtAndMerges(t *testing.T) {
	s := NewMemStore()
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	sess, err := s.Create(context.Background(), CreateSession{Title: "original", Messages: []Message{
		{ID: "m1", Role: "user", Content: "hi"},
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	clock = clock.Add(time.Second)
	title := "renamed"
	updated, err := s.Update(context.Background(), sess.ID, SessionPatch{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "renamed" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if !updated.UpdatedAt.After(sess.UpdatedAt) {
		t.Fatalf("updatedAt not bumped")
	}
	// unspecified fields untouched
	if len(updated.Messages) != 1 || updated.Messages[0].ID != "m1" {
		t.Fatalf("messages changed by title-only patch: %+v", updated.Messages)
	}

	msgs := []Message{
		{ID: "m1", Role: "user", Content: "hi"},
		{ID: "m2", Role: "assistant", Content: "hello"},
	}
	updated, err = s.Update(context.Background(), sess.ID, SessionPatch{Messages: &msgs})
	if err != nil {
		t.Fatalf("update messages: %v", err)
	}
	if len(updated.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(updated.Messages))
	}
	if updated.Title != "renamed" {
		t.Fatalf("title changed by message-only patch: %q", updated.Title)
	}
}

func TestMemStore_UpdateUnknownID(t *testing.T) {
	s := NewMemStore()
	title := "x"
	if _, err := s.Update(context.Background(), "missing", SessionPatch{Title: &title}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemStore_ListOrderedByUpdatedAtDesc(t *testing.T) {
	s := NewMemStore()
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	a, _ := s.Create(context.Background(), CreateSession{Title: "a"})
	clock = clock.Add(time.Second)
	b, _ := s.Create(context.Background(), CreateSession{Title: "b"})
	clock = clock.Add(time.Second)
	c, _ := s.Create(context.Background(), CreateSession{Title: "c"})

	list, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(list))
	}
	if list[0].ID != c.ID || list[1].ID != b.ID || list[2].ID != a.ID {
		t.Fatalf("unexpected order: %q %q %q", list[0].Title, list[1].Title, list[2].Title)
	}

	// touching the oldest moves it to the front
	clock = clock.Add(time.Second)
	title := "a2"
	if _, err := s.Update(context.Background(), a.ID, SessionPatch{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}
	list, _ = s.List(context.Background())
	if list[0].ID != a.ID {
		t.Fatalf("expected updated session first, got %q", list[0].Title)
	}
}

func TestMemStore_Delete(t *testing.T) {
	s := NewMemStore()

	existed, err := s.Delete(context.Background(), "missing")
	if err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
	if existed {
		t.Fatalf("delete of unknown id reported existed")
	}

	sess, _ := s.Create(context.Background(), CreateSession{})
	existed, err = s.Delete(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !existed {
		t.Fatalf("delete of known id reported not existed")
	}
	if _, err := s.Get(context.Background(), sess.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemStore_ReturnsCopies(t *testing.T) {
	s := NewMemStore()
	sess, _ := s.Create(context.Background(), CreateSession{Messages: []Message{
		{ID: "m1", Role: "user", Content: "hi"},
	}})

	sess.Title = "mutated"
	sess.Messages[0].Content = "mutated"

	got, _ := s.Get(context.Background(), sess.ID)
	if got.Title == "mutated" || got.Messages[0].Content == "mutated" {
		t.Fatalf("store state mutated through returned session")
	}
}
