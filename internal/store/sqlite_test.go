package store

import (
	"context"
	"fmt"
	"testing"

	"godchat/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteAppendAssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	turn, err := s.Append(ctx, "s1", domain.RoleUser, "hello")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if turn.ID == "" {
		t.Fatal("expected store-assigned ID")
	}
	if turn.CreatedAt.IsZero() {
		t.Fatal("expected store-assigned timestamp")
	}
	if turn.SessionID != "s1" || turn.Role != domain.RoleUser || turn.Content != "hello" {
		t.Fatalf("unexpected turn: %+v", turn)
	}
}

func TestSQLiteHistoryEmptySession(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	turns, err := s.History(ctx, "nope", 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected empty history, got %d turns", len(turns))
	}
}

func TestSQLiteHistoryOrdering(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		if _, err := s.Append(ctx, "s1", role, fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	turns, err := s.History(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(turns) != 5 {
		t.Fatalf("expected 5 turns, got %d", len(turns))
	}
	for i, turn := range turns {
		if turn.Content != fmt.Sprintf("msg %d", i) {
			t.Fatalf("turn %d out of order: %q", i, turn.Content)
		}
		if i > 0 && turns[i].CreatedAt.Before(turns[i-1].CreatedAt) {
			t.Fatalf("created_at not non-decreasing at index %d", i)
		}
	}
}

func TestSQLiteHistoryLimitKeepsMostRecent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 0; i < 12; i++ {
		if _, err := s.Append(ctx, "s1", domain.RoleUser, fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	turns, err := s.History(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(turns) != 10 {
		t.Fatalf("expected 10 turns, got %d", len(turns))
	}
	// The two oldest are dropped; the slice stays oldest-first.
	if turns[0].Content != "msg 2" {
		t.Fatalf("expected window to start at msg 2, got %q", turns[0].Content)
	}
	if turns[9].Content != "msg 11" {
		t.Fatalf("expected window to end at msg 11, got %q", turns[9].Content)
	}
}

func TestSQLiteHistoryReadsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := s.Append(ctx, "s1", domain.RoleUser, fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	first, err := s.History(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	second, err := s.History(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("read lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("read sequences differ at index %d", i)
		}
	}
}

func TestSQLiteHistoryIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Append(ctx, "s1", domain.RoleUser, "for s1"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := s.Append(ctx, "s2", domain.RoleUser, "for s2"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	turns, err := s.History(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(turns) != 1 || turns[0].Content != "for s1" {
		t.Fatalf("unexpected history: %+v", turns)
	}
}
