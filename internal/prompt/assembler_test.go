package prompt

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"godchat/internal/domain"
)

// fakeStore serves canned history and records requested limits.
type fakeStore struct {
	turns     []domain.Turn
	err       error
	lastLimit int
}

func (f *fakeStore) Append(ctx context.Context, sessionID string, role domain.Role, content string) (*domain.Turn, error) {
	panic("assembler must not write")
}

func (f *fakeStore) History(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.turns) > limit {
		return f.turns[len(f.turns)-limit:], nil
	}
	return f.turns, nil
}

func (f *fakeStore) Close() error { return nil }

func TestAssembleOrder(t *testing.T) {
	fs := &fakeStore{turns: []domain.Turn{
		{Role: domain.RoleUser, Content: "old question"},
		{Role: domain.RoleAssistant, Content: "old answer"},
	}}
	a := NewAssembler(fs, "persona text", 10)

	memory := []domain.Entry{{Role: domain.RoleUser, Content: "remembered"}}
	current := []domain.Entry{{Role: domain.RoleUser, Content: "now"}}

	entries, err := a.Assemble(context.Background(), "s1", memory, current)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	want := []domain.Entry{
		{Role: domain.RoleSystem, Content: "persona text"},
		{Role: domain.RoleUser, Content: "old question"},
		{Role: domain.RoleAssistant, Content: "old answer"},
		{Role: domain.RoleUser, Content: "remembered"},
		{Role: domain.RoleUser, Content: "now"},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], entries[i])
		}
	}
}

func TestAssemblePersonaAlwaysFirst(t *testing.T) {
	fs := &fakeStore{}
	a := NewAssembler(fs, "persona text", 10)

	entries, err := a.Assemble(context.Background(), "s1", nil,
		[]domain.Entry{{Role: domain.RoleUser, Content: "hello"}})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Role != domain.RoleSystem || entries[0].Content != "persona text" {
		t.Fatalf("expected persona first, got %+v", entries[0])
	}
}

func TestAssembleWindowCap(t *testing.T) {
	fs := &fakeStore{}
	for i := 0; i < 25; i++ {
		fs.turns = append(fs.turns, domain.Turn{Role: domain.RoleUser, Content: fmt.Sprintf("msg %d", i)})
	}
	a := NewAssembler(fs, "p", 10)

	entries, err := a.Assemble(context.Background(), "s1", nil,
		[]domain.Entry{{Role: domain.RoleUser, Content: "now"}})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if fs.lastLimit != 10 {
		t.Fatalf("expected history read capped at 10, got %d", fs.lastLimit)
	}
	// persona + 10 history + current
	if len(entries) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(entries))
	}
	if entries[1].Content != "msg 15" {
		t.Fatalf("expected history segment to hold the most recent turns, got %q", entries[1].Content)
	}
}

func TestAssembleDefaultWindow(t *testing.T) {
	a := NewAssembler(&fakeStore{}, "p", 0)
	if a.window != DefaultHistoryWindow {
		t.Fatalf("expected default window %d, got %d", DefaultHistoryWindow, a.window)
	}
}

func TestAssembleKeepsMemoryOverlap(t *testing.T) {
	// Client memory duplicating stored history is kept verbatim: there is
	// no equality contract to deduplicate on.
	fs := &fakeStore{turns: []domain.Turn{
		{Role: domain.RoleUser, Content: "same words"},
	}}
	a := NewAssembler(fs, "p", 10)

	entries, err := a.Assemble(context.Background(), "s1",
		[]domain.Entry{{Role: domain.RoleUser, Content: "same words"}},
		[]domain.Entry{{Role: domain.RoleUser, Content: "now"}})
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected duplicated entry preserved, got %d entries", len(entries))
	}
}

func TestAssembleStoreFailure(t *testing.T) {
	fs := &fakeStore{err: errors.New("connection refused")}
	a := NewAssembler(fs, "p", 10)

	_, err := a.Assemble(context.Background(), "s1", nil,
		[]domain.Entry{{Role: domain.RoleUser, Content: "hello"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !domain.IsKind(err, domain.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}
