// Package prompt assembles the bounded context window sent to the model.
package prompt

import (
	"context"

	"godchat/internal/domain"
	"godchat/internal/store"
)

// DefaultHistoryWindow caps how many stored turns enter the prompt. Older
// turns are dropped from context only, never from storage.
const DefaultHistoryWindow = 10

// Assembler builds the ordered prompt for one request:
//
//	[persona] + [stored history, most recent window, oldest-first] +
//	[client memory] + [current turns]
//
// Client memory may overlap stored history; the overlap is kept as harmless
// redundancy because deduplicating would need a content-equality contract
// across turns that does not exist.
type Assembler struct {
	store   store.Store
	persona string
	window  int
}

// NewAssembler creates an assembler reading history from s. A window of zero
// or less falls back to DefaultHistoryWindow.
func NewAssembler(s store.Store, persona string, window int) *Assembler {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	return &Assembler{store: s, persona: persona, window: window}
}

// Assemble builds the prompt. Aside from the single store read it is pure:
// no input is mutated and nothing is persisted. A failed history read
// surfaces ErrPersistence rather than silently degrading to a no-history
// prompt the user could not audit.
func (a *Assembler) Assemble(ctx context.Context, sessionID string, clientMemory, current []domain.Entry) ([]domain.Entry, error) {
	history, err := a.store.History(ctx, sessionID, a.window)
	if err != nil {
		return nil, domain.NewError(domain.ErrPersistence, err, "failed to read session history")
	}

	entries := make([]domain.Entry, 0, 1+len(history)+len(clientMemory)+len(current))
	entries = append(entries, domain.Entry{Role: domain.RoleSystem, Content: a.persona})
	for _, t := range history {
		entries = append(entries, domain.Entry{Role: t.Role, Content: t.Content})
	}
	entries = append(entries, clientMemory...)
	entries = append(entries, current...)

	return entries, nil
}
