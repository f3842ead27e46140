package service

import (
	"context"

	"godchat/internal/domain"
)

// History returns up to limit turns for a session, oldest-first. Reads are
// idempotent: without an intervening append, two calls yield the same
// sequence. An unknown session yields an empty slice.
func (s *Service) History(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	if sessionID == "" {
		return nil, domain.NewError(domain.ErrInvalidRequest, nil, "session_id is required")
	}
	turns, err := s.store.History(ctx, sessionID, limit)
	if err != nil {
		s.countStoreError("history")
		return nil, domain.NewError(domain.ErrPersistence, err, "failed to read session history")
	}
	return turns, nil
}
